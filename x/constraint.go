package x

import (
	"github.com/iov-one/custody"
)

// Constraint is a single precondition of a state transition. Constraints
// only read the state and return a specific error kind when violated.
type Constraint func(ctx custody.Context, db custody.ReadOnlyKVStore) error

// Constraints is an ordered validation pipeline.
type Constraints []Constraint

// Check runs all constraints in order and returns the first violation. No
// later constraint is run once one failed.
func (cs Constraints) Check(ctx custody.Context, db custody.ReadOnlyKVStore) error {
	for _, c := range cs {
		if err := c(ctx, db); err != nil {
			return err
		}
	}
	return nil
}
