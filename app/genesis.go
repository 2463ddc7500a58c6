package app

import (
	"encoding/json"
	"os"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// ProgramIDKey is the app state key holding the program identity every
// derived address of the ledger is bound to.
const ProgramIDKey = "program_id"

// Genesis file format, designed to be overlayed with tendermint genesis
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState custody.Options `json:"app_state"`
}

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "cannot parse genesis file: %s", err)
	}
	return gen, nil
}

// ProgramID returns the program identity declared in the app state.
func (g Genesis) ProgramID() (custody.Address, error) {
	return programIDFromOptions(g.AppState)
}

func programIDFromOptions(opts custody.Options) (custody.Address, error) {
	var pid custody.Address
	if err := opts.ReadOptions(ProgramIDKey, &pid); err != nil {
		return nil, err
	}
	if err := pid.Validate(); err != nil {
		return nil, errors.Wrap(err, ProgramIDKey)
	}
	return pid, nil
}
