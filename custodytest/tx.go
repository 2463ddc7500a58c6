package custodytest

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Tx represents a custody transaction carrying a single message. It cannot
// be serialized.
type Tx struct {
	Msg custody.Msg
	// Err if set is returned by GetMsg instead of the message.
	Err error
}

var _ custody.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (custody.Msg, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg, nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	return nil, errors.Wrap(errors.ErrHuman, "not implemented")
}

func (tx *Tx) Unmarshal([]byte) error {
	return errors.Wrap(errors.ErrHuman, "not implemented")
}

// Msg is a mock message with a configurable path and validation result.
type Msg struct {
	RoutePath string
	Err       error
}

var _ custody.Msg = (*Msg)(nil)

func (m *Msg) Path() string { return m.RoutePath }

func (m *Msg) Validate() error { return m.Err }

func (m *Msg) Marshal() ([]byte, error) { return []byte(m.RoutePath), nil }

func (m *Msg) Unmarshal(raw []byte) error {
	m.RoutePath = string(raw)
	return nil
}
