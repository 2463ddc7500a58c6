package escrow

import (
	"encoding/binary"

	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

const confPkg = "escrow"

// Configuration of the escrow extension.
type Configuration struct {
	// RecordRent is the native balance the maker locks for the record
	// storage. It is returned to the maker when the escrow is closed.
	RecordRent uint64 `json:"record_rent"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	return nil
}

func (c *Configuration) Marshal() ([]byte, error) {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint64(raw, c.RecordRent)
	return raw, nil
}

func (c *Configuration) Unmarshal(raw []byte) error {
	if len(raw) != 8 {
		return errors.Wrapf(errors.ErrModel, "configuration must be 8 bytes, got %d", len(raw))
	}
	c.RecordRent = binary.LittleEndian.Uint64(raw)
	return nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load escrow configuration")
	}
	return &conf, nil
}
