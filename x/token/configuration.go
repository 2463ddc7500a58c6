package token

import (
	"encoding/binary"

	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

const confPkg = "token"

// Configuration of the token extension.
type Configuration struct {
	// AccountRent is the native balance locked in every asset account for
	// as long as it exists. It is paid by whoever creates the account and
	// returned to the beneficiary chosen when the account is closed.
	AccountRent uint64 `json:"account_rent"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	return nil
}

func (c *Configuration) Marshal() ([]byte, error) {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint64(raw, c.AccountRent)
	return raw, nil
}

func (c *Configuration) Unmarshal(raw []byte) error {
	if len(raw) != 8 {
		return errors.Wrapf(errors.ErrModel, "configuration must be 8 bytes, got %d", len(raw))
	}
	c.AccountRent = binary.LittleEndian.Uint64(raw)
	return nil
}

// LoadConfiguration returns the configuration stored in the database.
func LoadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load token configuration")
	}
	return &conf, nil
}
