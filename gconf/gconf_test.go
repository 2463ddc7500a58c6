package gconf

import (
	"encoding/binary"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rentConf struct {
	Rent uint64 `json:"rent"`
}

func (c *rentConf) Validate() error {
	if c.Rent == 0 {
		return errors.Wrap(errors.ErrAmount, "rent")
	}
	return nil
}

func (c *rentConf) Marshal() ([]byte, error) {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint64(raw, c.Rent)
	return raw, nil
}

func (c *rentConf) Unmarshal(raw []byte) error {
	if len(raw) != 8 {
		return errors.Wrap(errors.ErrModel, "length")
	}
	c.Rent = binary.LittleEndian.Uint64(raw)
	return nil
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var got rentConf
	err := Load(db, "mypkg", &got)
	assert.True(t, errors.ErrNotFound.Is(err))

	err = Save(db, "mypkg", &rentConf{})
	assert.True(t, errors.ErrAmount.Is(err))

	require.NoError(t, Save(db, "mypkg", &rentConf{Rent: 890}))
	require.NoError(t, Load(db, "mypkg", &got))
	assert.Equal(t, uint64(890), got.Rent)

	err = Load(db, "otherpkg", &got)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		opts    string
		wantErr *errors.Error
		want    uint64
	}{
		"valid": {
			opts: `{"mypkg": {"rent": 2039280}}`,
			want: 2039280,
		},
		"missing package": {
			opts:    `{"other": {"rent": 1}}`,
			wantErr: errors.ErrNotFound,
		},
		"invalid": {
			opts:    `{"mypkg": {"rent": 0}}`,
			wantErr: errors.ErrAmount,
		},
		"malformed": {
			opts:    `{"mypkg": {"rent": "abc"}}`,
			wantErr: errors.ErrInput,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			opts := custody.Options{"conf": []byte(tc.opts)}
			err := InitConfig(db, opts, "mypkg", &rentConf{})
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			var got rentConf
			require.NoError(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.want, got.Rent)
		})
	}
}
