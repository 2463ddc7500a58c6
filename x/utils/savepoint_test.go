package utils

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavepoint(t *testing.T) {
	// always write ok, ov before calling functions
	ok, ov := []byte("demo"), []byte("data")
	// some key, value to try to write
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}

	cases := map[string]struct {
		save    custody.Decorator
		err     error
		check   bool
		written [][]byte
		missing [][]byte
	}{
		"savepoint disabled, error keeps the write": {
			save:    NewSavepoint(),
			err:     errors.ErrHuman,
			check:   true,
			written: [][]byte{ok, nk},
		},
		"check savepoint rolls back": {
			save:    NewSavepoint().OnCheck(),
			err:     errors.ErrHuman,
			check:   true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"deliver savepoint rolls back": {
			save:    NewSavepoint().OnDeliver(),
			err:     errors.ErrHuman,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"double activation maintains both behaviors": {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			err:     errors.ErrHuman,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"check savepoint does not affect deliver": {
			save:    NewSavepoint().OnCheck(),
			err:     errors.ErrHuman,
			written: [][]byte{ok, nk},
		},
		"success is committed": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			check:   true,
			written: [][]byte{ok, nk},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			kv := store.MemStore()
			require.NoError(t, kv.Set(ok, ov))

			h := custodytest.Decorate(&custodytest.WriteHandler{
				Key:        nk,
				Value:      nv,
				CheckErr:   tc.err,
				DeliverErr: tc.err,
			}, tc.save)

			var err error
			if tc.check {
				_, err = h.Check(context.Background(), kv, nil)
			} else {
				_, err = h.Deliver(context.Background(), kv, nil)
			}
			if tc.err != nil {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			for _, k := range tc.written {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.True(t, has, "%x", k)
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.False(t, has, "%x", k)
			}
		})
	}
}
