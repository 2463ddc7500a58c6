package sigs

import (
	"bytes"
	"testing"

	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSignBytes(t *testing.T) {
	a, err := BuildSignBytes([]byte("payload"), "test-chain", 1)
	require.NoError(t, err)
	assert.Len(t, a, 64)

	b, err := BuildSignBytes([]byte("payload"), "test-chain", 2)
	require.NoError(t, err)
	assert.False(t, bytes.Equal(a, b))

	c, err := BuildSignBytes([]byte("payload"), "othe-chain", 1)
	require.NoError(t, err)
	assert.False(t, bytes.Equal(a, c))

	_, err = BuildSignBytes([]byte("payload"), "bad", 1)
	assert.True(t, errors.ErrInput.Is(err), "got %+v", err)
}

func TestUserSequence(t *testing.T) {
	key := custodytest.NewKey()
	u := UserData{Pubkey: key.PublicKey()}
	require.NoError(t, u.Validate())

	assert.True(t, ErrInvalidSequence.Is(u.CheckAndIncrementSequence(1)))
	require.NoError(t, u.CheckAndIncrementSequence(0))
	require.NoError(t, u.CheckAndIncrementSequence(1))
	assert.Equal(t, uint64(2), u.Sequence)

	raw, err := u.Marshal()
	require.NoError(t, err)
	var got UserData
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, u, got)
	assert.Equal(t, key.Address(), got.Address())

	u.Sequence = (1 << 53) - 1
	assert.True(t, errors.ErrOverflow.Is(u.CheckAndIncrementSequence(u.Sequence)))
}

func TestStdSignatureValidate(t *testing.T) {
	key := custodytest.NewKey()
	cases := map[string]struct {
		sig     StdSignature
		wantErr bool
	}{
		"valid":        {sig: StdSignature{Pubkey: key.PublicKey(), Signature: []byte{1}}},
		"no pubkey":    {sig: StdSignature{Signature: []byte{1}}, wantErr: true},
		"short pubkey": {sig: StdSignature{Pubkey: key.PublicKey()[:10], Signature: []byte{1}}, wantErr: true},
		"no signature": {sig: StdSignature{Pubkey: key.PublicKey()}, wantErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.sig.Validate()
			if tc.wantErr {
				assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
