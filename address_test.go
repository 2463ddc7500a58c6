package custody

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	addr := Address(bytes.Repeat([]byte{0xAB}, AddressLength))
	bech, err := addr.Bech32("cst")
	require.NoError(t, err)

	cases := map[string]struct {
		enc     string
		want    Address
		wantErr *errors.Error
	}{
		"hex":            {enc: addr.String(), want: addr},
		"hex prefixed":   {enc: "hex:" + addr.String(), want: addr},
		"base58":         {enc: "b58:" + addr.Base58(), want: addr},
		"bech32":         {enc: "bech32:" + bech, want: addr},
		"unknown format": {enc: "foo:bar", wantErr: errors.ErrType},
		"invalid hex":    {enc: "xyz", wantErr: errors.ErrInput},
		"too short":      {enc: "0102", wantErr: errors.ErrInput},
		"invalid base58": {enc: "b58:0OIl", wantErr: errors.ErrInput},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseAddress(tc.enc)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tc.wantErr.Is(err), "got %s", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAddressJSON(t *testing.T) {
	addr := Address(bytes.Repeat([]byte{0x01}, AddressLength))

	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(raw))

	var got Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)

	require.NoError(t, json.Unmarshal([]byte(`"b58:`+addr.Base58()+`"`), &got))
	assert.Equal(t, addr, got)

	require.NoError(t, json.Unmarshal([]byte(`""`), &got))
	assert.Nil(t, got)
}

func TestAddressValidate(t *testing.T) {
	assert.True(t, errors.ErrEmpty.Is(Address(nil).Validate()))
	assert.True(t, errors.ErrInput.Is(Address([]byte{1}).Validate()))
	assert.NoError(t, Address(make([]byte, AddressLength)).Validate())
	assert.Equal(t, "(nil)", Address(nil).String())
}

func TestAddressClone(t *testing.T) {
	a := Address(bytes.Repeat([]byte{0x05}, AddressLength))
	b := a.Clone()
	b[0] = 0
	assert.Equal(t, byte(0x05), a[0])
	assert.Nil(t, Address(nil).Clone())
}
