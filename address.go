package custody

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/decred/base58"
	"github.com/iov-one/custody/errors"
)

// AddressLength is the length of all addresses. An address is either an
// ed25519 public key (held by a private key) or the result of a derivation
// (guaranteed to have no private key).
const AddressLength = 32

// Address identifies an account, an asset type or any other entity that
// can hold state.
type Address []byte

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Clone returns a copy of the address that shares no memory with the
// original.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	cpy := make(Address, len(a))
	copy(cpy, a)
	return cpy
}

// MarshalJSON provides a hex representation for JSON,
// to override the standard base64 []byte encoding
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts any of the formats understood by ParseAddress.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	// No value zero the address.
	if len(enc) == 0 {
		*a = nil
		return nil
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// String returns a human readable string.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Base58 returns the base58 representation of the address, as used by most
// wallets talking to this kind of ledger.
func (a Address) Base58() string {
	return base58.Encode(a)
}

// Validate returns an error if the address is not the valid size
func (a Address) Validate() error {
	if len(a) == 0 {
		return errors.Wrap(errors.ErrEmpty, "address")
	}
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address length %d", len(a))
	}
	return nil
}

// ParseAddress accepts address in a human readable format and returns its
// binary representation.
//
// Supported formats are hex (default, optional "hex:" prefix), "b58:" and
// "bech32:".
func ParseAddress(enc string) (Address, error) {
	chunks := strings.SplitN(enc, ":", 2)
	format := "hex"
	if len(chunks) == 2 {
		format, enc = chunks[0], chunks[1]
	}

	var addr Address
	switch format {
	case "hex":
		raw, err := hex.DecodeString(enc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "cannot decode hex")
		}
		addr = raw
	case "b58":
		raw := base58.Decode(enc)
		if len(raw) == 0 {
			return nil, errors.Wrap(errors.ErrInput, "cannot decode base58")
		}
		addr = raw
	case "bech32":
		_, data, err := bech32.Decode(enc)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "cannot decode bech32: %s", err)
		}
		raw, err := bech32.ConvertBits(data, 5, 8, false)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "cannot convert bech32 bits: %s", err)
		}
		addr = raw
	default:
		return nil, errors.Wrapf(errors.ErrType, "unknown format %q", format)
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

// Bech32 returns the bech32 representation of the address using given human
// readable part.
func (a Address) Bech32(hrp string) (string, error) {
	data, err := bech32.ConvertBits(a, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, "cannot convert bits")
	}
	return bech32.Encode(hrp, data)
}
