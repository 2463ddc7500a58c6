package custody

import (
	"crypto/sha256"

	"filippo.io/edwards25519"
	"github.com/iov-one/custody/errors"
)

const (
	// MaxSeedParts is the maximum number of parts, namespace included,
	// a derivation accepts.
	MaxSeedParts = 16

	// MaxSeedPartLength is the maximum length of a single part.
	MaxSeedPartLength = 32
)

// derivationMarker is appended to every derivation preimage so that a
// derived address cannot be confused with any other hash of the same input.
var derivationMarker = []byte("ProgramDerivedAddress")

// Bump is the verification nonce found by the derivation. Together with the
// derivation inputs it proves that an address was derived and not generated
// from a key pair.
type Bump uint8

// Seeds is everything needed to reproduce a derived address. Presenting
// Seeds is the only way to act on behalf of an address that has no private
// key.
type Seeds struct {
	Namespace string
	Parts     [][]byte
	Bump      Bump
}

// NewSeeds returns a Seeds value. Parts are not copied.
func NewSeeds(namespace string, bump Bump, parts ...[]byte) Seeds {
	return Seeds{Namespace: namespace, Parts: parts, Bump: bump}
}

// Deriver computes addresses that are owned by the program identified by
// programID. Derived addresses never lie on the ed25519 curve, so no private
// key exists for them.
//
// A Deriver is immutable. Create one at startup from the configured program
// identity and pass it to all extensions.
type Deriver struct {
	programID Address
}

// NewDeriver returns a Deriver bound to given program identity.
func NewDeriver(programID Address) Deriver {
	return Deriver{programID: programID.Clone()}
}

// ProgramID returns the program identity this deriver is bound to.
func (d Deriver) ProgramID() Address {
	return d.programID.Clone()
}

// Find returns the first off-curve address, scanning the bump from 255 down
// to 0, for given namespace and parts.
func (d Deriver) Find(namespace string, parts ...[]byte) (Address, Bump, error) {
	if err := d.validateInput(namespace, parts); err != nil {
		return nil, 0, err
	}
	for b := 255; b >= 0; b-- {
		addr := d.hash(namespace, parts, Bump(b))
		if !IsOnCurve(addr) {
			return addr, Bump(b), nil
		}
	}
	return nil, 0, errors.Wrapf(errors.ErrDerivationExhausted, "namespace %q", namespace)
}

// MustFind is like Find but panics on error. Use it only with input that is
// known to be valid, for example in tests.
func (d Deriver) MustFind(namespace string, parts ...[]byte) (Address, Bump) {
	addr, bump, err := d.Find(namespace, parts...)
	if err != nil {
		panic(err)
	}
	return addr, bump
}

// Create returns the address for given seeds, including the bump. It fails
// if the result lies on the curve, because such an address could be
// controlled by a private key.
func (d Deriver) Create(seeds Seeds) (Address, error) {
	if err := d.validateInput(seeds.Namespace, seeds.Parts); err != nil {
		return nil, err
	}
	addr := d.hash(seeds.Namespace, seeds.Parts, seeds.Bump)
	if IsOnCurve(addr) {
		return nil, errors.Wrap(errors.ErrInput, "derived address is on the curve")
	}
	return addr, nil
}

// Verify returns nil only if given seeds reproduce addr exactly.
func (d Deriver) Verify(addr Address, seeds Seeds) error {
	got, err := d.Create(seeds)
	if err != nil {
		return errors.Wrap(errors.ErrUnauthorized, err.Error())
	}
	if !got.Equals(addr) {
		return errors.Wrapf(errors.ErrUnauthorized, "seeds do not derive %s", addr)
	}
	return nil
}

func (d Deriver) validateInput(namespace string, parts [][]byte) error {
	if err := d.programID.Validate(); err != nil {
		return errors.Wrap(err, "program id")
	}
	if namespace == "" {
		return errors.Wrap(errors.ErrEmpty, "namespace")
	}
	if len(namespace) > MaxSeedPartLength {
		return errors.Wrap(errors.ErrInput, "namespace too long")
	}
	if len(parts)+1 > MaxSeedParts {
		return errors.Wrapf(errors.ErrInput, "too many parts: %d", len(parts))
	}
	for i, p := range parts {
		if len(p) > MaxSeedPartLength {
			return errors.Wrapf(errors.ErrInput, "part %d too long", i)
		}
	}
	return nil
}

func (d Deriver) hash(namespace string, parts [][]byte, bump Bump) Address {
	h := sha256.New()
	h.Write([]byte(namespace))
	for _, p := range parts {
		h.Write(p)
	}
	h.Write([]byte{byte(bump)})
	h.Write(d.programID)
	h.Write(derivationMarker)
	return h.Sum(nil)
}

// IsOnCurve returns true if given address is a valid ed25519 point
// encoding, which means a private key for it may exist.
func IsOnCurve(addr Address) bool {
	if len(addr) != AddressLength {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(addr)
	return err == nil
}
