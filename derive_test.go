package custody

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"
)

func testProgramID(fill byte) Address {
	return Address(bytes.Repeat([]byte{fill}, AddressLength))
}

func seedLE(n uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, n)
	return b
}

func TestDeriverFindIsDeterministic(t *testing.T) {
	d := NewDeriver(testProgramID(7))
	maker := testProgramID(1)

	a1, b1, err := d.Find("escrow", maker, seedLE(1))
	require.NoError(t, err)
	a2, b2, err := d.Find("escrow", maker, seedLE(1))
	require.NoError(t, err)
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
	assert.Len(t, a1, AddressLength)
	assert.False(t, IsOnCurve(a1))

	other, _, err := d.Find("escrow", maker, seedLE(2))
	require.NoError(t, err)
	assert.False(t, a1.Equals(other), "seed must change the address")

	otherNS, _, err := d.Find("vault", maker, seedLE(1))
	require.NoError(t, err)
	assert.False(t, a1.Equals(otherNS), "namespace must change the address")

	otherProgram, _, err := NewDeriver(testProgramID(8)).Find("escrow", maker, seedLE(1))
	require.NoError(t, err)
	assert.False(t, a1.Equals(otherProgram), "program id must change the address")
}

func TestDeriverFindReturnsHighestBump(t *testing.T) {
	d := NewDeriver(testProgramID(3))
	for i := uint64(0); i < 32; i++ {
		addr, bump, err := d.Find("escrow", seedLE(i))
		require.NoError(t, err)

		// Every bump above the returned one must produce an on curve
		// address.
		for b := 255; b > int(bump); b-- {
			assert.True(t, IsOnCurve(d.hash("escrow", [][]byte{seedLE(i)}, Bump(b))))
		}
		assert.Equal(t, addr, d.hash("escrow", [][]byte{seedLE(i)}, bump))
	}
}

func TestDeriverHashLayout(t *testing.T) {
	program := testProgramID(9)
	d := NewDeriver(program)

	h := sha256.New()
	h.Write([]byte("ns"))
	h.Write([]byte("ab"))
	h.Write([]byte("cd"))
	h.Write([]byte{200})
	h.Write(program)
	h.Write([]byte("ProgramDerivedAddress"))
	assert.Equal(t, Address(h.Sum(nil)), d.hash("ns", [][]byte{[]byte("ab"), []byte("cd")}, 200))
}

func TestDeriverVerify(t *testing.T) {
	d := NewDeriver(testProgramID(7))
	maker := testProgramID(1)
	addr, bump := d.MustFind("escrow", maker, seedLE(42))

	require.NoError(t, d.Verify(addr, NewSeeds("escrow", bump, maker, seedLE(42))))

	cases := map[string]Seeds{
		"wrong seed":      NewSeeds("escrow", bump, maker, seedLE(43)),
		"wrong maker":     NewSeeds("escrow", bump, testProgramID(2), seedLE(42)),
		"wrong namespace": NewSeeds("vault", bump, maker, seedLE(42)),
		"wrong bump":      NewSeeds("escrow", bump-1, maker, seedLE(42)),
		"missing part":    NewSeeds("escrow", bump, maker),
	}
	for name, seeds := range cases {
		t.Run(name, func(t *testing.T) {
			err := d.Verify(addr, seeds)
			require.Error(t, err)
			assert.True(t, errors.ErrUnauthorized.Is(err))
		})
	}

	err := NewDeriver(testProgramID(8)).Verify(addr, NewSeeds("escrow", bump, maker, seedLE(42)))
	assert.True(t, errors.ErrUnauthorized.Is(err), "other program cannot authorize")
}

func TestDeriverInputLimits(t *testing.T) {
	d := NewDeriver(testProgramID(7))

	_, _, err := d.Find("")
	assert.True(t, errors.ErrEmpty.Is(err))

	_, _, err = d.Find("escrow", make([]byte, MaxSeedPartLength+1))
	assert.True(t, errors.ErrInput.Is(err))

	parts := make([][]byte, MaxSeedParts)
	_, _, err = d.Find("escrow", parts...)
	assert.True(t, errors.ErrInput.Is(err))

	_, _, err = d.Find("escrow", parts[:MaxSeedParts-1]...)
	assert.NoError(t, err)

	_, _, err = NewDeriver(nil).Find("escrow")
	assert.True(t, errors.ErrEmpty.Is(err))
}

func TestIsOnCurve(t *testing.T) {
	for i := 0; i < 10; i++ {
		pub, _, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)
		assert.True(t, IsOnCurve(Address(pub)), "public keys are curve points")
	}
	assert.False(t, IsOnCurve(Address([]byte{1, 2, 3})))
	assert.False(t, IsOnCurve(nil))
}
