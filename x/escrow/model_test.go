package escrow

import (
	"testing"

	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscrowLayout(t *testing.T) {
	mintA := custodytest.SequenceAddress(1)
	mintB := custodytest.SequenceAddress(2)
	e, err := NewEscrow(mintA, mintB, 500, 0x0102, 254)
	require.NoError(t, err)

	raw, err := e.Marshal()
	require.NoError(t, err)
	require.Len(t, raw, 89)
	assert.Equal(t, discriminator, raw[:8])
	assert.Equal(t, []byte(mintA), raw[8:40])
	assert.Equal(t, []byte(mintB), raw[40:72])
	assert.Equal(t, []byte{0xf4, 0x01, 0, 0, 0, 0, 0, 0}, raw[72:80])
	assert.Equal(t, []byte{0x02, 0x01, 0, 0, 0, 0, 0, 0}, raw[80:88])
	assert.Equal(t, byte(254), raw[88])

	var got Escrow
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, e, &got)

	raw[0] ^= 0xff
	assert.True(t, errors.ErrModel.Is(got.Unmarshal(raw)))
	assert.True(t, errors.ErrModel.Is(got.Unmarshal(raw[:88])))
}

func TestNewEscrowValidation(t *testing.T) {
	a := custodytest.SequenceAddress(1)
	b := custodytest.SequenceAddress(2)

	_, err := NewEscrow(a, a, 1, 1, 1)
	assert.True(t, errors.ErrModel.Is(err))
	_, err = NewEscrow(a, b, 0, 1, 1)
	assert.True(t, errors.ErrAmount.Is(err))
	_, err = NewEscrow(nil, b, 1, 1, 1)
	assert.True(t, errors.ErrEmpty.Is(err))
}

func TestMakeMsgRoundTrip(t *testing.T) {
	l := newLedger(t)
	msg := l.makeMsg(t, 42, 1000, 500)
	raw, err := msg.Marshal()
	require.NoError(t, err)

	var got MakeMsg
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, msg, &got)
	assert.NoError(t, got.Validate())
}
