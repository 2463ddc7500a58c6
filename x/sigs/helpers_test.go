package sigs

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
)

// signedTx is a custodytest.Tx carrying signatures.
type signedTx struct {
	custodytest.Tx
	sigs []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)

func newSignedTx(msg custody.Msg) *signedTx {
	return &signedTx{Tx: custodytest.Tx{Msg: msg}}
}

func (tx *signedTx) GetSignBytes() ([]byte, error) {
	return tx.Msg.Marshal()
}

func (tx *signedTx) GetSignatures() []*StdSignature {
	return tx.sigs
}

func (tx *signedTx) sign(t custodytest.Key, chainID string, seq uint64) {
	sig, err := SignTx(t, tx, chainID, seq)
	if err != nil {
		panic(err)
	}
	tx.sigs = append(tx.sigs, sig)
}
