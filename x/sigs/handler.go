package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

const (
	pathBumpSequenceMsg = "sigs/bump_sequence"

	maxSequenceIncrement = 1000
	minSequenceIncrement = 1
)

// BumpSequenceMsg increments the sequence of the main signer, invalidating
// every transaction signed with a sequence lower than the new value.
type BumpSequenceMsg struct {
	Increment uint32 `protobuf:"varint,1,opt,name=increment,proto3" json:"increment,omitempty"`
}

var _ custody.Msg = (*BumpSequenceMsg)(nil)

func (BumpSequenceMsg) Path() string {
	return pathBumpSequenceMsg
}

func (m *BumpSequenceMsg) Validate() error {
	if m.Increment < minSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must be at least %d", minSequenceIncrement)
	}
	if m.Increment > maxSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must not be greater than %d", maxSequenceIncrement)
	}
	return nil
}

func (m *BumpSequenceMsg) Marshal() ([]byte, error) { return codec.Marshal((*bumpSequenceMsg)(m)) }

func (m *BumpSequenceMsg) Unmarshal(raw []byte) error { return codec.Unmarshal(raw, (*bumpSequenceMsg)(m)) }

type bumpSequenceMsg BumpSequenceMsg

func (m *bumpSequenceMsg) Reset()         { *m = bumpSequenceMsg{} }
func (m *bumpSequenceMsg) String() string { return proto.CompactTextString(m) }
func (*bumpSequenceMsg) ProtoMessage()    {}

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r custody.Registry, auth x.Authenticator) {
	r.Handle(&BumpSequenceMsg{}, &bumpSequenceHandler{b: NewBucket(), auth: auth})
}

type bumpSequenceHandler struct {
	auth x.Authenticator
	b    Bucket
}

func (h *bumpSequenceHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

func (h *bumpSequenceHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	user, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	// Each transaction processing bumps the sequence by one. Increment
	// must represent the total increment value.
	incr := uint64(msg.Increment) - 1
	if incr == 0 {
		return &custody.DeliverResult{}, nil
	}
	user.Sequence += incr
	if err := h.b.Save(db, user); err != nil {
		return nil, errors.Wrap(err, "save user")
	}
	return &custody.DeliverResult{}, nil
}

func (h *bumpSequenceHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*UserData, *BumpSequenceMsg, error) {
	var msg *BumpSequenceMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	var user UserData
	if err := h.b.One(db, signer, &user); err != nil {
		return nil, nil, errors.Wrap(err, "no sequence")
	}
	if user.Sequence+uint64(msg.Increment) < user.Sequence {
		return nil, nil, errors.Wrap(errors.ErrOverflow, "user sequence")
	}
	return &user, msg, nil
}

