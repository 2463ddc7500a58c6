package utils

import (
	"github.com/iov-one/custody"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	// ActionKey tags every delivered transaction with its message path.
	ActionKey = "action"
	// SubjectKey tags the address a message acts on, when it names one.
	SubjectKey = "subject"
)

// Subjecter is implemented by messages that act on a single addressed
// entity, such as one escrow.
type Subjecter interface {
	Subject() custody.Address
}

// ActionTagger tags successful deliveries so clients can subscribe to them:
// `action` for every message of a kind, and `subject` to follow a single
// escrow from make to take or refund.
type ActionTagger struct{}

var _ custody.Decorator = ActionTagger{}

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check just passes the request along
func (ActionTagger) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver tags the result of a successful delivery.
func (ActionTagger) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}

	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, common.KVPair{
		Key:   []byte(ActionKey),
		Value: []byte(msg.Path()),
	})
	if s, ok := msg.(Subjecter); ok && len(s.Subject()) != 0 {
		res.Tags = append(res.Tags, common.KVPair{
			Key:   []byte(SubjectKey),
			Value: []byte(s.Subject().String()),
		})
	}
	return res, nil
}
