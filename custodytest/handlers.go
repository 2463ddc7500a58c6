package custodytest

import "github.com/iov-one/custody"

// Handler is a mock implementation of the custody.Handler interface. It
// returns configured results and counts calls.
type Handler struct {
	checkCall   int
	CheckResult custody.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult custody.DeliverResult
	DeliverErr    error
}

var _ custody.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

// WriteHandler is a handler that writes a key to the store on every call
// and then returns the configured error. Use it to test that decorators
// roll back partial writes.
type WriteHandler struct {
	Key        []byte
	Value      []byte
	CheckErr   error
	DeliverErr error
}

var _ custody.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	return &custody.CheckResult{}, nil
}

func (h *WriteHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	return &custody.DeliverResult{}, nil
}

// Decorate returns a handler that calls the decorator with h as the next
// handler.
func Decorate(h custody.Handler, d custody.Decorator) custody.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	dc custody.Decorator
	hn custody.Handler
}

func (d *decoratedHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
