package weavetest

import "github.com/iov-one/piggybank"

// Handler is a mock implementation of the piggybank.Handler interface that
// returns preconfigured results and counts calls.
type Handler struct {
	checkCall   int
	CheckResult piggybank.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult piggybank.DeliverResult
	DeliverErr    error
}

var _ piggybank.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*piggybank.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*piggybank.DeliverResult, error) {
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

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler writes Key and Value to the store on every call and then
// returns Err.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ piggybank.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*piggybank.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &piggybank.CheckResult{}, nil
}

func (h *WriteHandler) Deliver(ctx piggybank.Context, db piggybank.KVStore, tx piggybank.Tx) (*piggybank.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &piggybank.DeliverResult{}, nil
}
