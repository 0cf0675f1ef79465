package sigs

import (
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/weavetest"
)

// StdTx is a minimal signed transaction carrying a raw payload.
type StdTx struct {
	weavetest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ piggybank.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &weavetest.Msg{RoutePath: "test/payload", Serialized: payload}
	return &StdTx{Tx: weavetest.Tx{Msg: msg}}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []piggybank.Condition
}

var _ piggybank.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx piggybank.Context, store piggybank.KVStore, tx piggybank.Tx) (*piggybank.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &piggybank.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx piggybank.Context, store piggybank.KVStore, tx piggybank.Tx) (*piggybank.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &piggybank.DeliverResult{}, nil
}
