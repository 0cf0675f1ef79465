package weavetest

import (
	"context"
	"fmt"

	"github.com/iov-one/piggybank"
)

// Auth is a mock implementing x.Authenticator interface.
//
// It authenticates all referenced conditions. Signer and Signers are
// considered together; Signer is a shortcut for the single signer case.
type Auth struct {
	Signer  piggybank.Condition
	Signers []piggybank.Condition
}

func (a *Auth) GetConditions(piggybank.Context) []piggybank.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx piggybank.Context, addr piggybank.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// Conditions are stored in and read from the context, so that a single
// handler instance can be called by different signers in one test.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context.
	Key string
}

func (a *CtxAuth) SetConditions(ctx piggybank.Context, conds ...piggybank.Condition) piggybank.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx piggybank.Context) []piggybank.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]piggybank.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []piggybank.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx piggybank.Context, addr piggybank.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
