package x

import (
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
)

// Authenticator reveals who authorized the transaction being processed.
// Handlers receive it in their constructor so that tests can swap x/sigs
// for an in-memory implementation.
type Authenticator interface {
	// GetConditions returns every condition the transaction fulfills.
	// The first one belongs to the main signer.
	GetConditions(piggybank.Context) []piggybank.Condition
	// HasAddress tells if any fulfilled condition resolves to addr.
	HasAddress(piggybank.Context, piggybank.Address) bool
}

// MultiAuth merges the conditions of several authenticators.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth returns an authenticator consulting impls in order.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

func (m MultiAuth) GetConditions(ctx piggybank.Context) []piggybank.Condition {
	var res []piggybank.Condition
	for _, impl := range m.impls {
		res = append(res, impl.GetConditions(ctx)...)
	}
	return res
}

func (m MultiAuth) HasAddress(ctx piggybank.Context, addr piggybank.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first fulfilled condition or nil.
func MainSigner(ctx piggybank.Context, auth Authenticator) piggybank.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}

// Signer returns the address of the main signer. A transaction without any
// signature fails with ErrUnauthorized, described by role ("depositor",
// "goal owner").
func Signer(ctx piggybank.Context, auth Authenticator, role string) (piggybank.Address, error) {
	signer := MainSigner(ctx, auth)
	if signer == nil {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s signature required", role)
	}
	return signer.Address(), nil
}

// RequireOwner fails with the given error kind unless owner signed the
// transaction. Modules pass their own kind, for example the vault uses a
// dedicated not-the-owner error while the token ledger uses ErrUnauthorized.
func RequireOwner(ctx piggybank.Context, auth Authenticator, owner piggybank.Address, kind *errors.Error) error {
	if owner == nil {
		return errors.Wrap(errors.ErrState, "missing owner")
	}
	if !auth.HasAddress(ctx, owner) {
		return errors.Wrapf(kind, "%s did not sign", owner)
	}
	return nil
}
