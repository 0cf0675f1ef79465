package cash

import (
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	"github.com/iov-one/piggybank/orm"
	"github.com/iov-one/piggybank/x"
)

// Controller is the functionality needed by other extensions to move value
// into wallets.
type Controller interface {
	// Balance returns the balance of the wallet of given address. A
	// missing wallet has a zero balance.
	Balance(piggybank.ReadOnlyKVStore, piggybank.Address) (uint64, error)

	// Credit adds amount to the wallet of given address, creating the
	// wallet if needed. Fails with ErrOverflow if the balance cannot hold
	// the result.
	Credit(db piggybank.KVStore, dest piggybank.Address, amount uint64) error
}

// BaseController is a simple implementation of controller.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns base controller implementation.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

// Balance returns the amount held by the wallet of given address.
func (c BaseController) Balance(db piggybank.ReadOnlyKVStore, addr piggybank.Address) (uint64, error) {
	w, err := c.load(db, addr)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

// Credit adds given amount to the wallet of the destination address.
func (c BaseController) Credit(db piggybank.KVStore, dest piggybank.Address, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	w, err := c.load(db, dest)
	if err != nil {
		return err
	}
	if w.Balance, err = x.AddAmount(w.Balance, amount); err != nil {
		return errors.Wrap(err, "wallet balance")
	}
	return c.bucket.Put(db, dest, w)
}

func (c BaseController) load(db piggybank.ReadOnlyKVStore, addr piggybank.Address) (*Wallet, error) {
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{Metadata: &piggybank.Metadata{Schema: 1}}, nil
	default:
		return nil, errors.Wrap(err, "cannot load wallet")
	}
}
