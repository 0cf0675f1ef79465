package goal

import (
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
)

const optKey = "goals"

// Genesis is the "goals" section of the genesis file.
type Genesis struct {
	Goals []Goal `json:"goals"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ piggybank.Initializer = Initializer{}

// FromGenesis imports goals with their ids and moves the goal counter past
// the highest imported id.
func (Initializer) FromGenesis(opts piggybank.Options, db piggybank.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	bucket := NewBucket()
	counter := NewGoalCounter()
	var maxID uint64
	for i := range gen.Goals {
		g := gen.Goals[i]
		if g.Metadata == nil {
			g.Metadata = &piggybank.Metadata{Schema: 1}
		}
		if g.ID == 0 {
			return errors.Wrapf(errors.ErrInput, "goal %d: id is required", i)
		}
		key := Key(g.ID)
		switch err := bucket.Has(db, key); {
		case err == nil:
			return errors.Wrapf(errors.ErrDuplicate, "goal %d: id %d", i, g.ID)
		case !errors.ErrNotFound.Is(err):
			return err
		}
		if err := bucket.Put(db, key, &g); err != nil {
			return errors.Wrapf(err, "goal %d", i)
		}
		if g.ID > maxID {
			maxID = g.ID
		}
	}
	if maxID > 0 {
		if err := counter.Reset(db, maxID); err != nil {
			return err
		}
	}
	return nil
}
