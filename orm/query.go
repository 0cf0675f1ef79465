package orm

import (
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
)

// ConsumeIterator reads all remaining data into an array and releases the
// iterator.
func ConsumeIterator(it piggybank.Iterator) ([]piggybank.Model, error) {
	defer it.Release()

	var res []piggybank.Model
	for {
		key, value, err := it.Next()
		switch {
		case err == nil:
			res = append(res, piggybank.Pair(key, value))
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}

func queryPrefix(db piggybank.ReadOnlyKVStore, prefix []byte) ([]piggybank.Model, error) {
	it, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, errors.Wrap(err, "cannot create iterator")
	}
	return ConsumeIterator(it)
}

// prefixRange turns a prefix into a (start, end) range. The end is the
// smallest key that does not have the prefix, or nil if the prefix is all
// 0xFF bytes.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if prefix == nil {
		return nil, nil
	}
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for l := len(end) - 1; l >= 0; l-- {
		end[l]++
		if end[l] != 0 {
			return prefix, end[:l+1]
		}
	}
	return prefix, nil
}
