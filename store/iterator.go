package store

import (
	"bytes"

	"github.com/iov-one/piggybank/errors"
)

// mergeIterator combines the items of a cache layer with the iterator of the
// store below it. The cache wins on equal keys and deleted items hide the
// parent value.
type mergeIterator struct {
	items     []keyer
	idx       int
	parent    Iterator
	ascending bool

	// lookahead of the parent iterator
	pKey, pValue []byte
	pDone        bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(items []keyer, parent Iterator, ascending bool) *mergeIterator {
	return &mergeIterator{
		items:     items,
		parent:    parent,
		ascending: ascending,
	}
}

// Next implements Iterator.
func (m *mergeIterator) Next() (key, value []byte, err error) {
	for {
		if err := m.loadParent(); err != nil {
			return nil, nil, err
		}

		hasOwn := m.idx < len(m.items)
		if !hasOwn && m.pDone {
			return nil, nil, errors.ErrIteratorDone
		}

		if !hasOwn {
			key, value := m.pKey, m.pValue
			m.pKey, m.pValue = nil, nil
			return key, value, nil
		}

		item := m.items[m.idx]
		if !m.pDone {
			switch cmp := m.compare(item.Key(), m.pKey); {
			case cmp > 0:
				key, value := m.pKey, m.pValue
				m.pKey, m.pValue = nil, nil
				return key, value, nil
			case cmp == 0:
				// Overwritten or deleted in the cache layer.
				m.pKey, m.pValue = nil, nil
			}
		}

		m.idx++
		if s, ok := item.(setItem); ok {
			return s.Key(), s.value, nil
		}
		// Deleted item, keep going.
	}
}

// loadParent fills the parent lookahead if it is empty.
func (m *mergeIterator) loadParent() error {
	if m.pDone || m.pKey != nil {
		return nil
	}
	key, value, err := m.parent.Next()
	switch {
	case errors.ErrIteratorDone.Is(err):
		m.pDone = true
		return nil
	case err != nil:
		return err
	}
	m.pKey, m.pValue = key, value
	return nil
}

// compare returns a negative number if a comes first in the iteration order.
func (m *mergeIterator) compare(a, b []byte) int {
	cmp := bytes.Compare(a, b)
	if !m.ascending {
		return -cmp
	}
	return cmp
}

// Release implements Iterator.
func (m *mergeIterator) Release() {
	m.parent.Release()
	m.items = nil
}
