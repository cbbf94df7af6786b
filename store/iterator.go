package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/charity/errors"
)

// SliceIterator wraps an Iterator over a slice of models
type SliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator creates a new Iterator over this slice
func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{
		data: data,
	}
}

// Next returns the next element or ErrIteratorDone.
func (s *SliceIterator) Next() (key, value []byte, err error) {
	if s.idx >= len(s.data) {
		return nil, nil, errors.Wrap(errors.ErrIteratorDone, "slice done")
	}
	m := s.data[s.idx]
	s.idx++
	return m.Key, m.Value, nil
}

// Release releases the Iterator.
func (s *SliceIterator) Release() {
	s.data = nil
}

// ReadAll consumes given iterator and returns all elements. The iterator is
// released.
func ReadAll(it Iterator) ([]Model, error) {
	defer it.Release()
	var res []Model
	for {
		k, v, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, Model{Key: k, Value: v})
	}
}

// inRange returns true if key is in the [start, end) range. Nil boundaries
// are open.
func inRange(key, start, end []byte) bool {
	if start != nil && bytes.Compare(key, start) < 0 {
		return false
	}
	if end != nil && bytes.Compare(key, end) >= 0 {
		return false
	}
	return true
}

// collectItems returns all btree items within the [start, end) range.
func collectItems(bt *btree.BTree, start, end []byte, ascending bool) []keyer {
	var res []keyer
	add := func(i btree.Item) bool {
		k := i.(keyer)
		if inRange(k.Key(), start, end) {
			res = append(res, k)
		}
		return true
	}
	if ascending {
		switch {
		case start == nil && end == nil:
			bt.Ascend(add)
		case start == nil:
			bt.AscendLessThan(bkey{end}, add)
		case end == nil:
			bt.AscendGreaterOrEqual(bkey{start}, add)
		default:
			bt.AscendRange(bkey{start}, bkey{end}, add)
		}
		return res
	}
	switch {
	case end == nil:
		bt.Descend(add)
	default:
		bt.DescendLessOrEqual(bkey{end}, add)
	}
	return res
}

// collect returns all models stored in the btree within given range.
func collect(bt *btree.BTree, start, end []byte, ascending bool) []Model {
	items := collectItems(bt, start, end, ascending)
	res := make([]Model, 0, len(items))
	for _, i := range items {
		if s, ok := i.(setItem); ok {
			res = append(res, Model{Key: s.key, Value: s.value})
		}
	}
	return res
}

// combine joins cached items with the results of the parent, taking into
// consideration overwrites and deletes. The parent is consumed and released.
func combine(parent Iterator, items []keyer, ascending bool) (Iterator, error) {
	below, err := ReadAll(parent)
	if err != nil {
		return nil, err
	}

	// before returns true if a must be returned before b
	before := func(a, b []byte) bool {
		if ascending {
			return bytes.Compare(a, b) < 0
		}
		return bytes.Compare(a, b) > 0
	}

	res := make([]Model, 0, len(below)+len(items))
	add := func(i keyer) {
		if s, ok := i.(setItem); ok {
			res = append(res, Model{Key: s.key, Value: s.value})
		}
	}
	var p, c int
	for p < len(below) && c < len(items) {
		pk, ck := below[p].Key, items[c].Key()
		switch {
		case bytes.Equal(pk, ck):
			add(items[c])
			p++
			c++
		case before(pk, ck):
			res = append(res, below[p])
			p++
		default:
			add(items[c])
			c++
		}
	}
	res = append(res, below[p:]...)
	for ; c < len(items); c++ {
		add(items[c])
	}
	return NewSliceIterator(res), nil
}
