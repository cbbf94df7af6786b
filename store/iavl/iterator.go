package iavl

import (
	"github.com/iov-one/charity/store"
	"github.com/tendermint/iavl"
)

// iterate loads all elements of the given range into memory. A tree callback
// cannot be paused, so elements are collected up front.
func iterate(tree *iavl.MutableTree, start, end []byte, ascending bool) store.Iterator {
	var res []store.Model
	tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	})
	return store.NewSliceIterator(res)
}
