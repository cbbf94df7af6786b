package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/charity/errors"
)

// degree of all btrees used by this package.
const degree = 2

// MemStore is an in memory key value store backed by a btree. There is no
// persistence here. It is meant for tests and as the state of a simulation.
type MemStore struct {
	bt *btree.BTree
}

var _ CacheableKVStore = (*MemStore)(nil)

// NewMemStore returns an empty in memory store.
func NewMemStore() *MemStore {
	return &MemStore{bt: btree.New(degree)}
}

// Get returns nil iff key doesn't exist.
func (m *MemStore) Get(key []byte) ([]byte, error) {
	if res, ok := m.bt.Get(bkey{key}).(setItem); ok {
		return res.value, nil
	}
	return nil, nil
}

// Has checks if a key exists.
func (m *MemStore) Has(key []byte) (bool, error) {
	return m.bt.Has(bkey{key}), nil
}

// Set stores a copy of given value under the key.
func (m *MemStore) Set(key, value []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	m.bt.ReplaceOrInsert(newSetItem(key, value))
	return nil
}

// Delete removes the key. Deleting a missing key is a noop.
func (m *MemStore) Delete(key []byte) error {
	m.bt.Delete(bkey{key})
	return nil
}

// Iterator over a domain of keys in ascending order.
func (m *MemStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(collect(m.bt, start, end, true)), nil
}

// ReverseIterator over a domain of keys in descending order.
func (m *MemStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(collect(m.bt, start, end, false)), nil
}

// CacheWrap returns a cache that can be later written to this store, or
// rolled back.
func (m *MemStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(m)
}

// BTreeCacheWrap places a btree cache over a KVStore. All changes are kept
// in the btree until Write is called.
type BTreeCacheWrap struct {
	bt   *btree.BTree
	back KVStore
}

var _ KVCacheWrap = (*BTreeCacheWrap)(nil)

// NewBTreeCacheWrap initializes a BTree to cache around given kv store.
func NewBTreeCacheWrap(kv KVStore) *BTreeCacheWrap {
	return &BTreeCacheWrap{
		bt:   btree.New(degree),
		back: kv,
	}
}

// CacheWrap layers another BTree on top of this one.
func (b *BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b)
}

// Write applies all cached changes to the underlying store, in key order,
// and then cleans up. The cache can be used again afterwards.
func (b *BTreeCacheWrap) Write() error {
	var err error
	b.bt.Ascend(func(i btree.Item) bool {
		switch t := i.(type) {
		case setItem:
			err = b.back.Set(t.key, t.value)
		case deletedItem:
			err = b.back.Delete(t.key)
		default:
			err = errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", i)
		}
		return err == nil
	})
	b.Discard()
	return err
}

// Discard drops all cached changes.
func (b *BTreeCacheWrap) Discard() {
	b.bt = btree.New(degree)
}

// Set writes to the BTree only.
func (b *BTreeCacheWrap) Set(key, value []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	b.bt.ReplaceOrInsert(newSetItem(key, value))
	return nil
}

// Delete marks the key as deleted in the BTree.
func (b *BTreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(newDeletedItem(key))
	return nil
}

// Get reads from btree if there, else backing store
func (b *BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	switch t := b.bt.Get(bkey{key}).(type) {
	case nil:
		return b.back.Get(key)
	case setItem:
		return t.value, nil
	case deletedItem:
		return nil, nil
	default:
		return nil, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", t)
	}
}

// Has reads from btree if there, else backing store
func (b *BTreeCacheWrap) Has(key []byte) (bool, error) {
	switch t := b.bt.Get(bkey{key}).(type) {
	case nil:
		return b.back.Has(key)
	case setItem:
		return true, nil
	case deletedItem:
		return false, nil
	default:
		return false, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", t)
	}
}

// Iterator over a domain of keys in ascending order.
// Combines results from btree and backing store
func (b *BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return combine(parent, collectItems(b.bt, start, end, true), true)
}

// ReverseIterator over a domain of keys in descending order.
// Combines results from btree and backing store
func (b *BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return combine(parent, collectItems(b.bt, start, end, false), false)
}

/////////////////////////////////////////////////////////
// Items to write to btree

// we enforce all data in our btree implements keyer so we
// can compare nicely
type keyer interface {
	Key() []byte
}

// bkey implements keyer and btree.Item
// and may be used for queries or embedded in data to store
type bkey struct {
	key []byte
}

var _ keyer = bkey{}
var _ btree.Item = bkey{}

func (k bkey) Key() []byte {
	return k.key
}

// Less returns true iff second argument is greater than first
//
// panics if the item to compare doesn't implement keyer.
func (k bkey) Less(item btree.Item) bool {
	cmp := item.(keyer).Key()
	return bytes.Compare(k.key, cmp) < 0
}

type deletedItem struct {
	bkey
}

func newDeletedItem(key []byte) deletedItem {
	return deletedItem{bkey{copyBytes(key)}}
}

type setItem struct {
	bkey
	value []byte
}

func newSetItem(key, value []byte) setItem {
	return setItem{bkey{copyBytes(key)}, copyBytes(value)}
}

// copyBytes never returns nil, so that an empty value can be told apart from
// a missing one.
func copyBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
