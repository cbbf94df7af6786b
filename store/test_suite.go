package store

import (
	"bytes"
	"fmt"
	"sort"
	"testing"

	"github.com/iov-one/charity/weavetest/assert"
)

/*
TestSuite provides many methods that can be called in package-specific test
code. We just customize the store being tested (pass in constructor), the rest
of the logic is generic to the KVStore interface.

It is shared by btree_test.go and iavl/adapter_test.go, but can be used for
any implementation of CacheableKVStore.
*/
type TestSuite struct {
	makeBase TestStoreConstructor
}

type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{
		makeBase: constructor,
	}
}

// GetSet does basic sanity checks on our cache
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k, v := []byte("french"), []byte("fry")
	s.AssertGetHas(t, base, k, nil, false)
	assert.Nil(t, base.Set(k, v))
	s.AssertGetHas(t, base, k, v, true)

	// now layer a cache on top and make sure that we get base data
	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, k, v, true)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	s.AssertGetHas(t, cache, k2, nil, false)
	assert.Nil(t, cache.Set(k2, v2))
	s.AssertGetHas(t, cache, k2, v2, true)
	s.AssertGetHas(t, base, k2, nil, false)

	// we can write the cache to the base layer...
	assert.Nil(t, cache.Write())
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k2, v2, true)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	assert.Nil(t, c2.Set(k3, v3))
	s.AssertGetHas(t, c2, k3, v3, true)
	c2.Discard()
	s.AssertGetHas(t, base, k3, nil, false)

	// and commit another with a delete
	c3 := base.CacheWrap()
	assert.Nil(t, c3.Delete(k))
	s.AssertGetHas(t, c3, k, nil, false)
	s.AssertGetHas(t, base, k, v, true)
	assert.Nil(t, c3.Write())
	s.AssertGetHas(t, base, k, nil, false)
	s.AssertGetHas(t, base, k2, v2, true)
}

// NestedCache ensures that a cache of a cache only reaches the base when
// both layers were written.
func (s *TestSuite) NestedCache(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k, v := []byte("key"), []byte("value")

	outer := base.CacheWrap()
	inner := outer.CacheWrap()
	assert.Nil(t, inner.Set(k, v))
	s.AssertGetHas(t, outer, k, nil, false)

	assert.Nil(t, inner.Write())
	s.AssertGetHas(t, outer, k, v, true)
	s.AssertGetHas(t, base, k, nil, false)

	assert.Nil(t, outer.Write())
	s.AssertGetHas(t, base, k, v, true)
}

// IteratorWithConflicts checks that iteration over a cache combines the
// cached changes with the base content.
func (s *TestSuite) IteratorWithConflicts(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	for i := 0; i < 10; i++ {
		assert.Nil(t, base.Set(key(i), []byte("base")))
	}

	cache := base.CacheWrap()
	assert.Nil(t, cache.Delete(key(2)))
	assert.Nil(t, cache.Delete(key(7)))
	assert.Nil(t, cache.Set(key(4), []byte("cache")))
	assert.Nil(t, cache.Set(key(12), []byte("cache")))
	assert.Nil(t, cache.Set([]byte("a"), []byte("cache")))

	want := []Model{
		{Key: key(0), Value: []byte("base")},
		{Key: key(1), Value: []byte("base")},
		{Key: key(3), Value: []byte("base")},
		{Key: key(4), Value: []byte("cache")},
		{Key: key(5), Value: []byte("base")},
		{Key: key(6), Value: []byte("base")},
		{Key: key(8), Value: []byte("base")},
		{Key: key(9), Value: []byte("base")},
		{Key: key(12), Value: []byte("cache")},
	}

	cases := map[string]struct {
		start, end []byte
		want       []Model
	}{
		"full range": {
			start: key(0),
			end:   key(99),
			want:  want,
		},
		"open end": {
			start: key(5),
			want:  want[4:],
		},
		"sub range": {
			start: key(2),
			end:   key(8),
			want:  want[2:6],
		},
		"all": {
			want: append([]Model{{Key: []byte("a"), Value: []byte("cache")}}, want...),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			it, err := cache.Iterator(tc.start, tc.end)
			assert.Nil(t, err)
			got, err := ReadAll(it)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)

			rit, err := cache.ReverseIterator(tc.start, tc.end)
			assert.Nil(t, err)
			got, err = ReadAll(rit)
			assert.Nil(t, err)
			assert.Equal(t, reverse(tc.want), got)
		})
	}
}

// AssertGetHas makes sure that the store returns expected value for given
// key.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	if !bytes.Equal(val, got) {
		t.Fatalf("want %q value, got %q", val, got)
	}
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

func key(i int) []byte {
	return []byte(fmt.Sprintf("k%03d", i))
}

func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	copy(res, models)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) > 0
	})
	return res
}
