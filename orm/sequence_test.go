package orm

import (
	"bytes"
	"testing"

	"github.com/iov-one/charity/store"
	"github.com/iov-one/charity/weavetest/assert"
)

func TestSequence(t *testing.T) {
	db := store.NewMemStore()

	s := NewSequence("events", "id")
	latest, _, err := s.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), latest)

	var prev []byte
	for i := int64(1); i <= 300; i++ {
		raw, err := s.NextVal(db)
		assert.Nil(t, err)
		assert.Equal(t, i, DecodeSequence(raw))
		if bytes.Compare(prev, raw) >= 0 {
			t.Fatalf("sequence value %d is not greater than the previous one", i)
		}
		prev = raw
	}

	// Another sequence does not share the counter.
	other := NewSequence("events", "other")
	n, err := other.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), n)
}
