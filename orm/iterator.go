package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/charity"
	"github.com/iov-one/charity/errors"
)

// ModelIterator reads models of a single bucket.
type ModelIterator struct {
	it     charity.Iterator
	prefix int
}

// LoadNext loads the next model into dest and returns its key, without the
// bucket prefix. ErrIteratorDone is returned when there are no more models.
func (m *ModelIterator) LoadNext(dest Model) ([]byte, error) {
	key, raw, err := m.it.Next()
	if err != nil {
		return nil, err
	}
	if err := proto.Unmarshal(raw, dest); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot unmarshal %T: %s", dest, err)
	}
	return key[m.prefix:], nil
}

// Release releases the iterator.
func (m *ModelIterator) Release() {
	m.it.Release()
}
