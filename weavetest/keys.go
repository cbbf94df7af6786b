package weavetest

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/iov-one/charity"
)

var condSeq uint64

// NewCondition returns a condition that is unique within the test binary.
// Its address can be used as the identity of a depositor, a beneficiary or
// an administrator.
func NewCondition() charity.Condition {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, atomic.AddUint64(&condSeq, 1))
	return charity.NewCondition("test", "seq", raw)
}

// NewAddress returns a new unique address.
func NewAddress() charity.Address {
	return NewCondition().Address()
}
