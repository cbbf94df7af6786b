package market

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/charity"
	"github.com/iov-one/charity/coin"
	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/orm"
	"github.com/shopspring/decimal"
)

// BucketName is where we store the markets
const BucketName = "market"

// Market describes a single money market, stored under its wrapped ticker.
type Market struct {
	// Underlying is the ticker of the token accepted by this market.
	Underlying string `protobuf:"bytes,1,opt,name=underlying,proto3" json:"underlying,omitempty"`
	// Rate is the amount of underlying base units a single wrapped base
	// unit is worth.
	Rate string `protobuf:"bytes,2,opt,name=rate,proto3" json:"rate,omitempty"`
}

func (m *Market) Reset()         { *m = Market{} }
func (m *Market) String() string { return proto.CompactTextString(m) }
func (*Market) ProtoMessage()    {}

func (m *Market) Validate() error {
	var errs error
	if !coin.IsTicker(m.Underlying) {
		errs = errors.AppendField(errs, "Underlying", errors.ErrInput.Newf("invalid ticker %q", m.Underlying))
	}
	_, err := coin.ParseRate(m.Rate)
	return errors.AppendField(errs, "Rate", err)
}

// ExchangeRate returns the parsed rate.
func (m *Market) ExchangeRate() (decimal.Decimal, error) {
	return coin.ParseRate(m.Rate)
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a market.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName),
	}
}

// GetMarket returns the market of given wrapped ticker. It fails with
// ErrNotFound for unknown markets.
func (b Bucket) GetMarket(db charity.ReadOnlyKVStore, wrapped string) (*Market, error) {
	var m Market
	if err := b.One(db, []byte(wrapped), &m); err != nil {
		return nil, errors.Wrapf(err, "market %q", wrapped)
	}
	return &m, nil
}

// PutMarket stores the market under given wrapped ticker.
func (b Bucket) PutMarket(db charity.KVStore, wrapped string, m *Market) error {
	if !coin.IsTicker(wrapped) {
		return errors.ErrInput.Newf("invalid ticker %q", wrapped)
	}
	return b.Put(db, []byte(wrapped), m)
}

// ReserveAddress returns the account holding the underlying tokens of given
// market.
func ReserveAddress(wrapped string) charity.Address {
	return charity.NewCondition("market", "reserve", []byte(wrapped)).Address()
}
