package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/charity"
	"github.com/iov-one/charity/coin"
	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/orm"
	"github.com/shopspring/decimal"
)

const (
	// BalanceBucketName is where we store the balances
	BalanceBucketName = "cash"
	// AllowanceBucketName is where we store approved allowances
	AllowanceBucketName = "allowance"
)

// Balance is the amount of a single token held by an account.
type Balance struct {
	Amount string `protobuf:"bytes,1,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Balance) Reset()         { *m = Balance{} }
func (m *Balance) String() string { return proto.CompactTextString(m) }
func (*Balance) ProtoMessage()    {}

func (m *Balance) Validate() error {
	_, err := coin.ParseAmount(m.Amount)
	return errors.Field("Amount", err, "balance")
}

// Allowance is the amount of a single token a spender is allowed to move on
// behalf of an owner.
type Allowance struct {
	Amount string `protobuf:"bytes,1,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Allowance) Reset()         { *m = Allowance{} }
func (m *Allowance) String() string { return proto.CompactTextString(m) }
func (*Allowance) ProtoMessage()    {}

func (m *Allowance) Validate() error {
	_, err := coin.ParseAmount(m.Amount)
	return errors.Field("Amount", err, "allowance")
}

// Bucket is a type-safe wrapper around orm.Bucket that stores amounts
// keyed by account and token.
type Bucket struct {
	balances   orm.Bucket
	allowances orm.Bucket
}

// NewBucket initializes a cash.Bucket with default names
func NewBucket() Bucket {
	return Bucket{
		balances:   orm.NewBucket(BalanceBucketName),
		allowances: orm.NewBucket(AllowanceBucketName),
	}
}

// Balance returns the amount of given token held by the owner. Unknown
// accounts hold nothing.
func (b Bucket) Balance(db charity.ReadOnlyKVStore, owner charity.Address, ticker string) (decimal.Decimal, error) {
	var bal Balance
	switch err := b.balances.One(db, balanceKey(owner, ticker), &bal); {
	case errors.ErrNotFound.Is(err):
		return coin.Zero, nil
	case err != nil:
		return coin.Zero, err
	}
	return coin.ParseAmount(bal.Amount)
}

// SetBalance stores the amount of given token held by the owner.
func (b Bucket) SetBalance(db charity.KVStore, owner charity.Address, ticker string, amount decimal.Decimal) error {
	return b.balances.Put(db, balanceKey(owner, ticker), &Balance{Amount: amount.String()})
}

// Allowance returns the amount of given token the spender can move on behalf
// of the owner.
func (b Bucket) Allowance(db charity.ReadOnlyKVStore, owner, spender charity.Address, ticker string) (decimal.Decimal, error) {
	var a Allowance
	switch err := b.allowances.One(db, allowanceKey(owner, spender, ticker), &a); {
	case errors.ErrNotFound.Is(err):
		return coin.Zero, nil
	case err != nil:
		return coin.Zero, err
	}
	return coin.ParseAmount(a.Amount)
}

// SetAllowance stores the amount the spender can move on behalf of the
// owner.
func (b Bucket) SetAllowance(db charity.KVStore, owner, spender charity.Address, ticker string, amount decimal.Decimal) error {
	return b.allowances.Put(db, allowanceKey(owner, spender, ticker), &Allowance{Amount: amount.String()})
}

func balanceKey(owner charity.Address, ticker string) []byte {
	return append(owner.Clone(), ticker...)
}

func allowanceKey(owner, spender charity.Address, ticker string) []byte {
	key := append(owner.Clone(), spender...)
	return append(key, ticker...)
}
