package invest

import (
	"fmt"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/charity"
	"github.com/iov-one/charity/coin"
	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/orm"
	"github.com/shopspring/decimal"
)

// BucketName is where we store the pools
const BucketName = "pool"

// SupportedToken is a token the ledger accepts.
type SupportedToken struct {
	// Symbol identifies the token in all ledger operations.
	Symbol string `protobuf:"bytes,1,opt,name=symbol,proto3" json:"symbol"`
	// Underlying is the ticker of the token on the token ledger.
	Underlying string `protobuf:"bytes,2,opt,name=underlying,proto3" json:"underlying"`
	// Wrapped is the ticker of the money market shares.
	Wrapped string `protobuf:"bytes,3,opt,name=wrapped,proto3" json:"wrapped"`
}

func (m *SupportedToken) Reset()         { *m = SupportedToken{} }
func (m *SupportedToken) String() string { return proto.CompactTextString(m) }
func (*SupportedToken) ProtoMessage()    {}

func (m *SupportedToken) Validate() error {
	var errs error
	if !coin.IsTicker(m.Symbol) {
		errs = errors.AppendField(errs, "Symbol", errors.ErrInput.Newf("invalid symbol %q", m.Symbol))
	}
	if !coin.IsTicker(m.Underlying) {
		errs = errors.AppendField(errs, "Underlying", errors.ErrInput.Newf("invalid ticker %q", m.Underlying))
	}
	if !coin.IsTicker(m.Wrapped) {
		errs = errors.AppendField(errs, "Wrapped", errors.ErrInput.Newf("invalid ticker %q", m.Wrapped))
	} else if m.Wrapped == m.Underlying {
		errs = errors.AppendField(errs, "Wrapped", errors.ErrInput.New("must differ from underlying"))
	}
	return errs
}

// Configuration is set once in the genesis.
type Configuration struct {
	// Admin is the only identity allowed to move funds of the pools.
	Admin charity.Address `protobuf:"bytes,1,opt,name=admin,proto3,casttype=github.com/iov-one/charity.Address" json:"admin"`
	// Tokens is the ordered list of accepted tokens.
	Tokens []*SupportedToken `protobuf:"bytes,2,rep,name=tokens,proto3" json:"tokens"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

func (m *Configuration) Validate() error {
	var errs error
	if m.Admin.IsZero() {
		errs = errors.AppendField(errs, "Admin", errors.ErrZeroAddress)
	} else {
		errs = errors.AppendField(errs, "Admin", m.Admin.Validate())
	}
	if len(m.Tokens) == 0 {
		errs = errors.AppendField(errs, "Tokens", errors.ErrInput.New("required"))
	}
	symbols := make(map[string]struct{}, len(m.Tokens))
	for i, t := range m.Tokens {
		if t == nil {
			errs = errors.AppendField(errs, fmt.Sprintf("Tokens.%d", i), errors.ErrInput.New("empty"))
			continue
		}
		errs = errors.AppendField(errs, fmt.Sprintf("Tokens.%d", i), t.Validate())
		if _, ok := symbols[t.Symbol]; ok {
			errs = errors.AppendField(errs, fmt.Sprintf("Tokens.%d.Symbol", i), errors.ErrDuplicate)
		}
		symbols[t.Symbol] = struct{}{}
	}
	return errs
}

// Pool is the position of all depositors of a single token.
type Pool struct {
	// Principal is the total amount of underlying tokens ever invested.
	Principal string `protobuf:"bytes,1,opt,name=principal,proto3" json:"principal"`
	// Shares is the amount of wrapped shares held by the pool.
	Shares string `protobuf:"bytes,2,opt,name=shares,proto3" json:"shares"`
}

func (m *Pool) Reset()         { *m = Pool{} }
func (m *Pool) String() string { return proto.CompactTextString(m) }
func (*Pool) ProtoMessage()    {}

func (m *Pool) Validate() error {
	var errs error
	if _, err := coin.ParseAmount(m.Principal); err != nil {
		errs = errors.AppendField(errs, "Principal", err)
	}
	if _, err := coin.ParseAmount(m.Shares); err != nil {
		errs = errors.AppendField(errs, "Shares", err)
	}
	return errs
}

// PrincipalAmount returns the parsed principal.
func (m *Pool) PrincipalAmount() decimal.Decimal {
	d, err := coin.ParseAmount(m.Principal)
	if err != nil {
		return coin.Zero
	}
	return d
}

// SharesAmount returns the parsed amount of shares.
func (m *Pool) SharesAmount() decimal.Decimal {
	d, err := coin.ParseAmount(m.Shares)
	if err != nil {
		return coin.Zero
	}
	return d
}

// PoolBucket stores a pool under the token symbol.
type PoolBucket struct {
	orm.Bucket
}

// NewPoolBucket initializes a PoolBucket with default name
func NewPoolBucket() PoolBucket {
	return PoolBucket{
		Bucket: orm.NewBucket(BucketName),
	}
}

// GetPool returns the pool of given token. A token nobody invested in yet has
// an empty pool.
func (b PoolBucket) GetPool(db charity.ReadOnlyKVStore, symbol string) (*Pool, error) {
	var p Pool
	switch err := b.One(db, []byte(symbol), &p); {
	case errors.ErrNotFound.Is(err):
		return &Pool{Principal: "0", Shares: "0"}, nil
	case err != nil:
		return nil, err
	}
	return &p, nil
}

// PutPool stores the pool of given token.
func (b PoolBucket) PutPool(db charity.KVStore, symbol string, p *Pool) error {
	return b.Put(db, []byte(symbol), p)
}

// PoolAddress returns the account holding the shares of given token.
func PoolAddress(symbol string) charity.Address {
	return charity.NewCondition("invest", "pool", []byte(symbol)).Address()
}
