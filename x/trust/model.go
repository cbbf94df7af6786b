package trust

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/charity"
	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/orm"
)

// BucketName is where we store the beneficiaries
const BucketName = "trust"

// Beneficiary is an organization that can receive donations.
type Beneficiary struct {
	Name    string          `protobuf:"bytes,1,opt,name=name,proto3" json:"name"`
	Address charity.Address `protobuf:"bytes,2,opt,name=address,proto3,casttype=github.com/iov-one/charity.Address" json:"address"`
	Enabled bool            `protobuf:"varint,3,opt,name=enabled,proto3" json:"enabled"`
}

func (m *Beneficiary) Reset()         { *m = Beneficiary{} }
func (m *Beneficiary) String() string { return proto.CompactTextString(m) }
func (*Beneficiary) ProtoMessage()    {}

func (m *Beneficiary) Validate() error {
	var errs error
	if m.Name == "" {
		errs = errors.AppendField(errs, "Name", errors.ErrEmptyName)
	}
	if m.Address.IsZero() {
		errs = errors.AppendField(errs, "Address", errors.ErrZeroAddress)
	} else {
		errs = errors.AppendField(errs, "Address", m.Address.Validate())
	}
	return errs
}

// Configuration is the state of the registry that is set once, in the
// genesis.
type Configuration struct {
	// Admin is the only identity that can modify the registry.
	Admin charity.Address `protobuf:"bytes,1,opt,name=admin,proto3,casttype=github.com/iov-one/charity.Address" json:"admin"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

func (m *Configuration) Validate() error {
	if m.Admin.IsZero() {
		return errors.Field("Admin", errors.ErrZeroAddress, "")
	}
	return errors.Field("Admin", m.Admin.Validate(), "")
}

// Bucket is a type-safe wrapper around orm.Bucket that stores beneficiaries
// under their address.
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a trust.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName),
	}
}

// GetBeneficiary returns the beneficiary registered under given address or
// ErrNotFound.
func (b Bucket) GetBeneficiary(db charity.ReadOnlyKVStore, addr charity.Address) (*Beneficiary, error) {
	var ben Beneficiary
	if err := b.One(db, addr, &ben); err != nil {
		return nil, err
	}
	return &ben, nil
}

// PutBeneficiary stores the beneficiary under its address.
func (b Bucket) PutBeneficiary(db charity.KVStore, ben *Beneficiary) error {
	return b.Put(db, ben.Address, ben)
}

// Each calls fn for every registered beneficiary, ordered by address.
func (b Bucket) Each(db charity.ReadOnlyKVStore, fn func(*Beneficiary) error) error {
	it, err := b.All(db)
	if err != nil {
		return err
	}
	defer it.Release()
	for {
		var ben Beneficiary
		switch _, err := it.LoadNext(&ben); {
		case errors.ErrIteratorDone.Is(err):
			return nil
		case err != nil:
			return err
		}
		if err := fn(&ben); err != nil {
			return err
		}
	}
}
