package trust

import (
	"context"

	"github.com/iov-one/charity"
	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/x"
)

// Registry keeps track of trusted beneficiaries. All modifications are
// restricted to the administrator.
type Registry struct {
	bucket Bucket
	auth   x.Authenticator
	admin  charity.Address
}

// NewRegistry returns a registry administrated by given identity.
func NewRegistry(auth x.Authenticator, admin charity.Address) *Registry {
	return &Registry{
		bucket: NewBucket(),
		auth:   auth,
		admin:  admin,
	}
}

// Admin returns the administrator of this registry.
func (r *Registry) Admin() charity.Address {
	return r.admin
}

// AddBeneficiary registers a new, enabled beneficiary. An address can be
// registered only once.
func (r *Registry) AddBeneficiary(ctx context.Context, db charity.KVStore, name string, addr charity.Address) error {
	if err := x.RequireAddress(ctx, r.auth, r.admin); err != nil {
		return err
	}
	if addr.IsZero() {
		return errors.Wrap(errors.ErrZeroAddress, "beneficiary")
	}
	if name == "" {
		return errors.Wrap(errors.ErrEmptyName, "beneficiary")
	}
	switch ok, err := r.bucket.Has(db, addr); {
	case err != nil:
		return err
	case ok:
		return errors.Wrapf(errors.ErrDuplicate, "beneficiary %s", addr)
	}
	ben := &Beneficiary{Name: name, Address: addr, Enabled: true}
	if err := r.bucket.PutBeneficiary(db, ben); err != nil {
		return err
	}
	charity.Emit(ctx, Added{Name: name, Address: addr})
	return nil
}

// Disable excludes a beneficiary from donations. Disabling a disabled
// beneficiary is allowed.
func (r *Registry) Disable(ctx context.Context, db charity.KVStore, addr charity.Address) error {
	ben, err := r.toggle(ctx, db, addr, false)
	if err != nil {
		return err
	}
	charity.Emit(ctx, Disabled{Name: ben.Name, Address: ben.Address})
	return nil
}

// Enable makes a beneficiary eligible for donations again. Enabling an
// enabled beneficiary is allowed.
func (r *Registry) Enable(ctx context.Context, db charity.KVStore, addr charity.Address) error {
	ben, err := r.toggle(ctx, db, addr, true)
	if err != nil {
		return err
	}
	charity.Emit(ctx, Enabled{Name: ben.Name, Address: ben.Address})
	return nil
}

func (r *Registry) toggle(ctx context.Context, db charity.KVStore, addr charity.Address, enabled bool) (*Beneficiary, error) {
	if err := x.RequireAddress(ctx, r.auth, r.admin); err != nil {
		return nil, err
	}
	ben, err := r.bucket.GetBeneficiary(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "beneficiary")
	}
	ben.Enabled = enabled
	if err := r.bucket.PutBeneficiary(db, ben); err != nil {
		return nil, err
	}
	return ben, nil
}

// IsTrusted returns true if the address belongs to an enabled beneficiary.
func (r *Registry) IsTrusted(db charity.ReadOnlyKVStore, addr charity.Address) (bool, error) {
	if len(addr) == 0 {
		return false, nil
	}
	ben, err := r.bucket.GetBeneficiary(db, addr)
	switch {
	case errors.ErrNotFound.Is(err):
		return false, nil
	case err != nil:
		return false, err
	}
	return ben.Enabled, nil
}

// Beneficiary returns the registered beneficiary, enabled or not.
func (r *Registry) Beneficiary(db charity.ReadOnlyKVStore, addr charity.Address) (*Beneficiary, error) {
	ben, err := r.bucket.GetBeneficiary(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "beneficiary")
	}
	return ben, nil
}

// ListTrusted returns all enabled beneficiaries, ordered by address.
func (r *Registry) ListTrusted(db charity.ReadOnlyKVStore) ([]*Beneficiary, error) {
	var res []*Beneficiary
	err := r.bucket.Each(db, func(b *Beneficiary) error {
		if b.Enabled {
			res = append(res, b)
		}
		return nil
	})
	return res, err
}

// ListAll returns all registered beneficiaries, ordered by address.
func (r *Registry) ListAll(db charity.ReadOnlyKVStore) ([]*Beneficiary, error) {
	var res []*Beneficiary
	err := r.bucket.Each(db, func(b *Beneficiary) error {
		res = append(res, b)
		return nil
	})
	return res, err
}
