package x

import (
	"context"

	"github.com/iov-one/charity"
	"github.com/iov-one/charity/errors"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// controllers, so we can plug in another authentication system.
type Authenticator interface {
	// GetAddresses reveals all addresses that authorized the current
	// operation.
	GetAddresses(context.Context) []charity.Address
	// HasAddress checks if any authorized address matches this one.
	HasAddress(context.Context, charity.Address) bool
}

// CallerAuth authenticates the caller attached to the context with
// charity.WithCaller.
type CallerAuth struct{}

var _ Authenticator = CallerAuth{}

func (CallerAuth) GetAddresses(ctx context.Context) []charity.Address {
	c := charity.GetCaller(ctx)
	if c.IsZero() {
		return nil
	}
	return []charity.Address{c}
}

func (CallerAuth) HasAddress(ctx context.Context, addr charity.Address) bool {
	c := charity.GetCaller(ctx)
	return !c.IsZero() && c.Equals(addr)
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetAddresses combines all addresses from all Authenticators
func (m MultiAuth) GetAddresses(ctx context.Context) []charity.Address {
	var res []charity.Address
	for _, impl := range m.impls {
		res = append(res, impl.GetAddresses(ctx)...)
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx context.Context, addr charity.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first authorized address if any, otherwise nil
func MainSigner(ctx context.Context, auth Authenticator) charity.Address {
	addrs := auth.GetAddresses(ctx)
	if len(addrs) == 0 {
		return nil
	}
	return addrs[0]
}

// RequireAddress returns ErrUnauthorized unless given address authorized the
// current operation. Use it to gate every operation that is restricted to a
// single administrator.
func RequireAddress(ctx context.Context, auth Authenticator, addr charity.Address) error {
	if addr.IsZero() || !auth.HasAddress(ctx, addr) {
		return errors.Wrapf(errors.ErrUnauthorized, "requires %s", addr)
	}
	return nil
}
