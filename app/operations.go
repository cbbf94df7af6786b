package app

import (
	"context"

	"github.com/iov-one/charity"
	"github.com/iov-one/charity/coin"
	"github.com/iov-one/charity/x/donation"
	"github.com/iov-one/charity/x/invest"
	"github.com/iov-one/charity/x/trust"
	"github.com/shopspring/decimal"
)

// All operations take the caller identity from the context. Use
// charity.WithCaller to set it.

// AddBeneficiary registers a new trusted beneficiary. Only the administrator
// can call it.
func (e *Engine) AddBeneficiary(ctx context.Context, name string, addr charity.Address) error {
	return e.mutate(ctx, "add_beneficiary", func(ctx context.Context, db charity.KVStore) error {
		return e.registry.AddBeneficiary(ctx, db, name, addr)
	})
}

// DisableBeneficiary excludes a beneficiary from donations. Only the
// administrator can call it.
func (e *Engine) DisableBeneficiary(ctx context.Context, addr charity.Address) error {
	return e.mutate(ctx, "disable_beneficiary", func(ctx context.Context, db charity.KVStore) error {
		return e.registry.Disable(ctx, db, addr)
	})
}

// EnableBeneficiary includes a disabled beneficiary in donations again. Only
// the administrator can call it.
func (e *Engine) EnableBeneficiary(ctx context.Context, addr charity.Address) error {
	return e.mutate(ctx, "enable_beneficiary", func(ctx context.Context, db charity.KVStore) error {
		return e.registry.Enable(ctx, db, addr)
	})
}

func (e *Engine) IsBeneficiaryTrusted(ctx context.Context, addr charity.Address) (bool, error) {
	var ok bool
	err := e.query(ctx, "is_beneficiary_trusted", func(ctx context.Context, db charity.KVStore) (err error) {
		ok, err = e.registry.IsTrusted(db, addr)
		return err
	})
	return ok, err
}

// ListTrustedBeneficiaries returns enabled beneficiaries only.
func (e *Engine) ListTrustedBeneficiaries(ctx context.Context) ([]*trust.Beneficiary, error) {
	var res []*trust.Beneficiary
	err := e.query(ctx, "list_trusted_beneficiaries", func(ctx context.Context, db charity.KVStore) (err error) {
		res, err = e.donation.TrustedBeneficiaries(db)
		return err
	})
	return res, err
}

// ListBeneficiaries returns all registered beneficiaries, including disabled
// ones.
func (e *Engine) ListBeneficiaries(ctx context.Context) ([]*trust.Beneficiary, error) {
	var res []*trust.Beneficiary
	err := e.query(ctx, "list_beneficiaries", func(ctx context.Context, db charity.KVStore) (err error) {
		res, err = e.registry.ListAll(db)
		return err
	})
	return res, err
}

func (e *Engine) Beneficiary(ctx context.Context, addr charity.Address) (*trust.Beneficiary, error) {
	var res *trust.Beneficiary
	err := e.query(ctx, "beneficiary", func(ctx context.Context, db charity.KVStore) (err error) {
		res, err = e.registry.Beneficiary(db, addr)
		return err
	})
	return res, err
}

// Invest deposits the amount of caller's tokens. The caller must approve the
// engine first.
func (e *Engine) Invest(ctx context.Context, token string, amount decimal.Decimal) error {
	return e.mutate(ctx, "invest", func(ctx context.Context, db charity.KVStore) error {
		return e.donation.Invest(ctx, db, token, amount)
	})
}

func (e *Engine) InvestedAmount(ctx context.Context, token string) (decimal.Decimal, error) {
	res := coin.Zero
	err := e.query(ctx, "invested_amount", func(ctx context.Context, db charity.KVStore) (err error) {
		res, err = e.donation.InvestedAmount(db, token)
		return err
	})
	return res, err
}

func (e *Engine) GeneratedInterest(ctx context.Context, token string) (decimal.Decimal, error) {
	res := coin.Zero
	err := e.query(ctx, "generated_interest", func(ctx context.Context, db charity.KVStore) (err error) {
		res, err = e.donation.GeneratedInterest(db, token)
		return err
	})
	return res, err
}

// PoolValue returns the current value of the token pool, principal and
// interest together.
func (e *Engine) PoolValue(ctx context.Context, token string) (decimal.Decimal, error) {
	res := coin.Zero
	err := e.query(ctx, "pool_value", func(ctx context.Context, db charity.KVStore) (err error) {
		res, err = e.ledger.PoolValue(db, token)
		return err
	})
	return res, err
}

// InvertibleTokens returns symbols of all supported tokens in configuration
// order.
func (e *Engine) InvertibleTokens(ctx context.Context) ([]string, error) {
	var res []string
	err := e.query(ctx, "invertible_tokens", func(context.Context, charity.KVStore) error {
		res = e.donation.InvertibleTokens()
		return nil
	})
	return res, err
}

// Tokens returns all supported tokens in configuration order.
func (e *Engine) Tokens(ctx context.Context) ([]invest.SupportedToken, error) {
	var res []invest.SupportedToken
	err := e.query(ctx, "tokens", func(context.Context, charity.KVStore) error {
		res = e.ledger.Tokens()
		return nil
	})
	return res, err
}

// Distribute donates the interest generated by all pools. Anyone can call
// it.
func (e *Engine) Distribute(ctx context.Context, splits []donation.Split) ([]donation.Donation, error) {
	var res []donation.Donation
	err := e.mutate(ctx, "distribute", func(ctx context.Context, db charity.KVStore) (err error) {
		res, err = e.donation.Distribute(ctx, db, splits)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Preview returns donations Distribute would make now.
func (e *Engine) Preview(ctx context.Context, splits []donation.Split) ([]donation.Donation, error) {
	var res []donation.Donation
	err := e.query(ctx, "preview", func(ctx context.Context, db charity.KVStore) (err error) {
		res, err = e.donation.Preview(db, splits)
		return err
	})
	return res, err
}

// Events returns the journal of all committed events, oldest first.
func (e *Engine) Events(ctx context.Context) ([]*Entry, error) {
	var res []*Entry
	err := e.query(ctx, "events", func(ctx context.Context, db charity.KVStore) (err error) {
		res, err = e.journal.Entries(db)
		return err
	})
	return res, err
}

// Address returns the identity of the donation engine.
func (e *Engine) Address(ctx context.Context) (charity.Address, error) {
	var res charity.Address
	err := e.query(ctx, "address", func(context.Context, charity.KVStore) error {
		res = e.donation.Address()
		return nil
	})
	return res, err
}

// Approve allows the engine to invest up to given amount of the caller's
// tokens.
func (e *Engine) Approve(ctx context.Context, amount coin.Coin) error {
	return e.mutate(ctx, "approve", func(ctx context.Context, db charity.KVStore) error {
		return e.cash.Approve(ctx, db, e.donation.Address(), amount)
	})
}

func (e *Engine) Balance(ctx context.Context, owner charity.Address, ticker string) (decimal.Decimal, error) {
	res := coin.Zero
	err := e.query(ctx, "balance", func(ctx context.Context, db charity.KVStore) (err error) {
		res, err = e.cash.Balance(db, owner, ticker)
		return err
	})
	return res, err
}

// Fund issues new tokens to the owner. It simulates funds received from
// outside.
func (e *Engine) Fund(ctx context.Context, owner charity.Address, amount coin.Coin) error {
	return e.mutate(ctx, "fund", func(ctx context.Context, db charity.KVStore) error {
		return e.cash.Issue(db, owner, amount)
	})
}

// SetExchangeRate changes the exchange rate of a money market. It simulates
// the market movement.
func (e *Engine) SetExchangeRate(ctx context.Context, wrapped string, rate decimal.Decimal) error {
	return e.mutate(ctx, "set_exchange_rate", func(ctx context.Context, db charity.KVStore) error {
		return e.market.SetRate(db, wrapped, rate)
	})
}
