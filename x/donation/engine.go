package donation

import (
	"context"

	"github.com/iov-one/charity"
	"github.com/iov-one/charity/coin"
	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/x"
	"github.com/iov-one/charity/x/invest"
	"github.com/iov-one/charity/x/trust"
	"github.com/shopspring/decimal"
)

// Registry is the subset of the beneficiary registry used by the engine.
type Registry interface {
	IsTrusted(db charity.ReadOnlyKVStore, addr charity.Address) (bool, error)
	ListTrusted(db charity.ReadOnlyKVStore) ([]*trust.Beneficiary, error)
}

// Ledger is the subset of the investment ledger used by the engine.
type Ledger interface {
	Tokens() []invest.SupportedToken
	Invest(ctx context.Context, db charity.KVStore, depositor charity.Address, symbol string, amount decimal.Decimal) error
	InvestedAmount(db charity.ReadOnlyKVStore, symbol string) (decimal.Decimal, error)
	GeneratedInterest(db charity.ReadOnlyKVStore, symbol string) (decimal.Decimal, error)
	RedeemInterest(ctx context.Context, db charity.KVStore, symbol string, amount decimal.Decimal, recipient charity.Address) error
}

// Payer moves the redeemed interest to beneficiaries.
type Payer interface {
	Transfer(ctx context.Context, db charity.KVStore, from, to charity.Address, amount coin.Coin) error
}

// Engine accepts investments and distributes the generated interest.
type Engine struct {
	auth     x.Authenticator
	address  charity.Address
	registry Registry
	ledger   Ledger
	payer    Payer
}

// NewEngine returns an engine acting as given address. The address must be
// the administrator of the ledger, so that the engine can pull deposits and
// redeem interest.
func NewEngine(auth x.Authenticator, address charity.Address, registry Registry, ledger Ledger, payer Payer) *Engine {
	return &Engine{
		auth:     auth,
		address:  address,
		registry: registry,
		ledger:   ledger,
		payer:    payer,
	}
}

// Address returns the identity of the engine. Depositors must approve it
// before investing.
func (e *Engine) Address() charity.Address {
	return e.address
}

// Invest deposits the amount of the caller's tokens into the pool. The caller
// must have approved the engine to spend at least the amount.
func (e *Engine) Invest(ctx context.Context, db charity.KVStore, symbol string, amount decimal.Decimal) error {
	depositor := x.MainSigner(ctx, e.auth)
	if depositor == nil {
		return errors.Wrap(errors.ErrUnauthorized, "invest requires a depositor")
	}
	if err := e.ledger.Invest(charity.WithCaller(ctx, e.address), db, depositor, symbol, amount); err != nil {
		return err
	}
	charity.Emit(ctx, Investment{Depositor: depositor, Token: symbol, Amount: amount})
	return nil
}

// InvertibleTokens returns the symbols of all tokens that can be invested, in
// configuration order.
func (e *Engine) InvertibleTokens() []string {
	tokens := e.ledger.Tokens()
	res := make([]string, len(tokens))
	for i, t := range tokens {
		res[i] = t.Symbol
	}
	return res
}

// TrustedBeneficiaries returns all beneficiaries that can receive donations.
func (e *Engine) TrustedBeneficiaries(db charity.ReadOnlyKVStore) ([]*trust.Beneficiary, error) {
	return e.registry.ListTrusted(db)
}

// InvestedAmount returns the principal of the token pool.
func (e *Engine) InvestedAmount(db charity.ReadOnlyKVStore, symbol string) (decimal.Decimal, error) {
	return e.ledger.InvestedAmount(db, symbol)
}

// GeneratedInterest returns the interest generated by the token pool.
func (e *Engine) GeneratedInterest(db charity.ReadOnlyKVStore, symbol string) (decimal.Decimal, error) {
	return e.ledger.GeneratedInterest(db, symbol)
}

// payout is the distribution of the interest of a single token.
type payout struct {
	token  invest.SupportedToken
	total  decimal.Decimal
	shares []decimal.Decimal
}

// plan validates splits and computes the payouts for every token that
// generated interest.
func (e *Engine) plan(db charity.ReadOnlyKVStore, splits []Split) ([]payout, error) {
	if err := validateSplits(db, e.registry, splits); err != nil {
		return nil, err
	}
	pcts := percentages(splits)

	var (
		res      []payout
		interest bool
	)
	for _, t := range e.ledger.Tokens() {
		amount, err := e.ledger.GeneratedInterest(db, t.Symbol)
		if err != nil {
			return nil, errors.Wrapf(err, "token %s", t.Symbol)
		}
		if amount.IsZero() {
			continue
		}
		interest = true
		shares, leftover, err := coin.Split(amount, pcts)
		if err != nil {
			return nil, err
		}
		total := amount.Sub(leftover)
		if total.IsZero() {
			continue
		}
		res = append(res, payout{token: t, total: total, shares: shares})
	}
	if !interest {
		return nil, errors.Wrap(errors.ErrNoInterestGenerated, "nothing to distribute")
	}
	return res, nil
}

// Preview returns the donations a distribution with given splits would make
// now, without changing any state.
func (e *Engine) Preview(db charity.ReadOnlyKVStore, splits []Split) ([]Donation, error) {
	payouts, err := e.plan(db, splits)
	if err != nil {
		return nil, err
	}
	var res []Donation
	for _, p := range payouts {
		for i, s := range splits {
			if p.shares[i].IsZero() {
				continue
			}
			res = append(res, Donation{
				Beneficiary: s.Beneficiary,
				Token:       p.token.Symbol,
				Amount:      p.shares[i],
			})
		}
	}
	return res, nil
}

// Distribute redeems the interest generated by every pool and transfers it
// to the beneficiaries, split by percentages. Anyone can distribute.
//
// Any failure leaves the store in an undefined state, so the call must run
// on a cache that is discarded on error.
func (e *Engine) Distribute(ctx context.Context, db charity.KVStore, splits []Split) ([]Donation, error) {
	depositor := x.MainSigner(ctx, e.auth)
	if depositor == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "distribute requires a caller")
	}
	payouts, err := e.plan(db, splits)
	if err != nil {
		return nil, err
	}

	ectx := charity.WithCaller(ctx, e.address)
	var res []Donation
	for _, p := range payouts {
		if err := e.ledger.RedeemInterest(ectx, db, p.token.Symbol, p.total, e.address); err != nil {
			return nil, errors.Wrapf(err, "token %s", p.token.Symbol)
		}
		for i, s := range splits {
			share := p.shares[i]
			if share.IsZero() {
				continue
			}
			amount := coin.Coin{Ticker: p.token.Underlying, Amount: share}
			if err := e.payer.Transfer(ectx, db, e.address, s.Beneficiary, amount); err != nil {
				return nil, errors.Wrapf(errors.ErrTransfer, "%s to %s: %s", amount, s.Beneficiary, err)
			}
			d := Donation{
				Depositor:   depositor,
				Beneficiary: s.Beneficiary,
				Token:       p.token.Symbol,
				Amount:      share,
			}
			charity.Emit(ctx, d)
			res = append(res, d)
		}
	}
	charity.GetLogger(ctx).Info("distributed", "donations", len(res))
	return res, nil
}
