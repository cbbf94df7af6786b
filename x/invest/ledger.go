package invest

import (
	"context"

	"github.com/iov-one/charity"
	"github.com/iov-one/charity/coin"
	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/x"
	"github.com/shopspring/decimal"
)

// Ledger tracks the principal and the generated interest of every pool.
type Ledger struct {
	bucket PoolBucket
	auth   x.Authenticator
	admin  charity.Address
	tokens []SupportedToken
	cash   TokenLedger
	market MoneyMarket
}

// NewLedger returns a ledger accepting the configured tokens. The set of
// supported tokens cannot change afterwards.
func NewLedger(auth x.Authenticator, conf *Configuration, cash TokenLedger, market MoneyMarket) *Ledger {
	tokens := make([]SupportedToken, 0, len(conf.Tokens))
	for _, t := range conf.Tokens {
		tokens = append(tokens, *t)
	}
	return &Ledger{
		bucket: NewPoolBucket(),
		auth:   auth,
		admin:  conf.Admin,
		tokens: tokens,
		cash:   cash,
		market: market,
	}
}

// Admin returns the identity allowed to invest and redeem.
func (l *Ledger) Admin() charity.Address {
	return l.admin
}

// Tokens returns all supported tokens in configuration order.
func (l *Ledger) Tokens() []SupportedToken {
	res := make([]SupportedToken, len(l.tokens))
	copy(res, l.tokens)
	return res
}

// Token returns the supported token with given symbol or ErrInvalidToken.
func (l *Ledger) Token(symbol string) (SupportedToken, error) {
	for _, t := range l.tokens {
		if t.Symbol == symbol {
			return t, nil
		}
	}
	return SupportedToken{}, errors.Wrapf(errors.ErrInvalidToken, "%q", symbol)
}

// Invest pulls the amount from the depositor and adds it to the pool of the
// token. The depositor must have approved the administrator to spend at
// least that amount, and the administrator must authorize the operation.
func (l *Ledger) Invest(ctx context.Context, db charity.KVStore, depositor charity.Address, symbol string, amount decimal.Decimal) error {
	if err := x.RequireAddress(ctx, l.auth, l.admin); err != nil {
		return err
	}
	token, err := l.Token(symbol)
	if err != nil {
		return err
	}
	if err := coin.ValidateAmount(amount); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrInvalidAmount, "must be greater than zero")
	}
	if depositor.IsZero() {
		return errors.Wrap(errors.ErrZeroAddress, "depositor")
	}

	pool := PoolAddress(symbol)
	deposit := coin.Coin{Ticker: token.Underlying, Amount: amount}
	if err := l.cash.TransferFrom(ctx, db, l.admin, depositor, pool, deposit); err != nil {
		return err
	}
	shares, err := l.market.Mint(charity.WithCaller(ctx, pool), db, pool, token.Wrapped, amount)
	if err != nil {
		return errors.Wrap(err, "mint")
	}

	p, err := l.bucket.GetPool(db, symbol)
	if err != nil {
		return err
	}
	p.Principal = p.PrincipalAmount().Add(amount).String()
	p.Shares = p.SharesAmount().Add(shares).String()
	if err := l.bucket.PutPool(db, symbol, p); err != nil {
		return err
	}

	charity.GetLogger(ctx).Debug("invested", "token", symbol, "amount", amount.String(), "shares", shares.String())
	charity.Emit(ctx, Invested{Depositor: depositor, Token: symbol, Amount: amount})
	return nil
}

// InvestedAmount returns the total principal of the token pool.
func (l *Ledger) InvestedAmount(db charity.ReadOnlyKVStore, symbol string) (decimal.Decimal, error) {
	if _, err := l.Token(symbol); err != nil {
		return coin.Zero, err
	}
	p, err := l.bucket.GetPool(db, symbol)
	if err != nil {
		return coin.Zero, err
	}
	return p.PrincipalAmount(), nil
}

// Pool returns the pool record of the token.
func (l *Ledger) Pool(db charity.ReadOnlyKVStore, symbol string) (*Pool, error) {
	if _, err := l.Token(symbol); err != nil {
		return nil, err
	}
	return l.bucket.GetPool(db, symbol)
}

// PoolValue returns the current value of the token pool, in underlying
// tokens.
func (l *Ledger) PoolValue(db charity.ReadOnlyKVStore, symbol string) (decimal.Decimal, error) {
	token, err := l.Token(symbol)
	if err != nil {
		return coin.Zero, err
	}
	return l.value(db, token)
}

func (l *Ledger) value(db charity.ReadOnlyKVStore, token SupportedToken) (decimal.Decimal, error) {
	shares, err := l.market.BalanceOf(db, PoolAddress(token.Symbol), token.Wrapped)
	if err != nil {
		return coin.Zero, errors.Wrap(err, "pool shares")
	}
	rate, err := l.market.ExchangeRate(db, token.Wrapped)
	if err != nil {
		return coin.Zero, errors.Wrap(err, "exchange rate")
	}
	return coin.ToUnderlying(shares, rate), nil
}

// GeneratedInterest returns the part of the current pool value exceeding the
// principal. It is always computed using the current exchange rate.
func (l *Ledger) GeneratedInterest(db charity.ReadOnlyKVStore, symbol string) (decimal.Decimal, error) {
	token, err := l.Token(symbol)
	if err != nil {
		return coin.Zero, err
	}
	return l.interest(db, token)
}

func (l *Ledger) interest(db charity.ReadOnlyKVStore, token SupportedToken) (decimal.Decimal, error) {
	value, err := l.value(db, token)
	if err != nil {
		return coin.Zero, err
	}
	p, err := l.bucket.GetPool(db, token.Symbol)
	if err != nil {
		return coin.Zero, err
	}
	return coin.Max(coin.Zero, value.Sub(p.PrincipalAmount())), nil
}

// RedeemInterest pays out the amount of generated interest to the recipient.
// Only the administrator can redeem. The principal is never redeemed, so the
// amount cannot exceed the interest generated at the time of the call.
func (l *Ledger) RedeemInterest(ctx context.Context, db charity.KVStore, symbol string, amount decimal.Decimal, recipient charity.Address) error {
	if err := x.RequireAddress(ctx, l.auth, l.admin); err != nil {
		return err
	}
	token, err := l.Token(symbol)
	if err != nil {
		return err
	}
	if err := coin.ValidateAmount(amount); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrInvalidAmount, "must be greater than zero")
	}
	interest, err := l.interest(db, token)
	if err != nil {
		return err
	}
	if amount.GreaterThan(interest) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "generated interest %s, requested %s", interest, amount)
	}

	pool := PoolAddress(symbol)
	pctx := charity.WithCaller(ctx, pool)
	burned, err := l.market.RedeemUnderlying(pctx, db, pool, token.Wrapped, amount)
	if err != nil {
		return errors.Wrap(err, "redeem")
	}
	if err := l.cash.Transfer(pctx, db, pool, recipient, coin.Coin{Ticker: token.Underlying, Amount: amount}); err != nil {
		return errors.Wrap(err, "payout")
	}

	p, err := l.bucket.GetPool(db, symbol)
	if err != nil {
		return err
	}
	p.Shares = p.SharesAmount().Sub(burned).String()
	return l.bucket.PutPool(db, symbol, p)
}
