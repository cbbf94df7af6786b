package market

import (
	"context"

	"github.com/iov-one/charity"
	"github.com/iov-one/charity/coin"
	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/x"
	"github.com/iov-one/charity/x/cash"
	"github.com/shopspring/decimal"
)

// Controller runs all markets.
type Controller struct {
	bucket Bucket
	auth   x.Authenticator
	cash   *cash.Controller
}

// NewController returns a controller that keeps shares and reserves in given
// cash ledger.
func NewController(auth x.Authenticator, ledger *cash.Controller) *Controller {
	return &Controller{
		bucket: NewBucket(),
		auth:   auth,
		cash:   ledger,
	}
}

// Register creates a new market of wrapped shares of the underlying token.
func (c *Controller) Register(db charity.KVStore, wrapped, underlying string, rate decimal.Decimal) error {
	if wrapped == underlying {
		return errors.ErrInput.Newf("%s cannot wrap itself", wrapped)
	}
	if ok, err := c.bucket.Has(db, []byte(wrapped)); err != nil {
		return err
	} else if ok {
		return errors.Wrapf(errors.ErrDuplicate, "market %q", wrapped)
	}
	return c.bucket.PutMarket(db, wrapped, &Market{
		Underlying: underlying,
		Rate:       rate.String(),
	})
}

// SetRate changes the exchange rate of a market.
func (c *Controller) SetRate(db charity.KVStore, wrapped string, rate decimal.Decimal) error {
	m, err := c.bucket.GetMarket(db, wrapped)
	if err != nil {
		return err
	}
	if err := coin.ValidateRate(rate); err != nil {
		return err
	}
	m.Rate = rate.String()
	return c.bucket.PutMarket(db, wrapped, m)
}

// ExchangeRate returns the current exchange rate of a market.
func (c *Controller) ExchangeRate(db charity.ReadOnlyKVStore, wrapped string) (decimal.Decimal, error) {
	m, err := c.bucket.GetMarket(db, wrapped)
	if err != nil {
		return coin.Zero, err
	}
	return m.ExchangeRate()
}

// Underlying returns the ticker of the token accepted by a market.
func (c *Controller) Underlying(db charity.ReadOnlyKVStore, wrapped string) (string, error) {
	m, err := c.bucket.GetMarket(db, wrapped)
	if err != nil {
		return "", err
	}
	return m.Underlying, nil
}

// BalanceOf returns the amount of shares held by the owner.
func (c *Controller) BalanceOf(db charity.ReadOnlyKVStore, owner charity.Address, wrapped string) (decimal.Decimal, error) {
	return c.cash.Balance(db, owner, wrapped)
}

// Mint deposits the amount of underlying tokens of the minter into the market
// and issues shares for it, rounded down. The minter must authorize the
// current operation. The amount of issued shares is returned.
func (c *Controller) Mint(ctx context.Context, db charity.KVStore, minter charity.Address, wrapped string, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := x.RequireAddress(ctx, c.auth, minter); err != nil {
		return coin.Zero, err
	}
	m, err := c.bucket.GetMarket(db, wrapped)
	if err != nil {
		return coin.Zero, err
	}
	rate, err := m.ExchangeRate()
	if err != nil {
		return coin.Zero, err
	}
	if err := coin.ValidateAmount(amount); err != nil {
		return coin.Zero, err
	}
	if err := c.cash.Transfer(ctx, db, minter, ReserveAddress(wrapped), coin.Coin{Ticker: m.Underlying, Amount: amount}); err != nil {
		return coin.Zero, errors.Wrap(err, "deposit")
	}
	shares := coin.ToShares(amount, rate)
	if err := c.cash.Issue(db, minter, coin.Coin{Ticker: wrapped, Amount: shares}); err != nil {
		return coin.Zero, errors.Wrap(err, "issue shares")
	}
	return shares, nil
}

// RedeemUnderlying pays out exactly the amount of underlying tokens to the
// redeemer, burning the smallest amount of its shares that is worth it. The
// redeemer must authorize the current operation. The amount of burned shares
// is returned.
func (c *Controller) RedeemUnderlying(ctx context.Context, db charity.KVStore, redeemer charity.Address, wrapped string, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := x.RequireAddress(ctx, c.auth, redeemer); err != nil {
		return coin.Zero, err
	}
	m, err := c.bucket.GetMarket(db, wrapped)
	if err != nil {
		return coin.Zero, err
	}
	rate, err := m.ExchangeRate()
	if err != nil {
		return coin.Zero, err
	}
	if err := coin.ValidateAmount(amount); err != nil {
		return coin.Zero, err
	}
	burn := coin.SharesFor(amount, rate)
	if err := c.cash.Burn(db, redeemer, coin.Coin{Ticker: wrapped, Amount: burn}); err != nil {
		return coin.Zero, errors.Wrap(err, "burn shares")
	}
	reserve := ReserveAddress(wrapped)
	rctx := charity.WithCaller(ctx, reserve)
	if err := c.cash.Transfer(rctx, db, reserve, redeemer, coin.Coin{Ticker: m.Underlying, Amount: amount}); err != nil {
		return coin.Zero, errors.Wrap(err, "market reserve")
	}
	return burn, nil
}
