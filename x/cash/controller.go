package cash

import (
	"context"

	"github.com/iov-one/charity"
	"github.com/iov-one/charity/coin"
	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/x"
	"github.com/shopspring/decimal"
)

// Controller is the functionality needed by other extensions to move and
// inspect funds.
type Controller struct {
	bucket Bucket
	auth   x.Authenticator
}

// NewController returns a controller that authorizes every spending with
// given authenticator.
func NewController(auth x.Authenticator) *Controller {
	return &Controller{
		bucket: NewBucket(),
		auth:   auth,
	}
}

// Balance returns the amount of given token held by the owner.
func (c *Controller) Balance(db charity.ReadOnlyKVStore, owner charity.Address, ticker string) (decimal.Decimal, error) {
	return c.bucket.Balance(db, owner, ticker)
}

// Allowance returns the amount the spender can still move on behalf of the
// owner.
func (c *Controller) Allowance(db charity.ReadOnlyKVStore, owner, spender charity.Address, ticker string) (decimal.Decimal, error) {
	return c.bucket.Allowance(db, owner, spender, ticker)
}

// Approve allows the spender to move up to given amount of the caller's
// funds. Each call overwrites the previous allowance.
func (c *Controller) Approve(ctx context.Context, db charity.KVStore, spender charity.Address, amount coin.Coin) error {
	owner := x.MainSigner(ctx, c.auth)
	if owner == nil {
		return errors.Wrap(errors.ErrUnauthorized, "approve requires a signer")
	}
	if spender.IsZero() {
		return errors.Wrap(errors.ErrZeroAddress, "spender")
	}
	if err := amount.Validate(); err != nil {
		return err
	}
	return c.bucket.SetAllowance(db, owner, spender, amount.Ticker, amount.Amount)
}

// Transfer moves funds of an account that authorized the current operation.
func (c *Controller) Transfer(ctx context.Context, db charity.KVStore, from, to charity.Address, amount coin.Coin) error {
	if err := x.RequireAddress(ctx, c.auth, from); err != nil {
		return err
	}
	return c.move(db, from, to, amount)
}

// TransferFrom moves funds of the owner on behalf of the spender. The spender
// must authorize the current operation and must have been approved for at
// least the amount moved.
func (c *Controller) TransferFrom(ctx context.Context, db charity.KVStore, spender, owner, recipient charity.Address, amount coin.Coin) error {
	if err := x.RequireAddress(ctx, c.auth, spender); err != nil {
		return err
	}
	if err := amount.Validate(); err != nil {
		return err
	}
	allowed, err := c.bucket.Allowance(db, owner, spender, amount.Ticker)
	if err != nil {
		return err
	}
	if allowed.LessThan(amount.Amount) {
		return errors.Wrapf(ErrInsufficientAllowance, "%s allowed, %s requested", allowed, amount.Amount)
	}
	if err := c.bucket.SetAllowance(db, owner, spender, amount.Ticker, allowed.Sub(amount.Amount)); err != nil {
		return err
	}
	return c.move(db, owner, recipient, amount)
}

func (c *Controller) move(db charity.KVStore, from, to charity.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if to.IsZero() {
		return errors.Wrap(errors.ErrZeroAddress, "recipient")
	}
	if err := c.Burn(db, from, amount); err != nil {
		return err
	}
	return c.Issue(db, to, amount)
}

// Issue creates new funds on the destination account.
func (c *Controller) Issue(db charity.KVStore, dest charity.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	bal, err := c.bucket.Balance(db, dest, amount.Ticker)
	if err != nil {
		return err
	}
	return c.bucket.SetBalance(db, dest, amount.Ticker, bal.Add(amount.Amount))
}

// Burn destroys funds of the source account. It fails with
// ErrInsufficientAmount if the account does not hold enough.
func (c *Controller) Burn(db charity.KVStore, src charity.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	bal, err := c.bucket.Balance(db, src, amount.Ticker)
	if err != nil {
		return err
	}
	if bal.LessThan(amount.Amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "transfer amount exceeds balance: %s < %s", bal, amount)
	}
	return c.bucket.SetBalance(db, src, amount.Ticker, bal.Sub(amount.Amount))
}
