package invest

import (
	"context"

	"github.com/iov-one/charity"
	"github.com/iov-one/charity/coin"
	"github.com/shopspring/decimal"
)

// TokenLedger keeps the balances of the underlying tokens.
type TokenLedger interface {
	Balance(db charity.ReadOnlyKVStore, owner charity.Address, ticker string) (decimal.Decimal, error)
	Allowance(db charity.ReadOnlyKVStore, owner, spender charity.Address, ticker string) (decimal.Decimal, error)
	// TransferFrom moves funds of the owner on behalf of the spender, who
	// must be authorized by the context.
	TransferFrom(ctx context.Context, db charity.KVStore, spender, owner, recipient charity.Address, amount coin.Coin) error
	// Transfer moves funds of an account authorized by the context.
	Transfer(ctx context.Context, db charity.KVStore, from, to charity.Address, amount coin.Coin) error
}

// MoneyMarket exchanges underlying tokens for interest bearing shares.
type MoneyMarket interface {
	// Mint deposits an amount of underlying tokens and returns the number
	// of issued shares.
	Mint(ctx context.Context, db charity.KVStore, minter charity.Address, wrapped string, amount decimal.Decimal) (decimal.Decimal, error)
	// RedeemUnderlying pays out an amount of underlying tokens and returns
	// the number of burned shares.
	RedeemUnderlying(ctx context.Context, db charity.KVStore, redeemer charity.Address, wrapped string, amount decimal.Decimal) (decimal.Decimal, error)
	ExchangeRate(db charity.ReadOnlyKVStore, wrapped string) (decimal.Decimal, error)
	BalanceOf(db charity.ReadOnlyKVStore, owner charity.Address, wrapped string) (decimal.Decimal, error)
}
