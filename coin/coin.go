/*
Package coin implements the arithmetic of token amounts.

All amounts are non-negative whole numbers of token base units (for example
wei for an 18 decimals token). Exchange rates of wrapped tokens are arbitrary
precision decimals telling how many underlying base units a single wrapped
base unit is worth. Every conversion rounds down unless documented otherwise,
so that the pool never promises more than it holds.
*/
package coin

import (
	"encoding/json"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/iov-one/charity/errors"
	"github.com/shopspring/decimal"
)

// IsTicker is the RegExp to ensure valid token tickers, for example DAI or
// cUSDC.
var IsTicker = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]{1,9}$`).MatchString

// Zero is the zero amount.
var Zero = decimal.Zero

// Coin is an amount of a single token.
type Coin struct {
	Ticker string
	Amount decimal.Decimal
}

// NewCoin creates a new coin object.
func NewCoin(amount int64, ticker string) Coin {
	return Coin{
		Ticker: ticker,
		Amount: decimal.New(amount, 0),
	}
}

// Validate ensures that the coin is a valid amount of a valid token.
func (c Coin) Validate() error {
	var err error
	if !IsTicker(c.Ticker) {
		err = errors.AppendField(err, "Ticker", errors.ErrInput.Newf("invalid ticker %q", c.Ticker))
	}
	return errors.AppendField(err, "Amount", ValidateAmount(c.Amount))
}

// IsZero returns true if the amount is 0.
func (c Coin) IsZero() bool {
	return c.Amount.Sign() == 0
}

// IsPositive returns true if the value is greater than 0.
func (c Coin) IsPositive() bool {
	return c.Amount.Sign() > 0
}

// SameType returns true if they have the same currency
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Add combines two coins of the same token.
func (c Coin) Add(o Coin) (Coin, error) {
	if !c.SameType(o) {
		return Coin{}, errors.ErrInput.Newf("adding %s to %s", o.Ticker, c.Ticker)
	}
	return Coin{Ticker: c.Ticker, Amount: c.Amount.Add(o.Amount)}, nil
}

// Subtract given amount. It fails with ErrInsufficientAmount if the result
// would be negative.
func (c Coin) Subtract(o Coin) (Coin, error) {
	if !c.SameType(o) {
		return Coin{}, errors.ErrInput.Newf("subtracting %s from %s", o.Ticker, c.Ticker)
	}
	if c.Amount.LessThan(o.Amount) {
		return Coin{}, errors.ErrInsufficientAmount.Newf("%s is less than %s", c, o)
	}
	return Coin{Ticker: c.Ticker, Amount: c.Amount.Sub(o.Amount)}, nil
}

// String provides a human readable representation of the coin, for example
// "100 DAI".
func (c Coin) String() string {
	if c.Ticker == "" {
		return c.Amount.String()
	}
	return c.Amount.String() + " " + c.Ticker
}

// ParseCoin parses a human readable coin representation. Accepted format is
// a string "<amount> <ticker>".
func ParseCoin(h string) (Coin, error) {
	chunks := strings.Fields(h)
	if len(chunks) != 2 {
		return Coin{}, errors.ErrInput.Newf("invalid coin format %q", h)
	}
	amount, err := ParseAmount(chunks[0])
	if err != nil {
		return Coin{}, err
	}
	c := Coin{Ticker: chunks[1], Amount: amount}
	if err := c.Validate(); err != nil {
		return Coin{}, err
	}
	return c, nil
}

func (c Coin) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	parsed, err := ParseCoin(human)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ValidateAmount returns an error if given value is not a valid amount of
// base units: negative or not a whole number.
func ValidateAmount(a decimal.Decimal) error {
	if a.Sign() < 0 {
		return errors.ErrInvalidAmount.Newf("negative amount %s", a)
	}
	if !a.Equal(a.Truncate(0)) {
		return errors.ErrInvalidAmount.Newf("%s is not a whole number of base units", a)
	}
	return nil
}

// ParseAmount parses a decimal string into a valid amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	a, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Zero, errors.ErrInvalidAmount.Newf("cannot parse %q", s)
	}
	if err := ValidateAmount(a); err != nil {
		return Zero, err
	}
	return a, nil
}

// MustParseAmount works like ParseAmount but panics on failure. Use it only
// for constants and in tests.
func MustParseAmount(s string) decimal.Decimal {
	a, err := ParseAmount(s)
	if err != nil {
		panic(fmt.Sprintf("invalid amount %q: %s", s, err))
	}
	return a
}

// quo returns a / b truncated to a whole number and whether the division
// left any remainder. Both values must be non-negative and b must not be
// zero.
func quo(a, b decimal.Decimal) (decimal.Decimal, bool) {
	r := new(big.Rat).Quo(a.Rat(), b.Rat())
	q, m := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))
	return decimal.NewFromBigInt(q, 0), m.Sign() != 0
}

// Max returns the greater of two amounts.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
