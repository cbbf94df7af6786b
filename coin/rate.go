package coin

import (
	"strings"

	"github.com/iov-one/charity/errors"
	"github.com/shopspring/decimal"
)

// ValidateRate returns an error if given exchange rate cannot be used to
// convert between wrapped and underlying amounts.
func ValidateRate(rate decimal.Decimal) error {
	if rate.Sign() <= 0 {
		return errors.ErrInput.Newf("exchange rate must be positive, got %s", rate)
	}
	return nil
}

// ParseRate parses a decimal string into a valid exchange rate.
func ParseRate(s string) (decimal.Decimal, error) {
	r, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Zero, errors.ErrInput.Newf("cannot parse rate %q", s)
	}
	if err := ValidateRate(r); err != nil {
		return Zero, err
	}
	return r, nil
}

// ToUnderlying returns the value of given amount of wrapped shares in
// underlying base units, rounded down.
func ToUnderlying(shares, rate decimal.Decimal) decimal.Decimal {
	return shares.Mul(rate).Floor()
}

// ToShares returns the amount of wrapped shares that given underlying amount
// buys at given rate, rounded down.
func ToShares(amount, rate decimal.Decimal) decimal.Decimal {
	q, _ := quo(amount, rate)
	return q
}

// SharesFor returns the smallest amount of wrapped shares that is worth at
// least given underlying amount at given rate. This is the amount burned when
// redeeming an exact underlying amount.
func SharesFor(amount, rate decimal.Decimal) decimal.Decimal {
	q, rest := quo(amount, rate)
	if rest {
		q = q.Add(decimal.New(1, 0))
	}
	return q
}
