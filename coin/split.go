package coin

import (
	"github.com/iov-one/charity/errors"
	"github.com/shopspring/decimal"
)

// FullPercentage is the sum all percentages of a split must add up to.
const FullPercentage = 100

var hundred = decimal.New(FullPercentage, 0)

// Share returns floor(amount * percentage / 100).
func Share(amount decimal.Decimal, percentage uint32) decimal.Decimal {
	q, _ := quo(amount.Mul(decimal.New(int64(percentage), 0)), hundred)
	return q
}

// Split partitions amount between given percentages. Each share is rounded
// down, so the sum of all shares might be less than the amount. The returned
// leftover is the difference and is never greater than len(percentages) - 1
// when percentages add up to 100.
func Split(amount decimal.Decimal, percentages []uint32) ([]decimal.Decimal, decimal.Decimal, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, Zero, err
	}
	var total uint32
	shares := make([]decimal.Decimal, len(percentages))
	for i, p := range percentages {
		if p < 1 || p > FullPercentage {
			return nil, Zero, errors.Wrapf(errors.ErrPercentageOutOfRange, "percentage %d", p)
		}
		total += p
		shares[i] = Share(amount, p)
	}
	if total != FullPercentage {
		return nil, Zero, errors.Wrapf(errors.ErrPercentageSum, "got %d", total)
	}
	leftover := amount
	for _, s := range shares {
		leftover = leftover.Sub(s)
	}
	return shares, leftover, nil
}
