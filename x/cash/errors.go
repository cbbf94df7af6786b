package cash

import "github.com/iov-one/charity/errors"

// Reserved codes 100~109
var (
	// ErrInsufficientAllowance is returned when a spender tries to move more
	// than it was approved for.
	ErrInsufficientAllowance = errors.Register(100, "insufficient allowance").In(errors.EconomicPrecondition)
)
