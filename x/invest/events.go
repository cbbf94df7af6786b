package invest

import (
	"github.com/iov-one/charity"
	"github.com/shopspring/decimal"
)

// Invested is emitted when a deposit was added to a pool.
type Invested struct {
	Depositor charity.Address `json:"depositor"`
	Token     string          `json:"token"`
	Amount    decimal.Decimal `json:"amount"`
}

func (Invested) Kind() string { return "invested" }
