package donation

import (
	"fmt"

	"github.com/iov-one/charity"
	"github.com/shopspring/decimal"
)

// Investment is emitted when a depositor invested through the engine.
type Investment struct {
	Depositor charity.Address `json:"depositor"`
	Token     string          `json:"token"`
	Amount    decimal.Decimal `json:"amount"`
}

func (Investment) Kind() string { return "investment" }

// Donation is emitted for every non zero payout to a beneficiary.
type Donation struct {
	Depositor   charity.Address `json:"depositor"`
	Beneficiary charity.Address `json:"beneficiary"`
	Token       string          `json:"token"`
	Amount      decimal.Decimal `json:"amount"`
}

func (Donation) Kind() string { return "donation" }

func (d Donation) String() string {
	return fmt.Sprintf("%s %s to %s", d.Amount, d.Token, d.Beneficiary)
}
