package app

import (
	"encoding/json"
	"fmt"

	"github.com/iov-one/charity"
	"github.com/iov-one/charity/coin"
	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/x/invest"
)

// EngineAddress returns the identity of the donation engine created from
// given seed. Depositors approve this address before investing.
func EngineAddress(seed string) charity.Address {
	return charity.NewCondition("donation", "engine", []byte(seed)).Address()
}

// TokenParams describes a supported token and its money market.
type TokenParams struct {
	Symbol     string `json:"symbol"`
	Underlying string `json:"underlying"`
	Wrapped    string `json:"wrapped"`
	// Rate is the initial exchange rate of the money market.
	Rate string `json:"rate"`
	// Reserve is the amount of underlying tokens the market starts with.
	Reserve string `json:"reserve,omitempty"`
}

// BeneficiaryParams describes an initial beneficiary.
type BeneficiaryParams struct {
	Name    string          `json:"name"`
	Address charity.Address `json:"address"`
}

// AccountParams describes initial funds of an account.
type AccountParams struct {
	Address charity.Address `json:"address"`
	Coins   []coin.Coin     `json:"coins"`
}

// GenesisParams is everything needed to create a genesis file.
type GenesisParams struct {
	ChainID       string
	Admin         charity.Address
	EngineSeed    string
	Tokens        []TokenParams
	Beneficiaries []BeneficiaryParams
	Accounts      []AccountParams
}

// DefaultTokens are the tokens an engine accepts unless configured otherwise.
var DefaultTokens = []TokenParams{
	{Symbol: "DAI", Underlying: "DAI", Wrapped: "cDAI", Rate: "0.02", Reserve: "1000000000"},
	{Symbol: "USDC", Underlying: "USDC", Wrapped: "cUSDC", Rate: "0.0002", Reserve: "1000000000"},
	{Symbol: "USDT", Underlying: "USDT", Wrapped: "cUSDT", Rate: "0.0002", Reserve: "1000000000"},
}

// DummyBeneficiaries returns a few beneficiaries useful for playing around.
func DummyBeneficiaries() []BeneficiaryParams {
	res := make([]BeneficiaryParams, 4)
	for i := range res {
		name := fmt.Sprintf("Ngo %d", i+1)
		res[i] = BeneficiaryParams{
			Name:    name,
			Address: charity.NewCondition("dummy", "ngo", []byte(name)).Address(),
		}
	}
	return res
}

// Build returns the genesis described by the params.
func (p GenesisParams) Build() (Genesis, error) {
	if !IsValidChainID(p.ChainID) {
		return Genesis{}, errors.Wrapf(errors.ErrInput, "chain id: %v", p.ChainID)
	}
	if p.Admin.IsZero() {
		return Genesis{}, errors.Wrap(errors.ErrZeroAddress, "admin")
	}

	type market struct {
		Wrapped    string `json:"wrapped"`
		Underlying string `json:"underlying"`
		Rate       string `json:"rate"`
		Reserve    string `json:"reserve,omitempty"`
	}
	var (
		markets []market
		tokens  []*invest.SupportedToken
	)
	for _, t := range p.Tokens {
		markets = append(markets, market{Wrapped: t.Wrapped, Underlying: t.Underlying, Rate: t.Rate, Reserve: t.Reserve})
		tokens = append(tokens, &invest.SupportedToken{Symbol: t.Symbol, Underlying: t.Underlying, Wrapped: t.Wrapped})
	}
	beneficiaries := p.Beneficiaries
	if beneficiaries == nil {
		beneficiaries = []BeneficiaryParams{}
	}
	accounts := p.Accounts
	if accounts == nil {
		accounts = []AccountParams{}
	}

	state := map[string]interface{}{
		"conf": map[string]interface{}{
			"trust":  map[string]interface{}{"admin": p.Admin},
			"invest": &invest.Configuration{Admin: EngineAddress(p.EngineSeed), Tokens: tokens},
		},
		"market":        markets,
		"beneficiaries": beneficiaries,
		"cash":          accounts,
	}
	opts := make(charity.Options, len(state))
	for k, v := range state {
		raw, err := json.Marshal(v)
		if err != nil {
			return Genesis{}, errors.Wrapf(errors.ErrInput, "%s: %s", k, err)
		}
		opts[k] = raw
	}
	return Genesis{ChainID: p.ChainID, AppState: opts}, nil
}
