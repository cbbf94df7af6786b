package market

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/charity"
	"github.com/iov-one/charity/store"
	"github.com/iov-one/charity/weavetest/assert"
	"github.com/iov-one/charity/x/cash"
)

func TestGenesis(t *testing.T) {
	const genesis = `{
		"market": [
			{"wrapped": "cDAI", "underlying": "DAI", "rate": "0.020", "reserve": "1000000"},
			{"wrapped": "cUSDC", "underlying": "USDC", "rate": "0.0002"}
		]
	}`
	var opts charity.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.NewMemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	ledger := cash.NewController(nil)
	ctrl := NewController(nil, ledger)

	rate, err := ctrl.ExchangeRate(db, "cUSDC")
	assert.Nil(t, err)
	assert.Amount(t, "0.0002", rate)

	reserve, err := ledger.Balance(db, ReserveAddress("cDAI"), "DAI")
	assert.Nil(t, err)
	assert.Amount(t, "1000000", reserve)
}
