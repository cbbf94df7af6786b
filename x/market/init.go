package market

import (
	"github.com/iov-one/charity"
	"github.com/iov-one/charity/coin"
	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/x/cash"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ charity.Initializer = Initializer{}

// FromGenesis registers all markets declared in the genesis file and funds
// their reserves.
func (Initializer) FromGenesis(opts charity.Options, db charity.KVStore) error {
	var markets []struct {
		Wrapped    string `json:"wrapped"`
		Underlying string `json:"underlying"`
		Rate       string `json:"rate"`
		Reserve    string `json:"reserve"`
	}
	if err := opts.ReadOptions("market", &markets); err != nil {
		return errors.Wrap(err, "cannot load markets")
	}

	ledger := cash.NewController(nil)
	ctrl := NewController(nil, ledger)
	for _, m := range markets {
		rate, err := coin.ParseRate(m.Rate)
		if err != nil {
			return errors.Wrapf(err, "market %q", m.Wrapped)
		}
		if err := ctrl.Register(db, m.Wrapped, m.Underlying, rate); err != nil {
			return err
		}
		if m.Reserve == "" {
			continue
		}
		reserve, err := coin.ParseAmount(m.Reserve)
		if err != nil {
			return errors.Wrapf(err, "market %q reserve", m.Wrapped)
		}
		if err := ledger.Issue(db, ReserveAddress(m.Wrapped), coin.Coin{Ticker: m.Underlying, Amount: reserve}); err != nil {
			return errors.Wrapf(err, "market %q reserve", m.Wrapped)
		}
	}
	return nil
}
