package cash

import (
	"github.com/iov-one/charity"
	"github.com/iov-one/charity/coin"
	"github.com/iov-one/charity/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use charity.Address, so address in hex, not base64
type GenesisAccount struct {
	Address charity.Address `json:"address"`
	Coins   []coin.Coin     `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ charity.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts charity.Options, db charity.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(err, "cannot load cash")
	}
	ctrl := NewController(nil)
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		for _, c := range acct.Coins {
			if err := ctrl.Issue(db, acct.Address, c); err != nil {
				return errors.Wrapf(err, "account #%d", i)
			}
		}
	}
	return nil
}
