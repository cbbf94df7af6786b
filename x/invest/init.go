package invest

import (
	"github.com/iov-one/charity"
	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/gconf"
)

// ConfigName is the name the ledger configuration is stored under.
const ConfigName = "invest"

// LoadConfiguration returns the ledger configuration stored in the genesis.
func LoadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, ConfigName, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ charity.Initializer = Initializer{}

// FromGenesis stores the ledger configuration.
func (Initializer) FromGenesis(opts charity.Options, db charity.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, ConfigName, &conf); err != nil {
		return errors.Wrap(err, "invest configuration")
	}
	return nil
}
