package trust

import (
	"github.com/iov-one/charity"
	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/gconf"
)

// ConfigName is the name the registry configuration is stored under.
const ConfigName = "trust"

// LoadConfiguration returns the registry configuration stored in the
// genesis.
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

// FromGenesis stores the registry configuration and registers all initial
// beneficiaries.
func (Initializer) FromGenesis(opts charity.Options, db charity.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, ConfigName, &conf); err != nil {
		return errors.Wrap(err, "trust configuration")
	}

	var beneficiaries []struct {
		Name    string          `json:"name"`
		Address charity.Address `json:"address"`
	}
	if err := opts.ReadOptions("beneficiaries", &beneficiaries); err != nil {
		return errors.Wrap(err, "cannot load beneficiaries")
	}
	bucket := NewBucket()
	for i, b := range beneficiaries {
		if ok, err := bucket.Has(db, b.Address); err != nil {
			return err
		} else if ok {
			return errors.Wrapf(errors.ErrDuplicate, "beneficiary #%d %s", i, b.Address)
		}
		ben := &Beneficiary{Name: b.Name, Address: b.Address, Enabled: true}
		if err := bucket.PutBeneficiary(db, ben); err != nil {
			return errors.Wrapf(err, "beneficiary #%d", i)
		}
	}
	return nil
}
