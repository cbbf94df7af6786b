package app

import (
	"encoding/json"
	"io/ioutil"
	"regexp"

	"github.com/iov-one/charity"
	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/x/cash"
	"github.com/iov-one/charity/x/invest"
	"github.com/iov-one/charity/x/market"
	"github.com/iov-one/charity/x/trust"
)

// Genesis file format.
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState charity.Options `json:"app_state"`
}

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	return gen, nil
}

// Initializer returns the initializer of all extensions, in the order they
// depend on each other.
func Initializer() charity.Initializer {
	return charity.ChainInitializers(
		cash.Initializer{},
		market.Initializer{},
		trust.Initializer{},
		invest.Initializer{},
	)
}

var isChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,25}$`).MatchString

// IsValidChainID returns true if the chain id can be used to identify an
// engine instance.
func IsValidChainID(chainID string) bool {
	return isChainID(chainID)
}

// _ch: is a prefix for engine internal data
const chainIDKey = "_ch:chainID"

// loadChainID returns the chain id stored if any
func loadChainID(kv charity.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv charity.KVStore, chainID string) error {
	if !IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chain id")
	}
	if exists {
		return errors.Wrap(errors.ErrState, "genesis already loaded")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
