package trust

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/charity"
	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/store"
	"github.com/iov-one/charity/weavetest/assert"
	"github.com/iov-one/charity/x"
)

func TestGenesis(t *testing.T) {
	admin := charity.MustParseAddress("D2A1F84143A9754057E42DB6D6C9F986FE0FF673")
	org := charity.MustParseAddress("E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0")

	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
	}{
		"admin and beneficiaries": {
			genesis: `{
				"conf": {"trust": {"admin": "D2A1F84143A9754057E42DB6D6C9F986FE0FF673"}},
				"beneficiaries": [
					{"name": "Org1", "address": "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0"}
				]
			}`,
		},
		"missing configuration": {
			genesis: `{"beneficiaries": []}`,
			wantErr: errors.ErrNotFound,
		},
		"duplicated beneficiary": {
			genesis: `{
				"conf": {"trust": {"admin": "D2A1F84143A9754057E42DB6D6C9F986FE0FF673"}},
				"beneficiaries": [
					{"name": "Org1", "address": "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0"},
					{"name": "Org2", "address": "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0"}
				]
			}`,
			wantErr: errors.ErrDuplicate,
		},
		"nameless beneficiary": {
			genesis: `{
				"conf": {"trust": {"admin": "D2A1F84143A9754057E42DB6D6C9F986FE0FF673"}},
				"beneficiaries": [
					{"name": "", "address": "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0"}
				]
			}`,
			wantErr: errors.ErrEmptyName,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts charity.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.genesis), &opts))

			db := store.NewMemStore()
			err := Initializer{}.FromGenesis(opts, db)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}

			conf, err := LoadConfiguration(db)
			assert.Nil(t, err)
			assert.Equal(t, admin, conf.Admin)

			reg := NewRegistry(x.CallerAuth{}, conf.Admin)
			ok, err := reg.IsTrusted(db, org)
			assert.Nil(t, err)
			assert.Equal(t, true, ok)
		})
	}
}
