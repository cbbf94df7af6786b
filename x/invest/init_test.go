package invest

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/charity"
	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/store"
	"github.com/iov-one/charity/weavetest/assert"
)

func TestGenesis(t *testing.T) {
	cases := map[string]struct {
		genesis    string
		wantErr    *errors.Error
		wantTokens []string
	}{
		"tokens in order": {
			genesis: `{"conf": {"invest": {
				"admin": "D2A1F84143A9754057E42DB6D6C9F986FE0FF673",
				"tokens": [
					{"symbol": "USDC", "underlying": "USDC", "wrapped": "cUSDC"},
					{"symbol": "DAI", "underlying": "DAI", "wrapped": "cDAI"}
				]
			}}}`,
			wantTokens: []string{"USDC", "DAI"},
		},
		"no tokens": {
			genesis: `{"conf": {"invest": {
				"admin": "D2A1F84143A9754057E42DB6D6C9F986FE0FF673",
				"tokens": []
			}}}`,
			wantErr: errors.ErrInput,
		},
		"duplicated symbol": {
			genesis: `{"conf": {"invest": {
				"admin": "D2A1F84143A9754057E42DB6D6C9F986FE0FF673",
				"tokens": [
					{"symbol": "DAI", "underlying": "DAI", "wrapped": "cDAI"},
					{"symbol": "DAI", "underlying": "DAI", "wrapped": "yDAI"}
				]
			}}}`,
			wantErr: errors.ErrDuplicate,
		},
		"token wraps itself": {
			genesis: `{"conf": {"invest": {
				"admin": "D2A1F84143A9754057E42DB6D6C9F986FE0FF673",
				"tokens": [
					{"symbol": "DAI", "underlying": "DAI", "wrapped": "DAI"}
				]
			}}}`,
			wantErr: errors.ErrInput,
		},
		"no admin": {
			genesis: `{"conf": {"invest": {
				"tokens": [
					{"symbol": "DAI", "underlying": "DAI", "wrapped": "cDAI"}
				]
			}}}`,
			wantErr: errors.ErrZeroAddress,
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
			var symbols []string
			for _, tok := range NewLedger(nil, conf, nil, nil).Tokens() {
				symbols = append(symbols, tok.Symbol)
			}
			assert.Equal(t, tc.wantTokens, symbols)
		})
	}
}
