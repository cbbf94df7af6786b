package coin

import (
	"testing"

	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/weavetest/assert"
)

func TestConversions(t *testing.T) {
	cases := map[string]struct {
		amount         string
		rate           string
		wantShares     string
		wantSharesFor  string
		wantUnderlying string
	}{
		"exact": {
			amount:         "100000",
			rate:           "0.02",
			wantShares:     "5000000",
			wantSharesFor:  "5000000",
			wantUnderlying: "100000",
		},
		"rounding": {
			amount:         "100",
			rate:           "0.03",
			wantShares:     "3333",
			wantSharesFor:  "3334",
			wantUnderlying: "99",
		},
		"rate above one": {
			amount:         "10",
			rate:           "3",
			wantShares:     "3",
			wantSharesFor:  "4",
			wantUnderlying: "9",
		},
		"zero": {
			amount:         "0",
			rate:           "0.5",
			wantShares:     "0",
			wantSharesFor:  "0",
			wantUnderlying: "0",
		},
		"long fraction rate": {
			amount:         "1000000000000000000",
			rate:           "0.020000000000000000000000001",
			wantShares:     "49999999999999999999",
			wantSharesFor:  "50000000000000000000",
			wantUnderlying: "999999999999999999",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			amount := MustParseAmount(tc.amount)
			rate, err := ParseRate(tc.rate)
			assert.Nil(t, err)

			shares := ToShares(amount, rate)
			assert.Amount(t, tc.wantShares, shares)
			assert.Amount(t, tc.wantSharesFor, SharesFor(amount, rate))
			assert.Amount(t, tc.wantUnderlying, ToUnderlying(shares, rate))

			// Burning SharesFor must always cover the requested amount.
			if ToUnderlying(SharesFor(amount, rate), rate).LessThan(amount) {
				t.Fatal("shares burned are worth less than the amount")
			}
		})
	}
}

func TestParseRate(t *testing.T) {
	cases := map[string]*errors.Error{
		"0.02":  nil,
		"1":     nil,
		"0":     errors.ErrInput,
		"-0.5":  errors.ErrInput,
		"three": errors.ErrInput,
	}
	for raw, wantErr := range cases {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseRate(raw)
			if !wantErr.Is(err) {
				t.Fatalf("want %q error, got %+v", wantErr, err)
			}
		})
	}
}
