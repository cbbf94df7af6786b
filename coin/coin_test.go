package coin

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/weavetest/assert"
	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    string
		wantErr *errors.Error
	}{
		"whole number": {
			raw:  "100000",
			want: "100000",
		},
		"zero": {
			raw:  "0",
			want: "0",
		},
		"wei sized number": {
			raw:  "1000000000000000000000",
			want: "1000000000000000000000",
		},
		"surrounding whitespace": {
			raw:  " 42 ",
			want: "42",
		},
		"trailing zero fraction": {
			raw:  "12.000",
			want: "12",
		},
		"fractional": {
			raw:     "1.5",
			wantErr: errors.ErrInvalidAmount,
		},
		"negative": {
			raw:     "-1",
			wantErr: errors.ErrInvalidAmount,
		},
		"not a number": {
			raw:     "ten",
			wantErr: errors.ErrInvalidAmount,
		},
		"empty": {
			raw:     "",
			wantErr: errors.ErrInvalidAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseAmount(tc.raw)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Amount(t, tc.want, got)
			}
		})
	}
}

func TestCoinValidate(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		wantErr map[string]*errors.Error
	}{
		"valid": {
			coin: NewCoin(5, "DAI"),
			wantErr: map[string]*errors.Error{
				"Ticker": nil,
				"Amount": nil,
			},
		},
		"wrapped ticker": {
			coin: NewCoin(0, "cUSDC"),
			wantErr: map[string]*errors.Error{
				"Ticker": nil,
				"Amount": nil,
			},
		},
		"missing ticker": {
			coin: NewCoin(5, ""),
			wantErr: map[string]*errors.Error{
				"Ticker": errors.ErrInput,
				"Amount": nil,
			},
		},
		"negative amount and bad ticker": {
			coin: NewCoin(-5, "1DAI"),
			wantErr: map[string]*errors.Error{
				"Ticker": errors.ErrInput,
				"Amount": errors.ErrInvalidAmount,
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.coin.Validate()
			for field, want := range tc.wantErr {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestCoinArithmetic(t *testing.T) {
	a := NewCoin(70, "DAI")
	b := NewCoin(30, "DAI")

	sum, err := a.Add(b)
	assert.Nil(t, err)
	assert.Amount(t, "100", sum.Amount)

	diff, err := a.Subtract(b)
	assert.Nil(t, err)
	assert.Amount(t, "40", diff.Amount)

	_, err = b.Subtract(a)
	assert.IsErr(t, errors.ErrInsufficientAmount, err)

	_, err = a.Add(NewCoin(1, "USDC"))
	assert.IsErr(t, errors.ErrInput, err)
}

func TestCoinJSON(t *testing.T) {
	raw, err := json.Marshal(NewCoin(1234, "USDT"))
	assert.Nil(t, err)
	assert.Equal(t, `"1234 USDT"`, string(raw))

	var c Coin
	assert.Nil(t, json.Unmarshal(raw, &c))
	assert.Equal(t, "USDT", c.Ticker)
	assert.Amount(t, "1234", c.Amount)

	err = json.Unmarshal([]byte(`"12.5 USDT"`), &c)
	assert.IsErr(t, errors.ErrInvalidAmount, err)
}

func TestMax(t *testing.T) {
	assert.Amount(t, "7", Max(decimal.New(7, 0), decimal.New(-3, 0)))
	assert.Amount(t, "0", Max(decimal.New(-7, 0), Zero))
}
