package cash

import (
	"testing"

	"github.com/iov-one/charity"
	"github.com/iov-one/charity/coin"
	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/store"
	"github.com/iov-one/charity/weavetest"
	"github.com/iov-one/charity/weavetest/assert"
	"github.com/iov-one/charity/x"
)

func TestIssueBurn(t *testing.T) {
	db := store.NewMemStore()
	ctrl := NewController(x.CallerAuth{})
	addr := weavetest.NewAddress()

	assert.Nil(t, ctrl.Issue(db, addr, coin.NewCoin(500, "DAI")))
	assert.Nil(t, ctrl.Issue(db, addr, coin.NewCoin(100, "DAI")))
	assert.Nil(t, ctrl.Issue(db, addr, coin.NewCoin(7, "USDC")))

	bal, err := ctrl.Balance(db, addr, "DAI")
	assert.Nil(t, err)
	assert.Amount(t, "600", bal)

	assert.Nil(t, ctrl.Burn(db, addr, coin.NewCoin(600, "DAI")))
	bal, err = ctrl.Balance(db, addr, "DAI")
	assert.Nil(t, err)
	assert.Amount(t, "0", bal)

	err = ctrl.Burn(db, addr, coin.NewCoin(8, "USDC"))
	assert.IsErr(t, errors.ErrInsufficientAmount, err)

	err = ctrl.Issue(db, addr, coin.NewCoin(-8, "USDC"))
	assert.IsErr(t, errors.ErrInvalidAmount, err)

	// Other tokens are not affected.
	bal, err = ctrl.Balance(db, addr, "USDC")
	assert.Nil(t, err)
	assert.Amount(t, "7", bal)
}

func TestTransfer(t *testing.T) {
	alice := weavetest.NewAddress()
	bob := weavetest.NewAddress()

	cases := map[string]struct {
		caller  charity.Address
		from    charity.Address
		to      charity.Address
		amount  coin.Coin
		wantErr *errors.Error
		wantBob string
	}{
		"owner moves funds": {
			caller:  alice,
			from:    alice,
			to:      bob,
			amount:  coin.NewCoin(400, "DAI"),
			wantBob: "400",
		},
		"whole balance": {
			caller:  alice,
			from:    alice,
			to:      bob,
			amount:  coin.NewCoin(1000, "DAI"),
			wantBob: "1000",
		},
		"not the owner": {
			caller:  bob,
			from:    alice,
			to:      bob,
			amount:  coin.NewCoin(400, "DAI"),
			wantErr: errors.ErrUnauthorized,
			wantBob: "0",
		},
		"exceeds balance": {
			caller:  alice,
			from:    alice,
			to:      bob,
			amount:  coin.NewCoin(1001, "DAI"),
			wantErr: errors.ErrInsufficientAmount,
			wantBob: "0",
		},
		"zero recipient": {
			caller:  alice,
			from:    alice,
			to:      make(charity.Address, charity.AddressLength),
			amount:  coin.NewCoin(1, "DAI"),
			wantErr: errors.ErrZeroAddress,
			wantBob: "0",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.NewMemStore()
			ctrl := NewController(x.CallerAuth{})
			assert.Nil(t, ctrl.Issue(db, alice, coin.NewCoin(1000, "DAI")))

			ctx, _ := weavetest.NewContext(tc.caller)
			err := ctrl.Transfer(ctx, db, tc.from, tc.to, tc.amount)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			bal, err := ctrl.Balance(db, bob, "DAI")
			assert.Nil(t, err)
			assert.Amount(t, tc.wantBob, bal)
		})
	}
}

func TestTransferFrom(t *testing.T) {
	owner := weavetest.NewAddress()
	spender := weavetest.NewAddress()
	recipient := weavetest.NewAddress()

	cases := map[string]struct {
		approve       int64
		caller        charity.Address
		amount        int64
		wantErr       *errors.Error
		wantAllowance string
		wantRecipient string
	}{
		"within allowance": {
			approve:       1000,
			caller:        spender,
			amount:        600,
			wantAllowance: "400",
			wantRecipient: "600",
		},
		"exact allowance": {
			approve:       1000,
			caller:        spender,
			amount:        1000,
			wantAllowance: "0",
			wantRecipient: "1000",
		},
		"allowance too low": {
			approve:       999,
			caller:        spender,
			amount:        1000,
			wantErr:       ErrInsufficientAllowance,
			wantAllowance: "999",
			wantRecipient: "0",
		},
		"nothing approved": {
			caller:        spender,
			amount:        1,
			wantErr:       ErrInsufficientAllowance,
			wantAllowance: "0",
			wantRecipient: "0",
		},
		"allowance above balance": {
			approve:       5000,
			caller:        spender,
			amount:        3000,
			wantErr:       errors.ErrInsufficientAmount,
			wantAllowance: "5000",
			wantRecipient: "0",
		},
		"spender did not sign": {
			approve:       1000,
			caller:        recipient,
			amount:        10,
			wantErr:       errors.ErrUnauthorized,
			wantAllowance: "1000",
			wantRecipient: "0",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.NewMemStore()
			ctrl := NewController(x.CallerAuth{})
			assert.Nil(t, ctrl.Issue(db, owner, coin.NewCoin(2000, "USDT")))

			ownerCtx, _ := weavetest.NewContext(owner)
			if tc.approve != 0 {
				assert.Nil(t, ctrl.Approve(ownerCtx, db, spender, coin.NewCoin(tc.approve, "USDT")))
			}

			// Run in a cache, as the engine does, so that a failure
			// leaves no trace.
			cache := db.CacheWrap()
			ctx, _ := weavetest.NewContext(tc.caller)
			err := ctrl.TransferFrom(ctx, cache, spender, owner, recipient, coin.NewCoin(tc.amount, "USDT"))
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err == nil {
				assert.Nil(t, cache.Write())
			} else {
				cache.Discard()
			}

			allowance, err := ctrl.Allowance(db, owner, spender, "USDT")
			assert.Nil(t, err)
			assert.Amount(t, tc.wantAllowance, allowance)
			got, err := ctrl.Balance(db, recipient, "USDT")
			assert.Nil(t, err)
			assert.Amount(t, tc.wantRecipient, got)
		})
	}
}

func TestAllowanceErrorClass(t *testing.T) {
	assert.Equal(t, errors.EconomicPrecondition, errors.ClassOf(errors.Wrap(ErrInsufficientAllowance, "999 allowed")))
	assert.Equal(t, "insufficient allowance", ErrInsufficientAllowance.Error())
}

func TestApproveRequiresSigner(t *testing.T) {
	db := store.NewMemStore()
	ctrl := NewController(x.CallerAuth{})
	ctx, _ := weavetest.NewContext(nil)
	err := ctrl.Approve(ctx, db, weavetest.NewAddress(), coin.NewCoin(1, "DAI"))
	assert.IsErr(t, errors.ErrUnauthorized, err)
}
