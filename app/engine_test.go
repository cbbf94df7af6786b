package app

import (
	"context"
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/charity"
	"github.com/iov-one/charity/coin"
	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/store/iavl"
	"github.com/iov-one/charity/weavetest"
	"github.com/iov-one/charity/weavetest/assert"
	"github.com/iov-one/charity/x/cash"
	"github.com/iov-one/charity/x/donation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	engine *Engine
	admin  charity.Address
	alice  charity.Address
	ngos   []BeneficiaryParams
	events []charity.Event
}

func newTestEnv(t *testing.T, store charity.CommitKVStore, opts ...Option) *testEnv {
	t.Helper()
	env := &testEnv{
		admin: weavetest.NewAddress(),
		alice: weavetest.NewAddress(),
		ngos:  DummyBeneficiaries(),
	}
	opts = append(opts, WithSubscriber(func(e charity.Event) {
		env.events = append(env.events, e)
	}))
	engine, err := NewEngine(store, opts...)
	require.NoError(t, err)

	gen, err := GenesisParams{
		ChainID:       "test-chain",
		Admin:         env.admin,
		EngineSeed:    "test",
		Tokens:        DefaultTokens,
		Beneficiaries: env.ngos,
		Accounts: []AccountParams{
			{Address: env.alice, Coins: []coin.Coin{coin.NewCoin(100000, "DAI"), coin.NewCoin(500, "USDC")}},
		},
	}.Build()
	require.NoError(t, err)
	require.NoError(t, engine.InitGenesis(gen))
	env.engine = engine
	return env
}

func (env *testEnv) as(addr charity.Address) context.Context {
	return charity.WithCaller(context.Background(), addr)
}

func TestDonationFlow(t *testing.T) {
	reg := prometheus.NewRegistry()
	env := newTestEnv(t, iavl.NewMemCommitStore(), WithMetrics(NewMetrics(reg)))
	e := env.engine
	alice := env.as(env.alice)

	tokens, err := e.InvertibleTokens(alice)
	require.NoError(t, err)
	require.Equal(t, []string{"DAI", "USDC", "USDT"}, tokens)

	trusted, err := e.ListTrustedBeneficiaries(alice)
	require.NoError(t, err)
	require.Len(t, trusted, 4)

	// Not approved yet.
	err = e.Invest(alice, "DAI", decimal.New(100000, 0))
	require.True(t, cash.ErrInsufficientAllowance.Is(err), "unexpected error: %+v", err)

	require.NoError(t, e.Approve(alice, coin.NewCoin(100000, "DAI")))
	require.NoError(t, e.Invest(alice, "DAI", decimal.New(100000, 0)))

	invested, err := e.InvestedAmount(alice, "DAI")
	require.NoError(t, err)
	assert.Amount(t, "100000", invested)
	interest, err := e.GeneratedInterest(alice, "DAI")
	require.NoError(t, err)
	assert.Amount(t, "0", interest)

	require.NoError(t, e.SetExchangeRate(alice, "cDAI", decimal.New(21, -3)))
	interest, err = e.GeneratedInterest(alice, "DAI")
	require.NoError(t, err)
	assert.Amount(t, "5000", interest)
	value, err := e.PoolValue(alice, "DAI")
	require.NoError(t, err)
	assert.Amount(t, "105000", value)

	splits := []donation.Split{
		{Beneficiary: env.ngos[0].Address, Percentage: 60},
		{Beneficiary: env.ngos[1].Address, Percentage: 40},
	}
	preview, err := e.Preview(alice, splits)
	require.NoError(t, err)
	require.Len(t, preview, 2)

	donations, err := e.Distribute(env.as(weavetest.NewAddress()), splits)
	require.NoError(t, err)
	require.Len(t, donations, 2)

	for i, want := range []string{"3000", "2000"} {
		bal, err := e.Balance(alice, env.ngos[i].Address, "DAI")
		require.NoError(t, err)
		assert.Amount(t, want, bal)
		assert.Amount(t, want, preview[i].Amount)
	}
	invested, err = e.InvestedAmount(alice, "DAI")
	require.NoError(t, err)
	assert.Amount(t, "100000", invested)

	entries, err := e.Events(alice)
	require.NoError(t, err)
	var kinds []string
	for _, en := range entries {
		kinds = append(kinds, en.Kind)
	}
	require.Equal(t, []string{"invested", "investment", "donation", "donation"}, kinds)
	require.Equal(t, "distribute", entries[3].Operation)
	require.Equal(t, int64(4), entries[3].Sequence)
	require.Len(t, env.events, 4)

	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	require.Contains(t, names, "charity_pool_donated_total")
	require.Contains(t, names, "charity_engine_operations_total")
}

func TestRegistryOperations(t *testing.T) {
	env := newTestEnv(t, iavl.NewMemCommitStore())
	e := env.engine
	admin := env.as(env.admin)
	org := weavetest.NewAddress()

	err := e.AddBeneficiary(env.as(env.alice), "Org1", org)
	require.True(t, errors.ErrUnauthorized.Is(err))

	require.NoError(t, e.AddBeneficiary(admin, "Org1", org))
	ok, err := e.IsBeneficiaryTrusted(admin, org)
	require.NoError(t, err)
	require.True(t, ok)

	err = e.AddBeneficiary(admin, "Org1", org)
	require.True(t, errors.ErrDuplicate.Is(err))
	require.Equal(t, errors.StateConflict, errors.ClassOf(err))

	require.NoError(t, e.DisableBeneficiary(admin, org))
	ok, err = e.IsBeneficiaryTrusted(admin, org)
	require.NoError(t, err)
	require.False(t, ok)

	trusted, err := e.ListTrustedBeneficiaries(admin)
	require.NoError(t, err)
	require.Len(t, trusted, 4)
	all, err := e.ListBeneficiaries(admin)
	require.NoError(t, err)
	require.Len(t, all, 5)

	require.NoError(t, e.EnableBeneficiary(admin, org))
	ben, err := e.Beneficiary(admin, org)
	require.NoError(t, err)
	require.Equal(t, "Org1", ben.Name)
	require.True(t, ben.Enabled)

	entries, err := e.Events(admin)
	require.NoError(t, err)
	require.Len(t, entries, 3)
}

func TestFailedOperationIsRolledBack(t *testing.T) {
	env := newTestEnv(t, iavl.NewMemCommitStore())
	e := env.engine
	version := e.LatestVersion()
	key := []byte("scratch")

	err := e.mutate(context.Background(), "test", func(ctx context.Context, db charity.KVStore) error {
		require.NoError(t, db.Set(key, []byte("value")))
		charity.Emit(ctx, donation.Investment{Token: "DAI"})
		return errors.ErrInsufficientAmount.New("test")
	})
	require.True(t, errors.ErrInsufficientAmount.Is(err))

	err = e.mutate(context.Background(), "test", func(ctx context.Context, db charity.KVStore) error {
		require.NoError(t, db.Set(key, []byte("value")))
		panic("boom")
	})
	require.True(t, errors.ErrPanic.Is(err))

	require.Equal(t, version, e.LatestVersion())
	val, err := e.store.Get(key)
	require.NoError(t, err)
	require.Nil(t, val)
	entries, err := e.Events(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 0)
	require.Len(t, env.events, 0)
}

func TestInvalidDistributionChangesNothing(t *testing.T) {
	env := newTestEnv(t, iavl.NewMemCommitStore())
	e := env.engine
	alice := env.as(env.alice)
	require.NoError(t, e.Approve(alice, coin.NewCoin(100000, "DAI")))
	require.NoError(t, e.Invest(alice, "DAI", decimal.New(100000, 0)))
	require.NoError(t, e.SetExchangeRate(alice, "cDAI", decimal.New(21, -3)))
	version := e.LatestVersion()

	cases := map[string]struct {
		splits  []donation.Split
		wantErr *errors.Error
	}{
		"empty": {
			wantErr: errors.ErrNoBeneficiaries,
		},
		"sum is 90": {
			splits: []donation.Split{
				{Beneficiary: env.ngos[0].Address, Percentage: 50},
				{Beneficiary: env.ngos[1].Address, Percentage: 40},
			},
			wantErr: errors.ErrPercentageSum,
		},
		"untrusted": {
			splits: []donation.Split{
				{Beneficiary: weavetest.NewAddress(), Percentage: 100},
			},
			wantErr: errors.ErrUntrustedBeneficiary,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := e.Distribute(alice, tc.splits)
			require.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
			require.Equal(t, version, e.LatestVersion())
		})
	}

	interest, err := e.GeneratedInterest(alice, "DAI")
	require.NoError(t, err)
	assert.Amount(t, "5000", interest)
}

func TestNotInitialized(t *testing.T) {
	e, err := NewEngine(iavl.NewMemCommitStore())
	require.NoError(t, err)
	require.Equal(t, "", e.ChainID())

	_, err = e.InvertibleTokens(context.Background())
	require.True(t, errors.ErrState.Is(err))
	err = e.Invest(context.Background(), "DAI", decimal.New(1, 0))
	require.True(t, errors.ErrState.Is(err))
}

func TestGenesisOnlyOnce(t *testing.T) {
	env := newTestEnv(t, iavl.NewMemCommitStore())
	require.Equal(t, "test-chain", env.engine.ChainID())

	gen, err := GenesisParams{ChainID: "other-chain", Admin: env.admin, Tokens: DefaultTokens}.Build()
	require.NoError(t, err)
	err = env.engine.InitGenesis(gen)
	require.True(t, errors.ErrState.Is(err))
	require.Equal(t, "test-chain", env.engine.ChainID())
}

func TestGenesisValidation(t *testing.T) {
	admin := weavetest.NewAddress()

	cases := map[string]struct {
		params  GenesisParams
		wantErr *errors.Error
	}{
		"single token without reserve": {
			params: GenesisParams{
				ChainID: "test-chain",
				Admin:   admin,
				Tokens: []TokenParams{
					{Symbol: "DAI", Underlying: "DAI", Wrapped: "cDAI", Rate: "0.02"},
				},
			},
		},
		"no tokens": {
			params: GenesisParams{
				ChainID: "test-chain",
				Admin:   admin,
			},
			wantErr: errors.ErrInput,
		},
		"invalid rate": {
			params: GenesisParams{
				ChainID: "test-chain",
				Admin:   admin,
				Tokens: []TokenParams{
					{Symbol: "DAI", Underlying: "DAI", Wrapped: "cDAI", Rate: "-1"},
				},
			},
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			e, err := NewEngine(iavl.NewMemCommitStore())
			require.NoError(t, err)
			gen, err := tc.params.Build()
			require.NoError(t, err)
			err = e.InitGenesis(gen)
			require.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
			if tc.wantErr != nil {
				require.Equal(t, "", e.ChainID())
				require.Equal(t, int64(0), e.LatestVersion().Version)
			}
		})
	}

	// Supported token without a money market.
	gen, err := GenesisParams{ChainID: "test-chain", Admin: admin, Tokens: DefaultTokens}.Build()
	require.NoError(t, err)
	gen.AppState["market"] = []byte(`[]`)
	e, err := NewEngine(iavl.NewMemCommitStore())
	require.NoError(t, err)
	err = e.InitGenesis(gen)
	require.True(t, errors.ErrNotFound.Is(err), "unexpected error: %+v", err)

	_, err = GenesisParams{ChainID: "x", Admin: admin}.Build()
	require.True(t, errors.ErrInput.Is(err))
	_, err = GenesisParams{ChainID: "test-chain"}.Build()
	require.True(t, errors.ErrZeroAddress.Is(err))
}

func TestPersistence(t *testing.T) {
	dir, err := ioutil.TempDir("", "charity-app-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	db, err := iavl.NewCommitStore(dir, "charity")
	require.NoError(t, err)
	env := newTestEnv(t, db)
	alice := env.as(env.alice)
	require.NoError(t, env.engine.Approve(alice, coin.NewCoin(1000, "DAI")))
	require.NoError(t, env.engine.Invest(alice, "DAI", decimal.New(1000, 0)))
	db.Close()

	db, err = iavl.NewCommitStore(dir, "charity")
	require.NoError(t, err)
	defer db.Close()
	e, err := NewEngine(db)
	require.NoError(t, err)
	require.Equal(t, "test-chain", e.ChainID())

	invested, err := e.InvestedAmount(alice, "DAI")
	require.NoError(t, err)
	assert.Amount(t, "1000", invested)
	entries, err := e.Events(alice)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestLoadGenesisFile(t *testing.T) {
	gen, err := LoadGenesis("testdata/genesis.json")
	require.NoError(t, err)
	require.Equal(t, "charity-test", gen.ChainID)

	e, err := NewEngine(iavl.NewMemCommitStore())
	require.NoError(t, err)
	require.NoError(t, e.LoadGenesisFile("testdata/genesis.json"))

	tokens, err := e.InvertibleTokens(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"DAI"}, tokens)

	_, err = LoadGenesis("testdata/missing.json")
	require.True(t, errors.ErrInput.Is(err))
}
