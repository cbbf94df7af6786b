package app

import (
	"context"
	"sync"
	"time"

	"github.com/iov-one/charity"
	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/x"
	"github.com/iov-one/charity/x/cash"
	"github.com/iov-one/charity/x/donation"
	"github.com/iov-one/charity/x/invest"
	"github.com/iov-one/charity/x/market"
	"github.com/iov-one/charity/x/trust"
	"github.com/tendermint/tendermint/libs/log"
)

// Subscriber is notified about every event of a committed operation.
// Subscribers are called while the engine is locked and must not call the
// engine.
type Subscriber func(charity.Event)

// Option configures an engine.
type Option func(*Engine)

// WithLogger sets the logger of all operations.
func WithLogger(logger log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics sets the collectors updated by all operations.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithSubscriber registers a subscriber of committed events.
func WithSubscriber(s Subscriber) Option {
	return func(e *Engine) {
		e.subscribers = append(e.subscribers, s)
	}
}

// Engine owns the state of a single donation engine instance. Operations are
// serialized and each of them is atomic.
type Engine struct {
	mu          sync.Mutex
	store       charity.CommitKVStore
	logger      log.Logger
	metrics     *Metrics
	journal     *Journal
	subscribers []Subscriber

	// Set once the genesis is loaded.
	chainID  string
	cash     *cash.Controller
	market   *market.Controller
	registry *trust.Registry
	ledger   *invest.Ledger
	donation *donation.Engine
}

// NewEngine loads the latest version of the store. If the store was already
// initialized from a genesis, the engine is ready to use. Otherwise
// InitGenesis must be called first.
func NewEngine(store charity.CommitKVStore, opts ...Option) (*Engine, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	e := &Engine{
		store:   store,
		logger:  log.NewNopLogger(),
		metrics: NewMetrics(nil),
		journal: NewJournal(),
	}
	for _, opt := range opts {
		opt(e)
	}

	chainID, err := loadChainID(store)
	if err != nil {
		return nil, err
	}
	if chainID != "" {
		if err := e.setup(store, chainID); err != nil {
			return nil, errors.Wrap(err, "cannot load configuration")
		}
	}
	return e, nil
}

// setup builds all extensions using the configuration stored in the
// genesis.
func (e *Engine) setup(db charity.ReadOnlyKVStore, chainID string) error {
	tconf, err := trust.LoadConfiguration(db)
	if err != nil {
		return errors.Wrap(err, "trust")
	}
	iconf, err := invest.LoadConfiguration(db)
	if err != nil {
		return errors.Wrap(err, "invest")
	}

	auth := x.CallerAuth{}
	e.cash = cash.NewController(auth)
	e.market = market.NewController(auth, e.cash)
	e.registry = trust.NewRegistry(auth, tconf.Admin)
	e.ledger = invest.NewLedger(auth, iconf, e.cash, e.market)
	e.donation = donation.NewEngine(auth, iconf.Admin, e.registry, e.ledger, e.cash)
	e.chainID = chainID
	return nil
}

// InitGenesis initializes the state of a new engine. It can be called only
// once for a store.
func (e *Engine) InitGenesis(gen Genesis) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	defer func() { logDuration(e.logger, start, "genesis", err, false) }()

	if e.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis already loaded for %q", e.chainID)
	}
	cache := e.store.CacheWrap()
	if err := e.initGenesis(cache, gen); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if _, err := e.store.Commit(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return e.setup(e.store, gen.ChainID)
}

func (e *Engine) initGenesis(db charity.KVStore, gen Genesis) (err error) {
	defer errors.Recover(&err)

	if err := saveChainID(db, gen.ChainID); err != nil {
		return err
	}
	if err := Initializer().FromGenesis(gen.AppState, db); err != nil {
		return err
	}

	// Every supported token must be backed by a money market.
	iconf, err := invest.LoadConfiguration(db)
	if err != nil {
		return errors.Wrap(err, "invest")
	}
	mm := market.NewController(nil, cash.NewController(nil))
	for _, t := range iconf.Tokens {
		underlying, err := mm.Underlying(db, t.Wrapped)
		if err != nil {
			return errors.Wrapf(err, "market of %s", t.Symbol)
		}
		if underlying != t.Underlying {
			return errors.Wrapf(errors.ErrInput, "market %s wraps %s, not %s", t.Wrapped, underlying, t.Underlying)
		}
	}
	return nil
}

// LoadGenesisFile initializes the state from a genesis file.
func (e *Engine) LoadGenesisFile(path string) error {
	gen, err := LoadGenesis(path)
	if err != nil {
		return err
	}
	return e.InitGenesis(gen)
}

// ChainID returns the identifier of this instance or an empty string if the
// genesis was not loaded yet.
func (e *Engine) ChainID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chainID
}

// LatestVersion returns the version of the last commit.
func (e *Engine) LatestVersion() charity.CommitID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.LatestVersion()
}

// operation is the body of an engine operation. It runs on a cache of the
// committed state.
type operation func(ctx context.Context, db charity.KVStore) error

// mutate runs an operation that changes the state. The cache is written and
// committed only if the operation succeeds.
func (e *Engine) mutate(ctx context.Context, op string, fn operation) error {
	return e.run(ctx, op, true, fn)
}

// query runs an operation that only reads the state.
func (e *Engine) query(ctx context.Context, op string, fn operation) error {
	return e.run(ctx, op, false, fn)
}

func (e *Engine) run(ctx context.Context, op string, commit bool, fn operation) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	logger := e.logger
	if caller := charity.GetCaller(ctx); caller != nil {
		logger = logger.With("caller", caller)
	}
	defer func() {
		e.metrics.observe(op, start, err)
		logDuration(logger, start, op, err, !commit)
	}()

	if e.donation == nil {
		return errors.Wrap(errors.ErrState, "genesis not loaded")
	}

	events := &charity.EventBuffer{}
	ctx = charity.WithEventBuffer(charity.WithLogger(ctx, logger.With("op", op)), events)
	cache := e.store.CacheWrap()
	if err := call(ctx, cache, fn); err != nil {
		cache.Discard()
		return err
	}
	if !commit {
		cache.Discard()
		return nil
	}

	if _, err := e.journal.Append(cache, op, events.Events()); err != nil {
		cache.Discard()
		return errors.Wrap(err, "journal")
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if _, err := e.store.Commit(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	e.publish(events.Events())
	return nil
}

// call executes the operation, turning a panic into ErrPanic.
func call(ctx context.Context, db charity.KVStore, fn operation) (err error) {
	defer errors.Recover(&err)
	return fn(ctx, db)
}

func (e *Engine) publish(events []charity.Event) {
	for _, ev := range events {
		switch ev := ev.(type) {
		case invest.Invested:
			e.metrics.addInvested(ev.Token, ev.Amount)
		case donation.Donation:
			e.metrics.addDonated(ev.Token, ev.Amount)
		}
		for _, s := range e.subscribers {
			s(ev)
		}
	}
}
