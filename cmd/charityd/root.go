package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/charity"
	"github.com/iov-one/charity/app"
	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/store/iavl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagHome     = "home"
	flagLogLevel = "log-level"
	flagAs       = "as"

	// configName is the name of the configuration file stored in the
	// home directory, without extension.
	configName = "charityd"
	storeName  = "charity"
	envPrefix  = "CHARITY"
)

// env is shared by all commands of a single execution.
type env struct {
	conf *viper.Viper
	out  io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	e := &env{conf: viper.New(), out: out}

	root := &cobra.Command{
		Use:           "charityd",
		Short:         "Donation engine that gives away interest earned on deposits",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.loadConfig()
		},
	}
	root.SetOutput(out)

	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".charityd")
	root.PersistentFlags().String(flagHome, defaultHome, "directory to store files under")
	root.PersistentFlags().String(flagLogLevel, "info", "log level (debug, info, error or none)")
	_ = e.conf.BindPFlag("home", root.PersistentFlags().Lookup(flagHome))
	_ = e.conf.BindPFlag("log_level", root.PersistentFlags().Lookup(flagLogLevel))

	root.AddCommand(
		initCmd(e),
		beneficiaryCmd(e),
		tokenCmd(e),
		investCmd(e),
		investedCmd(e),
		interestCmd(e),
		rateCmd(e),
		distributeCmd(e),
		eventsCmd(e),
		serveCmd(e),
		versionCmd(e),
	)
	return root
}

// loadConfig reads the optional configuration file from the home directory.
// Environment variables prefixed with CHARITY take precedence over the file.
func (e *env) loadConfig() error {
	e.conf.SetEnvPrefix(envPrefix)
	e.conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	e.conf.AutomaticEnv()
	e.conf.SetDefault("genesis", "genesis.json")
	e.conf.SetDefault("metrics.bind", "localhost:9100")

	e.conf.SetConfigName(configName)
	e.conf.AddConfigPath(e.home())
	if err := e.conf.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errors.Wrapf(errors.ErrInput, "cannot read configuration: %s", err)
		}
	}
	return nil
}

func (e *env) home() string {
	return e.conf.GetString("home")
}

// path resolves a file name relative to the home directory.
func (e *env) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(e.home(), name)
}

func (e *env) logger() (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr)).With("module", "charity")
	opt, err := log.AllowLevel(e.conf.GetString("log_level"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(logger, opt), nil
}

// openEngine opens the persistent state stored in the home directory. If the
// state was never initialized, the configured genesis file is loaded.
// Returned function must be called to release the database.
func (e *env) openEngine(opts ...app.Option) (*app.Engine, func(), error) {
	logger, err := e.logger()
	if err != nil {
		return nil, nil, err
	}
	db, err := iavl.NewCommitStore(e.home(), storeName)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	opts = append([]app.Option{app.WithLogger(logger)}, opts...)
	engine, err := app.NewEngine(db, opts...)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	if engine.ChainID() == "" {
		genesis := e.path(e.conf.GetString("genesis"))
		if err := engine.LoadGenesisFile(genesis); err != nil {
			db.Close()
			return nil, nil, errors.Wrapf(err, "genesis %s", genesis)
		}
	}
	return engine, db.Close, nil
}

// addAsFlag registers the flag used to declare the identity of the caller.
func addAsFlag(cmd *cobra.Command) {
	cmd.Flags().String(flagAs, "", "address of the caller")
}

// callerContext returns a context carrying the identity passed with the --as
// flag. No flag means an anonymous caller.
func callerContext(cmd *cobra.Command) (context.Context, error) {
	ctx := context.Background()
	raw, err := cmd.Flags().GetString(flagAs)
	if err != nil || raw == "" {
		return ctx, nil
	}
	addr, err := charity.ParseAddress(raw)
	if err != nil {
		return nil, errors.Wrap(err, "caller")
	}
	return charity.WithCaller(ctx, addr), nil
}

func parseAddress(raw string) (charity.Address, error) {
	addr, err := charity.ParseAddress(raw)
	if err != nil {
		return nil, err
	}
	if addr.IsZero() {
		return nil, errors.Wrap(errors.ErrZeroAddress, raw)
	}
	return addr, nil
}
