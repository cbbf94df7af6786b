package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/iov-one/charity/app"
	"github.com/iov-one/charity/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cmn "github.com/tendermint/tendermint/libs/common"
)

func initCmd(e *env) *cobra.Command {
	var (
		admin      string
		chainID    string
		engineSeed string
		dummyData  bool
		force      bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write default genesis and configuration files to the home directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if admin == "" {
				return errors.Wrap(errors.ErrInput, "admin address is required")
			}
			adminAddr, err := parseAddress(admin)
			if err != nil {
				return errors.Wrap(err, "admin")
			}
			if chainID == "" {
				chainID = fmt.Sprintf("charity-%v", cmn.RandStr(6))
			}
			params := app.GenesisParams{
				ChainID:    chainID,
				Admin:      adminAddr,
				EngineSeed: engineSeed,
				Tokens:     app.DefaultTokens,
			}
			if dummyData {
				params.Beneficiaries = app.DummyBeneficiaries()
			}
			gen, err := params.Build()
			if err != nil {
				return err
			}

			if err := os.MkdirAll(e.home(), 0755); err != nil {
				return errors.Wrap(errors.ErrDatabase, err.Error())
			}
			genFile := e.path("genesis.json")
			if fileExists(genFile) && !force {
				return errors.Wrapf(errors.ErrDuplicate, "genesis file %s", genFile)
			}
			raw, err := json.MarshalIndent(gen, "", "  ")
			if err != nil {
				return errors.Wrap(errors.ErrHuman, err.Error())
			}
			if err := ioutil.WriteFile(genFile, raw, 0644); err != nil {
				return errors.Wrap(errors.ErrDatabase, err.Error())
			}

			conf := viper.New()
			conf.Set("log_level", e.conf.GetString("log_level"))
			conf.Set("genesis", "genesis.json")
			conf.Set("metrics.bind", e.conf.GetString("metrics.bind"))
			if err := conf.WriteConfigAs(e.path(configName + ".toml")); err != nil {
				return errors.Wrap(errors.ErrDatabase, err.Error())
			}

			fmt.Fprintf(e.out, "chain id:       %s\n", chainID)
			fmt.Fprintf(e.out, "engine address: %s\n", app.EngineAddress(engineSeed))
			fmt.Fprintf(e.out, "genesis:        %s\n", genFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&admin, "admin", "", "address allowed to manage beneficiaries")
	cmd.Flags().StringVar(&chainID, "chain-id", "", "identifier of this instance, random if not set")
	cmd.Flags().StringVar(&engineSeed, "engine-seed", "charity", "seed of the donation engine address")
	cmd.Flags().BoolVar(&dummyData, "dummy-data", false, "register a few beneficiaries for testing")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing genesis file")
	return cmd
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}
