package main

import (
	"fmt"
	"io"

	"github.com/iov-one/charity/x/trust"
	"github.com/spf13/cobra"
)

func beneficiaryCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "beneficiary",
		Short: "Manage the registry of trusted beneficiaries",
	}

	add := &cobra.Command{
		Use:   "add NAME ADDRESS",
		Short: "Register a new trusted beneficiary",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := callerContext(cmd)
			if err != nil {
				return err
			}
			addr, err := parseAddress(args[1])
			if err != nil {
				return err
			}
			engine, closeDB, err := e.openEngine()
			if err != nil {
				return err
			}
			defer closeDB()
			if err := engine.AddBeneficiary(ctx, args[0], addr); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "added %s %s\n", args[0], addr)
			return nil
		},
	}
	addAsFlag(add)

	toggle := func(use, short string, enable bool) *cobra.Command {
		c := &cobra.Command{
			Use:   use + " ADDRESS",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, err := callerContext(cmd)
				if err != nil {
					return err
				}
				addr, err := parseAddress(args[0])
				if err != nil {
					return err
				}
				engine, closeDB, err := e.openEngine()
				if err != nil {
					return err
				}
				defer closeDB()
				if enable {
					err = engine.EnableBeneficiary(ctx, addr)
				} else {
					err = engine.DisableBeneficiary(ctx, addr)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(e.out, "%sd %s\n", use, addr)
				return nil
			},
		}
		addAsFlag(c)
		return c
	}

	var all bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List trusted beneficiaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := callerContext(cmd)
			if err != nil {
				return err
			}
			engine, closeDB, err := e.openEngine()
			if err != nil {
				return err
			}
			defer closeDB()
			var bs []*trust.Beneficiary
			if all {
				bs, err = engine.ListBeneficiaries(ctx)
			} else {
				bs, err = engine.ListTrustedBeneficiaries(ctx)
			}
			if err != nil {
				return err
			}
			printBeneficiaries(e.out, bs)
			return nil
		},
	}
	list.Flags().BoolVar(&all, "all", false, "include disabled beneficiaries")

	trusted := &cobra.Command{
		Use:   "trusted ADDRESS",
		Short: "Tell if an address is a trusted beneficiary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := callerContext(cmd)
			if err != nil {
				return err
			}
			addr, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			engine, closeDB, err := e.openEngine()
			if err != nil {
				return err
			}
			defer closeDB()
			ok, err := engine.IsBeneficiaryTrusted(ctx, addr)
			if err != nil {
				return err
			}
			fmt.Fprintln(e.out, ok)
			return nil
		},
	}

	cmd.AddCommand(
		add,
		toggle("disable", "Stop accepting a beneficiary in distributions", false),
		toggle("enable", "Accept a disabled beneficiary again", true),
		list,
		trusted,
	)
	return cmd
}

func printBeneficiaries(w io.Writer, bs []*trust.Beneficiary) {
	for _, b := range bs {
		state := "enabled"
		if !b.Enabled {
			state = "disabled"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", b.Address, state, b.Name)
	}
}
