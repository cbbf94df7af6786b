package main

import (
	"fmt"

	"github.com/iov-one/charity/coin"
	"github.com/spf13/cobra"
)

func tokenCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Inspect supported tokens and move simulated funds",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List tokens accepted for investment",
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
			tokens, err := engine.Tokens(ctx)
			if err != nil {
				return err
			}
			for _, t := range tokens {
				fmt.Fprintf(e.out, "%s\t%s\t%s\n", t.Symbol, t.Underlying, t.Wrapped)
			}
			return nil
		},
	}

	approve := &cobra.Command{
		Use:   "approve TICKER AMOUNT",
		Short: "Allow the engine to take up to AMOUNT tokens from the caller",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := callerContext(cmd)
			if err != nil {
				return err
			}
			c, err := coin.ParseCoin(args[1] + " " + args[0])
			if err != nil {
				return err
			}
			engine, closeDB, err := e.openEngine()
			if err != nil {
				return err
			}
			defer closeDB()
			if err := engine.Approve(ctx, c); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "approved %s\n", c)
			return nil
		},
	}
	addAsFlag(approve)

	balance := &cobra.Command{
		Use:   "balance TICKER ADDRESS",
		Short: "Print the balance of an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := callerContext(cmd)
			if err != nil {
				return err
			}
			owner, err := parseAddress(args[1])
			if err != nil {
				return err
			}
			engine, closeDB, err := e.openEngine()
			if err != nil {
				return err
			}
			defer closeDB()
			amount, err := engine.Balance(ctx, owner, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(e.out, amount)
			return nil
		},
	}

	fund := &cobra.Command{
		Use:   "fund TICKER ADDRESS AMOUNT",
		Short: "Issue new tokens to an account",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := callerContext(cmd)
			if err != nil {
				return err
			}
			owner, err := parseAddress(args[1])
			if err != nil {
				return err
			}
			c, err := coin.ParseCoin(args[2] + " " + args[0])
			if err != nil {
				return err
			}
			engine, closeDB, err := e.openEngine()
			if err != nil {
				return err
			}
			defer closeDB()
			if err := engine.Fund(ctx, owner, c); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "funded %s with %s\n", owner, c)
			return nil
		},
	}
	addAsFlag(fund)

	cmd.AddCommand(list, approve, balance, fund)
	return cmd
}
