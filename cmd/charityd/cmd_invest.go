package main

import (
	"fmt"

	"github.com/iov-one/charity/coin"
	"github.com/spf13/cobra"
)

func investCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invest TICKER AMOUNT",
		Short: "Deposit previously approved tokens into the pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := callerContext(cmd)
			if err != nil {
				return err
			}
			amount, err := coin.ParseAmount(args[1])
			if err != nil {
				return err
			}
			engine, closeDB, err := e.openEngine()
			if err != nil {
				return err
			}
			defer closeDB()
			if err := engine.Invest(ctx, args[0], amount); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "invested %s %s\n", amount, args[0])
			return nil
		},
	}
	addAsFlag(cmd)
	return cmd
}

func investedCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "invested TICKER",
		Short: "Print the total principal deposited in a token",
		Args:  cobra.ExactArgs(1),
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
			amount, err := engine.InvestedAmount(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(e.out, amount)
			return nil
		},
	}
}

func interestCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "interest TICKER",
		Short: "Print the interest generated by a token pool",
		Args:  cobra.ExactArgs(1),
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
			amount, err := engine.GeneratedInterest(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(e.out, amount)
			return nil
		},
	}
}

func rateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Simulate money market movements",
	}
	set := &cobra.Command{
		Use:   "set WRAPPED RATE",
		Short: "Change the exchange rate of a wrapped token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := callerContext(cmd)
			if err != nil {
				return err
			}
			rate, err := coin.ParseRate(args[1])
			if err != nil {
				return err
			}
			engine, closeDB, err := e.openEngine()
			if err != nil {
				return err
			}
			defer closeDB()
			if err := engine.SetExchangeRate(ctx, args[0], rate); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "%s rate set to %s\n", args[0], rate)
			return nil
		},
	}
	addAsFlag(set)
	cmd.AddCommand(set)
	return cmd
}
