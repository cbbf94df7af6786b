package main

import (
	"fmt"

	"github.com/iov-one/charity/errors"
	"github.com/iov-one/charity/x/donation"
	"github.com/spf13/cobra"
)

func distributeCmd(e *env) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "distribute ADDRESS:PERCENT...",
		Short: "Give away all generated interest to trusted beneficiaries",
		Long: `Redeem the interest generated by every token pool and transfer it to the
listed beneficiaries. Percentages must sum up to 100. With --dry-run the
donations are only computed and printed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := callerContext(cmd)
			if err != nil {
				return err
			}
			splits, err := parseSplits(args)
			if err != nil {
				return err
			}
			engine, closeDB, err := e.openEngine()
			if err != nil {
				return err
			}
			defer closeDB()

			var res []donation.Donation
			if dryRun {
				res, err = engine.Preview(ctx, splits)
			} else {
				res, err = engine.Distribute(ctx, splits)
			}
			if err != nil {
				return err
			}
			for _, d := range res {
				fmt.Fprintf(e.out, "%s\t%s %s\n", d.Beneficiary, d.Amount, d.Token)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only print what would be donated")
	addAsFlag(cmd)
	return cmd
}

func parseSplits(args []string) ([]donation.Split, error) {
	splits := make([]donation.Split, 0, len(args))
	var errs error
	for i, a := range args {
		s, err := donation.ParseSplit(a)
		if err != nil {
			errs = errors.AppendField(errs, fmt.Sprintf("Splits.%d", i), err)
			continue
		}
		splits = append(splits, s)
	}
	if errs != nil {
		return nil, errs
	}
	return splits, nil
}
