package main

import (
	"fmt"

	"github.com/iov-one/charity"
	"github.com/spf13/cobra"
)

func eventsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Print all events of committed operations, oldest first",
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
			entries, err := engine.Events(ctx)
			if err != nil {
				return err
			}
			for _, en := range entries {
				fmt.Fprintf(e.out, "%d\t%s\t%s\t%s\n", en.Sequence, en.Operation, en.Kind, en.Payload)
			}
			return nil
		},
	}
}

func versionCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(e.out, charity.Version())
			return nil
		},
	}
}
