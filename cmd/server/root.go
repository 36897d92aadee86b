package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree.  Running the binary without a
// subcommand starts the server.
func NewRootCmd() *cobra.Command {
	serve := newServeCmd()
	root := &cobra.Command{
		Use:          "venue-booking",
		Short:        "Wedding venue booking and availability API",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve)
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newTokenCmd())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
