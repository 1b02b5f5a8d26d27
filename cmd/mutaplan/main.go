// Package main is the entry point for the mutaplan CLI, a thin dry-run
// harness over the otherwise-pure mutation planner.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/mutaplan/cmd/mutaplan/commands"
)

var (
	// Version information (set at build time).
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:     "mutaplan",
		Short:   "Mutation planner for a GraphQL-to-relational data layer",
		Long:    "mutaplan compiles a single nested create/update/upsert/delete request against a typed schema into an ordered vector of database mutactions.",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
	}

	rootCmd.AddCommand(commands.NewPlanCommand())

	return rootCmd.Execute()
}
