package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/sentinel/internal/cli"
	"github.com/example/sentinel/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "sentinel",
		Short:   "Sentinel - per-task validation for wave-based build orchestration",
		Version: version.String(),
		Long: `Sentinel validates each completed build task with a tiered
check-and-repair loop, scores the change radius of every fix, and
leaves a permanent audit record per run.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InjectCmd())
	rootCmd.AddCommand(cli.RunCmd())
	rootCmd.AddCommand(cli.ProbeCmd())
	rootCmd.AddCommand(cli.RunsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
