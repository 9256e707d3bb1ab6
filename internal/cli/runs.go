package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/sentinel/internal/wire"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect sentinel run history",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		runs, err := wire.SentinelService().ListRuns(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded")
			return nil
		}

		fmt.Printf("\n%-20s %-7s %-5s %-6s %-9s %s\n", "TASK", "RESULT", "TIER", "ITERS", "COST", "CREATED")
		fmt.Println(strings.Repeat("─", 70))
		for _, r := range runs {
			fmt.Printf("%-20s %-7s %-5d %-6d $%-8.4f %s\n", r.TaskID, r.Result, r.TierUsed, r.Iterations, r.CostUSD, r.CreatedAt)
		}
		fmt.Println()
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show the latest run for a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := wire.SentinelService().GetRun(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get run: %w", err)
		}

		fmt.Printf("\nRun:        %s\n", run.ID)
		fmt.Printf("Task:       %s\n", run.TaskID)
		fmt.Printf("Result:     %s\n", run.Result)
		fmt.Printf("Tier used:  %d\n", run.TierUsed)
		fmt.Printf("Iterations: %d\n", run.Iterations)
		fmt.Printf("Cost:       $%.4f\n", run.CostUSD)
		fmt.Printf("Created:    %s\n", run.CreatedAt)
		if len(run.FilesChanged) > 0 {
			fmt.Println("Files changed:")
			for _, f := range run.FilesChanged {
				fmt.Printf("  - %s\n", f)
			}
		}
		fmt.Println()
		return nil
	},
}

func RunsCmd() *cobra.Command {
	runsListCmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to list")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	return runsCmd
}
