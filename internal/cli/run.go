package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/sentinel/internal/models"
	"github.com/example/sentinel/internal/ports/primary"
	"github.com/example/sentinel/internal/wire"
)

// ExitWaveHalted is the process exit code for a halted wave, distinct
// from ordinary failures so the orchestrator can tell them apart.
const ExitWaveHalted = 2

var runCmd = &cobra.Command{
	Use:   "run [task-id]",
	Short: "Execute one sentinel validation run",
	Long: `Run probes the local model tier, executes the bounded check-and-repair
loop (escalating to the cloud tier when needed), scores the change
radius, and writes the audit record under the run directory.

Exit code 2 means the wave was halted; the audit record is written
before the halt is raised.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		workDir, _ := cmd.Flags().GetString("dir")

		resp, err := wire.SentinelService().Run(cmd.Context(), primary.RunRequest{
			TaskID:  args[0],
			WorkDir: workDir,
		})

		var halt *models.WaveHaltError
		if errors.As(err, &halt) {
			printRun(resp)
			fmt.Fprintf(os.Stderr, "\n%s %s\n", color.New(color.FgRed, color.Bold).Sprint("WAVE HALTED:"), halt.Reason)
			for _, v := range halt.Violations {
				fmt.Fprintf(os.Stderr, "  - %s\n", v.String())
			}
			os.Exit(ExitWaveHalted)
		}
		if err != nil {
			return err
		}

		printRun(resp)
		return nil
	},
}

func printRun(resp *primary.RunResponse) {
	if resp == nil {
		return
	}
	m := resp.Manifest

	var badge string
	switch m.Result {
	case models.RunResultPass:
		badge = color.New(color.FgGreen).Sprint("✓ PASS")
	case models.RunResultFail:
		badge = color.New(color.FgRed).Sprint("✗ FAIL")
	default:
		badge = color.New(color.FgYellow).Sprint("! ERROR")
	}
	fmt.Printf("%s %s (tier %d, %d iterations, $%.4f)\n", badge, m.TaskID, m.TierUsed, m.Iterations, m.CostUSD)

	for _, t := range resp.Tiers {
		switch {
		case t.Skipped:
			fmt.Printf("  tier %d: skipped (endpoint unavailable)\n", t.Tier)
		case t.Passed:
			fmt.Printf("  tier %d: passed after %d iterations\n", t.Tier, t.Iterations)
		default:
			fmt.Printf("  tier %d: failed after %d iterations\n", t.Tier, t.Iterations)
		}
	}

	if len(m.FilesChanged) > 0 {
		fmt.Printf("  files changed: %d\n", len(m.FilesChanged))
	}
	for _, v := range resp.Violations {
		fmt.Printf("  %s %s\n", color.New(color.FgYellow).Sprint("radius:"), v.String())
	}
	if resp.Annotated > 0 {
		fmt.Printf("  cascade: %d pending tasks annotated\n", resp.Annotated)
	}
	fmt.Printf("  audit: %s\n", resp.AuditDir)
}

func RunCmd() *cobra.Command {
	runCmd.Flags().StringP("dir", "d", ".", "Working directory of the repository under validation")
	return runCmd
}
