package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/sentinel/internal/adapters/planfile"
	"github.com/example/sentinel/internal/ports/primary"
	"github.com/example/sentinel/internal/wire"
)

var injectCmd = &cobra.Command{
	Use:   "inject [plan-file]",
	Short: "Expand a task plan with sentinel validation tasks",
	Long: `Inject reads a YAML task plan, inserts one sentinel task immediately
after each regular task, persists the expanded plan, and appends a
checklist entry per inserted task.

Injection is idempotent: tasks already covered by a sentinel task are
left alone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := planfile.Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to load plan: %w", err)
		}

		resp, err := wire.PlanService().Inject(cmd.Context(), primary.InjectRequest{Plan: plan})
		if err != nil {
			return fmt.Errorf("failed to inject sentinel tasks: %w", err)
		}

		if len(resp.Inserted) == 0 {
			fmt.Println("No sentinel tasks inserted, plan unchanged")
			return nil
		}
		for _, t := range resp.Inserted {
			fmt.Printf("✓ Inserted %s (wave %s, validates %s)\n", t.ID, t.WaveID, t.ParentID())
		}
		fmt.Printf("\n%d sentinel tasks inserted, plan now has %d tasks\n", len(resp.Inserted), len(resp.Plan.Tasks))
		return nil
	},
}

func InjectCmd() *cobra.Command {
	return injectCmd
}
