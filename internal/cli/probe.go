package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/sentinel/internal/wire"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check local model tier availability",
	Long:  "Probe performs one liveness check against the local model endpoint. Results are never cached.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := wire.Config()
		if wire.SentinelService().Probe(cmd.Context()) {
			fmt.Printf("%s local tier available at %s\n", color.New(color.FgGreen).Sprint("✓"), cfg.Tiers.Local.BaseURL)
			return nil
		}
		fmt.Printf("%s local tier unavailable at %s (runs will escalate to the cloud tier)\n",
			color.New(color.FgYellow).Sprint("!"), cfg.Tiers.Local.BaseURL)
		return nil
	},
}

func ProbeCmd() *cobra.Command {
	return probeCmd
}
