// Package config provides configuration loading for the Sentinel.
//
// Configuration is read from .sentinel/config.yaml with SENTINEL_*
// environment overrides. The resulting value is threaded explicitly into
// constructors, never consulted as ambient process state, so alternate
// configurations can be exercised in-process by tests.
package config

import (
	"fmt"
	"time"
)

// Cascade modes.
const (
	ModeAuto       = "auto"
	ModeHumanGated = "human-gated"
)

// Config holds the complete Sentinel configuration.
type Config struct {
	Sentinel SentinelConfig `koanf:"sentinel"`
	Radius   RadiusConfig   `koanf:"radius"`
	Tiers    TiersConfig    `koanf:"tiers"`
}

// SentinelConfig holds the subsystem toggles and collaborator paths.
type SentinelConfig struct {
	// Enabled gates injection entirely. It must be false while the
	// Sentinel subsystem itself is being built, so no Sentinel task can
	// ever validate its own build.
	Enabled   bool   `koanf:"enabled"`
	Mode      string `koanf:"mode"` // "auto" or "human-gated"
	TasksFile string `koanf:"tasks_file"`
	AuditDir  string `koanf:"audit_dir"`
}

// RadiusConfig holds the change-radius budgets. MaxLines is a gross
// budget: additions plus deletions.
type RadiusConfig struct {
	MaxFiles       int  `koanf:"max_files"`
	MaxLines       int  `koanf:"max_lines"`
	AllowInterface bool `koanf:"allow_interface"`
}

// TiersConfig holds per-tier endpoints and budgets.
type TiersConfig struct {
	Local LocalTierConfig `koanf:"local"`
	Cloud CloudTierConfig `koanf:"cloud"`
}

// LocalTierConfig configures the tier-1 local model endpoint.
type LocalTierConfig struct {
	BaseURL       string        `koanf:"base_url"`
	Model         string        `koanf:"model"`
	MaxIterations int           `koanf:"max_iterations"`
	Timeout       time.Duration `koanf:"timeout"`
}

// CloudTierConfig configures the tier-2 cloud model endpoint. Costs are
// per 1000 tokens and feed the per-run monetary budget.
type CloudTierConfig struct {
	Model                string        `koanf:"model"`
	MaxIterations        int           `koanf:"max_iterations"`
	Timeout              time.Duration `koanf:"timeout"`
	MaxCostUSD           float64       `koanf:"max_cost_usd"`
	PromptCostPer1K      float64       `koanf:"prompt_cost_per_1k"`
	CompletionCostPer1K  float64       `koanf:"completion_cost_per_1k"`
}

// Default returns the configuration with all documented defaults applied.
func Default() Config {
	return Config{
		Sentinel: SentinelConfig{
			Enabled:   true,
			Mode:      ModeAuto,
			TasksFile: "TASKS.md",
			AuditDir:  ".sentinel/runs",
		},
		Radius: RadiusConfig{
			MaxFiles:       3,
			MaxLines:       150,
			AllowInterface: false,
		},
		Tiers: TiersConfig{
			Local: LocalTierConfig{
				BaseURL:       "http://localhost:11434",
				Model:         "qwen2.5-coder",
				MaxIterations: 5,
				Timeout:       300 * time.Second,
			},
			Cloud: CloudTierConfig{
				Model:               "gpt-4o-mini",
				MaxIterations:       10,
				Timeout:             600 * time.Second,
				MaxCostUSD:          2.0,
				PromptCostPer1K:     0.00015,
				CompletionCostPer1K: 0.0006,
			},
		},
	}
}

// Validate checks the configuration for values the Sentinel cannot run with.
func (c *Config) Validate() error {
	if c.Sentinel.Mode != ModeAuto && c.Sentinel.Mode != ModeHumanGated {
		return fmt.Errorf("invalid cascade mode %q (must be %q or %q)", c.Sentinel.Mode, ModeAuto, ModeHumanGated)
	}
	if c.Radius.MaxFiles <= 0 {
		return fmt.Errorf("radius.max_files must be positive, got %d", c.Radius.MaxFiles)
	}
	if c.Radius.MaxLines <= 0 {
		return fmt.Errorf("radius.max_lines must be positive, got %d", c.Radius.MaxLines)
	}
	if c.Tiers.Local.MaxIterations <= 0 || c.Tiers.Cloud.MaxIterations <= 0 {
		return fmt.Errorf("tier iteration caps must be positive")
	}
	if c.Tiers.Cloud.MaxCostUSD < 0 {
		return fmt.Errorf("tiers.cloud.max_cost_usd must not be negative, got %f", c.Tiers.Cloud.MaxCostUSD)
	}
	return nil
}
