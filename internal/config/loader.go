package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// DefaultPath is the per-project configuration file location.
const DefaultPath = ".sentinel/config.yaml"

// Load reads configuration from the YAML file at configPath, then
// overrides with environment variables.
//
// Precedence (highest to lowest):
//  1. Environment variables (SENTINEL_RADIUS_MAX_FILES, ...)
//  2. YAML config file
//  3. Defaults
//
// A missing file is not an error; defaults plus environment apply.
// Environment variables map through the SENTINEL_ prefix with
// underscores as section separators:
//
//	SENTINEL_SENTINEL_ENABLED      -> sentinel.enabled
//	SENTINEL_RADIUS_MAX_FILES      -> radius.max_files
//	SENTINEL_TIERS_LOCAL_BASE_URL  -> tiers.local.base_url
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath == "" {
		configPath = DefaultPath
	}

	if data, err := os.ReadFile(configPath); err == nil {
		if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := k.Load(env.Provider("SENTINEL_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// envTransform maps SENTINEL_SECTION_SOME_KEY to section.some_key.
// The first underscore-delimited token selects the section; the rest
// form the snake_case key, except tier variables which carry one more
// section level (SENTINEL_TIERS_LOCAL_BASE_URL -> tiers.local.base_url).
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "SENTINEL_"))
	parts := strings.SplitN(s, "_", 2)
	if len(parts) != 2 {
		return s
	}
	section, rest := parts[0], parts[1]
	if section == "tiers" {
		sub := strings.SplitN(rest, "_", 2)
		if len(sub) == 2 {
			return section + "." + sub[0] + "." + sub[1]
		}
	}
	return section + "." + rest
}
