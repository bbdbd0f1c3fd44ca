// Package config loads the runtime configuration for the winner-selection
// tool from a YAML file, with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the complete tool configuration.
type Config struct {
	Run   RunConfig   `yaml:"run"`
	Split SplitConfig `yaml:"split"`
}

// RunConfig controls the counterfactual replay.
type RunConfig struct {
	// Input is the path of the materialized auction series JSON file.
	Input string `yaml:"input"`
	// Output is the snapshot path; empty disables the snapshot file.
	Output string `yaml:"output"`
	// AuctionIndex restricts the run to a single auction of the series;
	// nil or -1 runs the whole sequence. A pointer because index 0 is a
	// valid restriction.
	AuctionIndex         *int  `yaml:"auction_index"`
	CumulativeFiltering  bool  `yaml:"cumulative_filtering"`
	RemoveExecutedOrders *bool `yaml:"remove_executed_orders"`
}

// SplitConfig controls the solution splitter applied before the mechanism.
type SplitConfig struct {
	Enabled        *bool   `yaml:"enabled"`
	EfficiencyLoss float64 `yaml:"efficiency_loss"`
	Approach       string  `yaml:"approach"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Load reads the YAML file at path and applies .env / environment overrides
// and defaults. Values left out of the file keep their defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Run.AuctionIndex == nil {
		cfg.Run.AuctionIndex = intPtr(-1)
	}
	if cfg.Run.RemoveExecutedOrders == nil {
		cfg.Run.RemoveExecutedOrders = boolPtr(true)
	}
	if cfg.Split.Enabled == nil {
		cfg.Split.Enabled = boolPtr(true)
	}
	if cfg.Split.EfficiencyLoss == 0 {
		cfg.Split.EfficiencyLoss = 0.01
	}
	if cfg.Split.Approach == "" {
		cfg.Split.Approach = "complete"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("COMB_INPUT"); v != "" {
		cfg.Run.Input = v
	}
	if v := os.Getenv("COMB_OUTPUT"); v != "" {
		cfg.Run.Output = v
	}
	if v := os.Getenv("COMB_AUCTION_INDEX"); v != "" {
		if index, err := strconv.Atoi(v); err == nil {
			cfg.Run.AuctionIndex = intPtr(index)
		}
	}
	if v := os.Getenv("COMB_EFFICIENCY_LOSS"); v != "" {
		if loss, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Split.EfficiencyLoss = loss
		}
	}
	if v := os.Getenv("COMB_APPROACH"); v != "" {
		cfg.Split.Approach = v
	}
}

func boolPtr(v bool) *bool { return &v }

func intPtr(v int) *int { return &v }
