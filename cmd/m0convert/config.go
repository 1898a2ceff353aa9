package main

import (
	"fmt"

	"github.com/c360studio/m0convert/config"
)

// loadConfig applies the layered configuration, then the command-line flags.
func loadConfig(flags globalFlags) (*config.Config, error) {
	cfg, err := config.NewLoader(nil).Load(flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyFlags(cfg, flags)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyFlags(cfg *config.Config, flags globalFlags) {
	cfg.Merge(&config.Config{
		Input:    config.InputConfig{Patterns: flags.input},
		Output:   config.OutputConfig{Dir: flags.outputDir, Format: flags.format},
		LogLevel: flags.logLevel,
	})
}
