package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "m0convert.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/m0convert"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
)

// envOverrides are read from the environment after the config files.
// Unset variables leave the file values untouched.
type envOverrides struct {
	Input     []string `env:"M0_INPUT" env-separator:","`
	OutputDir string   `env:"M0_OUTPUT_DIR"`
	Format    string   `env:"M0_FORMAT"`
	LogLevel  string   `env:"M0_LOG_LEVEL"`
	Schema    string   `env:"M0_SCHEMA"`
	GeoAPI    string   `env:"M0_GEO_API"`
	NATSURL   string   `env:"M0_NATS_URL"`
}

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// layer is one configuration file of the precedence chain.
type layer struct {
	name     string
	path     string
	required bool
}

// layers lists the files merged over the defaults, lowest precedence first:
// the user config, then the explicit file or, without one, the nearest
// project config.
func (l *Loader) layers(explicit string) []layer {
	var out []layer
	if home, err := os.UserHomeDir(); err == nil {
		out = append(out, layer{name: "user", path: filepath.Join(home, UserConfigDir, UserConfigFile)})
	}
	if explicit != "" {
		return append(out, layer{name: "explicit", path: explicit, required: true})
	}
	if project := findUpward(ProjectConfigFile); project != "" {
		out = append(out, layer{name: "project", path: project})
	}
	return out
}

// Load merges the defaults, the config files and the M0_* environment
// variables, then validates the result. A missing explicit file is an error;
// missing user and project files are skipped.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	for _, ly := range l.layers(path) {
		fileCfg, err := LoadFromFile(ly.path)
		switch {
		case err == nil:
			l.logger.Debug("Loaded config", "layer", ly.name, "path", ly.path)
			cfg.Merge(fileCfg)
		case ly.required:
			return nil, fmt.Errorf("load config %s: %w", ly.path, err)
		case !errors.Is(err, fs.ErrNotExist):
			l.logger.Warn("Failed to load config", "layer", ly.name, "path", ly.path, "error", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(config *Config) error {
	var env envOverrides
	if err := cleanenv.ReadEnv(&env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	config.Merge(&Config{
		Input:    InputConfig{Patterns: env.Input},
		Output:   OutputConfig{Dir: env.OutputDir, Format: env.Format},
		SIMS:     SIMSConfig{Schema: env.Schema},
		Geo:      GeoConfig{API: env.GeoAPI},
		Publish:  PublishConfig{URL: env.NATSURL},
		LogLevel: env.LogLevel,
	})
	return nil
}

// WriteDefault writes the default configuration to path unless a file is
// already there. It reports whether the file was created.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := DefaultConfig().SaveToFile(path); err != nil {
		return false, err
	}
	return true, nil
}

// findUpward returns the first file called name in the working directory or
// one of its parents.
func findUpward(name string) string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
