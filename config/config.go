// Package config provides configuration loading and management for m0convert.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete m0convert configuration
type Config struct {
	Input         InputConfig         `yaml:"input"`
	Output        OutputConfig        `yaml:"output"`
	URIs          URIConfig           `yaml:"uris"`
	Mapping       MappingConfig       `yaml:"mapping"`
	SIMS          SIMSConfig          `yaml:"sims"`
	Organizations OrganizationsConfig `yaml:"organizations"`
	Geo           GeoConfig           `yaml:"geo"`
	Publish       PublishConfig       `yaml:"publish"`
	Watch         WatchConfig         `yaml:"watch"`
	LogLevel      string              `yaml:"log_level"`
}

// InputConfig configures where the M0 dataset is read from
type InputConfig struct {
	// Patterns are doublestar globs of .nq, .nt or .ttl files
	Patterns []string `yaml:"patterns"`
	// GraphBase names the graph of triple files: {GraphBase}{file stem}
	GraphBase string `yaml:"graph_base"`
}

// OutputConfig configures the generated files
type OutputConfig struct {
	// Dir is the output directory, created when missing
	Dir string `yaml:"dir"`
	// Format is one of turtle, ntriples, nquads, trig
	Format string `yaml:"format"`
	// Metrics enables the Prometheus textfile with run diagnostics
	Metrics bool `yaml:"metrics"`
	// LockTimeout bounds the wait for the output directory lock
	LockTimeout time.Duration `yaml:"lock_timeout"`
}

// MappingConfig configures identifier allocation
type MappingConfig struct {
	// PoolStart and PoolEnd bound the shared pool of target ids (inclusive)
	PoolStart int `yaml:"pool_start"`
	PoolEnd   int `yaml:"pool_end"`
	// Reserved is the headroom kept after each type's pass, keyed by type token
	Reserved map[string]int `yaml:"reserved"`
	// Operations maps M0 operation ids to legacy Web4G ids
	Operations map[int]int `yaml:"operations"`
	// DDS maps DDS identifiers (without the OPE- prefix) to Web4G ids
	DDS map[string]int `yaml:"dds"`
	// SeriesOverrides are fixed series mappings applied last
	SeriesOverrides map[int]int `yaml:"series_overrides"`
	// Organizations overrides the identifier of some organisms
	Organizations map[int]string `yaml:"organizations"`
}

// SIMSConfig configures metadata report conversion
type SIMSConfig struct {
	// Schema is the YAML rendering of the SIMS-FR schema
	Schema string `yaml:"schema"`
	// NamedGraphs puts each report in its own named graph
	NamedGraphs bool `yaml:"named_graphs"`
	// IncludeIndicators attaches reports to indicators too
	IncludeIndicators bool `yaml:"include_indicators"`
	// RichText converts HTML fragments of free text to Markdown
	RichText bool `yaml:"rich_text"`
}

// OrganizationsConfig configures organization conversion
type OrganizationsConfig struct {
	// Reference lists files of known organizations, checked on dcterms:identifier
	Reference []string `yaml:"reference"`
}

// GeoConfig configures the geographic reference-data client
type GeoConfig struct {
	// API is the base URL of the metadata API, with a trailing slash
	API string `yaml:"api"`
	// Timeout bounds each HTTP request
	Timeout time.Duration `yaml:"timeout"`
	// MaxBodyBytes bounds the size of a response body
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
	// CodeList is the M0 code list holding geographic codes
	CodeList int `yaml:"code_list"`
}

// PublishConfig configures publishing of output graphs to JetStream
type PublishConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Stream        string `yaml:"stream"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

// WatchConfig configures the watch command
type WatchConfig struct {
	// Debounce is how long input changes are collected before a rerun
	Debounce time.Duration `yaml:"debounce"`
}

// Supported output formats.
var Formats = []string{"turtle", "ntriples", "nquads", "trig"}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Patterns:  []string{"data/m0/*.nq"},
			GraphBase: "http://rdf.insee.fr/graphe/",
		},
		Output: OutputConfig{
			Dir:         "out",
			Format:      "turtle",
			Metrics:     true,
			LockTimeout: 10 * time.Second,
		},
		URIs: DefaultURIs(),
		Mapping: MappingConfig{
			PoolStart: 1001,
			PoolEnd:   1999,
			Reserved: map[string]int{
				"serie":     50,
				"operation": 430,
			},
			Operations: map[int]int{},
			DDS:        map[string]int{},
			SeriesOverrides: map[int]int{
				135: 1241,
				136: 1195,
				137: 1284,
			},
			Organizations: map[int]string{
				81: "Drees",
			},
		},
		SIMS: SIMSConfig{
			Schema:      "data/sims-fr.yaml",
			NamedGraphs: false,
		},
		Geo: GeoConfig{
			API:          "https://api.insee.fr/metadonnees/V1/",
			Timeout:      30 * time.Second,
			MaxBodyBytes: 10 * 1024 * 1024,
			CodeList:     7,
		},
		Publish: PublishConfig{
			Enabled:       false,
			URL:           "nats://localhost:4222",
			Stream:        "M0CONVERT",
			SubjectPrefix: "m0convert.graph",
		},
		Watch: WatchConfig{
			Debounce: 2 * time.Second,
		},
		LogLevel: "info",
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if len(c.Input.Patterns) == 0 {
		return fmt.Errorf("input.patterns is required")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if !slices.Contains(Formats, c.Output.Format) {
		return fmt.Errorf("output.format must be one of %v", Formats)
	}
	if c.Mapping.PoolStart < 1 || c.Mapping.PoolEnd < c.Mapping.PoolStart {
		return fmt.Errorf("mapping pool [%d, %d] is empty", c.Mapping.PoolStart, c.Mapping.PoolEnd)
	}
	for token, n := range c.Mapping.Reserved {
		if n < 0 {
			return fmt.Errorf("mapping.reserved.%s must not be negative", token)
		}
	}
	if err := c.URIs.Validate(); err != nil {
		return err
	}
	if c.Geo.API == "" {
		return fmt.Errorf("geo.api is required")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	if c.Publish.Enabled && c.Publish.URL == "" {
		return fmt.Errorf("publish.url is required when publishing is enabled")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Input
	if len(other.Input.Patterns) > 0 {
		c.Input.Patterns = other.Input.Patterns
	}
	if other.Input.GraphBase != "" {
		c.Input.GraphBase = other.Input.GraphBase
	}

	// Output
	if other.Output.Dir != "" {
		c.Output.Dir = other.Output.Dir
	}
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
	if other.Output.Metrics {
		c.Output.Metrics = true
	}
	if other.Output.LockTimeout != 0 {
		c.Output.LockTimeout = other.Output.LockTimeout
	}

	c.URIs.Merge(other.URIs)

	// Mapping
	if other.Mapping.PoolStart != 0 {
		c.Mapping.PoolStart = other.Mapping.PoolStart
	}
	if other.Mapping.PoolEnd != 0 {
		c.Mapping.PoolEnd = other.Mapping.PoolEnd
	}
	c.Mapping.Reserved = mergeMap(c.Mapping.Reserved, other.Mapping.Reserved)
	c.Mapping.Operations = mergeMap(c.Mapping.Operations, other.Mapping.Operations)
	c.Mapping.DDS = mergeMap(c.Mapping.DDS, other.Mapping.DDS)
	c.Mapping.SeriesOverrides = mergeMap(c.Mapping.SeriesOverrides, other.Mapping.SeriesOverrides)
	c.Mapping.Organizations = mergeMap(c.Mapping.Organizations, other.Mapping.Organizations)

	// SIMS
	if other.SIMS.Schema != "" {
		c.SIMS.Schema = other.SIMS.Schema
	}
	if other.SIMS.NamedGraphs {
		c.SIMS.NamedGraphs = true
	}
	if other.SIMS.IncludeIndicators {
		c.SIMS.IncludeIndicators = true
	}
	if other.SIMS.RichText {
		c.SIMS.RichText = true
	}

	// Organizations
	if len(other.Organizations.Reference) > 0 {
		c.Organizations.Reference = other.Organizations.Reference
	}

	// Geo
	if other.Geo.API != "" {
		c.Geo.API = other.Geo.API
	}
	if other.Geo.Timeout != 0 {
		c.Geo.Timeout = other.Geo.Timeout
	}
	if other.Geo.MaxBodyBytes != 0 {
		c.Geo.MaxBodyBytes = other.Geo.MaxBodyBytes
	}
	if other.Geo.CodeList != 0 {
		c.Geo.CodeList = other.Geo.CodeList
	}

	// Publish
	if other.Publish.Enabled {
		c.Publish.Enabled = true
	}
	if other.Publish.URL != "" {
		c.Publish.URL = other.Publish.URL
	}
	if other.Publish.Stream != "" {
		c.Publish.Stream = other.Publish.Stream
	}
	if other.Publish.SubjectPrefix != "" {
		c.Publish.SubjectPrefix = other.Publish.SubjectPrefix
	}

	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}

	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}

func mergeMap[K comparable, V any](dst, src map[K]V) map[K]V {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[K]V, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
