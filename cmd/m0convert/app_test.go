package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/m0convert/config"
	"github.com/c360studio/m0convert/metrics"
	"github.com/c360studio/m0convert/output"
	"github.com/c360studio/m0convert/vocabulary/m0"
)

const seriesGraph = " <http://rdf.insee.fr/graphe/series> .\n"

const testSchema = `
entries:
  - code: S.1.1
    predicate: http://id.insee.fr/qualite/simsv2fr/attribut/S.1.1
    range: string
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	in := t.TempDir()
	quads := `<http://baseUri/series/serie/1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2004/02/skos/core#Concept>` + seriesGraph +
		`<http://baseUri/series/serie/1/TITLE> <` + m0.Values + `> "Enquête Emploi"` + seriesGraph +
		`<http://baseUri/series/serie/sequence> <` + m0.SequenceValue + `> "2"` + seriesGraph
	require.NoError(t, os.WriteFile(filepath.Join(in, "m0.nq"), []byte(quads), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "sims.yaml"), []byte(testSchema), 0644))

	cfg := config.DefaultConfig()
	cfg.Input.Patterns = []string{filepath.Join(in, "*.nq")}
	cfg.Output.Dir = t.TempDir()
	cfg.Output.LockTimeout = 200 * time.Millisecond
	cfg.SIMS.Schema = filepath.Join(in, "sims.yaml")
	return cfg
}

func TestAppConvert(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	app, err := NewApp(ctx, cfg, slog.Default())
	require.NoError(t, err)
	defer app.Close()

	require.NoError(t, app.Convert(ctx, false))

	for _, name := range []string{"operations.ttl", "indicators.ttl", "codelists.ttl", "organizations.ttl",
		"links.ttl", "documents.ttl", "sims.ttl", fileMappings, metrics.TextfileName, output.ReportFile} {
		assert.FileExists(t, filepath.Join(cfg.Output.Dir, name))
	}
	assert.NoFileExists(t, filepath.Join(cfg.Output.Dir, "geo.ttl"))

	ops, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "operations.ttl"))
	require.NoError(t, err)
	assert.Contains(t, string(ops), "insee:StatisticalOperationSeries")
	assert.Contains(t, string(ops), `"Enquête Emploi"@fr`)

	mappings, err := os.ReadFile(filepath.Join(cfg.Output.Dir, fileMappings))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(mappings), "http://baseUri/series/serie/1;http://id.insee.fr/operations/serie/s"))

	prom, err := os.ReadFile(filepath.Join(cfg.Output.Dir, metrics.TextfileName))
	require.NoError(t, err)
	assert.Contains(t, string(prom), `m0convert_output_triples{graph="operations"}`)

	report, err := os.ReadFile(filepath.Join(cfg.Output.Dir, output.ReportFile))
	require.NoError(t, err)
	assert.Contains(t, string(report), "- **Command:** convert")
	assert.Contains(t, string(report), "| operations | operations.ttl |")

	assert.Len(t, app.written, 7)
}

func TestAppSIMSNamedGraphs(t *testing.T) {
	cfg := testConfig(t)
	cfg.SIMS.NamedGraphs = true
	cfg.Output.Metrics = false
	ctx := context.Background()

	app, err := NewApp(ctx, cfg, slog.Default())
	require.NoError(t, err)
	defer app.Close()

	require.NoError(t, app.SIMS(ctx, nil))
	assert.FileExists(t, filepath.Join(cfg.Output.Dir, "sims.trig"))
	assert.NoFileExists(t, filepath.Join(cfg.Output.Dir, metrics.TextfileName))
}

func TestAppMissingSchema(t *testing.T) {
	cfg := testConfig(t)
	cfg.SIMS.Schema = filepath.Join(t.TempDir(), "missing.yaml")
	ctx := context.Background()

	app, err := NewApp(ctx, cfg, slog.Default())
	require.NoError(t, err)
	defer app.Close()

	err = app.Convert(ctx, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load SIMS schema")
}

func TestAppOutputLocked(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	first, err := NewApp(ctx, cfg, slog.Default())
	require.NoError(t, err)
	defer first.Close()

	_, err = NewApp(ctx, cfg, slog.Default())
	assert.True(t, errors.Is(err, output.ErrLocked))
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs(nil)
	require.NoError(t, err)
	assert.Nil(t, ids)

	ids, err = parseIDs([]string{"1580", "12"})
	require.NoError(t, err)
	assert.Equal(t, []int{1580, 12}, ids)

	for _, bad := range []string{"abc", "0", "-3"} {
		_, err := parseIDs([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	applyFlags(cfg, globalFlags{outputDir: "/tmp/m0out", format: "nquads", logLevel: "debug"})

	assert.Equal(t, "/tmp/m0out", cfg.Output.Dir)
	assert.Equal(t, "nquads", cfg.Output.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, config.DefaultConfig().Input.Patterns, cfg.Input.Patterns)
}

func TestAppWatch(t *testing.T) {
	cfg := testConfig(t)
	cfg.Watch.Debounce = 50 * time.Millisecond
	cfg.Output.Metrics = false
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := NewApp(ctx, cfg, slog.Default())
	require.NoError(t, err)
	defer app.Close()

	done := make(chan error, 1)
	go func() { done <- app.Watch(ctx, false) }()

	operations := filepath.Join(cfg.Output.Dir, "operations.ttl")
	contains := func(s string) func() bool {
		return func() bool {
			content, err := os.ReadFile(operations)
			return err == nil && strings.Contains(string(content), s)
		}
	}
	require.Eventually(t, contains("Enquête Emploi"), 5*time.Second, 20*time.Millisecond)

	input := filepath.Join(filepath.Dir(cfg.Input.Patterns[0]), "m0.nq")
	quads := `<http://baseUri/series/serie/1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2004/02/skos/core#Concept>` + seriesGraph +
		`<http://baseUri/series/serie/1/TITLE> <` + m0.Values + `> "Enquête Logement"` + seriesGraph +
		`<http://baseUri/series/serie/sequence> <` + m0.SequenceValue + `> "2"` + seriesGraph
	require.NoError(t, os.WriteFile(input, []byte(quads), 0644))
	require.Eventually(t, contains("Enquête Logement"), 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestRootCommandsRunThroughApp(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	for _, command := range []string{"mappings", "codelists"} {
		t.Run(command, func(t *testing.T) {
			cfg := testConfig(t)
			path := filepath.Join(t.TempDir(), "m0convert.yaml")
			require.NoError(t, cfg.SaveToFile(path))

			root := rootCmd()
			root.SetArgs([]string{"--config", path, command})
			require.NoError(t, root.ExecuteContext(context.Background()))

			report, err := os.ReadFile(filepath.Join(cfg.Output.Dir, output.ReportFile))
			require.NoError(t, err)
			assert.Contains(t, string(report), "- **Command:** "+command)
		})
	}
}
