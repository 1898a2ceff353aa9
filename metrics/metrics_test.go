package metrics

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/m0convert/diagnostics"
)

func TestRecorderObservesDiagnostics(t *testing.T) {
	r := NewRecorder()
	sink := diagnostics.New(slog.New(slog.NewTextHandler(io.Discard, nil)), r)

	sink.Record(diagnostics.MissingValue, "No value", "uri", "http://baseUri/series/serie/1/TITLE")
	sink.Record(diagnostics.MissingValue, "No value", "uri", "http://baseUri/series/serie/2/TITLE")
	sink.Record(diagnostics.InvalidYear, "Invalid year", "value", "20xx")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.diagnostics.WithLabelValues("missing_value")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.diagnostics.WithLabelValues("invalid_year")))
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.Observe("ambiguous_value")
	r.Triples("operations", 42)
	started := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	r.Finish(started, started.Add(1500*time.Millisecond))

	path := filepath.Join(t.TempDir(), TextfileName)
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `m0convert_diagnostics_total{kind="ambiguous_value"} 1`)
	assert.Contains(t, out, `m0convert_output_triples{graph="operations"} 42`)
	assert.Contains(t, out, "m0convert_run_duration_seconds 1.5")
}
