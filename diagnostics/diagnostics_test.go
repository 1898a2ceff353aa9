package diagnostics

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingObserver struct {
	kinds []string
}

func (r *recordingObserver) Observe(kind string) {
	r.kinds = append(r.kinds, kind)
}

func TestSinkRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	obs := &recordingObserver{}
	sink := New(logger, obs)

	sink.Record(EmptyValue, "Empty value", "uri", "http://baseUri/series/serie/1/TITLE")
	sink.Record(UnparseableDate, "Unparseable date", "value", "15/01/2019")
	sink.Record(UnparseableDate, "Unparseable date", "value", "2024-02-30")

	assert.Equal(t, 1, sink.Count(EmptyValue))
	assert.Equal(t, 2, sink.Count(UnparseableDate))
	assert.Equal(t, 3, sink.Total())
	assert.Equal(t, []string{"empty_value", "unparseable_date", "unparseable_date"}, obs.kinds)

	out := buf.String()
	assert.NotContains(t, out, "Empty value", "debug issues are below the handler level")
	assert.Equal(t, 2, strings.Count(out, "level=ERROR"))
	assert.Contains(t, out, "kind=unparseable_date")
}

func TestKindLevels(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, MissingValue.Level())
	assert.Equal(t, slog.LevelWarn, SharedAttachment.Level())
	assert.Equal(t, slog.LevelError, DuplicateAttachment.Level())
	assert.Equal(t, slog.LevelError, ConflictingHierarchyParent.Level())
}

func TestKindsHaveNames(t *testing.T) {
	assert.Len(t, Kinds, len(kindNames))
	for _, k := range Kinds {
		assert.NotEqual(t, "unknown", k.String())
	}
	assert.Equal(t, "unknown", Kind(-1).String())
}
