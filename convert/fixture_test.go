package convert

import (
	"bytes"
	"log/slog"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c360studio/m0convert/config"
	"github.com/c360studio/m0convert/diagnostics"
	"github.com/c360studio/m0convert/mapping"
	"github.com/c360studio/m0convert/storage"
	"github.com/c360studio/m0convert/vocabulary/insee"
	"github.com/c360studio/m0convert/vocabulary/m0"
)

// fixture builds a small M0 dataset.
type fixture struct {
	t    *testing.T
	ds   *storage.Dataset
	next map[storage.EntityType]int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{t: t, ds: storage.NewDataset(), next: make(map[storage.EntityType]int)}
}

func (f *fixture) graph(et storage.EntityType) *storage.Graph {
	return f.ds.Ensure(et.GraphName())
}

// record declares record n of type et.
func (f *fixture) record(et storage.EntityType, n int) storage.RecordID {
	rec := storage.NewRecordID(et, n)
	f.graph(et).AddTriple(storage.IRI(rec.URI()), storage.IRI(insee.RDFType), storage.IRI(insee.ClassConcept))
	if n+1 > f.next[et] {
		f.next[et] = n + 1
	}
	return rec
}

// sequences writes the sequence resource of every type used.
func (f *fixture) sequences() {
	for et, next := range f.next {
		f.graph(et).AddTriple(storage.IRI(et.Sequence()), storage.IRI(m0.SequenceValue), storage.Literal(strconv.Itoa(next)))
	}
}

func (f *fixture) value(rec storage.RecordID, attr, value string) {
	f.graph(rec.Type).AddTriple(storage.IRI(rec.Attribute(attr)), storage.IRI(m0.Values), storage.Literal(value))
}

func (f *fixture) english(rec storage.RecordID, attr, value string) {
	f.graph(rec.Type).AddTriple(storage.IRI(rec.Attribute(attr)), storage.IRI(m0.ValuesGb), storage.Literal(value))
}

func (f *fixture) relate(from storage.RecordID, fromAttr string, to storage.RecordID, toAttr string) {
	f.ds.Ensure(m0.GraphName(m0.GraphAssociations)).AddTriple(
		storage.IRI(from.Attribute(fromAttr)), storage.IRI(m0.RelatedTo), storage.IRI(to.Attribute(toAttr)))
}

func (f *fixture) relateEnglish(from storage.RecordID, fromAttr string, to storage.RecordID, toAttr string) {
	f.ds.Ensure(m0.GraphName(m0.GraphAssociations)).AddTriple(
		storage.IRI(from.Attribute(fromAttr)), storage.IRI(m0.RelatedToGb), storage.IRI(to.Attribute(toAttr)))
}

// converter allocates the target mapping and builds a converter whose
// diagnostics are logged to the returned buffer.
func (f *fixture) converter(opts Options) (*Converter, *diagnostics.Sink, *bytes.Buffer) {
	f.t.Helper()
	f.sequences()
	uris := config.DefaultURIs()
	if opts.Targets == nil {
		cfg := config.DefaultConfig().Mapping
		targets, err := mapping.Allocate(mapping.InputFromDataset(f.ds, cfg, uris, slog.Default()))
		require.NoError(f.t, err)
		opts.Targets = targets
	}
	if opts.Organizations == nil {
		opts.Organizations = mapping.OrganizationMappings(f.ds, nil, uris)
	}
	opts.URIs = uris
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sink := diagnostics.New(logger, nil)
	opts.Diagnostics = sink
	opts.Logger = logger
	return New(f.ds, opts), sink, &buf
}

// target returns the mapped URI of a record.
func target(t *testing.T, c *Converter, rec storage.RecordID) string {
	t.Helper()
	uri, ok := c.targets.Convert(rec.URI())
	require.True(t, ok, "no target for %s", rec.URI())
	return uri
}
