package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/knakk/rdf"
)

// Loader reads RDF files into a Dataset.
//
// N-Quads files keep the graph named by their fourth term. N-Triples and
// Turtle files are loaded into the graph {graphBase}{file stem}, so that
// "series.ttl" lands in the M0 series graph.
type Loader struct {
	graphBase string
	logger    *slog.Logger
}

// NewLoader creates a loader. A nil logger uses slog.Default().
func NewLoader(graphBase string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{graphBase: graphBase, logger: logger}
}

// Load expands the glob patterns and decodes every matched file.
func (l *Loader) Load(ctx context.Context, patterns []string) (*Dataset, error) {
	files, err := expand(patterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoInput, strings.Join(patterns, ", "))
	}

	ds := NewDataset()
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := l.LoadFile(ds, path); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// LoadFile decodes one file into ds.
func (l *Loader) LoadFile(ds *Dataset, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	var n int
	switch ext {
	case ".nq":
		n, err = l.decodeQuads(ds, f)
	case ".nt":
		n, err = l.decodeTriples(ds.Ensure(l.graphFor(path)), f, rdf.NTriples)
	case ".ttl":
		n, err = l.decodeTriples(ds.Ensure(l.graphFor(path)), f, rdf.Turtle)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	l.logger.Debug("Loaded RDF file", "path", path, "statements", n)
	return nil
}

func (l *Loader) graphFor(path string) string {
	base := filepath.Base(path)
	return l.graphBase + strings.TrimSuffix(base, filepath.Ext(base))
}

func (l *Loader) decodeQuads(ds *Dataset, r io.Reader) (int, error) {
	dec := rdf.NewQuadDecoder(r, rdf.NQuads)
	n := 0
	for {
		q, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		name := ""
		if q.Ctx != nil && q.Ctx != dec.DefaultGraph {
			name = q.Ctx.String()
		}
		ds.Ensure(name).Add(fromRDF(q.Triple))
		n++
	}
}

func (l *Loader) decodeTriples(g *Graph, r io.Reader, format rdf.Format) (int, error) {
	dec := rdf.NewTripleDecoder(r, format)
	n := 0
	for {
		t, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		g.Add(fromRDF(t))
		n++
	}
}

func fromRDF(t rdf.Triple) Triple {
	return Triple{
		Subject:   fromTerm(t.Subj),
		Predicate: fromTerm(t.Pred),
		Object:    fromTerm(t.Obj),
	}
}

func fromTerm(t rdf.Term) Term {
	switch t.Type() {
	case rdf.TermIRI:
		return IRI(t.String())
	case rdf.TermBlank:
		return Blank(strings.TrimPrefix(t.String(), "_:"))
	case rdf.TermLiteral:
		if lit, ok := t.(rdf.Literal); ok {
			if lit.Lang() != "" {
				return LangLiteral(lit.String(), lit.Lang())
			}
			return TypedLiteral(lit.String(), lit.DataType.String())
		}
		return Literal(t.String())
	default:
		return Term{}
	}
}

func expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() || seen[m] {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	slices.Sort(files)
	return files, nil
}
