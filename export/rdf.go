// Package export serializes target graphs and datasets to Turtle,
// N-Triples, N-Quads and TriG.
//
// Output is stable: subjects, predicates and objects are written in the
// natural order of the storage package, and prefixes are sorted.
package export

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/c360studio/m0convert/storage"
	"github.com/c360studio/m0convert/vocabulary/insee"
)

// localName matches the local parts that are written as prefixed names.
var localName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// RDFExporter serializes graphs with a prefix table.
type RDFExporter struct {
	prefixes map[string]string
	// namespaces holds prefixes sorted by decreasing namespace length.
	namespaces []string
}

// NewRDFExporter creates an exporter with the default target prefixes.
func NewRDFExporter() *RDFExporter {
	e := &RDFExporter{prefixes: insee.DefaultPrefixes()}
	e.index()
	return e
}

// SetPrefix sets a namespace prefix.
func (e *RDFExporter) SetPrefix(prefix, iri string) {
	e.prefixes[prefix] = iri
	e.index()
}

func (e *RDFExporter) index() {
	e.namespaces = e.namespaces[:0]
	for prefix := range e.prefixes {
		e.namespaces = append(e.namespaces, prefix)
	}
	sort.Slice(e.namespaces, func(i, j int) bool {
		a, b := e.prefixes[e.namespaces[i]], e.prefixes[e.namespaces[j]]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return e.namespaces[i] < e.namespaces[j]
	})
}

// Export serializes a single graph. Quad formats write it as the default
// graph.
func (e *RDFExporter) Export(g *storage.Graph, format Format) (string, error) {
	var sb strings.Builder
	switch format {
	case FormatTurtle, FormatTriG:
		e.writePrefixes(&sb)
		e.writeTurtle(&sb, g.Triples(), "")
	case FormatNTriples, FormatNQuads:
		writeLines(&sb, g.Triples(), "")
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return sb.String(), nil
}

// ExportDataset serializes a dataset. Triple formats flatten every graph
// into one; quad formats keep graph names.
func (e *RDFExporter) ExportDataset(ds *storage.Dataset, format Format) (string, error) {
	var sb strings.Builder
	switch format {
	case FormatTurtle, FormatNTriples:
		merged := storage.NewGraph("")
		merged.AddAll(ds.Default())
		for _, name := range ds.Names() {
			merged.AddAll(ds.Graph(name))
		}
		return e.Export(merged, format)
	case FormatTriG:
		e.writePrefixes(&sb)
		e.writeTurtle(&sb, ds.Default().Triples(), "")
		for _, name := range ds.Names() {
			sb.WriteString(fmt.Sprintf("<%s> {\n", name))
			e.writeTurtle(&sb, ds.Graph(name).Triples(), "    ")
			sb.WriteString("}\n\n")
		}
	case FormatNQuads:
		writeLines(&sb, ds.Default().Triples(), "")
		for _, name := range ds.Names() {
			writeLines(&sb, ds.Graph(name).Triples(), name)
		}
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return sb.String(), nil
}

// writePrefixes writes prefix declarations.
func (e *RDFExporter) writePrefixes(sb *strings.Builder) {
	keys := make([]string, 0, len(e.prefixes))
	for k := range e.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, prefix := range keys {
		sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", prefix, e.prefixes[prefix]))
	}
	sb.WriteString("\n")
}

// writeTurtle writes one block per subject. rdf:type comes first as "a" and
// objects sharing a predicate are comma separated.
func (e *RDFExporter) writeTurtle(sb *strings.Builder, triples []storage.Triple, indent string) {
	for start := 0; start < len(triples); {
		end := start
		for end < len(triples) && triples[end].Subject == triples[start].Subject {
			end++
		}
		block := typesFirst(triples[start:end])

		sb.WriteString(indent + e.term(block[0].Subject))
		for i, t := range block {
			switch {
			case i == 0:
				sb.WriteString(" ")
			case t.Predicate == block[i-1].Predicate:
				sb.WriteString(", ")
			default:
				sb.WriteString(" ;\n" + indent + "    ")
			}
			if i == 0 || t.Predicate != block[i-1].Predicate {
				sb.WriteString(e.predicate(t.Predicate) + " ")
			}
			sb.WriteString(e.term(t.Object))
		}
		sb.WriteString(" .\n\n")
		start = end
	}
}

// typesFirst moves rdf:type statements to the front, keeping the order of
// the others.
func typesFirst(block []storage.Triple) []storage.Triple {
	out := make([]storage.Triple, 0, len(block))
	for _, t := range block {
		if t.Predicate.Value == insee.RDFType {
			out = append(out, t)
		}
	}
	for _, t := range block {
		if t.Predicate.Value != insee.RDFType {
			out = append(out, t)
		}
	}
	return out
}

func (e *RDFExporter) predicate(p storage.Term) string {
	if p.Value == insee.RDFType {
		return "a"
	}
	return e.term(p)
}

// term formats a term for Turtle output, using prefixed names where the
// local part allows it.
func (e *RDFExporter) term(t storage.Term) string {
	switch t.Kind {
	case storage.KindIRI:
		return e.iri(t.Value)
	case storage.KindBlank:
		return "_:" + t.Value
	case storage.KindLiteral:
		s := `"` + escapeString(t.Value) + `"`
		if t.Lang != "" {
			return s + "@" + t.Lang
		}
		if t.Datatype != "" {
			return s + "^^" + e.iri(t.Datatype)
		}
		return s
	default:
		return ""
	}
}

func (e *RDFExporter) iri(v string) string {
	for _, prefix := range e.namespaces {
		if local, ok := strings.CutPrefix(v, e.prefixes[prefix]); ok && localName.MatchString(local) {
			return prefix + ":" + local
		}
	}
	return "<" + v + ">"
}

// writeLines writes N-Triples, or N-Quads when graph is set.
func writeLines(sb *strings.Builder, triples []storage.Triple, graph string) {
	suffix := " .\n"
	if graph != "" {
		suffix = " <" + graph + ">" + suffix
	}
	for _, t := range triples {
		sb.WriteString(formatTerm(t.Subject) + " " + formatTerm(t.Predicate) + " " + formatTerm(t.Object) + suffix)
	}
}

// formatTerm formats a term for line-based output.
func formatTerm(t storage.Term) string {
	switch t.Kind {
	case storage.KindIRI:
		return "<" + t.Value + ">"
	case storage.KindBlank:
		return "_:" + t.Value
	case storage.KindLiteral:
		s := `"` + escapeString(t.Value) + `"`
		if t.Lang != "" {
			return s + "@" + t.Lang
		}
		if t.Datatype != "" {
			return s + "^^<" + t.Datatype + ">"
		}
		return s
	default:
		return ""
	}
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
