package convert

import (
	"strings"

	"github.com/c360studio/m0convert/diagnostics"
	"github.com/c360studio/m0convert/storage"
	"github.com/c360studio/m0convert/vocabulary/m0"
)

// primaryValues returns the lexical forms of the primary values of an
// attribute sub-resource.
func primaryValues(g *storage.Graph, uri string) []string {
	return lexicalValues(g, uri, m0.Values)
}

func lexicalValues(g *storage.Graph, uri, predicate string) []string {
	objects := g.Objects(uri, predicate)
	out := make([]string, 0, len(objects))
	for _, o := range objects {
		out = append(out, o.Value)
	}
	return out
}

// singleValue reads the only primary value of an attribute. Absent,
// ambiguous and blank values are recorded and reported as not found.
func (c *Converter) singleValue(g *storage.Graph, uri string) (string, bool) {
	values := primaryValues(g, uri)
	switch len(values) {
	case 0:
		c.diag.Record(diagnostics.MissingValue, "No value", "uri", uri)
		return "", false
	case 1:
	default:
		c.diag.Record(diagnostics.AmbiguousValue, "Several values, attribute ignored",
			"uri", uri, "count", len(values))
		return "", false
	}
	value := strings.TrimSpace(values[0])
	if value == "" {
		c.diag.Record(diagnostics.EmptyValue, "Empty value, attribute ignored", "uri", uri)
		return "", false
	}
	return value, true
}

// englishValue returns the first non-blank English value of an attribute.
func englishValue(g *storage.Graph, uri string) (string, bool) {
	for _, v := range lexicalValues(g, uri, m0.ValuesGb) {
		if v = cleanText(v); v != "" {
			return v, true
		}
	}
	return "", false
}

// cleanText trims a free-text value and removes one leading line feed.
func cleanText(v string) string {
	return strings.TrimPrefix(strings.TrimSpace(v), "\n")
}
