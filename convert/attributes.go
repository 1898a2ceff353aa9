package convert

import (
	"github.com/c360studio/m0convert/diagnostics"
	"github.com/c360studio/m0convert/storage"
	"github.com/c360studio/m0convert/vocabulary/insee"
	"github.com/c360studio/m0convert/vocabulary/m0"
)

type attributeKind int

const (
	stringAttribute attributeKind = iota
	codedAttribute
)

// propertyMapping maps one M0 attribute to a registered target predicate.
type propertyMapping struct {
	attribute string
	predicate string
	kind      attributeKind
	// untagged leaves the primary value without a language tag.
	untagged bool
	// codeList is the French name of the code list holding coded values.
	codeList string
}

// propertyMappings lists the literal attributes of operation-like resources.
// ORGANISATION, STAKEHOLDERS, REPLACES and RELATED_TO are relations and are
// converted from the associations graph.
var propertyMappings = []propertyMapping{
	{attribute: m0.AttrTitle, predicate: insee.OperationTitle},
	{attribute: m0.AttrAltLabel, predicate: insee.OperationAltLabel, untagged: true},
	{attribute: m0.AttrSummary, predicate: insee.OperationSummary},
	{attribute: m0.AttrHistory, predicate: insee.OperationHistory},
	{attribute: m0.AttrSourceCategory, predicate: insee.OperationSourceCategory, kind: codedAttribute, codeList: "Catégorie de source"},
	{attribute: m0.AttrFrequency, predicate: insee.OperationFrequency, kind: codedAttribute, codeList: "Fréquence"},
}

// FillLiteralProperties copies the literal attributes of the M0 record
// m0URI, read from source, onto target in out.
//
// String attributes are tagged "fr", except ALT_LABEL, and get a second
// statement tagged "en" when an English value is present. Coded attributes
// become references to the code of the matching INSEE code list.
func (c *Converter) FillLiteralProperties(out *storage.Graph, target string, source *storage.Graph, m0URI string) {
	subject := storage.IRI(target)
	for _, pm := range propertyMappings {
		uri := m0URI + "/" + pm.attribute
		predicate := storage.IRI(insee.PredicateIRI(pm.predicate))

		switch pm.kind {
		case stringAttribute:
			c.fillString(out, subject, predicate, source, uri, pm.untagged)
		case codedAttribute:
			value, ok := c.singleValue(source, uri)
			if !ok {
				continue
			}
			out.AddTriple(subject, predicate, storage.IRI(c.uris.InseeCodeURI(value, pm.codeList)))
		}
	}
}

func (c *Converter) fillString(out *storage.Graph, subject, predicate storage.Term, source *storage.Graph, uri string, untagged bool) {
	values := primaryValues(source, uri)
	switch {
	case len(values) > 1:
		c.diag.Record(diagnostics.AmbiguousValue, "Several values, attribute ignored",
			"uri", uri, "count", len(values))
		return
	case len(values) == 1:
		value := cleanText(values[0])
		if value == "" {
			c.diag.Record(diagnostics.EmptyValue, "Empty value, attribute ignored", "uri", uri)
			return
		}
		if untagged {
			out.AddTriple(subject, predicate, storage.Literal(value))
		} else {
			out.AddTriple(subject, predicate, storage.LangLiteral(value, "fr"))
		}
	default:
		c.diag.Record(diagnostics.MissingValue, "No value", "uri", uri)
	}

	if english, ok := englishValue(source, uri); ok {
		out.AddTriple(subject, predicate, storage.LangLiteral(english, "en"))
	}
}
