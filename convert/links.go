package convert

import (
	"strconv"
	"strings"
	"time"

	"github.com/c360studio/m0convert/diagnostics"
	"github.com/c360studio/m0convert/relations"
	"github.com/c360studio/m0convert/storage"
	"github.com/c360studio/m0convert/vocabulary/insee"
	"github.com/c360studio/m0convert/vocabulary/m0"
)

// Layouts of document dates, after '-' is replaced by '/'.
var documentDateLayouts = []string{"02/01/2006", "2/1/2006"}

// documentProperties maps link and document attributes to predicates.
// Other attributes (FORMAT, TAILLE...) are not converted.
var documentProperties = map[string]string{
	m0.AttrTitle: insee.DocumentLabel,
	m0.AttrType:  insee.DocumentComment,
	m0.AttrURL:   insee.DocumentURL,
}

// Links converts external links to FOAF documents.
func (c *Converter) Links() *storage.Graph {
	return c.documents(storage.EntityLink, c.rel.LinkLanguages(), c.uris.LinkURI)
}

// Documents converts documents to FOAF documents with their publication date.
func (c *Converter) Documents() *storage.Graph {
	out := c.documents(storage.EntityDocument, c.rel.DocumentLanguages(), c.uris.DocumentURI)
	date := storage.IRI(insee.PredicateIRI(insee.DocumentDate))
	dates := c.DocumentDates()
	for _, n := range relations.SortedIDs(dates) {
		out.AddTriple(storage.IRI(c.uris.DocumentURI(n)), date,
			storage.TypedLiteral(dates[n].Format(reportDateLayout), insee.XSDDate))
	}
	return out
}

func (c *Converter) documents(t storage.EntityType, languages map[int]string, uriFor func(int) string) *storage.Graph {
	out := storage.NewGraph("")
	source := c.ds.Graph(t.GraphName())
	base := t.Base()
	rdfType := storage.IRI(insee.RDFType)
	document := storage.IRI(insee.ClassDocument)
	language := storage.IRI(insee.PredicateIRI(insee.DocumentLanguage))

	// M0 links and documents are SKOS concepts.
	pending := make(map[int]bool, len(languages))
	for n := range languages {
		pending[n] = true
	}
	for _, tr := range source.Match(storage.Pattern{Predicate: rdfType, Object: storage.IRI(insee.ClassConcept)}) {
		n, err := strconv.Atoi(strings.TrimPrefix(tr.Subject.Value, base))
		if err != nil {
			c.diag.Record(diagnostics.InvalidReference, "Cannot extract number from M0 concept", "uri", tr.Subject.Value)
			continue
		}
		subject := storage.IRI(uriFor(n))
		out.AddTriple(subject, rdfType, document)
		if lang, ok := languages[n]; ok {
			out.AddTriple(subject, language, storage.Literal(lang))
			delete(pending, n)
		} else {
			c.diag.Record(diagnostics.UnknownLanguage, "Cannot determine language", "type", string(t), "number", n)
		}
	}
	for _, n := range relations.SortedIDs(pending) {
		c.diag.Record(diagnostics.UnmatchedReference, "Language known but resource missing from model",
			"type", string(t), "number", n)
	}

	for _, tr := range source.Match(storage.Pattern{Predicate: storage.IRI(m0.Values)}) {
		rest, ok := strings.CutPrefix(tr.Subject.Value, base)
		parts := strings.Split(rest, "/")
		if !ok || len(parts) != 2 {
			if !strings.HasSuffix(tr.Subject.Value, "/"+m0.AttrSequence) {
				c.diag.Record(diagnostics.InvalidReference, "Unexpected subject URI", "uri", tr.Subject.Value)
			}
			continue
		}
		name, ok := documentProperties[parts[1]]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(parts[0])
		if err != nil {
			c.diag.Record(diagnostics.InvalidReference, "Invalid number in subject URI", "uri", tr.Subject.Value)
			continue
		}
		value := strings.TrimSpace(tr.Object.Value)
		if value == "" {
			c.diag.Record(diagnostics.EmptyValue, "Empty value", "uri", tr.Subject.Value)
			continue
		}
		lang, ok := languages[n]
		if !ok {
			lang = relations.LangFrench
		}
		subject := storage.IRI(uriFor(n))
		predicate := storage.IRI(insee.PredicateIRI(name))
		if parts[1] == m0.AttrURL {
			out.AddTriple(subject, predicate, storage.IRI(value))
		} else {
			out.AddTriple(subject, predicate, storage.LangLiteral(value, lang))
		}
	}

	for _, s := range out.Subjects() {
		if len(out.Match(storage.Pattern{Subject: s, Predicate: rdfType, Object: document})) == 0 {
			c.diag.Record(diagnostics.UntypedResource, "Resource not defined as FOAF document", "uri", s.Value)
		}
	}
	return out
}

// DocumentDates returns document number → publication date. DATE_PUBLICATION
// is preferred over DATE.
func (c *Converter) DocumentDates() map[int]time.Time {
	source := c.ds.M0(m0.GraphDocuments)
	dates := make(map[int]time.Time)

	for _, tr := range source.Match(storage.Pattern{Predicate: storage.IRI(m0.Values)}) {
		attr := storage.AttributeName(tr.Subject.Value)
		if attr != m0.AttrPublicationDate && attr != m0.AttrDate {
			continue
		}
		value := strings.TrimSpace(strings.ReplaceAll(tr.Object.Value, "-", "/"))
		if value == "" {
			continue
		}
		rec, err := storage.ParseRecordID(tr.Subject.Value)
		if err != nil {
			c.diag.Record(diagnostics.InvalidReference, "Invalid document URI", "uri", tr.Subject.Value)
			continue
		}
		date, ok := parseDocumentDate(value)
		if !ok {
			c.diag.Record(diagnostics.UnparseableDate, "Unparseable document date",
				"number", rec.Number, "value", value)
			continue
		}
		if _, ok := dates[rec.Number]; ok && attr == m0.AttrDate {
			continue
		}
		dates[rec.Number] = date
	}
	return dates
}

func parseDocumentDate(value string) (time.Time, bool) {
	for _, layout := range documentDateLayouts {
		if d, err := time.Parse(layout, value); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
