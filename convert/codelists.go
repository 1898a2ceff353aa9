package convert

import (
	"strings"

	"github.com/c360studio/m0convert/diagnostics"
	"github.com/c360studio/m0convert/storage"
	"github.com/c360studio/m0convert/vocabulary/insee"
	"github.com/c360studio/m0convert/vocabulary/m0"
)

// codeProperty maps an attribute of code lists and codes to a predicate.
type codeProperty struct {
	attribute string
	predicate string
	tagged    bool
}

// ID is the record number and is not converted.
var codeProperties = []codeProperty{
	{attribute: m0.AttrCodeValue, predicate: insee.CodeNotation},
	{attribute: m0.AttrBusinessID, predicate: insee.CodeComment, tagged: true},
	{attribute: m0.AttrTitle, predicate: insee.CodeLabel, tagged: true},
}

// CodeLists converts code lists to SKOS concept schemes and their codes to
// concepts. Schemes and concepts keep their M0 URIs.
func (c *Converter) CodeLists() *storage.Graph {
	out := storage.NewGraph("")
	lists := c.ds.M0(m0.GraphCodeLists)
	codes := c.ds.M0(m0.GraphCodes)
	members := c.codeListMembers()

	rdfType := storage.IRI(insee.RDFType)
	inScheme := storage.IRI(insee.PredicateIRI(insee.CodeInScheme))
	topConceptOf := storage.IRI(insee.PredicateIRI(insee.CodeTopConceptOf))
	hasTopConcept := storage.IRI(insee.PredicateIRI(insee.SchemeHasTopConcept))

	last := lists.MaxSequence()
	c.logger.Debug("Code lists found", "count", last)
	for i := 1; i <= last; i++ {
		list := storage.NewRecordID(storage.EntityCodeList, i)
		if !lists.HasSubject(list.URI()) {
			c.logger.Debug("Code list number not attributed", "uri", list.URI())
			continue
		}
		scheme := storage.IRI(list.URI())
		out.AddTriple(scheme, rdfType, storage.IRI(insee.ClassConceptScheme))
		c.fillCodeProperties(out, scheme, lists, list)

		c.logger.Info("Creating code list", "uri", list.URI(), "codes", len(members[i]))
		for _, n := range members[i] {
			code := storage.NewRecordID(storage.EntityCode, n)
			concept := storage.IRI(code.URI())
			out.AddTriple(concept, rdfType, storage.IRI(insee.ClassConcept))
			c.fillCodeProperties(out, concept, codes, code)
			out.AddTriple(concept, inScheme, scheme)
			out.AddTriple(concept, topConceptOf, scheme)
			out.AddTriple(scheme, hasTopConcept, concept)
		}
	}
	return out
}

// codeListMembers reads the code numbers of each code list from
//
//	<.../codelists/codelist/{i}/RELATED_TO> relatedTo <.../codes/code/{j}/RELATED_TO>
func (c *Converter) codeListMembers() map[int][]int {
	members := make(map[int][]int)
	listBase := storage.EntityCodeList.Base()
	associations := c.ds.M0(m0.GraphAssociations)
	edges := associations.Filter(storage.Pattern{Predicate: storage.IRI(m0.RelatedTo)}, func(t storage.Triple) bool {
		return t.Object.IsIRI() && strings.HasPrefix(t.Subject.Value, listBase) &&
			strings.HasSuffix(t.Subject.Value, "/"+m0.AttrRelatedTo)
	})
	for _, t := range edges {
		list, err := storage.ParseRecordID(t.Subject.Value)
		if err != nil {
			continue
		}
		code, err := storage.ParseRecordID(t.Object.Value)
		if err != nil || code.Type != storage.EntityCode {
			c.diag.Record(diagnostics.InvalidReference, "Unexpected code list member", "uri", t.Object.Value)
			continue
		}
		members[list.Number] = append(members[list.Number], code.Number)
	}
	return members
}

// fillCodeProperties copies notation, comment and label. Every code and code
// list is expected to carry each of them; with several values the first is
// kept.
func (c *Converter) fillCodeProperties(out *storage.Graph, subject storage.Term, source *storage.Graph, rec storage.RecordID) {
	for _, cp := range codeProperties {
		uri := rec.Attribute(cp.attribute)
		predicate := storage.IRI(insee.PredicateIRI(cp.predicate))
		values := primaryValues(source, uri)
		if len(values) == 0 {
			c.diag.Record(diagnostics.MissingRequiredValue, "No value for code property", "uri", uri)
			continue
		}
		if len(values) > 1 {
			c.diag.Record(diagnostics.AmbiguousValue, "Several values for code property, keeping the first",
				"uri", uri, "count", len(values))
		}
		value := strings.TrimSpace(values[0])
		if cp.tagged {
			out.AddTriple(subject, predicate, storage.LangLiteral(value, "fr"))
		} else {
			out.AddTriple(subject, predicate, storage.Literal(value))
		}
		if english, ok := englishValue(source, uri); ok {
			out.AddTriple(subject, predicate, storage.LangLiteral(english, "en"))
		}
	}
}
