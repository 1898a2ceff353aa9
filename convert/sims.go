package convert

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/m0convert/config"
	"github.com/c360studio/m0convert/diagnostics"
	"github.com/c360studio/m0convert/relations"
	"github.com/c360studio/m0convert/schema"
	"github.com/c360studio/m0convert/storage"
	"github.com/c360studio/m0convert/vocabulary/insee"
	"github.com/c360studio/m0convert/vocabulary/m0"
)

// reportDateLayout is the layout of date attributes in documentations.
const reportDateLayout = "2006-01-02"

// reportLinks holds the relations read once for all reports.
type reportLinks struct {
	// seeAlso maps documentation number → attribute → target URIs.
	seeAlso map[int]map[string][]string
	// targets maps documentation record URI → documented resource M0 URI.
	targets map[string]string
}

func (c *Converter) reportLinks() *reportLinks {
	if c.links != nil {
		return c.links
	}
	rl := &reportLinks{
		seeAlso: make(map[int]map[string][]string),
		targets: c.rel.Attachments(c.includeIndicators),
	}
	add := func(byDoc map[int]map[string][]int, uriFor func(int) string) {
		for doc, byAttr := range byDoc {
			if rl.seeAlso[doc] == nil {
				rl.seeAlso[doc] = make(map[string][]string)
			}
			for attr, numbers := range byAttr {
				for _, n := range numbers {
					rl.seeAlso[doc][attr] = append(rl.seeAlso[doc][attr], uriFor(n))
				}
			}
		}
	}
	for _, lang := range []string{relations.LangFrench, relations.LangEnglish} {
		add(c.rel.LinkRelations(lang), c.uris.LinkURI)
		add(c.rel.DocumentRelations(lang), c.uris.DocumentURI)
	}
	for _, byAttr := range rl.seeAlso {
		for attr := range byAttr {
			slices.SortFunc(byAttr[attr], storage.NaturalCompare)
			byAttr[attr] = slices.Compact(byAttr[attr])
		}
	}
	c.links = rl
	return rl
}

// DocumentationIDs returns the numbers of the documentation records in
// ascending order.
func (c *Converter) DocumentationIDs() []int {
	base := storage.EntityDocumentation.Base()
	seen := make(map[int]bool)
	for _, subject := range c.ds.M0(m0.GraphDocumentations).SubjectsWithPrefix(base) {
		first, _, _ := strings.Cut(strings.TrimPrefix(subject, base), "/")
		id, err := strconv.Atoi(first)
		if err != nil {
			if first != m0.AttrSequence {
				c.diag.Record(diagnostics.InvalidReference, "Invalid documentation URI", "uri", subject)
			}
			continue
		}
		seen[id] = true
	}
	return relations.SortedIDs(seen)
}

// ConvertReports converts documentation records into metadata reports. A nil
// ids converts every documentation. With namedGraphs each report goes into
// its own graph, otherwise all reports share the default graph.
func (c *Converter) ConvertReports(ids []int, namedGraphs bool) (*storage.Dataset, error) {
	if c.schema == nil {
		return nil, ErrNoSchema
	}
	if ids == nil {
		ids = c.DocumentationIDs()
	} else {
		ids = slices.Clone(ids)
		slices.Sort(ids)
		ids = slices.Compact(ids)
	}
	c.logger.Info("Converting documentations to metadata reports", "count", len(ids))

	docs := c.ds.M0(m0.GraphDocumentations)
	out := storage.NewDataset()
	for _, id := range ids {
		record := storage.ExtractResource(docs, storage.NewRecordID(storage.EntityDocumentation, id).URI())
		report, err := c.ConvertReport(record, id)
		if err != nil {
			return nil, err
		}
		if namedGraphs {
			out.Ensure(c.uris.ReportGraphURI(id)).AddAll(report)
		} else {
			out.Default().AddAll(report)
		}
	}
	return out, nil
}

// ConvertReport converts one documentation record, given as the statements
// describing it, into a metadata report.
func (c *Converter) ConvertReport(doc *storage.Graph, id int) (*storage.Graph, error) {
	if c.schema == nil {
		return nil, ErrNoSchema
	}
	record := storage.NewRecordID(storage.EntityDocumentation, id)
	reportURI := c.uris.ReportURI(id)
	report := storage.IRI(reportURI)

	out := storage.NewGraph("")
	out.AddTriple(report, storage.IRI(insee.RDFType), storage.IRI(insee.ClassMetadataReport))
	label := storage.IRI(insee.PredicateIRI(insee.ReportLabel))
	out.AddTriple(report, label, storage.LangLiteral(fmt.Sprintf("Metadata report %d", id), "en"))
	out.AddTriple(report, label, storage.LangLiteral(fmt.Sprintf("Rapport de métadonnées %d", id), "fr"))

	links := c.reportLinks()
	if documented, ok := links.targets[record.URI()]; ok {
		if target, ok := c.resolve(documented); ok {
			out.AddTriple(report, storage.IRI(insee.PredicateIRI(insee.ReportTarget)), storage.IRI(target))
		}
	}

	for _, entry := range c.schema.Entries {
		uri := record.Attribute(entry.Code)
		values := primaryValues(doc, uri)
		if len(values) == 0 {
			c.diag.Record(diagnostics.MissingValue, "No value for report attribute", "uri", uri)
			continue
		}
		if len(values) > 1 {
			c.diag.Record(diagnostics.AmbiguousValue, "Several values for report attribute",
				"uri", uri, "count", len(values))
			continue
		}
		value := cleanText(values[0])
		if value == "" {
			c.diag.Record(diagnostics.EmptyValue, "Empty value for report attribute", "uri", uri)
			continue
		}

		attr := reportAttribute{
			report:    report,
			predicate: storage.IRI(entry.Predicate),
			uri:       uri,
			value:     value,
			doc:       doc,
			links:     links.seeAlso[id][entry.Code],
		}
		switch r := entry.Range.(type) {
		case schema.NoRange:
			c.textAndReference(out, attr, reportURI)
		case schema.ReportedAttribute:
			out.AddTriple(report, attr.predicate, storage.IRI(insee.ClassReportedAttribute))
		case schema.PlainString:
			c.plainString(out, attr)
		case schema.Date:
			c.date(out, attr)
		case schema.QualityMeasurement:
			c.diag.Record(diagnostics.UnknownDeclaredRange, "Quality measurement range in report schema",
				"code", entry.Code)
		case schema.CodedReference:
			c.codedReference(out, attr, r)
		default:
			c.diag.Record(diagnostics.UnknownDeclaredRange, "Unsupported range", "code", entry.Code)
		}
	}
	return out, nil
}

// reportAttribute is one non-empty report attribute being converted.
type reportAttribute struct {
	report    storage.Term
	predicate storage.Term
	uri       string
	value     string
	doc       *storage.Graph
	links     []string
}

// textAndReference attaches a node holding the text and the links related
// to the attribute. The node label is derived from the report and predicate
// so that reconversions produce identical graphs.
func (c *Converter) textAndReference(out *storage.Graph, attr reportAttribute, reportURI string) {
	node := storage.Blank(uuid.NewSHA1(uuid.NameSpaceURL, []byte(reportURI+attr.predicate.Value)).String())
	out.AddTriple(attr.report, attr.predicate, node)
	out.AddTriple(node, storage.IRI(insee.PredicateIRI(insee.ReportValue)), storage.LangLiteral(c.normalize(attr.uri, attr.value), "fr"))
	link := storage.IRI(insee.PredicateIRI(insee.ReportLink))
	for _, uri := range attr.links {
		out.AddTriple(node, link, storage.IRI(uri))
	}
}

func (c *Converter) plainString(out *storage.Graph, attr reportAttribute) {
	out.AddTriple(attr.report, attr.predicate, storage.LangLiteral(c.normalize(attr.uri, attr.value), "fr"))
	if english, ok := englishValue(attr.doc, attr.uri); ok {
		out.AddTriple(attr.report, attr.predicate, storage.LangLiteral(c.normalize(attr.uri, english), "en"))
	}
}

func (c *Converter) date(out *storage.Graph, attr reportAttribute) {
	if _, err := time.Parse(reportDateLayout, attr.value); err != nil {
		c.diag.Record(diagnostics.UnparseableDate, "Unparseable date value",
			"uri", attr.uri, "value", attr.value, "error", err)
		return
	}
	out.AddTriple(attr.report, attr.predicate, storage.TypedLiteral(attr.value, insee.XSDDate))
}

// codedReference attaches the code named by the first word of the value in
// the code list of the declared concept. Codes are not checked against the
// code list.
func (c *Converter) codedReference(out *storage.Graph, attr reportAttribute, r schema.CodedReference) {
	if !strings.HasPrefix(r.Concept, c.uris.CodeConceptsBase) {
		c.diag.Record(diagnostics.UnknownDeclaredRange, "Unrecognized property range",
			"uri", attr.uri, "range", r.Concept)
		return
	}
	code := strings.Fields(attr.value)[0]
	concept := r.Concept[strings.LastIndex(r.Concept, "/")+1:]
	codeURI := c.uris.CodesBase + config.Uncapitalize(concept) + "/" + code
	out.AddTriple(attr.report, attr.predicate, storage.IRI(codeURI))
}

// normalize converts HTML fragments to Markdown when rich text is enabled.
func (c *Converter) normalize(uri, value string) string {
	if c.richText == nil {
		return value
	}
	converted, err := c.richText.Normalize(value)
	if err != nil {
		c.logger.Warn("Failed to convert rich text, keeping raw value", "uri", uri, "error", err)
		return value
	}
	return converted
}
