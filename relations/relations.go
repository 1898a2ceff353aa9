// Package relations extracts the structural relations of the M0 model from
// the associations graph.
//
// Every association is a relatedTo (or relatedToGb) statement between two
// attribute sub-resources, for example
//
//	<http://baseUri/series/serie/12/ASSOCIE_A> relatedTo <http://baseUri/familles/famille/3/ASSOCIE_A>
//
// Each extractor is one filtered scan recognising a suffix/prefix pattern.
// Returned URIs are record URIs, with the attribute suffix removed.
package relations

import (
	"slices"
	"strings"

	"github.com/c360studio/m0convert/diagnostics"
	"github.com/c360studio/m0convert/storage"
	"github.com/c360studio/m0convert/vocabulary/insee"
	"github.com/c360studio/m0convert/vocabulary/m0"
)

// Extractor scans one associations graph.
type Extractor struct {
	graph *storage.Graph
	diag  *diagnostics.Sink
}

// New creates an extractor over the associations graph. A nil sink logs
// through the default logger.
func New(associations *storage.Graph, diag *diagnostics.Sink) *Extractor {
	if diag == nil {
		diag = diagnostics.New(nil, nil)
	}
	return &Extractor{graph: associations, diag: diag}
}

// FromDataset creates an extractor over the dataset's associations graph.
func FromDataset(ds *storage.Dataset, diag *diagnostics.Sink) *Extractor {
	return New(ds.M0(m0.GraphAssociations), diag)
}

// edge is an association with both ends as plain strings.
type edge struct {
	subject string
	object  string
}

// scan returns the IRI-to-IRI associations of the given predicate accepted
// by keep, in natural order.
func (e *Extractor) scan(predicate string, keep func(edge) bool) []edge {
	matched := e.graph.Filter(storage.Pattern{Predicate: storage.IRI(predicate)}, func(t storage.Triple) bool {
		if !t.Subject.IsIRI() || !t.Object.IsIRI() {
			return false
		}
		return keep(edge{subject: t.Subject.Value, object: t.Object.Value})
	})
	out := make([]edge, 0, len(matched))
	for _, t := range matched {
		out = append(out, edge{subject: t.Subject.Value, object: t.Object.Value})
	}
	return out
}

// both reports whether both ends carry the attribute suffix.
func (ed edge) both(attr string) bool {
	return strings.HasSuffix(ed.subject, "/"+attr) && strings.HasSuffix(ed.object, "/"+attr)
}

func strip(uri, attr string) string {
	return strings.TrimSuffix(uri, "/"+attr)
}

func under(uri, graphToken string) bool {
	return strings.HasPrefix(uri, m0.BaseURI+graphToken+"/")
}

// Hierarchies returns child → parent for series under families and
// operations under series. When a child has several parents the first one
// in natural order is kept.
func (e *Extractor) Hierarchies() map[string]string {
	out := make(map[string]string)
	edges := e.scan(m0.RelatedTo, func(ed edge) bool {
		if !ed.both(m0.AttrAssociatedWith) {
			return false
		}
		return (under(ed.subject, m0.GraphSeries) && under(ed.object, m0.GraphFamilies)) ||
			(under(ed.subject, m0.GraphOperations) && under(ed.object, m0.GraphSeries))
	})
	for _, ed := range edges {
		child := strip(ed.subject, m0.AttrAssociatedWith)
		parent := strip(ed.object, m0.AttrAssociatedWith)
		if existing, ok := out[child]; ok {
			e.diag.Record(diagnostics.ConflictingHierarchyParent, "Conflicting parents",
				"child", child, "parent", parent, "kept", existing)
			continue
		}
		out[child] = parent
	}
	return out
}

// Relations returns the peer relations between operation-like resources.
// The associations are stored in both directions and both are kept.
func (e *Extractor) Relations() map[string][]string {
	out := make(map[string][]string)
	edges := e.scan(m0.RelatedTo, func(ed edge) bool {
		// Code lists and codes are also linked by RELATED_TO.
		if strings.HasPrefix(ed.subject, m0.BaseURI+"code") {
			return false
		}
		return ed.both(m0.AttrRelatedTo)
	})
	for _, ed := range edges {
		from := strip(ed.subject, m0.AttrRelatedTo)
		out[from] = append(out[from], strip(ed.object, m0.AttrRelatedTo))
	}
	return out
}

// Replacements returns replacer → replaced resources.
func (e *Extractor) Replacements() map[string][]string {
	out := make(map[string][]string)
	edges := e.scan(m0.RelatedTo, func(ed edge) bool {
		return strings.HasSuffix(ed.subject, "/"+m0.AttrReplaces) &&
			strings.HasSuffix(ed.object, "/"+m0.AttrReplacedBy)
	})
	for _, ed := range edges {
		after := strip(ed.subject, m0.AttrReplaces)
		out[after] = append(out[after], strip(ed.object, m0.AttrReplacedBy))
	}
	return out
}

// OrganizationalRoles returns resource → organizations playing the role.
func (e *Extractor) OrganizationalRoles(role insee.Role) map[string][]string {
	suffix, ok := insee.RoleSuffix[role]
	if !ok {
		return map[string][]string{}
	}
	out := make(map[string][]string)
	edges := e.scan(m0.RelatedTo, func(ed edge) bool {
		return ed.both(suffix) && under(ed.object, m0.GraphOrganizations)
	})
	for _, ed := range edges {
		resource := strip(ed.subject, suffix)
		out[resource] = append(out[resource], strip(ed.object, suffix))
	}
	return out
}

// Attachments returns documentation → the series or operation it documents,
// and indicators when includeIndicators is set. A documentation attached to
// several resources keeps the first.
func (e *Extractor) Attachments(includeIndicators bool) map[string]string {
	out := make(map[string]string)
	documented := make(map[string]bool)
	edges := e.scan(m0.RelatedTo, func(ed edge) bool {
		if !ed.both(m0.AttrAssociatedWith) || !under(ed.subject, m0.GraphDocumentations) {
			return false
		}
		return under(ed.object, m0.GraphSeries) || under(ed.object, m0.GraphOperations) ||
			(includeIndicators && under(ed.object, m0.GraphIndicators))
	})
	for _, ed := range edges {
		doc := strip(ed.subject, m0.AttrAssociatedWith)
		target := strip(ed.object, m0.AttrAssociatedWith)
		if documented[target] {
			e.diag.Record(diagnostics.SharedAttachment, "Several metadata reports attached",
				"resource", target, "documentation", doc)
		}
		if existing, ok := out[doc]; ok {
			e.diag.Record(diagnostics.DuplicateAttachment, "Metadata report attached twice",
				"documentation", doc, "resource", target, "kept", existing)
			continue
		}
		out[doc] = target
		documented[target] = true
	}
	return out
}

// Production returns indicator → series it is produced from.
func (e *Extractor) Production() map[string][]string {
	out := make(map[string][]string)
	edges := e.scan(m0.RelatedTo, func(ed edge) bool {
		return ed.both(m0.AttrProducedFrom) &&
			under(ed.subject, m0.GraphIndicators) && under(ed.object, m0.GraphSeries)
	})
	for _, ed := range edges {
		indicator := strip(ed.subject, m0.AttrProducedFrom)
		out[indicator] = append(out[indicator], strip(ed.object, m0.AttrProducedFrom))
	}
	return out
}

// SortedKeys returns the keys of m in natural order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, storage.NaturalCompare)
	return keys
}

// SortedIDs returns the keys of m in ascending order.
func SortedIDs[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
