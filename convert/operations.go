package convert

import (
	"strconv"
	"strings"

	"github.com/c360studio/m0convert/diagnostics"
	"github.com/c360studio/m0convert/relations"
	"github.com/c360studio/m0convert/storage"
	"github.com/c360studio/m0convert/vocabulary/insee"
	"github.com/c360studio/m0convert/vocabulary/m0"
)

// Operations converts families, series and operations, then adds the
// hierarchy, peer, replacement and organizational relations between them.
func (c *Converter) Operations() *storage.Graph {
	out := storage.NewGraph("")
	for _, t := range []storage.EntityType{storage.EntityFamily, storage.EntitySeries, storage.EntityOperation} {
		n := c.operationLike(out, t)
		c.logger.Info("Extracted operation-like resources", "type", string(t), "count", n)
	}
	c.addHierarchies(out)
	c.addPeerRelations(out, func(start string) bool {
		return !strings.HasPrefix(start, storage.EntityIndicator.Base())
	})
	c.addReplacements(out)
	for _, role := range insee.Roles {
		c.addOrganizationalRoles(out, role)
	}
	return out
}

// Indicators converts indicators with their production and peer relations.
func (c *Converter) Indicators() *storage.Graph {
	out := storage.NewGraph("")
	n := c.operationLike(out, storage.EntityIndicator)
	c.logger.Info("Extracted indicators", "count", n)

	production := c.rel.Production()
	generatedBy := storage.IRI(insee.PredicateIRI(insee.IndicatorGeneratedBy))
	for _, indicator := range relations.SortedKeys(production) {
		subject, ok := c.resolve(indicator)
		if !ok {
			continue
		}
		for _, series := range production[indicator] {
			object, ok := c.resolve(series)
			if !ok {
				continue
			}
			out.AddTriple(storage.IRI(subject), generatedBy, storage.IRI(object))
		}
	}
	c.addPeerRelations(out, func(start string) bool {
		return strings.HasPrefix(start, storage.EntityIndicator.Base())
	})
	return out
}

// operationLike converts every existing record of type t and returns how
// many were converted.
func (c *Converter) operationLike(out *storage.Graph, t storage.EntityType) int {
	source := c.ds.Graph(t.GraphName())
	class, _ := insee.ClassFor(string(t))
	count := 0
	for id := 1; id <= source.MaxSequence(); id++ {
		rec := storage.NewRecordID(t, id)
		if !source.HasSubject(rec.URI()) {
			continue
		}
		target, ok := c.resolve(rec.URI())
		if !ok {
			continue
		}
		c.logger.Debug("Creating target resource", "target", target, "m0", rec.URI())
		out.AddTriple(storage.IRI(target), storage.IRI(insee.RDFType), storage.IRI(class))
		c.FillLiteralProperties(out, target, source, rec.URI())
		if t == storage.EntityOperation {
			c.fillValidity(out, target, source, rec)
		}
		count++
	}
	return count
}

// fillValidity adds the vintage of an operation, spelt MILLESIME or MILESSIME.
func (c *Converter) fillValidity(out *storage.Graph, target string, source *storage.Graph, rec storage.RecordID) {
	predicate := storage.IRI(insee.PredicateIRI(insee.OperationValidity))
	for _, attr := range []string{m0.AttrVintage, m0.AttrVintageMisspelt} {
		values := primaryValues(source, rec.Attribute(attr))
		if len(values) == 0 {
			continue
		}
		if len(values) > 1 {
			c.diag.Record(diagnostics.AmbiguousValue, "Several vintage values, keeping the first",
				"uri", rec.Attribute(attr), "count", len(values))
		}
		year := strings.TrimSpace(values[0])
		if year == "" {
			continue
		}
		if !isYear(year) {
			c.diag.Record(diagnostics.InvalidYear, "Invalid year value", "uri", rec.URI(), "value", year)
			continue
		}
		out.AddTriple(storage.IRI(target), predicate, storage.Literal(year))
	}
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	_, err := strconv.ParseUint(s, 10, 16)
	return err == nil
}

func (c *Converter) addHierarchies(out *storage.Graph) {
	isPartOf := storage.IRI(insee.PredicateIRI(insee.OperationIsPartOf))
	hasPart := storage.IRI(insee.PredicateIRI(insee.OperationHasPart))
	hierarchies := c.rel.Hierarchies()
	for _, child := range relations.SortedKeys(hierarchies) {
		childURI, ok := c.resolve(child)
		if !ok {
			continue
		}
		parentURI, ok := c.resolve(hierarchies[child])
		if !ok {
			continue
		}
		out.AddTriple(storage.IRI(childURI), isPartOf, storage.IRI(parentURI))
		out.AddTriple(storage.IRI(parentURI), hasPart, storage.IRI(childURI))
	}
}

// addPeerRelations adds rdfs:seeAlso for the peer relations whose start is
// accepted. Both directions are stored in M0, so each one is converted.
func (c *Converter) addPeerRelations(out *storage.Graph, accept func(start string) bool) {
	seeAlso := storage.IRI(insee.PredicateIRI(insee.OperationSeeAlso))
	peers := c.rel.Relations()
	for _, start := range relations.SortedKeys(peers) {
		if !accept(start) {
			continue
		}
		startURI, ok := c.resolve(start)
		if !ok {
			continue
		}
		for _, end := range peers[start] {
			endURI, ok := c.resolve(end)
			if !ok {
				continue
			}
			out.AddTriple(storage.IRI(startURI), seeAlso, storage.IRI(endURI))
		}
	}
}

func (c *Converter) addReplacements(out *storage.Graph) {
	replaces := storage.IRI(insee.PredicateIRI(insee.OperationReplaces))
	replacedBy := storage.IRI(insee.PredicateIRI(insee.OperationReplacedBy))
	replacements := c.rel.Replacements()
	for _, after := range relations.SortedKeys(replacements) {
		afterURI, ok := c.resolve(after)
		if !ok {
			continue
		}
		for _, before := range replacements[after] {
			beforeURI, ok := c.resolve(before)
			if !ok {
				continue
			}
			out.AddTriple(storage.IRI(afterURI), replaces, storage.IRI(beforeURI))
			out.AddTriple(storage.IRI(beforeURI), replacedBy, storage.IRI(afterURI))
		}
	}
}

func (c *Converter) addOrganizationalRoles(out *storage.Graph, role insee.Role) {
	predicate := storage.IRI(insee.PredicateIRI(insee.RolePredicate[role]))
	roles := c.rel.OrganizationalRoles(role)
	c.logger.Debug("Creating organizational relations", "role", role.String(), "count", len(roles))
	for _, resource := range relations.SortedKeys(roles) {
		subject, ok := c.resolve(resource)
		if !ok {
			continue
		}
		for _, org := range roles[resource] {
			object, ok := c.resolveOrganization(org)
			if !ok {
				continue
			}
			out.AddTriple(storage.IRI(subject), predicate, storage.IRI(object))
		}
	}
}
