package convert

import (
	"strings"

	"github.com/c360studio/m0convert/diagnostics"
	"github.com/c360studio/m0convert/mapping"
	"github.com/c360studio/m0convert/storage"
	"github.com/c360studio/m0convert/vocabulary/insee"
	"github.com/c360studio/m0convert/vocabulary/m0"
)

// Organizations converts organisms to ORG organizations. Organizations
// outside Insee are checked against the reference organizations when they
// are configured.
func (c *Converter) Organizations() *storage.Graph {
	out := storage.NewGraph("")
	source := c.ds.M0(m0.GraphOrganizations)
	identifier := storage.IRI(insee.PredicateIRI(insee.OrganizationIdentifier))
	label := storage.IRI(insee.PredicateIRI(insee.OrganizationLabel))

	for i := 1; i <= source.MaxSequence(); i++ {
		rec := storage.NewRecordID(storage.EntityOrganization, i)
		values := primaryValues(source, rec.Attribute(m0.AttrCode))
		orgID := ""
		if len(values) > 0 {
			orgID = strings.TrimSpace(values[0])
		}
		if orgID == "" {
			c.diag.Record(diagnostics.MissingIdentifier, "No organization identifier", "uri", rec.URI())
			continue
		}
		target, ok := c.resolveOrganization(rec.URI())
		if !ok {
			continue
		}
		c.logger.Debug("Creating organization", "uri", target, "m0", rec.URI())
		subject := storage.IRI(target)
		out.AddTriple(subject, storage.IRI(insee.RDFType), storage.IRI(insee.ClassOrganization))
		out.AddTriple(subject, identifier, storage.Literal(orgID))
		if title, ok := c.singleValue(source, rec.Attribute(m0.AttrTitle)); ok {
			out.AddTriple(subject, label, storage.Literal(title))
		}

		if c.reference == nil || mapping.IsInseeUnit(orgID) {
			continue
		}
		if !c.isReferenced(orgID) {
			c.diag.Record(diagnostics.UnmatchedReference, "Organization not found in reference organizations",
				"identifier", orgID)
		}
	}
	return out
}

func (c *Converter) isReferenced(orgID string) bool {
	matched := c.reference.Filter(storage.Pattern{Predicate: storage.IRI(insee.DCTermsIdentifier)}, func(t storage.Triple) bool {
		return t.Object.IsLiteral() && t.Object.Value == orgID
	})
	return len(matched) > 0
}
