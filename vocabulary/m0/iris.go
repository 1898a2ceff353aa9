// Package m0 defines the vocabulary of the interim M0 graph: graph names,
// resource base, value and relation predicates, and attribute tokens.
package m0

// Graph and resource bases.
const (
	// GraphBase prefixes the name of every M0 named graph.
	GraphBase = "http://rdf.insee.fr/graphe/"

	// BaseURI prefixes every M0 resource.
	BaseURI = "http://baseUri/"

	// MessageNamespace holds the generic value and relation predicates.
	MessageNamespace = "http://www.SDMX.org/resources/SDMXML/schemas/v2_0/message#"

	// SequenceValue carries the next free id of a record type.
	SequenceValue = "http://rem.org/schema#sequenceValue"
)

// Generic predicates.
const (
	Values      = MessageNamespace + "values"
	ValuesGb    = MessageNamespace + "valuesGb"
	RelatedTo   = MessageNamespace + "relatedTo"
	RelatedToGb = MessageNamespace + "relatedToGb"
)

// Graph tokens.
const (
	GraphFamilies       = "familles"
	GraphSeries         = "series"
	GraphOperations     = "operations"
	GraphIndicators     = "indicateurs"
	GraphOrganizations  = "organismes"
	GraphDocumentations = "documentations"
	GraphCodeLists      = "codelists"
	GraphCodes          = "codes"
	GraphLinks          = "liens"
	GraphDocuments      = "documents"
	GraphAssociations   = "associations"
)

// Attribute tokens found at the end of record sub-resources.
const (
	AttrTitle           = "TITLE"
	AttrAltLabel        = "ALT_LABEL"
	AttrSummary         = "SUMMARY"
	AttrHistory         = "HISTORY"
	AttrSourceCategory  = "SOURCE_CATEGORY"
	AttrFrequency       = "FREQ_COLL"
	AttrOrganisation    = "ORGANISATION"
	AttrStakeholders    = "STAKEHOLDERS"
	AttrReplaces        = "REPLACES"
	AttrReplacedBy      = "REMPLACE_PAR"
	AttrRelatedTo       = "RELATED_TO"
	AttrAssociatedWith  = "ASSOCIE_A"
	AttrProducedFrom    = "PRODUCED_FROM"
	AttrVintage         = "MILLESIME"
	AttrVintageMisspelt = "MILESSIME"
	AttrDDSID           = "ID_DDS"
	AttrCode            = "ID_CODE"
	AttrCodeValue       = "CODE_VALUE"
	AttrBusinessID      = "ID_METIER"
	AttrURL             = "URI"
	AttrType            = "TYPE"
	AttrDate            = "DATE"
	AttrPublicationDate = "DATE_PUBLICATION"
	AttrSequence        = "sequence"
)

// GraphName returns the full name of an M0 named graph.
func GraphName(token string) string {
	return GraphBase + token
}
