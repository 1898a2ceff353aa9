package insee

import "github.com/c360studio/semstreams/vocabulary"

// Operation predicates apply to families, series, operations and indicators.
const (
	// OperationTitle is the preferred label (TITLE).
	OperationTitle = "insee.operation.title"

	// OperationAltLabel is the alternative label (ALT_LABEL), left untagged.
	OperationAltLabel = "insee.operation.alt_label"

	// OperationSummary is the abstract (SUMMARY).
	OperationSummary = "insee.operation.summary"

	// OperationHistory is the history note (HISTORY).
	OperationHistory = "insee.operation.history"

	// OperationSourceCategory references a code of the source category list.
	OperationSourceCategory = "insee.operation.source_category"

	// OperationFrequency references a code of the collection frequency list.
	OperationFrequency = "insee.operation.frequency"

	// OperationValidity is the four-digit vintage of an operation.
	OperationValidity = "insee.operation.validity"

	OperationCreator     = "insee.operation.creator"
	OperationContributor = "insee.operation.contributor"
	OperationIsPartOf    = "insee.operation.is_part_of"
	OperationHasPart     = "insee.operation.has_part"
	OperationSeeAlso     = "insee.operation.see_also"
	OperationReplaces    = "insee.operation.replaces"
	OperationReplacedBy  = "insee.operation.replaced_by"

	// IndicatorGeneratedBy links an indicator to the series it is produced from.
	IndicatorGeneratedBy = "insee.indicator.generated_by"
)

// Report predicates apply to SIMS metadata reports.
const (
	ReportLabel  = "insee.report.label"
	ReportTarget = "insee.report.target"
	ReportValue  = "insee.report.value"
	ReportLink   = "insee.report.link"
)

// Code list predicates.
const (
	CodeNotation        = "insee.code.notation"
	CodeLabel           = "insee.code.label"
	CodeComment         = "insee.code.comment"
	CodeInScheme        = "insee.code.in_scheme"
	CodeTopConceptOf    = "insee.code.top_concept_of"
	SchemeHasTopConcept = "insee.scheme.has_top_concept"
)

// Organization, document and geographic feature predicates.
const (
	OrganizationIdentifier = "insee.organization.identifier"
	OrganizationLabel      = "insee.organization.label"

	DocumentLabel    = "insee.document.label"
	DocumentComment  = "insee.document.comment"
	DocumentURL      = "insee.document.url"
	DocumentLanguage = "insee.document.language"
	DocumentDate     = "insee.document.date"

	FeatureLabel  = "insee.feature.label"
	FeatureSameAs = "insee.feature.same_as"
)

// PredicateIRI resolves a registered predicate name to its RDF IRI.
// Unregistered names resolve to the base ontology namespace.
func PredicateIRI(name string) string {
	if meta := vocabulary.GetPredicateMetadata(name); meta != nil && meta.StandardIRI != "" {
		return meta.StandardIRI
	}
	return Namespace + name
}

func init() {
	vocabulary.Register(OperationTitle,
		vocabulary.WithDescription("Preferred label of an operation-like resource"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(SKOSPrefLabel))

	vocabulary.Register(OperationAltLabel,
		vocabulary.WithDescription("Alternative label, usually an acronym"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(SKOSAltLabel))

	vocabulary.Register(OperationSummary,
		vocabulary.WithDescription("Summary of the operation"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(DCTermsAbstract))

	vocabulary.Register(OperationHistory,
		vocabulary.WithDescription("History note of the operation"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(SKOSHistoryNote))

	vocabulary.Register(OperationSourceCategory,
		vocabulary.WithDescription("Category of source, as a code reference"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DCTermsType))

	vocabulary.Register(OperationFrequency,
		vocabulary.WithDescription("Collection frequency, as a code reference"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DCTermsAccrualPeriodicity))

	vocabulary.Register(OperationValidity,
		vocabulary.WithDescription("Vintage year of an operation"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(DCTermsValid))

	vocabulary.Register(OperationCreator,
		vocabulary.WithDescription("Organization producing the operation"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DCTermsCreator))

	vocabulary.Register(OperationContributor,
		vocabulary.WithDescription("Organization holding a stake in the operation"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DCTermsContributor))

	vocabulary.Register(OperationIsPartOf,
		vocabulary.WithDescription("Parent family or series"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DCTermsIsPartOf))

	vocabulary.Register(OperationHasPart,
		vocabulary.WithDescription("Child series or operation"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DCTermsHasPart))

	vocabulary.Register(OperationSeeAlso,
		vocabulary.WithDescription("Peer operation-like resource"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(RDFSSeeAlso))

	vocabulary.Register(OperationReplaces,
		vocabulary.WithDescription("Resource replaced by this one"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DCTermsReplaces))

	vocabulary.Register(OperationReplacedBy,
		vocabulary.WithDescription("Resource replacing this one"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(DCTermsIsReplacedBy))

	vocabulary.Register(IndicatorGeneratedBy,
		vocabulary.WithDescription("Series an indicator is produced from"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PROVWasGeneratedBy))

	vocabulary.Register(ReportLabel,
		vocabulary.WithDescription("Bilingual label of a metadata report"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(RDFSLabel))

	vocabulary.Register(ReportTarget,
		vocabulary.WithDescription("Series, operation or indicator documented by the report"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(SDMXMMTarget))

	vocabulary.Register(ReportValue,
		vocabulary.WithDescription("Free text of a text-and-reference attribute"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(RDFValue))

	vocabulary.Register(ReportLink,
		vocabulary.WithDescription("External link attached to a text-and-reference attribute"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(RDFSSeeAlso))

	vocabulary.Register(CodeNotation,
		vocabulary.WithDescription("Notation of a code"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(SKOSNotation))

	vocabulary.Register(CodeLabel,
		vocabulary.WithDescription("Preferred label of a code or code list"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(SKOSPrefLabel))

	vocabulary.Register(CodeComment,
		vocabulary.WithDescription("Business identifier of a code, kept as a comment"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(RDFSComment))

	vocabulary.Register(CodeInScheme,
		vocabulary.WithDescription("Code list a code belongs to"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(SKOSInScheme))

	vocabulary.Register(CodeTopConceptOf,
		vocabulary.WithDescription("Code list a code is a top concept of"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(SKOSTopConceptOf))

	vocabulary.Register(SchemeHasTopConcept,
		vocabulary.WithDescription("Top concept of a code list"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(SKOSHasTopConcept))

	vocabulary.Register(OrganizationIdentifier,
		vocabulary.WithDescription("Business identifier of an organization"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(ORGIdentifier))

	vocabulary.Register(OrganizationLabel,
		vocabulary.WithDescription("Name of an organization"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(RDFSLabel))

	vocabulary.Register(DocumentLabel,
		vocabulary.WithDescription("Title of a link or document"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(RDFSLabel))

	vocabulary.Register(DocumentComment,
		vocabulary.WithDescription("Type of a link or document, kept as a comment"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(RDFSComment))

	vocabulary.Register(DocumentURL,
		vocabulary.WithDescription("Address of a link or document"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(SchemaURL))

	vocabulary.Register(DocumentLanguage,
		vocabulary.WithDescription("Language of a link or document"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(DCLanguage))

	vocabulary.Register(DocumentDate,
		vocabulary.WithDescription("Publication date of a document"),
		vocabulary.WithDataType("datetime"),
		vocabulary.WithIRI(DCTermsDate))

	vocabulary.Register(FeatureLabel,
		vocabulary.WithDescription("Name of a geographic feature"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(RDFSLabel))

	vocabulary.Register(FeatureSameAs,
		vocabulary.WithDescription("Official geographic code list resource"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(OWLSameAs))
}
