package insee

import "github.com/c360studio/semstreams/vocabulary"

// Namespace is the base IRI of the INSEE base ontology.
const Namespace = "http://rdf.insee.fr/def/base#"

// Standard namespaces used by the target graphs.
const (
	RDFNamespace     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace    = "http://www.w3.org/2000/01/rdf-schema#"
	XSDNamespace     = "http://www.w3.org/2001/XMLSchema#"
	OWLNamespace     = "http://www.w3.org/2002/07/owl#"
	SKOSNamespace    = "http://www.w3.org/2004/02/skos/core#"
	DCTermsNamespace = "http://purl.org/dc/terms/"
	DCNamespace      = "http://purl.org/dc/elements/1.1/"
	ORGNamespace     = "http://www.w3.org/ns/org#"
	PROVNamespace    = "http://www.w3.org/ns/prov#"
	FOAFNamespace    = "http://xmlns.com/foaf/0.1/"
	SchemaNamespace  = "https://schema.org/"
	SDMXMMNamespace  = "http://www.w3.org/ns/sdmx-mm#"
	DQVNamespace     = "http://www.w3.org/ns/dqv#"
	GeoNamespace     = "http://www.opengis.net/ont/geosparql#"
)

// Class IRIs of the target model.
const (
	// ClassFamily is a family of statistical operations.
	ClassFamily = Namespace + "StatisticalOperationFamily"

	// ClassSeries is a series of statistical operations.
	ClassSeries = Namespace + "StatisticalOperationSeries"

	// ClassOperation is a single statistical operation.
	ClassOperation = Namespace + "StatisticalOperation"

	// ClassIndicator is a statistical indicator.
	ClassIndicator = Namespace + "StatisticalIndicator"

	// ClassMetadataReport is the SIMS metadata report.
	ClassMetadataReport = SDMXMMNamespace + "MetadataReport"

	// ClassReportedAttribute is the placeholder used for reported-attribute ranges.
	// The misspelling is the IRI declared by the SIMS-FR structure definition.
	ClassReportedAttribute = SDMXMMNamespace + "ReortedAttribute"

	// ClassQualityMeasurement is the DQV quality measurement class.
	ClassQualityMeasurement = DQVNamespace + "QualityMeasurement"

	// ClassMetric is the DQV metric class.
	ClassMetric = DQVNamespace + "Metric"

	ClassConceptScheme = SKOSNamespace + "ConceptScheme"
	ClassConcept       = SKOSNamespace + "Concept"
	ClassOrganization  = ORGNamespace + "Organization"
	ClassDocument      = FOAFNamespace + "Document"
	ClassFeature       = GeoNamespace + "Feature"
)

// Term IRIs used directly by the converters.
const (
	RDFType  = RDFNamespace + "type"
	RDFValue = RDFNamespace + "value"

	RDFSLabel   = RDFSNamespace + "label"
	RDFSComment = RDFSNamespace + "comment"
	RDFSSeeAlso = RDFSNamespace + "seeAlso"

	XSDString = XSDNamespace + "string"
	XSDDate   = XSDNamespace + "date"

	OWLSameAs = vocabulary.OwlSameAs

	SKOSPrefLabel     = vocabulary.SkosPrefLabel
	SKOSAltLabel      = vocabulary.SkosAltLabel
	SKOSNotation      = SKOSNamespace + "notation"
	SKOSHistoryNote   = SKOSNamespace + "historyNote"
	SKOSInScheme      = SKOSNamespace + "inScheme"
	SKOSTopConceptOf  = SKOSNamespace + "topConceptOf"
	SKOSHasTopConcept = SKOSNamespace + "hasTopConcept"

	DCTermsIdentifier         = vocabulary.DcIdentifier
	DCTermsAbstract           = DCTermsNamespace + "abstract"
	DCTermsType               = DCTermsNamespace + "type"
	DCTermsAccrualPeriodicity = DCTermsNamespace + "accrualPeriodicity"
	DCTermsCreator            = DCTermsNamespace + "creator"
	DCTermsContributor        = DCTermsNamespace + "contributor"
	DCTermsIsPartOf           = DCTermsNamespace + "isPartOf"
	DCTermsHasPart            = DCTermsNamespace + "hasPart"
	DCTermsReplaces           = DCTermsNamespace + "replaces"
	DCTermsIsReplacedBy       = DCTermsNamespace + "isReplacedBy"
	DCTermsValid              = DCTermsNamespace + "valid"
	DCTermsDate               = DCTermsNamespace + "date"
	DCLanguage                = DCNamespace + "language"
	ORGIdentifier             = ORGNamespace + "identifier"
	PROVWasGeneratedBy        = vocabulary.ProvWasGeneratedBy
	SchemaURL                 = SchemaNamespace + "url"
	SDMXMMTarget              = SDMXMMNamespace + "target"
)

// DefaultPrefixes returns the prefix table used when serializing target graphs.
func DefaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":     RDFNamespace,
		"rdfs":    RDFSNamespace,
		"xsd":     XSDNamespace,
		"owl":     OWLNamespace,
		"skos":    SKOSNamespace,
		"dcterms": DCTermsNamespace,
		"dc":      DCNamespace,
		"org":     ORGNamespace,
		"prov":    PROVNamespace,
		"foaf":    FOAFNamespace,
		"schema":  SchemaNamespace,
		"sdmx-mm": SDMXMMNamespace,
		"dqv":     DQVNamespace,
		"geo":     GeoNamespace,
		"insee":   Namespace,
	}
}
