// Package insee provides the target vocabulary for converted M0 graphs.
//
// The target model combines standard vocabularies:
//   - SKOS for code lists and operation labels
//   - Dublin Core terms for hierarchies, replacements and organizational roles
//   - PROV-O for indicator production
//   - ORG and FOAF for organizations, links and documents
//   - SDMX metadata-report terms for SIMS reports
//   - GeoSPARQL for geographic features
//
// Predicates use three-level dotted notation and are registered in init()
// with their RDF IRI, so converters can name predicates by role and resolve
// them with PredicateIRI.
//
// Import this package to auto-register predicates:
//
//	import _ "github.com/c360studio/m0convert/vocabulary/insee"
package insee
