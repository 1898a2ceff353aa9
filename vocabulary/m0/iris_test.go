package m0

import (
	"testing"

	"github.com/c360studio/semstreams/vocabulary"
)

func TestGraphName(t *testing.T) {
	if got := GraphName(GraphAssociations); got != "http://rdf.insee.fr/graphe/associations" {
		t.Errorf("GraphName() = %q", got)
	}
}

func TestPredicatesRegistered(t *testing.T) {
	tests := []struct {
		name string
		iri  string
	}{
		{ValuePrimary, Values},
		{ValueEnglish, ValuesGb},
		{RelationPrimary, RelatedTo},
		{RelationEnglish, RelatedToGb},
		{SequenceNext, SequenceValue},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			meta := vocabulary.GetPredicateMetadata(tc.name)
			if meta == nil {
				t.Fatalf("predicate %q not registered", tc.name)
			}
			if meta.StandardIRI != tc.iri {
				t.Errorf("StandardIRI = %q, want %q", meta.StandardIRI, tc.iri)
			}
		})
	}
}
