package m0

import "github.com/c360studio/semstreams/vocabulary"

// Predicate names of the M0 source model.
const (
	// ValuePrimary is the main (French) value of an attribute sub-resource.
	ValuePrimary = "m0.value.primary"

	// ValueEnglish is the English value of an attribute sub-resource.
	ValueEnglish = "m0.value.english"

	// RelationPrimary links two attribute sub-resources.
	RelationPrimary = "m0.relation.primary"

	// RelationEnglish is only used to tell English links apart.
	RelationEnglish = "m0.relation.english"

	// SequenceNext holds the next free id of a record type.
	SequenceNext = "m0.sequence.next"
)

func init() {
	vocabulary.Register(ValuePrimary,
		vocabulary.WithDescription("Primary value of an M0 attribute"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Values))

	vocabulary.Register(ValueEnglish,
		vocabulary.WithDescription("English value of an M0 attribute"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(ValuesGb))

	vocabulary.Register(RelationPrimary,
		vocabulary.WithDescription("Association between two M0 attributes"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(RelatedTo))

	vocabulary.Register(RelationEnglish,
		vocabulary.WithDescription("Association to an English link"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(RelatedToGb))

	vocabulary.Register(SequenceNext,
		vocabulary.WithDescription("Next free identifier of an M0 record type"),
		vocabulary.WithDataType("int"),
		vocabulary.WithIRI(SequenceValue))
}
