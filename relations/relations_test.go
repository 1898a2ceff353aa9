package relations

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/m0convert/diagnostics"
	"github.com/c360studio/m0convert/storage"
	"github.com/c360studio/m0convert/vocabulary/insee"
	"github.com/c360studio/m0convert/vocabulary/m0"
)

const base = "http://baseUri/"

type assoc struct {
	subject, object string
	english         bool
}

func newExtractor(t *testing.T, edges ...assoc) (*Extractor, *diagnostics.Sink, *bytes.Buffer) {
	t.Helper()
	g := storage.NewGraph(m0.GraphName(m0.GraphAssociations))
	for _, a := range edges {
		pred := m0.RelatedTo
		if a.english {
			pred = m0.RelatedToGb
		}
		g.AddTriple(storage.IRI(base+a.subject), storage.IRI(pred), storage.IRI(base+a.object))
	}
	var buf bytes.Buffer
	sink := diagnostics.New(slog.New(slog.NewTextHandler(&buf, nil)), nil)
	return New(g, sink), sink, &buf
}

func TestHierarchies(t *testing.T) {
	ex, sink, buf := newExtractor(t,
		assoc{subject: "series/serie/12/ASSOCIE_A", object: "familles/famille/10/ASSOCIE_A"},
		assoc{subject: "series/serie/12/ASSOCIE_A", object: "familles/famille/3/ASSOCIE_A"},
		assoc{subject: "operations/operation/7/ASSOCIE_A", object: "series/serie/12/ASSOCIE_A"},
		// Not a hierarchy: wrong direction and wrong types.
		assoc{subject: "familles/famille/3/ASSOCIE_A", object: "series/serie/12/ASSOCIE_A"},
		assoc{subject: "documentations/documentation/1/ASSOCIE_A", object: "series/serie/12/ASSOCIE_A"},
		assoc{subject: "series/serie/13/RELATED_TO", object: "familles/famille/3/RELATED_TO"},
	)

	got := ex.Hierarchies()

	assert.Equal(t, map[string]string{
		base + "series/serie/12":        base + "familles/famille/3",
		base + "operations/operation/7": base + "series/serie/12",
	}, got)
	assert.Equal(t, 1, sink.Count(diagnostics.ConflictingHierarchyParent))
	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestRelationsKeepBothDirections(t *testing.T) {
	ex, _, _ := newExtractor(t,
		assoc{subject: "series/serie/1/RELATED_TO", object: "operations/operation/2/RELATED_TO"},
		assoc{subject: "operations/operation/2/RELATED_TO", object: "series/serie/1/RELATED_TO"},
		assoc{subject: "series/serie/1/RELATED_TO", object: "indicateurs/indicateur/4/RELATED_TO"},
		assoc{subject: "codelists/codelist/1/RELATED_TO", object: "codes/code/5/RELATED_TO"},
		assoc{subject: "codes/code/5/RELATED_TO", object: "codelists/codelist/1/RELATED_TO"},
	)

	got := ex.Relations()

	require.Len(t, got, 2)
	assert.Equal(t, []string{base + "indicateurs/indicateur/4", base + "operations/operation/2"}, got[base+"series/serie/1"])
	assert.Equal(t, []string{base + "series/serie/1"}, got[base+"operations/operation/2"])
	assert.NotContains(t, got, base+"codelists/codelist/1")
	assert.NotContains(t, got, base+"codes/code/5")
}

func TestReplacements(t *testing.T) {
	ex, _, _ := newExtractor(t,
		assoc{subject: "series/serie/12/REPLACES", object: "series/serie/13/REMPLACE_PAR"},
		assoc{subject: "series/serie/13/REMPLACE_PAR", object: "series/serie/12/REPLACES"},
	)

	assert.Equal(t, map[string][]string{
		base + "series/serie/12": {base + "series/serie/13"},
	}, ex.Replacements())
}

func TestOrganizationalRoles(t *testing.T) {
	ex, _, _ := newExtractor(t,
		assoc{subject: "operations/operation/1/ORGANISATION", object: "organismes/organisme/4/ORGANISATION"},
		assoc{subject: "series/serie/2/STAKEHOLDERS", object: "organismes/organisme/5/STAKEHOLDERS"},
		assoc{subject: "series/serie/2/STAKEHOLDERS", object: "organismes/organisme/6/STAKEHOLDERS"},
		assoc{subject: "series/serie/2/STAKEHOLDERS", object: "series/serie/3/STAKEHOLDERS"},
	)

	assert.Equal(t, map[string][]string{
		base + "operations/operation/1": {base + "organismes/organisme/4"},
	}, ex.OrganizationalRoles(insee.RoleProducer))
	assert.Equal(t, map[string][]string{
		base + "series/serie/2": {base + "organismes/organisme/5", base + "organismes/organisme/6"},
	}, ex.OrganizationalRoles(insee.RoleStakeholder))
	assert.Empty(t, ex.OrganizationalRoles(insee.Role(99)))
}

func TestAttachments(t *testing.T) {
	ex, sink, _ := newExtractor(t,
		assoc{subject: "documentations/documentation/1/ASSOCIE_A", object: "series/serie/5/ASSOCIE_A"},
		assoc{subject: "documentations/documentation/1/ASSOCIE_A", object: "operations/operation/9/ASSOCIE_A"},
		assoc{subject: "documentations/documentation/2/ASSOCIE_A", object: "series/serie/5/ASSOCIE_A"},
		assoc{subject: "documentations/documentation/3/ASSOCIE_A", object: "indicateurs/indicateur/8/ASSOCIE_A"},
	)

	got := ex.Attachments(false)
	assert.Equal(t, map[string]string{
		base + "documentations/documentation/1": base + "operations/operation/9",
		base + "documentations/documentation/2": base + "series/serie/5",
	}, got)
	assert.Equal(t, 1, sink.Count(diagnostics.DuplicateAttachment))
	assert.Equal(t, 0, sink.Count(diagnostics.SharedAttachment))

	withIndicators := ex.Attachments(true)
	assert.Equal(t, base+"indicateurs/indicateur/8", withIndicators[base+"documentations/documentation/3"])
}

func TestAttachmentsSharedTarget(t *testing.T) {
	ex, sink, buf := newExtractor(t,
		assoc{subject: "documentations/documentation/1/ASSOCIE_A", object: "series/serie/5/ASSOCIE_A"},
		assoc{subject: "documentations/documentation/2/ASSOCIE_A", object: "series/serie/5/ASSOCIE_A"},
	)

	got := ex.Attachments(false)

	assert.Len(t, got, 2)
	assert.Equal(t, 1, sink.Count(diagnostics.SharedAttachment))
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestProduction(t *testing.T) {
	ex, _, _ := newExtractor(t,
		assoc{subject: "indicateurs/indicateur/9/PRODUCED_FROM", object: "series/serie/71/PRODUCED_FROM"},
		assoc{subject: "indicateurs/indicateur/9/PRODUCED_FROM", object: "series/serie/8/PRODUCED_FROM"},
		assoc{subject: "series/serie/71/PRODUCED_FROM", object: "indicateurs/indicateur/9/PRODUCED_FROM"},
	)

	assert.Equal(t, map[string][]string{
		base + "indicateurs/indicateur/9": {base + "series/serie/8", base + "series/serie/71"},
	}, ex.Production())
}

func TestSortedKeys(t *testing.T) {
	m := map[string]int{
		base + "series/serie/10":    1,
		base + "series/serie/2":     1,
		base + "familles/famille/1": 1,
	}
	assert.Equal(t, []string{
		base + "familles/famille/1",
		base + "series/serie/2",
		base + "series/serie/10",
	}, SortedKeys(m))
	assert.Equal(t, []int{1, 3, 20}, SortedIDs(map[int]bool{20: true, 1: true, 3: true}))
}
