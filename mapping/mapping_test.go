package mapping

import (
	"bytes"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/m0convert/config"
	"github.com/c360studio/m0convert/storage"
	"github.com/c360studio/m0convert/vocabulary/m0"
)

// testDataset creates records 1..n of the given types, skipping the ids in gaps.
func testDataset(counts map[storage.EntityType]int, gaps map[storage.EntityType][]int) *storage.Dataset {
	ds := storage.NewDataset()
	for t, n := range counts {
		g := ds.Ensure(t.GraphName())
		g.AddTriple(storage.IRI(t.Sequence()), storage.IRI(m0.SequenceValue), storage.Literal(strconv.Itoa(n+1)))
	next:
		for id := 1; id <= n; id++ {
			for _, gap := range gaps[t] {
				if gap == id {
					continue next
				}
			}
			rec := storage.NewRecordID(t, id)
			g.AddTriple(storage.IRI(rec.URI()), storage.IRI(m0.Values), storage.Literal("x"))
			g.AddTriple(storage.IRI(rec.Attribute(m0.AttrTitle)), storage.IRI(m0.Values), storage.Literal("Titre"))
		}
	}
	return ds
}

func testInput(ds *storage.Dataset, cfg config.MappingConfig) AllocationInput {
	return InputFromDataset(ds, cfg, config.DefaultURIs(), nil)
}

func defaultMappingConfig() config.MappingConfig {
	cfg := config.DefaultConfig().Mapping
	cfg.SeriesOverrides = map[int]int{}
	return cfg
}

func TestAllocateFixedMappingsWin(t *testing.T) {
	ds := testDataset(map[storage.EntityType]int{
		storage.EntitySeries:    3,
		storage.EntityOperation: 3,
	}, nil)
	cfg := defaultMappingConfig()
	cfg.Operations = map[int]int{2: 1001}
	cfg.SeriesOverrides = map[int]int{3: 1241}

	m, err := Allocate(testInput(ds, cfg))
	require.NoError(t, err)

	got, ok := m.Convert("http://baseUri/operations/operation/2")
	require.True(t, ok)
	assert.Equal(t, "http://id.insee.fr/operations/operation/s1001", got)

	got, ok = m.Convert("http://baseUri/series/serie/3")
	require.True(t, ok)
	assert.Equal(t, "http://id.insee.fr/operations/serie/s1241", got)

	// 1001 is fixed, so the first series takes 1002.
	got, _ = m.Convert("http://baseUri/series/serie/1")
	assert.Equal(t, "http://id.insee.fr/operations/serie/s1002", got)
}

func TestAllocateDistinctAndDeterministic(t *testing.T) {
	ds := testDataset(map[storage.EntityType]int{
		storage.EntityFamily:    4,
		storage.EntitySeries:    10,
		storage.EntityOperation: 20,
		storage.EntityIndicator: 5,
	}, map[storage.EntityType][]int{storage.EntityOperation: {4, 9}})
	cfg := defaultMappingConfig()

	first, err := Allocate(testInput(ds, cfg))
	require.NoError(t, err)
	second, err := Allocate(testInput(ds, cfg))
	require.NoError(t, err)

	assert.Equal(t, first.Entries(), second.Entries())

	seen := make(map[int]string)
	for _, e := range first.Entries() {
		rec, err := storage.ParseRecordID(e.M0)
		require.NoError(t, err)
		if rec.Type == storage.EntityFamily {
			continue
		}
		n, err := TargetNumber(e.Target)
		require.NoError(t, err)
		if prev, ok := seen[n]; ok {
			t.Fatalf("id %d allocated to both %s and %s", n, prev, e.M0)
		}
		seen[n] = e.M0
	}
	assert.Len(t, seen, 10+18+5)
}

func TestAllocateSkipsMissingRecords(t *testing.T) {
	ds := testDataset(map[storage.EntityType]int{
		storage.EntitySeries: 3,
	}, map[storage.EntityType][]int{storage.EntitySeries: {2}})

	m, err := Allocate(testInput(ds, defaultMappingConfig()))
	require.NoError(t, err)

	_, ok := m.Convert("http://baseUri/series/serie/2")
	assert.False(t, ok)
	got, _ := m.Convert("http://baseUri/series/serie/3")
	assert.Equal(t, "http://id.insee.fr/operations/serie/s1002", got)
}

func TestAllocateFamiliesKeepTheirIndex(t *testing.T) {
	ds := testDataset(map[storage.EntityType]int{
		storage.EntityFamily: 2,
		storage.EntitySeries: 1,
	}, nil)

	m, err := Allocate(testInput(ds, defaultMappingConfig()))
	require.NoError(t, err)

	got, _ := m.Convert("http://baseUri/familles/famille/2")
	assert.Equal(t, "http://id.insee.fr/operations/famille/s2", got)
	got, _ = m.Convert("http://baseUri/series/serie/1")
	assert.Equal(t, "http://id.insee.fr/operations/serie/s1001", got)
}

func TestAllocateReservation(t *testing.T) {
	ds := testDataset(map[storage.EntityType]int{
		storage.EntitySeries:    2,
		storage.EntityOperation: 1,
		storage.EntityIndicator: 1,
	}, nil)
	cfg := defaultMappingConfig()
	cfg.Reserved = map[string]int{"serie": 5, "operation": 3}

	m, err := Allocate(testInput(ds, cfg))
	require.NoError(t, err)

	// Series take 1001 and 1002, then 3 more are reserved: operations start at 1006.
	got, _ := m.Convert("http://baseUri/operations/operation/1")
	assert.Equal(t, "http://id.insee.fr/operations/operation/s1006", got)
	// The operation used 1 of its 3: 2 more are reserved.
	got, _ = m.Convert("http://baseUri/indicateurs/indicateur/1")
	assert.Equal(t, "http://id.insee.fr/produits/indicateur/p1009", got)
}

func TestAllocatePoolExhausted(t *testing.T) {
	t.Run("while allocating", func(t *testing.T) {
		ds := testDataset(map[storage.EntityType]int{storage.EntitySeries: 5}, nil)
		cfg := defaultMappingConfig()
		cfg.PoolStart, cfg.PoolEnd = 1001, 1003

		_, err := Allocate(testInput(ds, cfg))
		assert.True(t, errors.Is(err, ErrPoolExhausted))
	})

	t.Run("while reserving", func(t *testing.T) {
		ds := testDataset(map[storage.EntityType]int{storage.EntitySeries: 1}, nil)
		cfg := defaultMappingConfig()
		cfg.PoolStart, cfg.PoolEnd = 1001, 1010

		_, err := Allocate(testInput(ds, cfg))
		assert.True(t, errors.Is(err, ErrPoolExhausted))
	})
}

func TestAllocateDuplicateFixedTarget(t *testing.T) {
	ds := testDataset(map[storage.EntityType]int{storage.EntityOperation: 2}, nil)
	cfg := defaultMappingConfig()
	cfg.Operations = map[int]int{1: 1100, 2: 1100}

	_, err := Allocate(testInput(ds, cfg))
	assert.True(t, errors.Is(err, ErrDuplicateTarget))
}

func TestFixedMappingsSeries(t *testing.T) {
	ds := storage.NewDataset()
	g := ds.Ensure(storage.EntitySeries.GraphName())
	g.AddTriple(storage.IRI("http://baseUri/series/serie/4/ID_DDS"), storage.IRI(m0.Values), storage.Literal("OPE-ENQ-LOGEMENT"))
	g.AddTriple(storage.IRI("http://baseUri/series/serie/5/ID_DDS"), storage.IRI(m0.Values), storage.Literal("OPE-UNKNOWN"))

	tables := Tables{
		DDS:             map[string]int{"ENQ-LOGEMENT": 1250},
		SeriesOverrides: map[int]int{135: 1241},
	}
	fixed := FixedMappings(ds, tables, config.DefaultURIs(), nil)

	assert.Equal(t, map[int]string{
		4:   "http://id.insee.fr/operations/serie/s1250",
		135: "http://id.insee.fr/operations/serie/s1241",
	}, fixed[storage.EntitySeries])
	assert.Empty(t, fixed[storage.EntityFamily])
	assert.Empty(t, fixed[storage.EntityIndicator])
}

func TestOrganizationMappings(t *testing.T) {
	ds := storage.NewDataset()
	g := ds.Ensure(storage.EntityOrganization.GraphName())
	add := func(n, code string) {
		g.AddTriple(storage.IRI("http://baseUri/organismes/organisme/"+n+"/ID_CODE"), storage.IRI(m0.Values), storage.Literal(code))
	}
	add("1", "L201")
	add("2", "SSM-SIES")
	add("81", "DREES-WEIRD")
	add("3", "  ")

	m := OrganizationMappings(ds, map[int]string{81: "Drees"}, config.DefaultURIs())

	got, _ := m.Convert("http://baseUri/organismes/organisme/1")
	assert.Equal(t, "http://id.insee.fr/organisations/insee/DG75-L201", got)
	got, _ = m.Convert("http://baseUri/organismes/organisme/2")
	assert.Equal(t, "http://id.insee.fr/organisations/SSM-SIES", got)
	got, _ = m.Convert("http://baseUri/organismes/organisme/81")
	assert.Equal(t, "http://id.insee.fr/organisations/Drees", got)
	_, ok := m.Convert("http://baseUri/organismes/organisme/3")
	assert.False(t, ok)
}

func TestIsInseeUnit(t *testing.T) {
	tests := map[string]bool{
		"L201":  true,
		"E001":  true,
		"L20":   false,
		"L2011": false,
		"LX01":  false,
		"Drees": false,
	}
	for id, want := range tests {
		assert.Equal(t, want, IsInseeUnit(id), id)
	}
}

func TestTargetNumber(t *testing.T) {
	n, err := TargetNumber("http://id.insee.fr/operations/serie/s1241")
	require.NoError(t, err)
	assert.Equal(t, 1241, n)

	n, err = TargetNumber("http://id.insee.fr/produits/indicateur/p1010")
	require.NoError(t, err)
	assert.Equal(t, 1010, n)

	_, err = TargetNumber("http://id.insee.fr/operations/serie/")
	assert.True(t, errors.Is(err, ErrInvalidTarget))
}

func TestMappingWriteCSV(t *testing.T) {
	m, err := New(map[string]string{
		"http://baseUri/series/serie/10": "http://id.insee.fr/operations/serie/s1003",
		"http://baseUri/series/serie/2":  "http://id.insee.fr/operations/serie/s1002",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.WriteCSV(&buf))
	assert.Equal(t,
		"http://baseUri/series/serie/2;http://id.insee.fr/operations/serie/s1002\n"+
			"http://baseUri/series/serie/10;http://id.insee.fr/operations/serie/s1003\n",
		buf.String())
}
