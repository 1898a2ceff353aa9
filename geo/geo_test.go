package geo

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/m0convert/config"
	"github.com/c360studio/m0convert/diagnostics"
	"github.com/c360studio/m0convert/storage"
	"github.com/c360studio/m0convert/vocabulary/insee"
)

const (
	regionsJSON = `[{"code":"11","intitule":"Île-de-France","uri":"http://id.insee.fr/geo/region/11"},
		{"code":"84","intitule":"Auvergne-Rhône-Alpes","uri":"http://id.insee.fr/geo/region/84"}]`
	departementsJSON = `[{"code":"75","intitule":"Paris","uri":"http://id.insee.fr/geo/departement/75"}]`
)

func newServer(t *testing.T, handler http.HandlerFunc) config.GeoConfig {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return config.GeoConfig{API: srv.URL + "/", Timeout: 5 * time.Second, MaxBodyBytes: 1 << 20, CodeList: 7}
}

func apiHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "*", r.URL.Query().Get("date"))
		switch r.URL.Path {
		case "/geo/regions":
			io.WriteString(w, regionsJSON)
		case "/geo/departements":
			io.WriteString(w, departementsJSON)
		default:
			http.NotFound(w, r)
		}
	}
}

func TestFetch(t *testing.T) {
	cfg := newServer(t, apiHandler(t))

	areas, err := NewClient(cfg, nil).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Item{
		{Code: "11", Label: "Île-de-France", URI: "http://id.insee.fr/geo/region/11"},
		{Code: "84", Label: "Auvergne-Rhône-Alpes", URI: "http://id.insee.fr/geo/region/84"},
	}, areas.Regions)
	assert.Len(t, areas.Departements, 1)
}

func TestFetchErrors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		cfg := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/geo/departements" {
				http.Error(w, "unavailable", http.StatusServiceUnavailable)
				return
			}
			io.WriteString(w, regionsJSON)
		})
		_, err := NewClient(cfg, nil).Fetch(context.Background())
		assert.ErrorIs(t, err, ErrUnexpectedStatus)
	})

	t.Run("too large", func(t *testing.T) {
		cfg := newServer(t, apiHandler(t))
		cfg.MaxBodyBytes = 16
		_, err := NewClient(cfg, nil).Fetch(context.Background())
		assert.ErrorIs(t, err, ErrResponseTooLarge)
	})

	t.Run("invalid json", func(t *testing.T) {
		cfg := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "{")
		})
		_, err := NewClient(cfg, nil).Fetch(context.Background())
		assert.ErrorContains(t, err, "parse geo/")
	})
}

func TestBuildFeatures(t *testing.T) {
	cfg := newServer(t, apiHandler(t))
	areas, err := NewClient(cfg, nil).Fetch(context.Background())
	require.NoError(t, err)

	features := BuildFeatures(areas, config.DefaultURIs())

	paris := "http://id.insee.fr/geo/75"
	assert.Equal(t, []storage.Term{storage.IRI(insee.ClassFeature)}, features.Graph.Objects(paris, insee.RDFType))
	assert.Equal(t, []storage.Term{storage.Literal("Paris")}, features.Graph.Objects(paris, insee.RDFSLabel))
	assert.Equal(t, []storage.Term{storage.IRI("http://id.insee.fr/geo/departement/75")},
		features.Graph.Objects(paris, insee.OWLSameAs))
	assert.Equal(t, []storage.Term{storage.Literal("France")},
		features.Graph.Objects("http://id.insee.fr/geo/FR", insee.RDFSLabel))
	assert.Equal(t, "http://id.insee.fr/geo/FR", features.ByLabel["FRANCE"])
	assert.Len(t, features.ByLabel, 4)
}

func TestCorrespond(t *testing.T) {
	scheme := "http://baseUri/codelists/codelist/7"
	codes := storage.NewGraph("")
	addCode := func(n, notation, label string) {
		code := storage.IRI("http://baseUri/codes/code/" + n)
		codes.AddTriple(code, storage.IRI(insee.SKOSInScheme), storage.IRI(scheme))
		codes.AddTriple(code, storage.IRI(insee.SKOSNotation), storage.Literal(notation))
		codes.AddTriple(code, storage.IRI(insee.SKOSPrefLabel), storage.LangLiteral(label, "fr"))
	}
	addCode("1", "R11", "Île-de-France ")
	addCode("2", "D75", "Paris")
	addCode("3", "FE", "FRANCE")
	addCode("4", "D971", "Guadeloupe")
	addCode("5", "D972", "Martinique")
	other := storage.IRI("http://baseUri/codes/code/9")
	codes.AddTriple(other, storage.IRI(insee.SKOSInScheme), storage.IRI("http://baseUri/codelists/codelist/1"))

	features := &Features{ByLabel: map[string]string{
		"Île-de-France": "http://id.insee.fr/geo/11",
		"Paris":         "http://id.insee.fr/geo/75",
		"FRANCE":        "http://id.insee.fr/geo/FR",
	}}
	var logs strings.Builder
	sink := diagnostics.New(slog.New(slog.NewTextHandler(&logs, nil)), nil)

	got := Correspond(codes, scheme, features, sink)

	assert.Equal(t, map[string]string{
		"R11": "http://id.insee.fr/geo/11",
		"D75": "http://id.insee.fr/geo/75",
		"FE":  "http://id.insee.fr/geo/FR",
	}, got.Matches)
	assert.Equal(t, []string{"D971;Guadeloupe", "D972;Martinique"}, got.Unmatched)
	assert.Equal(t, []string{
		"D75;http://id.insee.fr/geo/75",
		"FE;http://id.insee.fr/geo/FR",
		"R11;http://id.insee.fr/geo/11",
	}, got.Lines())
	assert.Equal(t, 2, sink.Count(diagnostics.UnmatchedReference))
	assert.Contains(t, logs.String(), "code=D971")
}
