package geo

import (
	"fmt"
	"slices"
	"strings"

	"github.com/c360studio/m0convert/config"
	"github.com/c360studio/m0convert/diagnostics"
	"github.com/c360studio/m0convert/storage"
	"github.com/c360studio/m0convert/vocabulary/insee"
)

const (
	franceCode  = "FR"
	franceLabel = "France"
	// franceKey is the M0 label of the France code.
	franceKey = "FRANCE"
)

// Features holds the feature graph and the feature URI of each label.
type Features struct {
	Graph *storage.Graph
	// ByLabel maps an area label to its feature URI.
	ByLabel map[string]string
}

// BuildFeatures creates one geo:Feature per region and département, plus
// France.
func BuildFeatures(areas *Areas, uris config.URIConfig) *Features {
	f := &Features{Graph: storage.NewGraph(""), ByLabel: make(map[string]string)}
	rdfType := storage.IRI(insee.RDFType)
	feature := storage.IRI(insee.ClassFeature)
	label := storage.IRI(insee.PredicateIRI(insee.FeatureLabel))
	sameAs := storage.IRI(insee.PredicateIRI(insee.FeatureSameAs))

	for _, items := range [][]Item{areas.Regions, areas.Departements} {
		for _, item := range items {
			uri := uris.FeatureURI(item.Code)
			subject := storage.IRI(uri)
			f.Graph.AddTriple(subject, rdfType, feature)
			f.Graph.AddTriple(subject, label, storage.Literal(item.Label))
			if item.URI != "" {
				f.Graph.AddTriple(subject, sameAs, storage.IRI(item.URI))
			}
			f.ByLabel[item.Label] = uri
		}
	}

	france := uris.FeatureURI(franceCode)
	f.Graph.AddTriple(storage.IRI(france), rdfType, feature)
	f.Graph.AddTriple(storage.IRI(france), label, storage.Literal(franceLabel))
	f.ByLabel[franceKey] = france
	return f
}

// Correspondences is the result of matching M0 geographic codes with
// features.
type Correspondences struct {
	// Matches maps an M0 code notation to a feature URI.
	Matches map[string]string
	// Unmatched holds "code;label" lines sorted by code.
	Unmatched []string
}

// Correspond matches the codes of a converted code list with features on
// their trimmed French label.
func Correspond(codeLists *storage.Graph, scheme string, features *Features, diag *diagnostics.Sink) *Correspondences {
	out := &Correspondences{Matches: make(map[string]string)}
	members := codeLists.Match(storage.Pattern{
		Predicate: storage.IRI(insee.SKOSInScheme),
		Object:    storage.IRI(scheme),
	})
	for _, t := range members {
		code := t.Subject.Value
		notation, ok := firstLiteral(codeLists, code, insee.SKOSNotation, "")
		if !ok {
			diag.Record(diagnostics.MissingRequiredValue, "Geographic code without notation", "uri", code)
			continue
		}
		label, ok := firstLiteral(codeLists, code, insee.SKOSPrefLabel, "fr")
		if !ok {
			diag.Record(diagnostics.MissingRequiredValue, "Geographic code without French label", "uri", code)
			continue
		}
		if uri, ok := features.ByLabel[strings.TrimSpace(label)]; ok {
			out.Matches[notation] = uri
			continue
		}
		diag.Record(diagnostics.UnmatchedReference, "No feature for geographic code", "code", notation, "label", label)
		out.Unmatched = append(out.Unmatched, notation+";"+label)
	}
	slices.SortFunc(out.Unmatched, storage.NaturalCompare)
	return out
}

// Lines returns "code;uri" lines sorted by code.
func (c *Correspondences) Lines() []string {
	lines := make([]string, 0, len(c.Matches))
	for code, uri := range c.Matches {
		lines = append(lines, fmt.Sprintf("%s;%s", code, uri))
	}
	slices.SortFunc(lines, storage.NaturalCompare)
	return lines
}

func firstLiteral(g *storage.Graph, subject, predicate, lang string) (string, bool) {
	for _, o := range g.Objects(subject, predicate) {
		if o.IsLiteral() && o.Lang == lang {
			return o.Value, true
		}
	}
	return "", false
}
