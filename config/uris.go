package config

import (
	"fmt"
	"strconv"
)

// URIConfig holds the bases of every target URI.
type URIConfig struct {
	OperationsBase   string `yaml:"operations_base"`
	ProductsBase     string `yaml:"products_base"`
	CodesBase        string `yaml:"codes_base"`
	CodeConceptsBase string `yaml:"code_concepts_base"`
	ReportBase       string `yaml:"report_base"`
	ReportGraphBase  string `yaml:"report_graph_base"`
	LinkBase         string `yaml:"link_base"`
	DocumentBase     string `yaml:"document_base"`
	InseeUnitBase    string `yaml:"insee_unit_base"`
	OrganizationBase string `yaml:"organization_base"`
	FeatureBase      string `yaml:"feature_base"`
}

// DefaultURIs returns the production URI bases.
func DefaultURIs() URIConfig {
	return URIConfig{
		OperationsBase:   "http://id.insee.fr/operations/",
		ProductsBase:     "http://id.insee.fr/produits/",
		CodesBase:        "http://id.insee.fr/codes/",
		CodeConceptsBase: "http://id.insee.fr/codes/concept/",
		ReportBase:       "http://id.insee.fr/qualite/rapport/",
		ReportGraphBase:  "http://rdf.insee.fr/graphes/qualite/rapport/",
		LinkBase:         "http://id.insee.fr/qualite/lien/",
		DocumentBase:     "http://id.insee.fr/qualite/document/",
		InseeUnitBase:    "http://id.insee.fr/organisations/insee/",
		OrganizationBase: "http://id.insee.fr/organisations/",
		FeatureBase:      "http://id.insee.fr/geo/",
	}
}

// Validate checks that no base is empty.
func (u URIConfig) Validate() error {
	bases := map[string]string{
		"operations_base":    u.OperationsBase,
		"products_base":      u.ProductsBase,
		"codes_base":         u.CodesBase,
		"code_concepts_base": u.CodeConceptsBase,
		"report_base":        u.ReportBase,
		"report_graph_base":  u.ReportGraphBase,
		"link_base":          u.LinkBase,
		"document_base":      u.DocumentBase,
		"insee_unit_base":    u.InseeUnitBase,
		"organization_base":  u.OrganizationBase,
		"feature_base":       u.FeatureBase,
	}
	for name, base := range bases {
		if base == "" {
			return fmt.Errorf("uris.%s is required", name)
		}
	}
	return nil
}

// Merge overrides bases that are set in other.
func (u *URIConfig) Merge(other URIConfig) {
	set := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	set(&u.OperationsBase, other.OperationsBase)
	set(&u.ProductsBase, other.ProductsBase)
	set(&u.CodesBase, other.CodesBase)
	set(&u.CodeConceptsBase, other.CodeConceptsBase)
	set(&u.ReportBase, other.ReportBase)
	set(&u.ReportGraphBase, other.ReportGraphBase)
	set(&u.LinkBase, other.LinkBase)
	set(&u.DocumentBase, other.DocumentBase)
	set(&u.InseeUnitBase, other.InseeUnitBase)
	set(&u.OrganizationBase, other.OrganizationBase)
	set(&u.FeatureBase, other.FeatureBase)
}

// OperationResourceURI returns the URI of a family, series or operation,
// for example http://id.insee.fr/operations/serie/s1241.
func (u URIConfig) OperationResourceURI(id int, typeToken string) string {
	return u.OperationsBase + typeToken + "/s" + strconv.Itoa(id)
}

// IndicatorURI returns the URI of an indicator.
func (u URIConfig) IndicatorURI(id int) string {
	return u.ProductsBase + "indicateur/p" + strconv.Itoa(id)
}

// InseeCodeURI returns the URI of a code in the list named by label,
// for example http://id.insee.fr/codes/categorieSource/S.
func (u URIConfig) InseeCodeURI(code, label string) string {
	return u.CodesBase + CamelCase(label, true, false) + "/" + code
}

func (u URIConfig) ReportURI(id int) string {
	return u.ReportBase + strconv.Itoa(id)
}

func (u URIConfig) ReportGraphURI(id int) string {
	return u.ReportGraphBase + strconv.Itoa(id)
}

func (u URIConfig) LinkURI(n int) string {
	return u.LinkBase + strconv.Itoa(n)
}

func (u URIConfig) DocumentURI(n int) string {
	return u.DocumentBase + strconv.Itoa(n)
}

// InseeUnitURI returns the URI of an Insee unit such as DG75-L201.
func (u URIConfig) InseeUnitURI(id string) string {
	return u.InseeUnitBase + id
}

// OrganizationURI returns the URI of an organization outside Insee.
func (u URIConfig) OrganizationURI(id string) string {
	return u.OrganizationBase + id
}

// FeatureURI returns the URI of a geographic feature.
func (u URIConfig) FeatureURI(code string) string {
	return u.FeatureBase + code
}
