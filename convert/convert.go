// Package convert builds the target graphs from the M0 dataset: operation-like
// resources, indicators, metadata reports, code lists, organizations, links
// and documents.
//
// A Converter is built once per run from the loaded dataset and the URI
// mappings. Per-record problems are recorded through the diagnostics sink and
// never stop a conversion.
package convert

import (
	"log/slog"

	"github.com/c360studio/m0convert/config"
	"github.com/c360studio/m0convert/diagnostics"
	"github.com/c360studio/m0convert/mapping"
	"github.com/c360studio/m0convert/relations"
	"github.com/c360studio/m0convert/richtext"
	"github.com/c360studio/m0convert/schema"
	"github.com/c360studio/m0convert/storage"
)

// Options configures a Converter.
type Options struct {
	URIs config.URIConfig
	// Targets maps family, series, operation and indicator records.
	Targets *mapping.Mapping
	// Organizations maps organism records.
	Organizations *mapping.Mapping
	// Schema drives metadata report conversion.
	Schema *schema.Schema
	// ReferenceOrganizations holds the known organizations, checked on
	// dcterms:identifier. Nil disables the check.
	ReferenceOrganizations *storage.Graph
	// IncludeIndicators attaches metadata reports to indicators too.
	IncludeIndicators bool
	// RichText converts HTML fragments of report free text to Markdown.
	RichText bool

	Diagnostics *diagnostics.Sink
	Logger      *slog.Logger
}

// Converter produces target graphs from one M0 dataset.
type Converter struct {
	ds        *storage.Dataset
	uris      config.URIConfig
	targets   *mapping.Mapping
	orgs      *mapping.Mapping
	schema    *schema.Schema
	reference *storage.Graph
	rel       *relations.Extractor
	richText  *richtext.Converter
	diag      *diagnostics.Sink
	logger    *slog.Logger

	includeIndicators bool

	links *reportLinks
}

// New creates a converter over ds.
func New(ds *storage.Dataset, opts Options) *Converter {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	diag := opts.Diagnostics
	if diag == nil {
		diag = diagnostics.New(logger, nil)
	}
	c := &Converter{
		ds:                ds,
		uris:              opts.URIs,
		targets:           opts.Targets,
		orgs:              opts.Organizations,
		schema:            opts.Schema,
		reference:         opts.ReferenceOrganizations,
		rel:               relations.FromDataset(ds, diag),
		diag:              diag,
		logger:            logger,
		includeIndicators: opts.IncludeIndicators,
	}
	if opts.RichText {
		c.richText = richtext.NewConverter()
	}
	return c
}

// Relations returns the relation extractor used by the converter.
func (c *Converter) Relations() *relations.Extractor {
	return c.rel
}

// Mappings returns the operation-like and organization URI mappings.
func (c *Converter) Mappings() (targets, organizations *mapping.Mapping) {
	return c.targets, c.orgs
}

// resolve converts an M0 record URI through the target mapping.
func (c *Converter) resolve(m0URI string) (string, bool) {
	target, ok := c.targets.Convert(m0URI)
	if !ok {
		c.diag.Record(diagnostics.UnresolvedReference, "No target URI for M0 resource", "uri", m0URI)
	}
	return target, ok
}

func (c *Converter) resolveOrganization(m0URI string) (string, bool) {
	target, ok := c.orgs.Convert(m0URI)
	if !ok {
		c.diag.Record(diagnostics.UnresolvedReference, "No target URI for M0 organization", "uri", m0URI)
	}
	return target, ok
}
