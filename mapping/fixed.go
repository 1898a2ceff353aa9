package mapping

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/c360studio/m0convert/config"
	"github.com/c360studio/m0convert/storage"
	"github.com/c360studio/m0convert/vocabulary/m0"
)

const ddsPrefix = "OPE-"

// Tables are the externally supplied legacy identifier tables.
type Tables struct {
	// Operations maps M0 operation ids to Web4G ids.
	Operations map[int]int
	// DDS maps DDS identifiers to Web4G ids.
	DDS map[string]int
	// SeriesOverrides are applied after the DDS lookup.
	SeriesOverrides map[int]int
}

// TablesFromConfig extracts the tables from the mapping configuration.
func TablesFromConfig(cfg config.MappingConfig) Tables {
	return Tables{
		Operations:      cfg.Operations,
		DDS:             cfg.DDS,
		SeriesOverrides: cfg.SeriesOverrides,
	}
}

// FixedMappings returns, per type, the M0 ids whose target URI is imposed
// by a legacy identifier. Families and indicators have none.
func FixedMappings(ds *storage.Dataset, tables Tables, uris config.URIConfig, logger *slog.Logger) map[storage.EntityType]map[int]string {
	if logger == nil {
		logger = slog.Default()
	}
	out := map[storage.EntityType]map[int]string{
		storage.EntityFamily:    {},
		storage.EntityIndicator: {},
	}

	ops := make(map[int]string, len(tables.Operations))
	for m0ID, web4g := range tables.Operations {
		ops[m0ID] = uris.OperationResourceURI(web4g, string(storage.EntityOperation))
	}
	out[storage.EntityOperation] = ops

	series := make(map[int]string)
	g := ds.Graph(storage.EntitySeries.GraphName())
	for _, t := range g.Filter(storage.Pattern{Predicate: storage.IRI(m0.Values)}, isAttribute(m0.AttrDDSID)) {
		rec, err := storage.ParseRecordID(t.Subject.Value)
		if err != nil {
			logger.Warn("Invalid ID_DDS subject", "uri", t.Subject.Value, "error", err)
			continue
		}
		ddsID := strings.TrimPrefix(strings.TrimSpace(t.Object.Value), ddsPrefix)
		web4g, ok := tables.DDS[ddsID]
		if !ok {
			logger.Warn("No correspondence found for DDS identifier", "dds_id", ddsID, "uri", rec.URI())
			continue
		}
		logger.Debug("Correspondence found for DDS identifier", "dds_id", ddsID, "web4g_id", web4g)
		series[rec.Number] = uris.OperationResourceURI(web4g, string(storage.EntitySeries))
	}
	for m0ID, web4g := range tables.SeriesOverrides {
		series[m0ID] = uris.OperationResourceURI(web4g, string(storage.EntitySeries))
	}
	out[storage.EntitySeries] = series

	return out
}

// TargetURI returns the URI builder used for allocated ids.
func TargetURI(uris config.URIConfig) func(storage.EntityType, int) string {
	return func(t storage.EntityType, n int) string {
		if t == storage.EntityIndicator {
			return uris.IndicatorURI(n)
		}
		return uris.OperationResourceURI(n, string(t))
	}
}

// InputFromDataset assembles the allocation input for the default types.
func InputFromDataset(ds *storage.Dataset, cfg config.MappingConfig, uris config.URIConfig, logger *slog.Logger) AllocationInput {
	in := AllocationInput{
		Types:     DefaultTypes,
		Fixed:     FixedMappings(ds, TablesFromConfig(cfg), uris, logger),
		MaxIDs:    make(map[storage.EntityType]int),
		Reserved:  make(map[storage.EntityType]int),
		Exempt:    map[storage.EntityType]bool{storage.EntityFamily: true},
		PoolStart: cfg.PoolStart,
		PoolEnd:   cfg.PoolEnd,
		URI:       TargetURI(uris),
		Logger:    logger,
		Exists: func(rec storage.RecordID) bool {
			return ds.Graph(rec.Type.GraphName()).HasSubject(rec.URI())
		},
	}
	for _, t := range DefaultTypes {
		in.MaxIDs[t] = ds.Graph(t.GraphName()).MaxSequence()
		in.Reserved[t] = cfg.Reserved[string(t)]
	}
	return in
}

// OrganizationMappings maps each organism record URI to the URI of the
// organization named by its ID_CODE. Overrides replace the identifier of
// some records. Identifiers made of one letter and three digits are Insee
// units.
func OrganizationMappings(ds *storage.Dataset, overrides map[int]string, uris config.URIConfig) *Mapping {
	targets := make(map[string]string)
	g := ds.Graph(storage.EntityOrganization.GraphName())
	for _, t := range g.Filter(storage.Pattern{Predicate: storage.IRI(m0.Values)}, isAttribute(m0.AttrCode)) {
		rec, err := storage.ParseRecordID(t.Subject.Value)
		if err != nil {
			continue
		}
		orgID := strings.TrimSpace(t.Object.Value)
		if override, ok := overrides[rec.Number]; ok {
			orgID = override
		}
		if orgID == "" {
			continue
		}
		targets[rec.URI()] = OrganizationURI(orgID, uris)
	}
	return newMapping(targets)
}

// OrganizationURI returns the target URI of an organization identifier.
func OrganizationURI(orgID string, uris config.URIConfig) string {
	if IsInseeUnit(orgID) {
		return uris.InseeUnitURI("DG75-" + orgID)
	}
	return uris.OrganizationURI(orgID)
}

// IsInseeUnit reports whether an identifier names an Insee unit, such as L201.
func IsInseeUnit(orgID string) bool {
	if len(orgID) != 4 {
		return false
	}
	_, err := strconv.ParseUint(orgID[1:], 10, 16)
	return err == nil
}

func isAttribute(name string) func(storage.Triple) bool {
	return func(t storage.Triple) bool {
		return t.Subject.IsIRI() && storage.AttributeName(t.Subject.Value) == name
	}
}
