package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/c360studio/m0convert/config"
	"github.com/c360studio/m0convert/convert"
	"github.com/c360studio/m0convert/diagnostics"
	"github.com/c360studio/m0convert/export"
	"github.com/c360studio/m0convert/geo"
	"github.com/c360studio/m0convert/graph"
	"github.com/c360studio/m0convert/mapping"
	"github.com/c360studio/m0convert/metrics"
	"github.com/c360studio/m0convert/output"
	"github.com/c360studio/m0convert/schema"
	"github.com/c360studio/m0convert/storage"
	"github.com/c360studio/m0convert/watch"
)

// Names of the output files, without extension for graphs.
const (
	fileOperations      = "operations"
	fileIndicators      = "indicators"
	fileCodeLists       = "codelists"
	fileOrganizations   = "organizations"
	fileSIMS            = "sims"
	fileLinks           = "links"
	fileDocuments       = "documents"
	fileGeo             = "geo"
	fileMappings        = "uri-mappings.csv"
	fileGeoUnmatched    = "geo-unmatched.txt"
	fileCorrespondences = "geo-correspondences.txt"
)

// written is a serialized output graph kept for publishing.
type written struct {
	name    string
	file    string
	format  export.Format
	content string
	triples int
}

// App wires one conversion run: configuration, locked output directory,
// diagnostics and metrics.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	dir      *output.Dir
	diag     *diagnostics.Sink
	recorder *metrics.Recorder
	exporter *export.RDFExporter
	format   export.Format
	started  time.Time

	written []written
}

// NewApp validates the output format and locks the output directory.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	format, err := export.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	dir, err := output.Open(ctx, cfg.Output.Dir, cfg.Output.LockTimeout, logger)
	if err != nil {
		return nil, err
	}
	a := &App{
		cfg:      cfg,
		logger:   logger,
		dir:      dir,
		exporter: export.NewRDFExporter(),
		format:   format,
	}
	a.reset()
	return a, nil
}

// reset starts a new run with fresh diagnostics and metrics.
func (a *App) reset() {
	a.recorder = metrics.NewRecorder()
	a.diag = diagnostics.New(a.logger, a.recorder)
	a.written = nil
	a.started = time.Now()
}

// Close releases the output directory.
func (a *App) Close() {
	if err := a.dir.Close(); err != nil {
		a.logger.Warn("Failed to release output directory", "error", err)
	}
}

// Convert writes every output graph, then publishes them when enabled.
func (a *App) Convert(ctx context.Context, withGeo bool) error {
	c, err := a.converter(ctx, true)
	if err != nil {
		return err
	}
	if err := a.writeMappings(c); err != nil {
		return err
	}

	graphs := []struct {
		name  string
		build func() *storage.Graph
	}{
		{fileOperations, c.Operations},
		{fileIndicators, c.Indicators},
		{fileCodeLists, c.CodeLists},
		{fileOrganizations, c.Organizations},
		{fileLinks, c.Links},
		{fileDocuments, c.Documents},
	}
	for _, g := range graphs {
		a.logger.Info("Converting", "graph", g.name)
		if err := a.writeGraph(g.name, g.build()); err != nil {
			return err
		}
	}

	if err := a.writeReports(c, nil); err != nil {
		return err
	}
	if withGeo {
		if err := a.geo(ctx, c); err != nil {
			return err
		}
	}
	return a.finish(ctx, "convert")
}

// Watch runs the conversion, then reruns it each time the input files
// change, until ctx is done. A failed run is logged and the watch goes on.
func (a *App) Watch(ctx context.Context, withGeo bool) error {
	w, err := watch.New(a.cfg.Input.Patterns, a.cfg.Watch.Debounce, a.logger)
	if err != nil {
		return err
	}
	defer w.Close()
	w.Ignore(a.cfg.Output.Dir)
	if err := w.Start(ctx); err != nil {
		return err
	}

	if err := a.Convert(ctx, withGeo); err != nil {
		a.logger.Error("Conversion failed", "error", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case files, ok := <-w.Changes():
			if !ok {
				return nil
			}
			a.logger.Info("Rerunning conversion", "changed", len(files))
			a.reset()
			if err := a.Convert(ctx, withGeo); err != nil {
				a.logger.Error("Conversion failed", "error", err)
			}
		}
	}
}

// Mappings writes the URI mapping table only.
func (a *App) Mappings(ctx context.Context) error {
	c, err := a.converter(ctx, false)
	if err != nil {
		return err
	}
	if err := a.writeMappings(c); err != nil {
		return err
	}
	return a.finish(ctx, "mappings")
}

// SIMS writes the reports of the given documentation ids, all when empty.
func (a *App) SIMS(ctx context.Context, ids []int) error {
	c, err := a.converter(ctx, true)
	if err != nil {
		return err
	}
	if err := a.writeReports(c, ids); err != nil {
		return err
	}
	return a.finish(ctx, "sims")
}

// CodeLists writes the code lists only.
func (a *App) CodeLists(ctx context.Context) error {
	c, err := a.converter(ctx, false)
	if err != nil {
		return err
	}
	if err := a.writeGraph(fileCodeLists, c.CodeLists()); err != nil {
		return err
	}
	return a.finish(ctx, "codelists")
}

// Geo writes geographic features and their correspondences with M0 codes.
func (a *App) Geo(ctx context.Context) error {
	c, err := a.converter(ctx, false)
	if err != nil {
		return err
	}
	if err := a.geo(ctx, c); err != nil {
		return err
	}
	return a.finish(ctx, "geo")
}

// converter loads the dataset and allocates target URIs. The schema and the
// reference organizations are only loaded when withSchema is set.
func (a *App) converter(ctx context.Context, withSchema bool) (*convert.Converter, error) {
	ds, err := storage.NewLoader(a.cfg.Input.GraphBase, a.logger).Load(ctx, a.cfg.Input.Patterns)
	if err != nil {
		return nil, fmt.Errorf("load M0 dataset: %w", err)
	}

	targets, err := mapping.Allocate(mapping.InputFromDataset(ds, a.cfg.Mapping, a.cfg.URIs, a.logger))
	if err != nil {
		return nil, fmt.Errorf("allocate target URIs: %w", err)
	}
	opts := convert.Options{
		URIs:              a.cfg.URIs,
		Targets:           targets,
		Organizations:     mapping.OrganizationMappings(ds, a.cfg.Mapping.Organizations, a.cfg.URIs),
		IncludeIndicators: a.cfg.SIMS.IncludeIndicators,
		RichText:          a.cfg.SIMS.RichText,
		Diagnostics:       a.diag,
		Logger:            a.logger,
	}

	if withSchema {
		s, err := schema.Load(a.cfg.SIMS.Schema)
		if err != nil {
			return nil, fmt.Errorf("load SIMS schema: %w", err)
		}
		opts.Schema = s

		if len(a.cfg.Organizations.Reference) > 0 {
			reference, err := a.loadReference(ctx)
			if err != nil {
				return nil, err
			}
			opts.ReferenceOrganizations = reference
		}
	}
	return convert.New(ds, opts), nil
}

// loadReference merges every graph of the reference organization files.
func (a *App) loadReference(ctx context.Context) (*storage.Graph, error) {
	ds, err := storage.NewLoader(a.cfg.Input.GraphBase, a.logger).Load(ctx, a.cfg.Organizations.Reference)
	if err != nil {
		return nil, fmt.Errorf("load reference organizations: %w", err)
	}
	reference := storage.NewGraph("")
	reference.AddAll(ds.Default())
	for _, name := range ds.Names() {
		reference.AddAll(ds.Graph(name))
	}
	a.logger.Info("Loaded reference organizations", "triples", reference.Len())
	return reference, nil
}

func (a *App) writeMappings(c *convert.Converter) error {
	var buf bytes.Buffer
	targets, orgs := c.Mappings()
	if err := targets.WriteCSV(&buf); err != nil {
		return err
	}
	if err := orgs.WriteCSV(&buf); err != nil {
		return err
	}
	return a.dir.WriteFile(fileMappings, buf.Bytes())
}

func (a *App) writeReports(c *convert.Converter, ids []int) error {
	reports, err := c.ConvertReports(ids, a.cfg.SIMS.NamedGraphs)
	if err != nil {
		return fmt.Errorf("convert reports: %w", err)
	}
	if a.cfg.SIMS.NamedGraphs {
		return a.writeDataset(fileSIMS, reports)
	}
	return a.writeGraph(fileSIMS, reports.Default())
}

func (a *App) geo(ctx context.Context, c *convert.Converter) error {
	areas, err := geo.NewClient(a.cfg.Geo, a.logger).Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch geographic areas: %w", err)
	}
	features := geo.BuildFeatures(areas, a.cfg.URIs)
	if err := a.writeGraph(fileGeo, features.Graph); err != nil {
		return err
	}

	scheme := storage.NewRecordID(storage.EntityCodeList, a.cfg.Geo.CodeList).URI()
	matches := geo.Correspond(c.CodeLists(), scheme, features, a.diag)
	a.logger.Info("Geographic correspondences", "matched", len(matches.Matches), "unmatched", len(matches.Unmatched))
	if err := a.dir.WriteLines(fileCorrespondences, matches.Lines()); err != nil {
		return err
	}
	return a.dir.WriteLines(fileGeoUnmatched, matches.Unmatched)
}

func (a *App) writeGraph(name string, g *storage.Graph) error {
	content, err := a.exporter.Export(g, a.format)
	if err != nil {
		return fmt.Errorf("export %s: %w", name, err)
	}
	return a.write(name, a.format, content, g.Len())
}

func (a *App) writeDataset(name string, ds *storage.Dataset) error {
	format := export.DatasetFormat(a.format)
	content, err := a.exporter.ExportDataset(ds, format)
	if err != nil {
		return fmt.Errorf("export %s: %w", name, err)
	}
	return a.write(name, format, content, ds.Len())
}

func (a *App) write(name string, format export.Format, content string, triples int) error {
	info, _ := export.GetFormatInfo(format)
	file := name + info.Extension
	if err := a.dir.WriteFile(file, []byte(content)); err != nil {
		return err
	}
	a.recorder.Triples(name, triples)
	a.written = append(a.written, written{name: name, file: file, format: format, content: content, triples: triples})
	return nil
}

// finish logs the diagnostics summary, writes the run report and the
// metrics textfile, then publishes the written graphs.
func (a *App) finish(ctx context.Context, command string) error {
	a.diag.LogSummary()
	finished := time.Now()
	a.recorder.Finish(a.started, finished)
	if err := a.dir.WriteFile(output.ReportFile, []byte(a.report(command, finished).Markdown())); err != nil {
		return err
	}
	if a.cfg.Output.Metrics {
		if err := a.recorder.WriteTextfile(a.dir.Path(metrics.TextfileName)); err != nil {
			return err
		}
	}
	if a.cfg.Publish.Enabled {
		if err := a.publish(ctx); err != nil {
			return err
		}
	}
	a.logger.Info("Conversion complete",
		"graphs", len(a.written),
		"diagnostics", a.diag.Total(),
		"duration", time.Since(a.started))
	return nil
}

func (a *App) report(command string, finished time.Time) output.Report {
	r := output.Report{Command: command, Started: a.started, Finished: finished}
	for _, w := range a.written {
		r.Outputs = append(r.Outputs, output.ReportOutput{Graph: w.name, File: w.file, Triples: w.triples})
	}
	for _, k := range diagnostics.Kinds {
		if n := a.diag.Count(k); n > 0 {
			r.Diagnostics = append(r.Diagnostics, output.ReportCount{Kind: k.String(), Count: n})
		}
	}
	return r
}

func (a *App) publish(ctx context.Context) error {
	client, err := graph.Connect(ctx, a.cfg.Publish.URL, a.logger)
	if err != nil {
		return err
	}
	defer client.Close(ctx)

	js, err := client.JetStream()
	if err != nil {
		return fmt.Errorf("get JetStream: %w", err)
	}
	if err := graph.EnsureStream(ctx, js, a.cfg.Publish.Stream, a.cfg.Publish.SubjectPrefix); err != nil {
		return err
	}

	publisher := graph.NewPublisher(client, a.cfg.Publish.SubjectPrefix, a.logger)
	for _, w := range a.written {
		if err := publisher.Publish(ctx, w.name, w.format, w.content, w.triples); err != nil {
			return err
		}
	}
	return nil
}
