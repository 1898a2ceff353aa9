// Package main provides the m0convert binary entry point.
// m0convert turns the M0 interim metadata graphs into the target
// operation, indicator, code list, organization and SIMS graphs.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/m0convert/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "m0convert"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	outputDir  string
	format     string
	input      []string
}

func rootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Convert M0 interim graphs to the target metadata model",
		Long: `m0convert reads a snapshot of the M0 interim graphs and writes the
target graphs:

- statistical operations, series, families and indicators
- SIMS metadata reports
- code lists, organizations, links and documents
- geographic features from the metadata API

Outputs are written to the output directory, which is locked for the
duration of a run.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVarP(&flags.outputDir, "output", "o", "", "Output directory")
	cmd.PersistentFlags().StringVarP(&flags.format, "format", "f", "", "Output format (turtle, ntriples, nquads, trig)")
	cmd.PersistentFlags().StringSliceVarP(&flags.input, "input", "i", nil, "Input file globs")

	var withGeo bool
	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Run the full conversion",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), flags, func(ctx context.Context, app *App) error {
				return app.Convert(ctx, withGeo)
			})
		},
	}
	convertCmd.Flags().BoolVar(&withGeo, "geo", false, "Also build geographic features (calls the metadata API)")

	var watchGeo bool
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the conversion again whenever the input files change",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), flags, func(ctx context.Context, app *App) error {
				return app.Watch(ctx, watchGeo)
			})
		},
	}
	watchCmd.Flags().BoolVar(&watchGeo, "geo", false, "Also build geographic features on each run")

	var namedGraphs bool
	simsCmd := &cobra.Command{
		Use:   "sims [documentation-id...]",
		Short: "Convert metadata reports, all of them when no id is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), flags, func(ctx context.Context, app *App) error {
				if cmd.Flags().Changed("named-graphs") {
					app.cfg.SIMS.NamedGraphs = namedGraphs
				}
				return app.SIMS(ctx, ids)
			})
		},
	}
	simsCmd.Flags().BoolVar(&namedGraphs, "named-graphs", false, "Put each report in its own named graph")

	cmd.AddCommand(
		convertCmd,
		watchCmd,
		simsCmd,
		&cobra.Command{
			Use:   "mappings",
			Short: "Write the M0 to target URI mappings",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd.Context(), flags, func(ctx context.Context, app *App) error {
					return app.Mappings(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "codelists",
			Short: "Convert code lists",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd.Context(), flags, func(ctx context.Context, app *App) error {
					return app.CodeLists(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "geo",
			Short: "Build geographic features and their M0 correspondences",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd.Context(), flags, func(ctx context.Context, app *App) error {
					return app.Geo(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Write a default " + config.ProjectConfigFile + " (or the --config path)",
			RunE: func(cmd *cobra.Command, args []string) error {
				path := flags.configPath
				if path == "" {
					path = config.ProjectConfigFile
				}
				created, err := config.WriteDefault(path)
				if err != nil {
					return err
				}
				if !created {
					fmt.Printf("%s already exists\n", path)
					return nil
				}
				fmt.Printf("Wrote %s\n", path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

// withApp loads the configuration, opens the output directory and runs fn.
func withApp(parent context.Context, flags globalFlags, fn func(context.Context, *App) error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	app, err := NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	return fn(ctx, app)
}

func newLogger(logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func parseIDs(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, nil
	}
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid documentation id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
