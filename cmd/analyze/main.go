package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rxtech-lab/argo-insight/internal/config"
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/rxtech-lab/argo-insight/internal/version"
	"github.com/rxtech-lab/argo-insight/pkg/analysis"
	"github.com/rxtech-lab/argo-insight/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentAssets = 4

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "Path to the YAML config file. Defaults are used when omitted",
}

var logLevelFlag = &cli.StringFlag{
	Name:  "log-level",
	Usage: "Override the configured log level (debug, info, warn, error)",
}

// assetResult is the outcome of analysing one asset.
type assetResult struct {
	asset  string
	report analysis.Report
	err    error
	export string
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd.String("config"), cmd.String("log-level"))
	if err != nil {
		return err
	}

	timeframe, err := types.ParseTimeframe(cmd.String("timeframe"))
	if err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	a.start(ctx)

	assets := normalizeAssets(cmd.StringSlice("asset"))
	results := make([]assetResult, len(assets))

	var bar *progressbar.ProgressBar
	if !cmd.Bool("quiet") {
		bar = progressbar.NewOptions(len(assets),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Analyzing"),
			progressbar.OptionClearOnFinish(),
		)
	}

	var barMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentAssets)

	for i, asset := range assets {
		i, asset := i, asset

		g.Go(func() error {
			results[i] = analyzeAsset(gctx, a, asset, timeframe, cmd.Bool("export"))

			if bar != nil {
				barMu.Lock()
				_ = bar.Add(1)
				barMu.Unlock()
			}

			return nil
		})
	}

	_ = g.Wait()

	failed := 0

	for _, result := range results {
		if result.err != nil {
			failed++

			fmt.Fprintln(os.Stdout, RenderError(result.asset, timeframe, result.err))

			continue
		}

		fmt.Fprintln(os.Stdout, RenderReport(result.report))

		if result.export != "" {
			fmt.Fprintln(os.Stdout, MutedStyle.Render("exported to "+result.export))
		}
	}

	if failed == len(results) && failed > 0 {
		return errors.Newf(errors.ErrCodeAllProvidersExhausted, "no asset could be analysed")
	}

	return nil
}

func analyzeAsset(ctx context.Context, a *app, asset string, timeframe types.Timeframe, export bool) assetResult {
	report, err := a.analyzer.Analyze(ctx, asset, timeframe)
	if err != nil {
		return assetResult{asset: asset, report: analysis.Report{}, err: err, export: ""}
	}

	result := assetResult{asset: asset, report: report, err: nil, export: ""}

	if export {
		path, exportErr := a.client.Export(report.Enriched, report.Signals, report.CreatedAt)
		if exportErr != nil {
			a.logger.Warn("Export failed", zap.String("asset", asset), zap.Error(exportErr))
		}

		result.export = path
	}

	return result
}

func normalizeAssets(raw []string) []string {
	seen := make(map[string]struct{})
	assets := make([]string, 0, len(raw))

	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			asset := strings.ToLower(strings.TrimSpace(part))
			if asset == "" {
				continue
			}

			if _, ok := seen[asset]; ok {
				continue
			}

			seen[asset] = struct{}{}
			assets = append(assets, asset)
		}
	}

	return assets
}

func timeframesAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd.String("config"), "error")
	if err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	fmt.Fprintln(os.Stdout, RenderTimeframes(a.analyzer.SupportedTimeframes()))

	return nil
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	outDir := cmd.String("out")
	schemaName := "argo-insight-config.json"
	schemaPath := filepath.Join(outDir, schemaName)
	samplePath := filepath.Join(outDir, "argo-insight-config.yaml")

	cfg := config.Default()
	cfg.Version = version.GetVersion()

	schemaJSON, err := cfg.GenerateSchemaJSON()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to create output directory", err)
	}

	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to write schema", err)
	}

	fmt.Fprintf(os.Stdout, "Schema written to %s\n", schemaPath)

	if _, err := os.Stat(samplePath); os.IsNotExist(err) {
		sample, err := config.SampleYAML(cfg, schemaName)
		if err != nil {
			return err
		}

		if err := os.WriteFile(samplePath, sample, 0644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to write sample config", err)
		}

		fmt.Fprintf(os.Stdout, "Sample config written to %s\n", samplePath)
	}

	return nil
}

func exploreAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd.String("config"), "error")
	if err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	a.start(ctx)

	model := NewModel(ctx, a.analyzer)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := program.Run(); err != nil {
		return errors.Wrap(errors.ErrCodeUnknown, "explore session failed", err)
	}

	return nil
}

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:    "argo-insight",
		Usage:   "Fetch market data, compute indicators and signals, and backtest them",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Analyze one or more assets and print the report",
				Flags: []cli.Flag{
					configFlag,
					logLevelFlag,
					&cli.StringSliceFlag{
						Name:    "asset",
						Aliases: []string{"a"},
						Usage:   "Asset id, repeatable or comma separated (e.g. btc,eth)",
						Value:   []string{"btc"},
					},
					&cli.StringFlag{
						Name:    "timeframe",
						Aliases: []string{"t"},
						Usage:   "Timeframe token (1m, 5m, 15m, 30m, 1h, 1d, ...)",
						Value:   string(types.Timeframe1d),
					},
					&cli.BoolFlag{
						Name:  "export",
						Usage: "Write the enriched series and signals to a parquet file",
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "Hide the progress bar",
					},
				},
				Action: runAction,
			},
			{
				Name:   "timeframes",
				Usage:  "List the timeframes every configured provider supports",
				Flags:  []cli.Flag{configFlag},
				Action: timeframesAction,
			},
			{
				Name:  "schema",
				Usage: "Write the config JSON schema and a sample config",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "Output directory",
						Value: "./config",
					},
				},
				Action: schemaAction,
			},
			{
				Name:   "explore",
				Usage:  "Interactively pick assets and a timeframe and browse the latest signals",
				Flags:  []cli.Flag{configFlag},
				Action: exploreAction,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, RenderFatal(err))
		os.Exit(1)
	}
}
