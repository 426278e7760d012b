package main

import (
	"context"
	"os"

	"github.com/rxtech-lab/argo-insight/internal/backtest"
	"github.com/rxtech-lab/argo-insight/internal/config"
	"github.com/rxtech-lab/argo-insight/internal/indicator"
	"github.com/rxtech-lab/argo-insight/internal/logger"
	"github.com/rxtech-lab/argo-insight/internal/prediction"
	"github.com/rxtech-lab/argo-insight/internal/signal"
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/rxtech-lab/argo-insight/pkg/analysis"
	"github.com/rxtech-lab/argo-insight/pkg/marketdata"
)

// reportAnalyzer is the part of *analysis.Analyzer the commands use.
type reportAnalyzer interface {
	Analyze(ctx context.Context, asset string, timeframe types.Timeframe) (analysis.Report, error)
	SupportedTimeframes() []types.Timeframe
}

// app wires the pipeline from a loaded configuration.
type app struct {
	config   config.Config
	logger   *logger.Logger
	client   *marketdata.Client
	analyzer *analysis.Analyzer
	learner  *prediction.IncrementalLearner
}

// loadConfig reads path, or falls back to the defaults when path is empty.
func loadConfig(path string, logLevel string) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)

	if path == "" {
		cfg = config.Default()
		cfg.ApplyEnv(os.Getenv)
	} else {
		cfg, err = config.Load(path, os.Getenv)
		if err != nil {
			return config.Config{}, err
		}
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func newApp(cfg config.Config) (*app, error) {
	log, err := logger.NewLoggerWithLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	client, err := marketdata.NewClient(cfg.ClientConfig(), log)
	if err != nil {
		return nil, err
	}

	//nolint:exhaustruct // predictor and feed are set below when the learner is enabled
	opts := analysis.Options{
		WindowSize: cfg.Learner.WindowSize,
		Logger:     log,
	}

	var learner *prediction.IncrementalLearner

	if cfg.Learner.Enabled {
		model := prediction.NewLinearModel(cfg.Learner.WindowSize)
		learner = prediction.NewIncrementalLearner(model, cfg.LearnerOptions(), log.Named("learner"))
		opts.Predictor = model
		opts.TrainingFeed = learner
	}

	analyzer := analysis.NewAnalyzer(
		client.Orchestrator(),
		indicator.NewEngine(cfg.Indicator.RSISmoothing),
		signal.NewGenerator(cfg.Signal.UndefinedPolicy, log.Named("signal")),
		backtest.NewSimulator(cfg.Backtest.InitialCapital, log.Named("backtest")),
		opts,
	)

	return &app{
		config:   cfg,
		logger:   log,
		client:   client,
		analyzer: analyzer,
		learner:  learner,
	}, nil
}

// start launches the background learner, if any.
func (a *app) start(ctx context.Context) {
	if a.learner != nil {
		a.learner.Start(ctx)
	}
}

// close stops the learner and flushes the logger.
func (a *app) close() {
	if a.learner != nil {
		a.learner.Stop()
	}

	_ = a.logger.Sync()
}
