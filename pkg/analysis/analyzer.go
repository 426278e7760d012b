// Package analysis runs the fetch, indicator, signal and backtest pipeline for
// one asset and timeframe.
package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-insight/internal/backtest"
	"github.com/rxtech-lab/argo-insight/internal/indicator"
	"github.com/rxtech-lab/argo-insight/internal/logger"
	"github.com/rxtech-lab/argo-insight/internal/prediction"
	"github.com/rxtech-lab/argo-insight/internal/signal"
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/rxtech-lab/argo-insight/pkg/errors"
	"go.uber.org/zap"
)

// SeriesSource is the fetch side of the pipeline. *marketdata.Orchestrator implements it.
type SeriesSource interface {
	GetHistoricalData(ctx context.Context, asset string, timeframe types.Timeframe) types.Series
	SupportedTimeframes() []types.Timeframe
}

// Report is the outcome of one analysis run.
type Report struct {
	ID         string
	Asset      string
	Timeframe  types.Timeframe
	Provider   string
	Series     types.Series
	Enriched   types.EnrichedSeries
	Signals    types.SignalSeries
	Backtest   types.BacktestReport
	Prediction optional.Option[prediction.Prediction]
	CreatedAt  time.Time
}

// LatestSignal returns the signal of the most recent row.
func (r Report) LatestSignal() (types.SignalRow, bool) {
	return r.Signals.Last()
}

// Options wires the optional collaborators of an Analyzer.
type Options struct {
	Predictor    prediction.Predictor
	TrainingFeed prediction.TrainingFeed
	// WindowSize is the feature window length, default prediction.DefaultWindowSize
	WindowSize int
	Logger     *logger.Logger
	Now        func() time.Time
}

// Analyzer is the pipeline facade used by presentation layers.
type Analyzer struct {
	source     SeriesSource
	engine     *indicator.Engine
	generator  *signal.Generator
	simulator  *backtest.Simulator
	predictor  prediction.Predictor
	feed       prediction.TrainingFeed
	windowSize int
	logger     *logger.Logger
	now        func() time.Time
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(
	source SeriesSource,
	engine *indicator.Engine,
	generator *signal.Generator,
	simulator *backtest.Simulator,
	opts Options,
) *Analyzer {
	log := opts.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}

	windowSize := opts.WindowSize
	if windowSize <= 0 {
		windowSize = prediction.DefaultWindowSize
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Analyzer{
		source:     source,
		engine:     engine,
		generator:  generator,
		simulator:  simulator,
		predictor:  opts.Predictor,
		feed:       opts.TrainingFeed,
		windowSize: windowSize,
		logger:     log.Named("analyzer"),
		now:        now,
	}
}

// SupportedTimeframes returns the timeframes every configured provider can serve.
func (a *Analyzer) SupportedTimeframes() []types.Timeframe {
	return a.source.SupportedTimeframes()
}

// Analyze fetches the series and runs it through the pipeline. An empty fetch
// returns ErrCodeAllProvidersExhausted, which callers should treat as retry later.
func (a *Analyzer) Analyze(ctx context.Context, asset string, timeframe types.Timeframe) (Report, error) {
	if !timeframe.IsValid() {
		return Report{}, errors.Newf(errors.ErrCodeInvalidTimeframe, "unsupported timeframe %q", timeframe)
	}

	series := a.source.GetHistoricalData(ctx, asset, timeframe)
	if series.IsEmpty() {
		return Report{}, errors.Newf(errors.ErrCodeAllProvidersExhausted,
			"no data for %s/%s from any provider, retry later", asset, timeframe)
	}

	enriched := a.engine.ComputeIndicators(series)
	signals := a.generator.GenerateSignals(enriched)
	backtestReport := a.simulator.Simulate(enriched, signals)

	report := Report{
		ID:         uuid.New().String(),
		Asset:      asset,
		Timeframe:  timeframe,
		Provider:   series.Provider,
		Series:     series,
		Enriched:   enriched,
		Signals:    signals,
		Backtest:   backtestReport,
		Prediction: optional.None[prediction.Prediction](),
		CreatedAt:  a.now(),
	}

	rows := enriched.Rows()
	report.Prediction = a.predict(asset, rows)
	a.submitTraining(asset, rows)

	a.logger.Info("Analysis complete",
		zap.String("asset", asset),
		zap.String("timeframe", timeframe.String()),
		zap.String("provider", series.Provider),
		zap.Int("rows", enriched.Len()),
		zap.Int("trades", backtestReport.Result.TradeCount),
	)

	return report, nil
}

func (a *Analyzer) predict(asset string, rows []types.EnrichedRow) optional.Option[prediction.Prediction] {
	if a.predictor == nil {
		return optional.None[prediction.Prediction]()
	}

	window, err := prediction.BuildFeatureWindow(asset, rows, a.windowSize)
	if err != nil {
		a.logger.Debug("Skipping prediction", zap.String("asset", asset), zap.Error(err))

		return optional.None[prediction.Prediction]()
	}

	result, err := a.predictor.Predict(window)
	if err != nil {
		a.logger.Warn("Prediction failed", zap.String("asset", asset), zap.Error(err))

		return optional.None[prediction.Prediction]()
	}

	return optional.Some(result)
}

// submitTraining labels the window preceding the latest row with that row's
// realized price change.
func (a *Analyzer) submitTraining(asset string, rows []types.EnrichedRow) {
	if a.feed == nil || len(rows) < a.windowSize+1 {
		return
	}

	label, err := rows[len(rows)-1].PriceChange.Take()
	if err != nil {
		return
	}

	window, err := prediction.BuildFeatureWindow(asset, rows[:len(rows)-1], a.windowSize)
	if err != nil {
		a.logger.Debug("Skipping training sample", zap.String("asset", asset), zap.Error(err))

		return
	}

	a.feed.Submit(window, label)
}
