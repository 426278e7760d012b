package main

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-insight/internal/backtest"
	"github.com/rxtech-lab/argo-insight/internal/indicator"
	"github.com/rxtech-lab/argo-insight/internal/logger"
	"github.com/rxtech-lab/argo-insight/internal/prediction"
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/rxtech-lab/argo-insight/mocks"
	"github.com/rxtech-lab/argo-insight/pkg/analysis"
	"github.com/rxtech-lab/argo-insight/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type RenderTestSuite struct {
	suite.Suite
	report analysis.Report
}

func TestRenderSuite(t *testing.T) {
	suite.Run(t, new(RenderTestSuite))
}

//nolint:exhaustruct
func (suite *RenderTestSuite) SetupTest() {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := mocks.GenerateCloses("btc", start, 100, 110, 90)
	enriched := indicator.NewEngine(indicator.RSISmoothingSimple).ComputeIndicators(series)

	signals := types.SignalSeries{
		Rows: []types.SignalRow{
			{Time: start, Final: types.SignalTypeHold, Abstained: true},
			{Time: start.Add(time.Hour), Final: types.SignalTypeBuy, Strength: 2, Confidence: 66.67},
			{Time: start.Add(2 * time.Hour), Final: types.SignalTypeSell, Strength: 3, Confidence: 100, MAVote: -1, RSIVote: -1, MACDVote: -1},
		},
	}

	suite.report = analysis.Report{
		Asset:      "btc",
		Timeframe:  types.Timeframe1h,
		Provider:   "yahoo",
		Series:     series,
		Enriched:   enriched,
		Signals:    signals,
		Backtest:   backtest.NewSimulator(0, logger.NewNopLogger()).Simulate(enriched, signals),
		Prediction: optional.Some(prediction.Prediction{PredictedChangePct: 1.25, ConfidencePct: 1.25}),
	}
}

func (suite *RenderTestSuite) TestRenderReport() {
	out := RenderReport(suite.report)

	suite.Contains(out, "BTC · 1h")
	suite.Contains(out, "via yahoo, 3 candles")
	suite.Contains(out, "SELL")
	suite.Contains(out, "100% confidence")
	suite.Contains(out, "ma -1  rsi -1  macd -1")
	suite.Contains(out, "-18.18%")
	suite.Contains(out, "+1.25%")
	suite.Contains(out, "RSI14")
	suite.Contains(out, "n/a")
}

//nolint:exhaustruct
func (suite *RenderTestSuite) TestRenderBacktestWithoutTrades() {
	out := RenderBacktest(types.BacktestReport{InitialCapital: 10000})

	suite.Contains(out, "+0.00%")
	suite.NotContains(out, "PnL")
}

func (suite *RenderTestSuite) TestRenderBacktestTradesTable() {
	out := RenderBacktest(suite.report.Backtest)

	suite.Contains(out, "PnL")
	suite.Contains(out, "BUY")
	suite.Contains(out, "2024-01-01 02:00")
}

func (suite *RenderTestSuite) TestRenderError() {
	exhausted := errors.New(errors.ErrCodeAllProvidersExhausted, "no data")
	suite.Contains(RenderError("eth", types.Timeframe1d, exhausted), "retry later")

	other := errors.New(errors.ErrCodeInvalidTimeframe, "unsupported timeframe")
	suite.Contains(RenderError("eth", types.Timeframe1d, other), "unsupported timeframe")
}

func (suite *RenderTestSuite) TestRenderTimeframes() {
	suite.Equal("15m, 1d", RenderTimeframes([]types.Timeframe{types.Timeframe15m, types.Timeframe1d}))
	suite.Contains(RenderTimeframes(nil), "no timeframe")
}

func (suite *RenderTestSuite) TestFormatters() {
	suite.Equal("n/a", FormatOptional(optional.None[float64](), 2))
	suite.Equal("1.50", FormatOptional(optional.Some(1.5), 2))
	suite.Equal("+10.00%", FormatPercent(optional.Some(0.1)))
	suite.Equal("n/a", FormatPercent(optional.None[float64]()))
}

func (suite *RenderTestSuite) TestNormalizeAssets() {
	suite.Equal([]string{"btc", "eth", "sol"}, normalizeAssets([]string{"BTC, eth", "sol", "btc", " "}))
	suite.Empty(normalizeAssets(nil))
}
