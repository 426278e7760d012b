package backtest

import (
	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-insight/internal/logger"
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/rxtech-lab/argo-insight/pkg/errors"
	"go.uber.org/zap"
)

// DefaultInitialCapital is the starting capital when none is configured.
const DefaultInitialCapital = 10000.0

// OnTradeCallback is called for every simulated trade in emission order.
type OnTradeCallback func(trade types.Trade)

// Callbacks holds optional hooks. nil means no callback will be invoked.
type Callbacks struct {
	OnTrade *OnTradeCallback
}

// Simulator replays a signal series against close prices with one long-only position.
type Simulator struct {
	initialCapital float64
	logger         *logger.Logger
	callbacks      Callbacks
}

func NewSimulator(initialCapital float64, log *logger.Logger) *Simulator {
	if initialCapital <= 0 {
		initialCapital = DefaultInitialCapital
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Simulator{
		initialCapital: initialCapital,
		logger:         log,
		callbacks:      Callbacks{OnTrade: nil},
	}
}

// SetCallbacks replaces the simulator hooks.
func (s *Simulator) SetCallbacks(callbacks Callbacks) {
	s.callbacks = callbacks
}

// Run returns only the aggregate metrics.
func (s *Simulator) Run(series types.EnrichedSeries, signals types.SignalSeries) types.BacktestResult {
	return s.Simulate(series, signals).Result
}

// Simulate walks the signal rows in order. Rows without a matching candle or
// with an unusable close are skipped without touching state or the trajectory.
func (s *Simulator) Simulate(series types.EnrichedSeries, signals types.SignalSeries) types.BacktestReport {
	report := types.BacktestReport{
		ID:             uuid.New().String(),
		InitialCapital: s.initialCapital,
		Result:         types.BacktestResult{},
		Trades:         []types.Trade{},
		Equity:         []types.EquityPoint{},
	}

	if series.IsEmpty() || len(signals.Rows) == 0 {
		s.logger.Warn("Backtest input is empty",
			zap.Error(errors.New(errors.ErrCodeBacktestInputInvalid, "empty series or signals")),
			zap.Int("rows", series.Len()),
			zap.Int("signals", len(signals.Rows)),
		)

		return report
	}

	candles := make(map[int64]types.Candle, series.Len())
	for _, row := range series.Rows() {
		candles[row.Time.UnixNano()] = row.Candle
	}

	first := series.At(0).Time
	report.Equity = append(report.Equity, types.EquityPoint{Time: first, Value: s.initialCapital})

	st := newState(s.initialCapital)
	skipped := 0

	for _, signal := range signals.Rows {
		candle, ok := candles[signal.Time.UnixNano()]
		if !ok || !candle.HasValidClose() {
			skipped++

			continue
		}

		var (
			trade  types.Trade
			traded bool
		)

		switch signal.Final {
		case types.SignalTypeBuy:
			trade, traded = st.buy(candle.Close, candle.Time)
		case types.SignalTypeSell:
			trade, traded = st.sell(candle.Close, candle.Time)
		case types.SignalTypeHold:
		}

		if traded {
			report.Trades = append(report.Trades, trade)
			if s.callbacks.OnTrade != nil {
				(*s.callbacks.OnTrade)(trade)
			}
		}

		report.Equity = append(report.Equity, types.EquityPoint{Time: candle.Time, Value: st.value(candle.Close)})
	}

	if skipped > 0 {
		s.logger.Debug("Skipped signal rows without a usable candle", zap.Int("skipped", skipped))
	}

	if len(report.Equity) <= 1 {
		s.logger.Warn("Backtest input is misaligned",
			zap.Error(errors.New(errors.ErrCodeMisalignedSeries, "no signal row matched a candle")),
		)

		report.Trades = []types.Trade{}

		return report
	}

	report.Result = types.BacktestResult{
		TotalReturnPct: (report.Equity[len(report.Equity)-1].Value/s.initialCapital - 1) * 100,
		WinRate:        winRate(report.Trades),
		MaxDrawdownPct: maxDrawdown(report.Equity),
		TradeCount:     len(report.Trades),
	}

	return report
}

// winRate pairs trades in emission order (BUY, SELL) and counts pairs whose
// exit value exceeds the entry notional. A break-even pair is not a win.
func winRate(trades []types.Trade) float64 {
	pairs, wins := 0, 0

	for i := 0; i+1 < len(trades); i += 2 {
		entry, exit := trades[i], trades[i+1]
		if entry.Type != types.SignalTypeBuy || exit.Type != types.SignalTypeSell {
			continue
		}

		pairs++

		if notional(exit.Position, exit.Price).GreaterThan(notional(entry.Position, entry.Price)) {
			wins++
		}
	}

	if pairs == 0 {
		return 0
	}

	return float64(wins) / float64(pairs)
}

// maxDrawdown returns the largest decline from the running peak in percent.
func maxDrawdown(equity []types.EquityPoint) float64 {
	peak, worst := 0.0, 0.0

	for _, point := range equity {
		if point.Value > peak {
			peak = point.Value
		}

		if peak <= 0 {
			continue
		}

		if dd := (peak - point.Value) / peak * 100; dd > worst {
			worst = dd
		}
	}

	return worst
}
