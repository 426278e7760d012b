package indicator

import (
	"github.com/rxtech-lab/argo-insight/internal/types"
)

// Engine turns a candle series into an enriched series. It holds no state
// between calls, so the same input always yields the same output.
type Engine struct {
	registry IndicatorRegistry
}

// NewEngine registers MA20/50/200, Bollinger(20, 2), RSI14 and MACD(12, 26, 9).
func NewEngine(smoothing RSISmoothing) *Engine {
	registry := NewIndicatorRegistry()

	for _, ind := range []Indicator{
		NewMA(20),
		NewMA(50),
		NewMA(200),
		NewBollingerBands(),
		NewRSI(smoothing),
		NewMACD(),
	} {
		// names are distinct, registration cannot fail
		_ = registry.RegisterIndicator(ind)
	}

	return NewEngineWithRegistry(registry)
}

// NewEngineWithRegistry builds an engine over a caller supplied registry.
func NewEngineWithRegistry(registry IndicatorRegistry) *Engine {
	return &Engine{
		registry: registry,
	}
}

// ComputeIndicators builds a new EnrichedSeries. Columns an indicator cannot
// fill stay None.
func (e *Engine) ComputeIndicators(series types.Series) types.EnrichedSeries {
	candles := series.Candles()
	closes := series.Closes()

	rows := make([]types.EnrichedRow, len(candles))
	for i, candle := range candles {
		rows[i] = types.EnrichedRow{Candle: candle}
	}

	for _, name := range e.registry.ListIndicators() {
		ind, err := e.registry.GetIndicator(name)
		if err != nil {
			continue
		}

		ind.Apply(closes, rows)
	}

	return types.NewEnrichedSeries(series, rows)
}
