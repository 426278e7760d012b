package types

import (
	"slices"

	"github.com/moznion/go-optional"
)

type IndicatorType string

const (
	IndicatorTypeMA20       IndicatorType = "ma20"
	IndicatorTypeMA50       IndicatorType = "ma50"
	IndicatorTypeMA200      IndicatorType = "ma200"
	IndicatorTypeBBMiddle   IndicatorType = "bb_middle"
	IndicatorTypeBBUpper    IndicatorType = "bb_upper"
	IndicatorTypeBBLower    IndicatorType = "bb_lower"
	IndicatorTypeRSI        IndicatorType = "rsi"
	IndicatorTypeMACD       IndicatorType = "macd"
	IndicatorTypeMACDSignal IndicatorType = "macd_signal"
	IndicatorTypeMACDHist   IndicatorType = "macd_hist"
)

// EnrichedRow is a candle plus its indicator columns. A None value marks a
// row without enough lookback for that indicator.
type EnrichedRow struct {
	Candle

	MA20       optional.Option[float64] `json:"ma20"`
	MA50       optional.Option[float64] `json:"ma50"`
	MA200      optional.Option[float64] `json:"ma200"`
	BBMiddle   optional.Option[float64] `json:"bb_middle"`
	BBUpper    optional.Option[float64] `json:"bb_upper"`
	BBLower    optional.Option[float64] `json:"bb_lower"`
	RSI14      optional.Option[float64] `json:"rsi14"`
	MACD       optional.Option[float64] `json:"macd"`
	MACDSignal optional.Option[float64] `json:"macd_signal"`
	MACDHist   optional.Option[float64] `json:"macd_hist"`
}

// Value returns the indicator column named by t.
func (r EnrichedRow) Value(t IndicatorType) optional.Option[float64] {
	switch t {
	case IndicatorTypeMA20:
		return r.MA20
	case IndicatorTypeMA50:
		return r.MA50
	case IndicatorTypeMA200:
		return r.MA200
	case IndicatorTypeBBMiddle:
		return r.BBMiddle
	case IndicatorTypeBBUpper:
		return r.BBUpper
	case IndicatorTypeBBLower:
		return r.BBLower
	case IndicatorTypeRSI:
		return r.RSI14
	case IndicatorTypeMACD:
		return r.MACD
	case IndicatorTypeMACDSignal:
		return r.MACDSignal
	case IndicatorTypeMACDHist:
		return r.MACDHist
	default:
		return optional.None[float64]()
	}
}

// EnrichedSeries is a Series with indicator columns computed once.
type EnrichedSeries struct {
	Asset     string
	Timeframe Timeframe
	Provider  string
	rows      []EnrichedRow
}

func NewEnrichedSeries(source Series, rows []EnrichedRow) EnrichedSeries {
	return EnrichedSeries{
		Asset:     source.Asset,
		Timeframe: source.Timeframe,
		Provider:  source.Provider,
		rows:      slices.Clone(rows),
	}
}

func (s EnrichedSeries) Len() int {
	return len(s.rows)
}

func (s EnrichedSeries) IsEmpty() bool {
	return len(s.rows) == 0
}

// Rows returns a copy of the rows.
func (s EnrichedSeries) Rows() []EnrichedRow {
	return slices.Clone(s.rows)
}

func (s EnrichedSeries) At(i int) EnrichedRow {
	return s.rows[i]
}

func (s EnrichedSeries) Last() (EnrichedRow, bool) {
	if len(s.rows) == 0 {
		return EnrichedRow{}, false
	}

	return s.rows[len(s.rows)-1], true
}
