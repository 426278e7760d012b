package types

import (
	"math"
	"slices"
	"time"

	"github.com/moznion/go-optional"
)

// Candle is one OHLCV bucket. PriceChange is None on the first row of a series
// and wherever the previous close is zero.
type Candle struct {
	Time        time.Time                `json:"time" yaml:"time"`
	Open        float64                  `json:"open" yaml:"open"`
	High        float64                  `json:"high" yaml:"high"`
	Low         float64                  `json:"low" yaml:"low"`
	Close       float64                  `json:"close" yaml:"close"`
	Volume      float64                  `json:"volume" yaml:"volume"`
	PriceChange optional.Option[float64] `json:"price_change" yaml:"price_change"`
}

// HasValidClose reports whether the close is usable as a trade price.
func (c Candle) HasValidClose() bool {
	return !math.IsNaN(c.Close) && !math.IsInf(c.Close, 0) && c.Close > 0
}

// Series is an ordered run of candles for one (asset, timeframe) pair.
// Timestamps are strictly increasing and the candles are never mutated once
// the series is built; accessors hand out copies.
type Series struct {
	Asset     string
	Timeframe Timeframe
	// Provider is the name of the upstream that served the series. Metadata only.
	Provider string
	candles  []Candle
}

// NewSeries sorts the candles by time, keeps the last candle for duplicated
// timestamps and derives PriceChange.
func NewSeries(asset string, timeframe Timeframe, provider string, candles []Candle) Series {
	sorted := slices.Clone(candles)
	slices.SortStableFunc(sorted, func(a, b Candle) int {
		return a.Time.Compare(b.Time)
	})

	unique := make([]Candle, 0, len(sorted))
	for _, candle := range sorted {
		if n := len(unique); n > 0 && unique[n-1].Time.Equal(candle.Time) {
			unique[n-1] = candle

			continue
		}

		unique = append(unique, candle)
	}

	for i := range unique {
		unique[i].PriceChange = priceChange(unique, i)
	}

	return Series{
		Asset:     asset,
		Timeframe: timeframe,
		Provider:  provider,
		candles:   unique,
	}
}

// EmptySeries is the "no data" value returned on every failure path.
func EmptySeries(asset string, timeframe Timeframe) Series {
	return Series{
		Asset:     asset,
		Timeframe: timeframe,
		Provider:  "",
		candles:   nil,
	}
}

func priceChange(candles []Candle, i int) optional.Option[float64] {
	if i == 0 || candles[i-1].Close == 0 {
		return optional.None[float64]()
	}

	prev := candles[i-1].Close

	return optional.Some((candles[i].Close - prev) / prev)
}

func (s Series) Len() int {
	return len(s.candles)
}

func (s Series) IsEmpty() bool {
	return len(s.candles) == 0
}

// Candles returns a copy of the underlying candles.
func (s Series) Candles() []Candle {
	return slices.Clone(s.candles)
}

func (s Series) At(i int) Candle {
	return s.candles[i]
}

// Last returns the most recent candle.
func (s Series) Last() (Candle, bool) {
	if len(s.candles) == 0 {
		return Candle{}, false
	}

	return s.candles[len(s.candles)-1], true
}

// Closes extracts the close column.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s.candles))
	for i, candle := range s.candles {
		closes[i] = candle.Close
	}

	return closes
}
