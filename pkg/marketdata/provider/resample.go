package provider

import (
	"math"
	"slices"
	"time"

	"github.com/rxtech-lab/argo-insight/internal/types"
)

type pricePoint struct {
	time  time.Time
	price float64
}

// bucketStart floors t to a multiple of width counted from the Unix epoch.
func bucketStart(t time.Time, width time.Duration) time.Time {
	ms := t.UnixMilli()
	w := width.Milliseconds()

	return time.UnixMilli(ms - ms%w).UTC()
}

// resamplePrices aggregates price points into OHLC buckets. Empty buckets are
// not emitted.
func resamplePrices(points []pricePoint, width time.Duration) []types.Candle {
	candles := make([]types.Candle, 0, len(points))
	for _, p := range points {
		candles = append(candles, types.Candle{
			Time:  p.time,
			Open:  p.price,
			High:  p.price,
			Low:   p.price,
			Close: p.price,
		})
	}

	return resampleCandles(candles, width)
}

// resampleCandles merges finer candles into width buckets: first open, max
// high, min low, last close, summed volume.
func resampleCandles(candles []types.Candle, width time.Duration) []types.Candle {
	sorted := slices.Clone(candles)
	slices.SortStableFunc(sorted, func(a, b types.Candle) int {
		return a.Time.Compare(b.Time)
	})

	out := make([]types.Candle, 0, len(sorted))

	for _, c := range sorted {
		start := bucketStart(c.Time, width)

		if n := len(out); n > 0 && out[n-1].Time.Equal(start) {
			bucket := &out[n-1]
			bucket.High = math.Max(bucket.High, c.High)
			bucket.Low = math.Min(bucket.Low, c.Low)
			bucket.Close = c.Close
			bucket.Volume += c.Volume

			continue
		}

		out = append(out, types.Candle{
			Time:   start,
			Open:   c.Open,
			High:   c.High,
			Low:    c.Low,
			Close:  c.Close,
			Volume: c.Volume,
		})
	}

	return out
}

// synthesizeVolume sets volume to the 2-period sample standard deviation of
// close, |c[i]-c[i-1]|/√2, with 0 on the first row. It is a volatility proxy
// for upstreams that only report prices.
func synthesizeVolume(candles []types.Candle) {
	for i := range candles {
		if i == 0 {
			candles[i].Volume = 0

			continue
		}

		candles[i].Volume = math.Abs(candles[i].Close-candles[i-1].Close) / math.Sqrt2
	}
}
