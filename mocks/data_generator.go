package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-insight/internal/types"
)

// DataGenerator produces synthetic candle series for tests.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how candles are generated.
type GeneratorConfig struct {
	Asset     string
	Timeframe types.Timeframe
	Provider  string
	StartTime time.Time
	// Count is the number of candles to generate
	Count        int
	InitialPrice float64
	// Volatility controls price movement per bar (0.01 = 1%)
	Volatility float64
	// Trend is the total drift spread across the series
	Trend          float64
	VolumeBase     float64
	VolumeVariance float64
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Asset:          "btc",
		Timeframe:      types.Timeframe1h,
		Provider:       "synthetic",
		StartTime:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Count:          500,
		InitialPrice:   100.0,
		Volatility:     0.01,
		Trend:          0.0,
		VolumeBase:     10000,
		VolumeVariance: 0.3,
	}
}

// Generate creates a Series following a geometric Brownian motion.
func (g *DataGenerator) Generate(config GeneratorConfig) types.Series {
	candles := make([]types.Candle, config.Count)
	currentPrice := config.InitialPrice
	currentTime := config.StartTime
	interval := config.Timeframe.Duration()

	if interval == 0 {
		interval = time.Hour
	}

	for i := 0; i < config.Count; i++ {
		open := currentPrice

		// Box-Muller
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		drift := config.Trend / float64(config.Count)

		close := open * (1 + config.Volatility*z + drift)
		if close <= 0 {
			close = open * 0.99
		}

		high := math.Max(open, close) + math.Abs(g.rng.Float64()*config.Volatility*open*0.5)

		low := math.Min(open, close) - math.Abs(g.rng.Float64()*config.Volatility*open*0.5)
		if low <= 0 {
			low = math.Min(open, close) * 0.99
		}

		volume := config.VolumeBase * (1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance)
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		//nolint:exhaustruct // PriceChange is derived by NewSeries
		candles[i] = types.Candle{
			Time:   currentTime,
			Open:   roundToDecimals(open, 4),
			High:   roundToDecimals(high, 4),
			Low:    roundToDecimals(low, 4),
			Close:  roundToDecimals(close, 4),
			Volume: roundToDecimals(volume, 2),
		}

		currentPrice = close
		currentTime = currentTime.Add(interval)
	}

	return types.NewSeries(config.Asset, config.Timeframe, config.Provider, candles)
}

// GenerateCloses builds an hourly series from explicit closes with O=H=L=C.
func GenerateCloses(asset string, start time.Time, closes ...float64) types.Series {
	candles := make([]types.Candle, len(closes))
	for i, c := range closes {
		//nolint:exhaustruct // PriceChange is derived by NewSeries
		candles[i] = types.Candle{
			Time:  start.Add(time.Duration(i) * time.Hour),
			Open:  c,
			High:  c,
			Low:   c,
			Close: c,
		}
	}

	return types.NewSeries(asset, types.Timeframe1h, "synthetic", candles)
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
