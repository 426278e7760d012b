package mocks

import (
	"testing"
	"time"
)

func TestDataGenerator_Generate(t *testing.T) {
	gen := NewDataGenerator(42)
	config := DefaultConfig()
	config.Count = 100

	series := gen.Generate(config)

	if series.Len() != 100 {
		t.Fatalf("expected 100 candles, got %d", series.Len())
	}

	if series.Asset != config.Asset || series.Timeframe != config.Timeframe {
		t.Errorf("unexpected metadata: %s %s", series.Asset, series.Timeframe)
	}

	candles := series.Candles()
	for i, c := range candles {
		if c.Open <= 0 || c.High <= 0 || c.Low <= 0 || c.Close <= 0 {
			t.Errorf("invalid OHLC values at index %d: O=%f H=%f L=%f C=%f", i, c.Open, c.High, c.Low, c.Close)
		}

		if c.High < c.Low {
			t.Errorf("High < Low at index %d: H=%f L=%f", i, c.High, c.Low)
		}

		if i > 0 && candles[i].Time.Sub(candles[i-1].Time) != time.Hour {
			t.Errorf("unexpected interval at index %d", i)
		}
	}

	if candles[0].PriceChange.IsSome() {
		t.Error("first candle must not carry a price change")
	}

	if candles[1].PriceChange.IsNone() {
		t.Error("second candle must carry a price change")
	}
}

func TestDataGenerator_Reproducibility(t *testing.T) {
	config := DefaultConfig()
	config.Count = 50

	a := NewDataGenerator(7).Generate(config).Closes()
	b := NewDataGenerator(7).Generate(config).Closes()

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("close mismatch at index %d: %f != %f", i, a[i], b[i])
		}
	}
}

func TestGenerateCloses(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := GenerateCloses("eth", start, 100, 110, 90)

	if series.Len() != 3 {
		t.Fatalf("expected 3 candles, got %d", series.Len())
	}

	closes := series.Closes()
	if closes[0] != 100 || closes[1] != 110 || closes[2] != 90 {
		t.Errorf("unexpected closes %v", closes)
	}
}
