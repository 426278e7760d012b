package types

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type CandleTestSuite struct {
	suite.Suite
}

func TestCandleSuite(t *testing.T) {
	suite.Run(t, new(CandleTestSuite))
}

func (suite *CandleTestSuite) candle(minute int, closePrice float64) Candle {
	return Candle{
		Time:  time.Date(2024, 1, 1, 0, minute, 0, 0, time.UTC),
		Open:  closePrice,
		High:  closePrice,
		Low:   closePrice,
		Close: closePrice,
	}
}

func (suite *CandleTestSuite) TestNewSeriesSortsAndDerivesPriceChange() {
	series := NewSeries("btc", Timeframe1m, "test", []Candle{
		suite.candle(2, 110),
		suite.candle(0, 100),
		suite.candle(1, 100),
	})

	suite.Equal(3, series.Len())
	suite.True(series.At(0).PriceChange.IsNone())
	suite.InDelta(0.0, series.At(1).PriceChange.Unwrap(), 1e-12)
	suite.InDelta(0.1, series.At(2).PriceChange.Unwrap(), 1e-12)

	for i := 1; i < series.Len(); i++ {
		suite.True(series.At(i).Time.After(series.At(i - 1).Time))
	}
}

func (suite *CandleTestSuite) TestNewSeriesDropsDuplicateTimestamps() {
	series := NewSeries("btc", Timeframe1m, "test", []Candle{
		suite.candle(0, 100),
		suite.candle(0, 101),
		suite.candle(1, 102),
	})

	suite.Equal(2, series.Len())
	suite.Equal(101.0, series.At(0).Close)
}

func (suite *CandleTestSuite) TestZeroPreviousCloseHasNoPriceChange() {
	series := NewSeries("btc", Timeframe1m, "test", []Candle{
		suite.candle(0, 0),
		suite.candle(1, 5),
	})

	suite.True(series.At(1).PriceChange.IsNone())
}

func (suite *CandleTestSuite) TestSeriesIsImmutable() {
	input := []Candle{suite.candle(0, 100), suite.candle(1, 101)}
	series := NewSeries("btc", Timeframe1m, "test", input)

	input[0].Close = 1
	suite.Equal(100.0, series.At(0).Close)

	candles := series.Candles()
	candles[1].Close = 1
	suite.Equal(101.0, series.At(1).Close)
}

func (suite *CandleTestSuite) TestEmptySeries() {
	series := EmptySeries("eth", Timeframe1h)

	suite.True(series.IsEmpty())
	suite.Equal("eth", series.Asset)
	suite.Empty(series.Closes())

	_, ok := series.Last()
	suite.False(ok)
}

func (suite *CandleTestSuite) TestHasValidClose() {
	suite.True(Candle{Close: 1}.HasValidClose())
	suite.False(Candle{Close: 0}.HasValidClose())
	suite.False(Candle{Close: math.NaN()}.HasValidClose())
	suite.False(Candle{Close: math.Inf(1)}.HasValidClose())
}
