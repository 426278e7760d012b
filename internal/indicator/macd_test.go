package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/stretchr/testify/suite"
)

type MACDTestSuite struct {
	suite.Suite
}

func TestMACDSuite(t *testing.T) {
	suite.Run(t, new(MACDTestSuite))
}

func (suite *MACDTestSuite) TestExponentialMovingAverageSeededAtFirstValue() {
	ema := exponentialMovingAverage([]float64{10, 20, 30}, 3)
	// k = 0.5
	suite.Equal([]float64{10, 15, 22.5}, ema)
	suite.Empty(exponentialMovingAverage(nil, 3))
}

func (suite *MACDTestSuite) TestConstantSeriesIsZero() {
	closes := []float64{5, 5, 5, 5}
	rows := make([]types.EnrichedRow, len(closes))

	NewMACD().Apply(closes, rows)

	for _, row := range rows {
		suite.Equal(0.0, row.MACD.Unwrap())
		suite.Equal(0.0, row.MACDSignal.Unwrap())
		suite.Equal(0.0, row.MACDHist.Unwrap())
	}
}

func (suite *MACDTestSuite) TestConfig() {
	macd := NewMACD()
	macdImpl := macd.(*MACD)

	suite.NoError(macd.Config(5, 10, 3))
	suite.Equal(5, macdImpl.fastPeriod)
	suite.Equal(10, macdImpl.slowPeriod)
	suite.Equal(3, macdImpl.signalPeriod)

	err := macd.Config(10, 5, 3)
	suite.Error(err)
	suite.Contains(err.Error(), "must be smaller")

	suite.Error(macd.Config(1, 2))
	suite.Error(macd.Config(1, "2", 3))
}
