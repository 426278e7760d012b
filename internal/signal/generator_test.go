package signal

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/stretchr/testify/suite"
)

type GeneratorTestSuite struct {
	suite.Suite
	generator *Generator
}

func TestGeneratorSuite(t *testing.T) {
	suite.Run(t, new(GeneratorTestSuite))
}

func (suite *GeneratorTestSuite) SetupTest() {
	suite.generator = NewGenerator(UndefinedPolicyAbstain, nil)
}

func enrichedRow(minute int, closePrice, ma50, rsi, macd, macdSignal float64) types.EnrichedRow {
	return types.EnrichedRow{
		Candle: types.Candle{
			Time:  time.Date(2024, 1, 1, 0, minute, 0, 0, time.UTC),
			Close: closePrice,
		},
		MA50:       optional.Some(ma50),
		RSI14:      optional.Some(rsi),
		MACD:       optional.Some(macd),
		MACDSignal: optional.Some(macdSignal),
	}
}

func series(rows ...types.EnrichedRow) types.EnrichedSeries {
	return types.NewEnrichedSeries(types.EmptySeries("btc", types.Timeframe1h), rows)
}

func (suite *GeneratorTestSuite) TestAllVoteCombinations() {
	votes := []int{-1, 0, 1}
	count := 0

	for _, ma := range votes {
		for _, rsi := range votes {
			for _, macd := range votes {
				row := NewSignalRow(types.EnrichedRow{}, ma, rsi, macd)
				sum := ma + rsi + macd
				count++

				suite.Contains([]int{0, 1, 2, 3}, row.Strength)
				suite.InDelta(float64(row.Strength)/3*100, row.Confidence, 1e-12)

				switch {
				case sum >= 2:
					suite.Equal(types.SignalTypeBuy, row.Final)
				case sum <= -2:
					suite.Equal(types.SignalTypeSell, row.Final)
				default:
					suite.Equal(types.SignalTypeHold, row.Final)
				}
			}
		}
	}

	suite.Equal(27, count)
}

func (suite *GeneratorTestSuite) TestVotesFromIndicators() {
	tests := []struct {
		name     string
		row      types.EnrichedRow
		expected types.SignalRow
	}{
		{
			name: "strong buy",
			row:  enrichedRow(0, 110, 100, 25, 2, 1),
			expected: types.SignalRow{
				MAVote: 1, RSIVote: 1, MACDVote: 1, Strength: 3, Confidence: 100, Final: types.SignalTypeBuy,
			},
		},
		{
			name: "sell with neutral rsi",
			row:  enrichedRow(1, 90, 100, 50, 1, 2),
			expected: types.SignalRow{
				MAVote: -1, RSIVote: 0, MACDVote: -1, Strength: 2, Confidence: 200.0 / 3, Final: types.SignalTypeSell,
			},
		},
		{
			name: "mixed hold",
			row:  enrichedRow(2, 110, 100, 80, 1, 1),
			expected: types.SignalRow{
				MAVote: 1, RSIVote: -1, MACDVote: 0, Strength: 0, Confidence: 0, Final: types.SignalTypeHold,
			},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			result := suite.generator.GenerateSignals(series(tt.row))
			suite.Require().Len(result.Rows, 1)

			got := result.Rows[0]
			suite.Equal(tt.expected.MAVote, got.MAVote)
			suite.Equal(tt.expected.RSIVote, got.RSIVote)
			suite.Equal(tt.expected.MACDVote, got.MACDVote)
			suite.Equal(tt.expected.Strength, got.Strength)
			suite.InDelta(tt.expected.Confidence, got.Confidence, 1e-9)
			suite.Equal(tt.expected.Final, got.Final)
			suite.Equal(tt.row.Time, got.Time)
		})
	}
}

func (suite *GeneratorTestSuite) TestEntryAndExitPoints() {
	result := suite.generator.GenerateSignals(series(
		enrichedRow(0, 110, 100, 25, 2, 1),
		enrichedRow(1, 100, 100, 50, 1, 1),
		enrichedRow(2, 90, 100, 75, 1, 2),
	))

	suite.Require().Len(result.EntryPoints, 1)
	suite.Require().Len(result.ExitPoints, 1)

	suite.Equal(110.0, result.EntryPoints[0].Price)
	suite.Equal(100.0, result.EntryPoints[0].Strength)
	suite.Equal(types.SignalTypeBuy, result.EntryPoints[0].Type)
	suite.Equal(90.0, result.ExitPoints[0].Price)
	suite.Equal(types.SignalTypeSell, result.ExitPoints[0].Type)
}

func (suite *GeneratorTestSuite) TestAbstainPolicy() {
	row := enrichedRow(0, 110, 100, 25, 2, 1)
	row.RSI14 = optional.None[float64]()

	result := suite.generator.GenerateSignals(series(row))

	suite.True(result.Rows[0].Abstained)
	suite.Equal(types.SignalTypeHold, result.Rows[0].Final)
	suite.Equal(0, result.Rows[0].Strength)
	suite.Empty(result.EntryPoints)
}

func (suite *GeneratorTestSuite) TestNeutralPolicy() {
	row := enrichedRow(0, 110, 100, 25, 2, 1)
	row.RSI14 = optional.None[float64]()

	result := NewGenerator(UndefinedPolicyNeutral, nil).GenerateSignals(series(row))

	got := result.Rows[0]
	suite.False(got.Abstained)
	suite.Equal(0, got.RSIVote)
	suite.Equal(2, got.Strength)
	suite.Equal(types.SignalTypeBuy, got.Final)
	suite.Len(result.EntryPoints, 1)
}

func (suite *GeneratorTestSuite) TestNeutralPolicyUndefinedMA() {
	row := enrichedRow(0, 110, 100, 50, 2, 1)
	row.MA50 = optional.None[float64]()

	got := NewGenerator(UndefinedPolicyNeutral, nil).GenerateSignals(series(row)).Rows[0]

	suite.Equal(0, got.MAVote)
	suite.Equal(1, got.MACDVote)
	suite.Equal(types.SignalTypeHold, got.Final)
}

func (suite *GeneratorTestSuite) TestEmptySeries() {
	result := suite.generator.GenerateSignals(series())

	suite.Empty(result.Rows)
	suite.Empty(result.EntryPoints)
	suite.Empty(result.ExitPoints)
}
