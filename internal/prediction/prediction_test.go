package prediction

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/rxtech-lab/argo-insight/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type PredictionTestSuite struct {
	suite.Suite
}

func TestPredictionSuite(t *testing.T) {
	suite.Run(t, new(PredictionTestSuite))
}

func rows(n int) []types.EnrichedRow {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]types.EnrichedRow, n)

	for i := range out {
		out[i] = types.EnrichedRow{
			Candle: types.Candle{
				Time:        start.Add(time.Duration(i) * time.Hour),
				Close:       100 + float64(i),
				Volume:      float64(i % 3),
				PriceChange: optional.Some(0.01 * float64(i%4)),
			},
			RSI14: optional.Some(40 + float64(i%20)),
			MACD:  optional.Some(float64(i%5) - 2),
		}
	}

	return out
}

func window(offset float64) FeatureWindow {
	w := FeatureWindow{Rows: make([]FeatureRow, DefaultWindowSize)}
	for i := range w.Rows {
		v := float64(i) + offset
		w.Rows[i] = FeatureRow{v, v * 2, -v, float64(i % 2), v / 100}
	}

	return w
}

func (suite *PredictionTestSuite) TestBuildFeatureWindow() {
	input := rows(40)

	w, err := BuildFeatureWindow("btc", input, DefaultWindowSize)
	suite.Require().NoError(err)
	suite.Equal(DefaultWindowSize, w.Len())

	last := input[len(input)-1]
	suite.Equal(FeatureRow{
		last.Close,
		last.RSI14.Unwrap(),
		last.MACD.Unwrap(),
		last.Volume,
		last.PriceChange.Unwrap(),
	}, w.Rows[DefaultWindowSize-1])
	suite.Len(w.Flatten(), DefaultWindowSize*FeatureCount)
}

func (suite *PredictionTestSuite) TestBuildFeatureWindowTooShort() {
	_, err := BuildFeatureWindow("btc", rows(10), DefaultWindowSize)

	suite.Error(err)
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *PredictionTestSuite) TestBuildFeatureWindowUndefinedRow() {
	input := rows(35)
	input[30].RSI14 = optional.None[float64]()

	_, err := BuildFeatureWindow("btc", input, DefaultWindowSize)

	suite.Error(err)
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *PredictionTestSuite) TestBuildFeatureWindowInvalidSize() {
	_, err := BuildFeatureWindow("btc", rows(5), 0)

	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *PredictionTestSuite) TestUntrainedModelPredictsZero() {
	model := NewLinearModel(DefaultWindowSize)

	p, err := model.Predict(window(0))
	suite.NoError(err)
	suite.Equal(Prediction{PredictedChangePct: 0, ConfidencePct: 0}, p)
}

func (suite *PredictionTestSuite) TestTrainingMovesPredictionTowardLabel() {
	model := NewLinearModel(DefaultWindowSize)
	features := []FeatureWindow{window(0), window(1), window(2)}
	labels := []float64{0.05, 0.05, 0.05}

	for i := 0; i < 200; i++ {
		suite.Require().NoError(model.TrainOnBatch(features, labels))
	}

	p, err := model.Predict(window(0))
	suite.NoError(err)
	suite.InDelta(5.0, p.PredictedChangePct, 0.5)
	suite.InDelta(5.0, p.ConfidencePct, 0.5)
}

func (suite *PredictionTestSuite) TestConfidenceIsCapped() {
	model := NewLinearModel(DefaultWindowSize)
	model.bias = 3

	p, err := model.Predict(window(0))
	suite.NoError(err)
	suite.Equal(300.0, p.PredictedChangePct)
	suite.Equal(100.0, p.ConfidencePct)
}

func (suite *PredictionTestSuite) TestWrongWindowSize() {
	model := NewLinearModel(DefaultWindowSize)

	_, err := model.Predict(FeatureWindow{Rows: make([]FeatureRow, 3)})
	suite.True(errors.HasCode(err, errors.ErrCodePredictionFailed))

	err = model.TrainOnBatch([]FeatureWindow{window(0)}, []float64{0.1, 0.2})
	suite.True(errors.HasCode(err, errors.ErrCodeTrainingFailed))

	err = model.TrainOnBatch([]FeatureWindow{{Rows: nil}}, []float64{0.1})
	suite.True(errors.HasCode(err, errors.ErrCodeTrainingFailed))
}
