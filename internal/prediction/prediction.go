// Package prediction holds the contracts between the analysis core and a
// trainable forward-looking model, plus a background incremental learner.
package prediction

import (
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/rxtech-lab/argo-insight/pkg/errors"
)

// DefaultWindowSize is the number of rows a feature window spans.
const DefaultWindowSize = 30

// FeatureCount is the width of one feature row: close, RSI, MACD, volume, price change.
const FeatureCount = 5

// FeatureRow is one row of a feature window.
type FeatureRow [FeatureCount]float64

// FeatureWindow is the trailing rows fed to a model, oldest first.
type FeatureWindow struct {
	Rows []FeatureRow
}

func (w FeatureWindow) Len() int {
	return len(w.Rows)
}

// Flatten lays the rows out row-major.
func (w FeatureWindow) Flatten() []float64 {
	flat := make([]float64, 0, len(w.Rows)*FeatureCount)
	for _, row := range w.Rows {
		flat = append(flat, row[:]...)
	}

	return flat
}

// Prediction is a model's forward-looking estimate.
type Prediction struct {
	PredictedChangePct float64 `json:"predicted_change_pct"`
	ConfidencePct      float64 `json:"confidence_pct"`
}

// Predictor produces a prediction from a feature window.
type Predictor interface {
	Predict(window FeatureWindow) (Prediction, error)
}

// TrainingFeed accepts labelled samples. Submit must not block the caller.
type TrainingFeed interface {
	Submit(window FeatureWindow, label float64)
}

// Model is a regressor that can be updated one batch at a time.
type Model interface {
	TrainOnBatch(features []FeatureWindow, labels []float64) error
}

// BuildFeatureWindow takes the last size rows of rows. Every row must have
// RSI, MACD and price change defined.
func BuildFeatureWindow(asset string, rows []types.EnrichedRow, size int) (FeatureWindow, error) {
	if size <= 0 {
		return FeatureWindow{}, errors.Newf(errors.ErrCodeInvalidParameter, "window size must be positive, got %d", size)
	}

	if len(rows) < size {
		return FeatureWindow{}, errors.NewInsufficientDataErrorf(size, len(rows), asset,
			"feature window needs %d rows, got %d", size, len(rows))
	}

	tail := rows[len(rows)-size:]
	window := FeatureWindow{Rows: make([]FeatureRow, 0, size)}

	for i, row := range tail {
		rsi, rsiErr := row.RSI14.Take()
		macd, macdErr := row.MACD.Take()
		change, changeErr := row.PriceChange.Take()

		if rsiErr != nil || macdErr != nil || changeErr != nil {
			return FeatureWindow{}, errors.NewInsufficientDataErrorf(size, i, asset,
				"feature window row %d at %s has undefined indicators", i, row.Time)
		}

		window.Rows = append(window.Rows, FeatureRow{row.Close, rsi, macd, row.Volume, change})
	}

	return window, nil
}
