package prediction

import (
	"math"
	"sync"

	"github.com/rxtech-lab/argo-insight/pkg/errors"
)

const defaultLearningRate = 0.01

// LinearModel is a baseline regressor over min-max scaled feature windows,
// updated with plain stochastic gradient descent. It implements Predictor and Model.
type LinearModel struct {
	mu           sync.RWMutex
	windowSize   int
	learningRate float64
	weights      []float64
	bias         float64
}

func NewLinearModel(windowSize int) *LinearModel {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}

	return &LinearModel{
		mu:           sync.RWMutex{},
		windowSize:   windowSize,
		learningRate: defaultLearningRate,
		weights:      make([]float64, windowSize*FeatureCount),
		bias:         0,
	}
}

// Predict returns the expected price change in percent. Confidence is
// min(|change|*100, 100) with change as a fraction.
func (m *LinearModel) Predict(window FeatureWindow) (Prediction, error) {
	x, err := m.scale(window)
	if err != nil {
		return Prediction{}, err
	}

	m.mu.RLock()
	change := m.forward(x)
	m.mu.RUnlock()

	if math.IsNaN(change) || math.IsInf(change, 0) {
		return Prediction{}, errors.New(errors.ErrCodePredictionFailed, "model produced a non-finite prediction")
	}

	return Prediction{
		PredictedChangePct: change * 100,
		ConfidencePct:      math.Min(math.Abs(change)*100, 100),
	}, nil
}

// TrainOnBatch applies one SGD pass over the batch.
func (m *LinearModel) TrainOnBatch(features []FeatureWindow, labels []float64) error {
	if len(features) != len(labels) {
		return errors.Newf(errors.ErrCodeTrainingFailed, "got %d windows and %d labels", len(features), len(labels))
	}

	inputs := make([][]float64, len(features))

	for i, window := range features {
		x, err := m.scale(window)
		if err != nil {
			return errors.Wrap(errors.ErrCodeTrainingFailed, "invalid training window", err)
		}

		inputs[i] = x
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, x := range inputs {
		residual := m.forward(x) - labels[i]

		for j := range m.weights {
			m.weights[j] -= m.learningRate * residual * x[j]
		}

		m.bias -= m.learningRate * residual
	}

	return nil
}

func (m *LinearModel) forward(x []float64) float64 {
	out := m.bias
	for j, w := range m.weights {
		out += w * x[j]
	}

	return out
}

// scale min-max normalises each feature column over the window. Constant
// columns scale to zero.
func (m *LinearModel) scale(window FeatureWindow) ([]float64, error) {
	if window.Len() != m.windowSize {
		return nil, errors.Newf(errors.ErrCodePredictionFailed,
			"expected a window of %d rows, got %d", m.windowSize, window.Len())
	}

	var lo, hi FeatureRow

	for j := 0; j < FeatureCount; j++ {
		lo[j] = math.Inf(1)
		hi[j] = math.Inf(-1)
	}

	for _, row := range window.Rows {
		for j, v := range row {
			lo[j] = math.Min(lo[j], v)
			hi[j] = math.Max(hi[j], v)
		}
	}

	x := make([]float64, 0, m.windowSize*FeatureCount)

	for _, row := range window.Rows {
		for j, v := range row {
			span := hi[j] - lo[j]
			if span == 0 {
				x = append(x, 0)

				continue
			}

			x = append(x, (v-lo[j])/span)
		}
	}

	return x, nil
}
