package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/rxtech-lab/argo-insight/pkg/errors"
)

// RSISmoothing selects how average gain and loss are carried along the series.
type RSISmoothing string

const (
	// RSISmoothingSimple uses the trailing mean of the last period deltas at every row.
	RSISmoothingSimple RSISmoothing = "simple"
	// RSISmoothingWilder seeds with the simple mean and then applies avg = (prev*(n-1) + cur) / n.
	RSISmoothingWilder RSISmoothing = "wilder"
)

// RSI indicator implements the Relative Strength Index.
type RSI struct {
	period    int
	smoothing RSISmoothing
}

// NewRSI creates a new RSI indicator with a 14 period window.
func NewRSI(smoothing RSISmoothing) Indicator {
	if smoothing == "" {
		smoothing = RSISmoothingSimple
	}

	return &RSI{
		period:    14,
		smoothing: smoothing,
	}
}

func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Expected parameters: period (int), smoothing (RSISmoothing or string, optional).
func (r *RSI) Config(params ...any) error {
	if len(params) < 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects at least 1 parameter: period (int)")
	}

	period, ok := periodParam(params[0])
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for period parameter, expected int")
	}

	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	smoothing := r.smoothing

	if len(params) > 1 {
		switch s := params[1].(type) {
		case RSISmoothing:
			smoothing = s
		case string:
			smoothing = RSISmoothing(s)
		default:
			return errors.New(errors.ErrCodeInvalidType, "invalid type for smoothing parameter, expected string")
		}

		if smoothing != RSISmoothingSimple && smoothing != RSISmoothingWilder {
			return errors.Newf(errors.ErrCodeInvalidParameter, "unknown RSI smoothing %q", smoothing)
		}
	}

	r.period = period
	r.smoothing = smoothing

	return nil
}

func (r *RSI) Apply(closes []float64, rows []types.EnrichedRow) {
	values := r.compute(closes)

	for i := range rows {
		rows[i].RSI14 = values[i]
	}
}

// compute needs period deltas, so the first defined value sits at index period.
func (r *RSI) compute(closes []float64) []optional.Option[float64] {
	values := make([]optional.Option[float64], len(closes))
	for i := range values {
		values[i] = optional.None[float64]()
	}

	if len(closes) <= r.period {
		return values
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))

	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	n := float64(r.period)
	avgGain, avgLoss := 0.0, 0.0

	for i := 1; i <= r.period; i++ {
		avgGain += gains[i]
		avgLoss += losses[i]
	}

	avgGain /= n
	avgLoss /= n
	values[r.period] = relativeStrength(avgGain, avgLoss)

	for i := r.period + 1; i < len(closes); i++ {
		switch r.smoothing {
		case RSISmoothingWilder:
			avgGain = (avgGain*(n-1) + gains[i]) / n
			avgLoss = (avgLoss*(n-1) + losses[i]) / n
		default:
			avgGain = mean(gains[i-r.period+1 : i+1])
			avgLoss = mean(losses[i-r.period+1 : i+1])
		}

		values[i] = relativeStrength(avgGain, avgLoss)
	}

	return values
}

// relativeStrength maps average gain/loss to [0,100]. A flat window has no
// defined strength.
func relativeStrength(avgGain, avgLoss float64) optional.Option[float64] {
	if avgGain == 0 && avgLoss == 0 {
		return optional.None[float64]()
	}

	if avgLoss == 0 {
		return optional.Some(100.0)
	}

	return defined(100 - 100/(1+avgGain/avgLoss))
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}
