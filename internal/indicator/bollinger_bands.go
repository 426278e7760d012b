package indicator

import (
	"math"

	"github.com/markcheno/go-talib"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/rxtech-lab/argo-insight/pkg/errors"
)

// BollingerBands computes MA(period) ± stdDev·σ where σ is the sample
// standard deviation of close over the same window.
type BollingerBands struct {
	period int
	stdDev float64
}

// NewBollingerBands creates a new BollingerBands indicator with default configuration.
func NewBollingerBands() Indicator {
	return &BollingerBands{
		period: 20,
		stdDev: 2.0,
	}
}

func (bb *BollingerBands) Name() types.IndicatorType {
	return types.IndicatorTypeBBMiddle
}

// Expected parameters: period (int), stdDev (float64).
func (bb *BollingerBands) Config(params ...any) error {
	if len(params) != 2 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 2 parameters: period (int), stdDev (float64)")
	}

	period, ok := periodParam(params[0])
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for period parameter, expected int")
	}

	// sample deviation needs at least two points
	if period < 2 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "period must be at least 2, got %d", period)
	}

	stdDev, ok := params[1].(float64)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for stdDev parameter, expected float64")
	}

	if stdDev <= 0 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "stdDev must be a positive number, got %f", stdDev)
	}

	bb.period = period
	bb.stdDev = stdDev

	return nil
}

func (bb *BollingerBands) Apply(closes []float64, rows []types.EnrichedRow) {
	middle := movingAverage(closes, bb.period)

	for i := range rows {
		rows[i].BBMiddle = middle[i]
		rows[i].BBUpper = optional.None[float64]()
		rows[i].BBLower = optional.None[float64]()
	}

	if len(closes) < bb.period {
		return
	}

	// talib.StdDev zeroes variances below 1e-14, which flattens sub-cent assets.
	// Var has no clamp; rescale it to the sample (n-1) estimator.
	variance := talib.Var(closes, bb.period)
	correction := float64(bb.period) / float64(bb.period-1)

	for i := bb.period - 1; i < len(rows); i++ {
		mid, err := middle[i].Take()
		if err != nil {
			continue
		}

		sigma := math.Sqrt(math.Max(variance[i]*correction, 0))
		rows[i].BBUpper = defined(mid + bb.stdDev*sigma)
		rows[i].BBLower = defined(mid - bb.stdDev*sigma)
	}
}
