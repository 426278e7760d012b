package indicator

import (
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/rxtech-lab/argo-insight/pkg/errors"
)

// MACD computes EMA(fast) - EMA(slow), its EMA(signal) line and the histogram.
// Every column is defined from the first row because the EMAs are seeded there.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD indicator with the 12/26/9 configuration.
func NewMACD() Indicator {
	return &MACD{
		fastPeriod:   12,
		slowPeriod:   26,
		signalPeriod: 9,
	}
}

func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Expected parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int).
func (m *MACD) Config(params ...any) error {
	if len(params) != 3 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 3 parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int)")
	}

	periods := make([]int, len(params))

	for i, param := range params {
		period, ok := periodParam(param)
		if !ok {
			return errors.Newf(errors.ErrCodeInvalidType, "invalid type for period parameter at position %d, expected int", i)
		}

		if period <= 0 {
			return errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
		}

		periods[i] = period
	}

	if periods[0] >= periods[1] {
		return errors.Newf(errors.ErrCodeInvalidParameter, "fastPeriod (%d) must be smaller than slowPeriod (%d)", periods[0], periods[1])
	}

	m.fastPeriod = periods[0]
	m.slowPeriod = periods[1]
	m.signalPeriod = periods[2]

	return nil
}

func (m *MACD) Apply(closes []float64, rows []types.EnrichedRow) {
	fast := exponentialMovingAverage(closes, m.fastPeriod)
	slow := exponentialMovingAverage(closes, m.slowPeriod)

	macd := make([]float64, len(closes))
	for i := range closes {
		macd[i] = fast[i] - slow[i]
	}

	signal := exponentialMovingAverage(macd, m.signalPeriod)

	for i := range rows {
		rows[i].MACD = defined(macd[i])
		rows[i].MACDSignal = defined(signal[i])
		rows[i].MACDHist = defined(macd[i] - signal[i])
	}
}
