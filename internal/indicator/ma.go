package indicator

import (
	"fmt"

	"github.com/markcheno/go-talib"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/rxtech-lab/argo-insight/pkg/errors"
)

// MA implements the simple moving average of close over a trailing window.
type MA struct {
	period int
}

// NewMA creates a new MA indicator. Only the 20, 50 and 200 periods map to a column.
func NewMA(period int) Indicator {
	return &MA{
		period: period,
	}
}

// Name returns the column the MA writes to.
func (m *MA) Name() types.IndicatorType {
	switch m.period {
	case 20:
		return types.IndicatorTypeMA20
	case 50:
		return types.IndicatorTypeMA50
	case 200:
		return types.IndicatorTypeMA200
	default:
		return types.IndicatorType(fmt.Sprintf("ma%d", m.period))
	}
}

// Expected parameters: period (int).
func (m *MA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, ok := periodParam(params[0])
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for period parameter, expected int or float")
	}

	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	m.period = period

	return nil
}

func (m *MA) Apply(closes []float64, rows []types.EnrichedRow) {
	values := movingAverage(closes, m.period)

	for i := range rows {
		switch m.period {
		case 20:
			rows[i].MA20 = values[i]
		case 50:
			rows[i].MA50 = values[i]
		case 200:
			rows[i].MA200 = values[i]
		}
	}
}

// movingAverage returns the trailing simple mean, None until period points exist.
func movingAverage(closes []float64, period int) []optional.Option[float64] {
	values := make([]optional.Option[float64], len(closes))
	for i := range values {
		values[i] = optional.None[float64]()
	}

	// talib indexes past the input when it is shorter than the window
	if period <= 0 || len(closes) < period {
		return values
	}

	sma := talib.Sma(closes, period)
	for i := period - 1; i < len(closes); i++ {
		values[i] = defined(sma[i])
	}

	return values
}
