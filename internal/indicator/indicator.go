package indicator

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-insight/internal/types"
)

// Indicator defines a column-producing technical indicator computed over a
// whole close series.
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Config applies indicator specific parameters
	Config(params ...any) error
	// Apply writes the indicator columns into rows. rows and closes have the same length.
	Apply(closes []float64, rows []types.EnrichedRow)
}

// defined wraps a computed value, mapping NaN and Inf to None.
func defined(v float64) optional.Option[float64] {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return optional.None[float64]()
	}

	return optional.Some(v)
}

func periodParam(param any) (int, bool) {
	switch p := param.(type) {
	case int:
		return p, true
	case float64:
		return int(p), true
	default:
		return 0, false
	}
}
