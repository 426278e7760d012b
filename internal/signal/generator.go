package signal

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-insight/internal/logger"
	"github.com/rxtech-lab/argo-insight/internal/types"
	"go.uber.org/zap"
)

// UndefinedPolicy decides what a row does when an indicator it needs is undefined.
type UndefinedPolicy string

const (
	// UndefinedPolicyAbstain excludes the row: HOLD, zero votes, Abstained set.
	UndefinedPolicyAbstain UndefinedPolicy = "abstain"
	// UndefinedPolicyNeutral lets an undefined comparison vote 0 and keeps the other votes.
	UndefinedPolicyNeutral UndefinedPolicy = "neutral"
)

const (
	RSIOversold   = 30.0
	RSIOverbought = 70.0
)

// Generator converts an enriched series into composite signals.
type Generator struct {
	policy UndefinedPolicy
	logger *logger.Logger
}

func NewGenerator(policy UndefinedPolicy, log *logger.Logger) *Generator {
	if policy == "" {
		policy = UndefinedPolicyAbstain
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Generator{
		policy: policy,
		logger: log,
	}
}

// GenerateSignals votes on every row and extracts entry (BUY) and exit (SELL) points.
func (g *Generator) GenerateSignals(series types.EnrichedSeries) types.SignalSeries {
	rows := series.Rows()
	result := types.SignalSeries{
		Rows:        make([]types.SignalRow, 0, len(rows)),
		EntryPoints: []types.SignalPoint{},
		ExitPoints:  []types.SignalPoint{},
	}

	abstained := 0

	for _, row := range rows {
		signalRow := g.vote(row)
		if signalRow.Abstained {
			abstained++
		}

		result.Rows = append(result.Rows, signalRow)

		point := types.SignalPoint{
			Time:     row.Time,
			Type:     signalRow.Final,
			Price:    row.Close,
			Strength: signalRow.Confidence,
		}

		switch signalRow.Final {
		case types.SignalTypeBuy:
			result.EntryPoints = append(result.EntryPoints, point)
		case types.SignalTypeSell:
			result.ExitPoints = append(result.ExitPoints, point)
		case types.SignalTypeHold:
		}
	}

	g.logger.Debug("Generated signals",
		zap.String("asset", series.Asset),
		zap.Int("rows", len(result.Rows)),
		zap.Int("entries", len(result.EntryPoints)),
		zap.Int("exits", len(result.ExitPoints)),
		zap.Int("abstained", abstained),
	)

	return result
}

func (g *Generator) vote(row types.EnrichedRow) types.SignalRow {
	if g.policy == UndefinedPolicyAbstain &&
		(row.MA50.IsNone() || row.RSI14.IsNone() || row.MACD.IsNone() || row.MACDSignal.IsNone()) {
		return types.SignalRow{
			Time:       row.Time,
			MAVote:     0,
			RSIVote:    0,
			MACDVote:   0,
			Strength:   0,
			Confidence: 0,
			Final:      types.SignalTypeHold,
			Abstained:  true,
		}
	}

	maVote := compareVote(optional.Some(row.Close), row.MA50)
	macdVote := compareVote(row.MACD, row.MACDSignal)
	rsiVote := 0

	if rsi, err := row.RSI14.Take(); err == nil {
		switch {
		case rsi < RSIOversold:
			rsiVote = 1
		case rsi > RSIOverbought:
			rsiVote = -1
		}
	}

	return NewSignalRow(row, maVote, rsiVote, macdVote)
}

// NewSignalRow derives strength, confidence and the final decision from three votes.
func NewSignalRow(row types.EnrichedRow, maVote, rsiVote, macdVote int) types.SignalRow {
	sum := maVote + rsiVote + macdVote

	strength := sum
	if strength < 0 {
		strength = -strength
	}

	final := types.SignalTypeHold

	switch {
	case sum >= 2:
		final = types.SignalTypeBuy
	case sum <= -2:
		final = types.SignalTypeSell
	}

	return types.SignalRow{
		Time:       row.Time,
		MAVote:     maVote,
		RSIVote:    rsiVote,
		MACDVote:   macdVote,
		Strength:   strength,
		Confidence: float64(strength) / 3 * 100,
		Final:      final,
		Abstained:  false,
	}
}

// compareVote is +1 when a > b, -1 when a < b and 0 when equal or either side is undefined.
func compareVote(a, b optional.Option[float64]) int {
	left, err := a.Take()
	if err != nil {
		return 0
	}

	right, err := b.Take()
	if err != nil {
		return 0
	}

	switch {
	case left > right:
		return 1
	case left < right:
		return -1
	default:
		return 0
	}
}
