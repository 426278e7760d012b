package backtest

import (
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-insight/internal/types"
	"github.com/shopspring/decimal"
)

// PositionState is the simulator's position phase. Shorts do not exist.
type PositionState string

const (
	PositionStateFlat PositionState = "FLAT"
	PositionStateLong PositionState = "LONG"
)

// state tracks the single position. In FLAT all value sits in capital, in
// LONG all value sits in position.
type state struct {
	phase      PositionState
	capital    float64
	position   float64
	entryPrice float64
}

func newState(initialCapital float64) *state {
	return &state{
		phase:      PositionStateFlat,
		capital:    initialCapital,
		position:   0,
		entryPrice: 0,
	}
}

// buy converts all capital into a position. Returns false when already long.
func (s *state) buy(price float64, at time.Time) (types.Trade, bool) {
	if s.phase != PositionStateFlat {
		return types.Trade{}, false
	}

	spent := s.capital
	s.position = spent / price
	s.capital = 0
	s.entryPrice = price
	s.phase = PositionStateLong

	return types.Trade{
		ID:       uuid.New().String(),
		Type:     types.SignalTypeBuy,
		Price:    price,
		Time:     at,
		Position: s.position,
		Capital:  spent,
		PnL:      0,
	}, true
}

// sell closes the open position. Returns false when flat.
func (s *state) sell(price float64, at time.Time) (types.Trade, bool) {
	if s.phase != PositionStateLong {
		return types.Trade{}, false
	}

	sold := s.position
	exitNotional := notional(sold, price)
	pnl := exitNotional.Sub(notional(sold, s.entryPrice))
	s.capital = exitNotional.InexactFloat64()

	s.position = 0
	s.entryPrice = 0
	s.phase = PositionStateFlat

	return types.Trade{
		ID:       uuid.New().String(),
		Type:     types.SignalTypeSell,
		Price:    price,
		Time:     at,
		Position: sold,
		Capital:  s.capital,
		PnL:      pnl.InexactFloat64(),
	}, true
}

// notional is position*price in exact decimal arithmetic. Entry and exit
// sides must both go through it so a flat round trip compares equal.
func notional(position, price float64) decimal.Decimal {
	return decimal.NewFromFloat(position).Mul(decimal.NewFromFloat(price))
}

// value marks the state to market at price.
func (s *state) value(price float64) float64 {
	if s.phase == PositionStateLong {
		return s.position * price
	}

	return s.capital
}
