package types

import "time"

// Trade is one simulated fill.
type Trade struct {
	ID    string     `json:"id" yaml:"id"`
	Type  SignalType `json:"type" yaml:"type"`
	Price float64    `json:"price" yaml:"price"`
	Time  time.Time  `json:"time" yaml:"time"`
	// Position is the asset quantity held after a BUY, or sold by a SELL
	Position float64 `json:"position" yaml:"position"`
	// Capital is the cash spent by a BUY, or received by a SELL
	Capital float64 `json:"capital" yaml:"capital"`
	// PnL is Capital minus the entry notional for a SELL. Zero for a BUY.
	PnL float64 `json:"pnl" yaml:"pnl"`
}

// EquityPoint is one mark-to-market sample of the value trajectory.
type EquityPoint struct {
	Time  time.Time `json:"time" yaml:"time"`
	Value float64   `json:"value" yaml:"value"`
}
