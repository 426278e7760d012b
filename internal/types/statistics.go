package types

// BacktestResult is the aggregate performance of a simulated run.
type BacktestResult struct {
	TotalReturnPct float64 `json:"total_return_pct" yaml:"total_return_pct"`
	// WinRate is the fraction (0..1) of completed BUY/SELL pairs that were profitable
	WinRate        float64 `json:"win_rate" yaml:"win_rate"`
	MaxDrawdownPct float64 `json:"max_drawdown_pct" yaml:"max_drawdown_pct"`
	TradeCount     int     `json:"trade_count" yaml:"trade_count"`
}

// BacktestReport carries the result together with the trades and the value
// trajectory. Equity starts with the initial capital.
type BacktestReport struct {
	ID             string         `json:"id" yaml:"id"`
	InitialCapital float64        `json:"initial_capital" yaml:"initial_capital"`
	Result         BacktestResult `json:"result" yaml:"result"`
	Trades         []Trade        `json:"trades" yaml:"trades"`
	Equity         []EquityPoint  `json:"equity" yaml:"equity"`
}
