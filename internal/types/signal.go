package types

import "time"

type SignalType string

const (
	// SignalTypeBuy opens a long position when flat
	SignalTypeBuy SignalType = "BUY"
	// SignalTypeSell closes the open long position
	SignalTypeSell SignalType = "SELL"
	// SignalTypeHold leaves position state untouched
	SignalTypeHold SignalType = "HOLD"
)

// SignalRow is the composite vote for one timestamp.
type SignalRow struct {
	Time     time.Time `json:"time"`
	MAVote   int       `json:"ma_vote"`
	RSIVote  int       `json:"rsi_vote"`
	MACDVote int       `json:"macd_vote"`
	// Strength is |MAVote + RSIVote + MACDVote|, in 0..3
	Strength int `json:"strength"`
	// Confidence is Strength/3*100
	Confidence float64    `json:"confidence"`
	Final      SignalType `json:"final"`
	// Abstained is set when an indicator was undefined and the row did not vote
	Abstained bool `json:"abstained"`
}

// VoteSum is the signed vote total that decides the direction.
func (r SignalRow) VoteSum() int {
	return r.MAVote + r.RSIVote + r.MACDVote
}

// SignalPoint is an entry (BUY) or exit (SELL) event.
type SignalPoint struct {
	Time     time.Time  `json:"time"`
	Type     SignalType `json:"type"`
	Price    float64    `json:"price"`
	Strength float64    `json:"strength"`
}

// SignalSeries is the output of the signal generator.
type SignalSeries struct {
	Rows        []SignalRow   `json:"rows"`
	EntryPoints []SignalPoint `json:"entry_points"`
	ExitPoints  []SignalPoint `json:"exit_points"`
}

// Last returns the most recent signal row.
func (s SignalSeries) Last() (SignalRow, bool) {
	if len(s.Rows) == 0 {
		return SignalRow{}, false
	}

	return s.Rows[len(s.Rows)-1], true
}
