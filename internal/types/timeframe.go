package types

import (
	"slices"
	"time"

	"github.com/rxtech-lab/argo-insight/pkg/errors"
)

// Timeframe is the bucket token a caller requests, e.g. "1h" or "30d".
type Timeframe string

const (
	Timeframe1m  Timeframe = "1m"
	Timeframe3m  Timeframe = "3m"
	Timeframe5m  Timeframe = "5m"
	Timeframe15m Timeframe = "15m"
	Timeframe30m Timeframe = "30m"
	Timeframe1h  Timeframe = "1h"
	Timeframe4h  Timeframe = "4h"
	Timeframe1d  Timeframe = "1d"
	Timeframe7d  Timeframe = "7d"
	Timeframe30d Timeframe = "30d"
)

var timeframeDurations = map[Timeframe]time.Duration{
	Timeframe1m:  time.Minute,
	Timeframe3m:  3 * time.Minute,
	Timeframe5m:  5 * time.Minute,
	Timeframe15m: 15 * time.Minute,
	Timeframe30m: 30 * time.Minute,
	Timeframe1h:  time.Hour,
	Timeframe4h:  4 * time.Hour,
	Timeframe1d:  24 * time.Hour,
	Timeframe7d:  7 * 24 * time.Hour,
	Timeframe30d: 30 * 24 * time.Hour,
}

// AllTimeframes returns every known token ordered by bucket duration.
func AllTimeframes() []Timeframe {
	all := make([]Timeframe, 0, len(timeframeDurations))
	for tf := range timeframeDurations {
		all = append(all, tf)
	}

	slices.SortFunc(all, func(a, b Timeframe) int {
		return int(timeframeDurations[a] - timeframeDurations[b])
	})

	return all
}

// ParseTimeframe validates a raw token.
func ParseTimeframe(raw string) (Timeframe, error) {
	tf := Timeframe(raw)
	if !tf.IsValid() {
		return "", errors.Newf(errors.ErrCodeInvalidTimeframe, "unknown timeframe %q", raw)
	}

	return tf, nil
}

func (t Timeframe) String() string {
	return string(t)
}

func (t Timeframe) IsValid() bool {
	_, ok := timeframeDurations[t]

	return ok
}

// Duration returns the bucket width. Unknown tokens return 0.
func (t Timeframe) Duration() time.Duration {
	return timeframeDurations[t]
}
