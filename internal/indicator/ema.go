package indicator

// exponentialMovingAverage seeds at the first value and then applies
// ema[t] = v[t]*k + ema[t-1]*(1-k) with k = 2/(span+1), matching pandas
// ewm(span, adjust=False).
func exponentialMovingAverage(values []float64, span int) []float64 {
	ema := make([]float64, len(values))
	if len(values) == 0 {
		return ema
	}

	k := 2.0 / float64(span+1)
	ema[0] = values[0]

	for i := 1; i < len(values); i++ {
		ema[i] = values[i]*k + ema[i-1]*(1-k)
	}

	return ema
}
