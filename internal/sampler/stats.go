package sampler

import "sort"

// Summary holds descriptive statistics for one latency set, in milliseconds.
type Summary struct {
	Count  int
	Median float64
	Mean   float64
	Min    float64
	Max    float64
}

// Summarize computes summary statistics over a latency set. ok is false when
// samples is empty; callers omit the section rather than render zeros.
func Summarize(samples []float64) (summary Summary, ok bool) {
	if len(samples) == 0 {
		return Summary{}, false
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range samples {
		sum += v
	}

	return Summary{
		Count:  len(samples),
		Median: median(sorted),
		Mean:   sum / float64(len(samples)),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}, true
}

// median expects sorted input. Even-length sequences average the two middle
// values.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
