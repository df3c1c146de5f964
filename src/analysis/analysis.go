// Package analysis derives the per-decile comparison metrics between two
// quarters: absolute and percentage income change.
package analysis

import "math"

// Difference returns after[i] - before[i]. Inputs are paired up to the shorter length.
func Difference(before, after []float64) []float64 {
	n := minLen(before, after)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = after[i] - before[i]
	}
	return out
}

// PercentDifference returns (after[i] - before[i]) * 100 / before[i].
// A zero baseline yields ±Inf or NaN, as plain float division does.
func PercentDifference(before, after []float64) []float64 {
	n := minLen(before, after)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = (after[i] - before[i]) * 100 / before[i]
	}
	return out
}

// Max returns the largest non-NaN value, or NaN for an empty/all-NaN input.
func Max(vals []float64) float64 {
	m := math.NaN()
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(m) || v > m {
			m = v
		}
	}
	return m
}

// DecileDelta is one row of a two-quarter comparison.
type DecileDelta struct {
	Decile  int     `json:"decil"`
	Before  float64 `json:"before"`
	After   float64 `json:"after"`
	Diff    float64 `json:"diff"`
	Percent float64 `json:"percent"`
}

// Compare builds the per-decile comparison table; deciles are numbered from 1
// in input order.
func Compare(before, after []float64) []DecileDelta {
	diff := Difference(before, after)
	pct := PercentDifference(before, after)
	rows := make([]DecileDelta, len(diff))
	for i := range diff {
		rows[i] = DecileDelta{
			Decile:  i + 1,
			Before:  before[i],
			After:   after[i],
			Diff:    diff[i],
			Percent: pct[i],
		}
	}
	return rows
}

func minLen(a, b []float64) int {
	if len(a) < len(b) {
		return len(a)
	}
	return len(b)
}
