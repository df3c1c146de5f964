package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	q2 = []float64{1779, 3429, 4579, 5730, 7026, 8457, 10224, 12810, 17146, 31617}
	q3 = []float64{1880, 3650, 4850, 6050, 7390, 8900, 10800, 13480, 18010, 33250}
)

func TestDifference_Elementwise(t *testing.T) {
	got := Difference(q2, q3)
	require.Len(t, got, 10)
	for i := range q2 {
		assert.Equal(t, q3[i]-q2[i], got[i], "decile %d", i+1)
	}
}

func TestPercentDifference_Elementwise(t *testing.T) {
	got := PercentDifference(q2, q3)
	require.Len(t, got, 10)
	for i := range q2 {
		assert.InDelta(t, (q3[i]-q2[i])*100/q2[i], got[i], 1e-12, "decile %d", i+1)
	}
	assert.InDelta(t, 5.677346, got[0], 1e-6)
}

func TestPercentDifference_ZeroBaseline(t *testing.T) {
	got := PercentDifference([]float64{0, 0}, []float64{5, 0})
	assert.True(t, math.IsInf(got[0], 1))
	assert.True(t, math.IsNaN(got[1]))
}

func TestDifference_ShorterInputWins(t *testing.T) {
	assert.Equal(t, []float64{1, 1}, Difference([]float64{1, 2, 3}, []float64{2, 3}))
	assert.Empty(t, Difference(nil, q3))
}

func TestMax(t *testing.T) {
	assert.Equal(t, 33250.0, Max(q3))
	assert.Equal(t, -1.0, Max([]float64{math.NaN(), -3, -1}))
	assert.True(t, math.IsNaN(Max(nil)))
}

func TestCompare(t *testing.T) {
	rows := Compare(q2[:2], q3[:2])
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[1].Decile)
	assert.Equal(t, 221.0, rows[1].Diff)
	assert.InDelta(t, 221*100/3429.0, rows[1].Percent, 1e-12)
}
