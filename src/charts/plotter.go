package charts

import (
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/fernandezpablo85/indec-income/src/analysis"
	"github.com/fernandezpablo85/indec-income/src/types"
)

const (
	barWidth  = 0.5
	xRangeMin = 0.5
	xRangeMax = 11
	// yHeadroom scales the largest value to the top of the y-range.
	yHeadroom = 1.05
)

// Y tick steps.
const (
	IncomeStep     = 5000
	DifferenceStep = 500
	PercentStep    = 2
)

// BarOptions styles one call to PlotDecileBars. A zero Color means Green and
// a zero Width means the full 0.5 decile slot.
type BarOptions struct {
	Color  drawing.Color
	Offset float64
	Width  float64
	Label  string
}

// Grouped returns options for series i of n side-by-side series sharing the decile slot.
func Grouped(i, n int, col drawing.Color, label string) BarOptions {
	w := barWidth / float64(n)
	return BarOptions{Color: col, Offset: float64(i) * w, Width: w, Label: label}
}

// PlotDecileBars adds one bar per decile to f and resets the axes: x spans
// [0.5, 11] with ticks at decile+0.25, y spans [0, 1.05*max] over every series
// on the figure with currency ticks every IncomeStep. Calling it again on the
// same figure overlays another series.
func (f *Figure) PlotDecileBars(title string, values []float64, o BarOptions) {
	col := o.Color
	if col.IsZero() {
		col = Green
	}
	width := o.Width
	if width <= 0 {
		width = barWidth
	}
	f.Title = title
	f.Bars = append(f.Bars, Bars{
		Label:  o.Label,
		Values: values,
		Color:  col,
		Offset: o.Offset,
		Width:  width,
	})
	f.X = DecileAxis()
	var all []float64
	for _, b := range f.Bars {
		all = append(all, b.Values...)
	}
	f.Y = ValueAxis(all, IncomeStep, FormatCurrency)
}

// SetYTicks replaces the y ticks, keeping the current range.
func (f *Figure) SetYTicks(step float64, format func(float64) string) {
	f.Y.Ticks = StepTicks(f.Y.Max, step, format)
}

// DecileAxis is the fixed x-axis shared by every figure.
func DecileAxis() Axis {
	ticks := make([]Tick, types.Deciles)
	for d := 1; d <= types.Deciles; d++ {
		ticks[d-1] = Tick{Value: float64(d) + barWidth/2, Label: strconv.Itoa(d)}
	}
	return Axis{Min: xRangeMin, Max: xRangeMax, Ticks: ticks}
}

// ValueAxis spans [0, 1.05*max(values)] with ticks every step.
func ValueAxis(values []float64, step float64, format func(float64) string) Axis {
	upper := analysis.Max(values) * yHeadroom
	return Axis{Min: 0, Max: upper, Ticks: StepTicks(upper, step, format)}
}

// StepTicks returns 0, step, 2*step, ... up to and including upper.
func StepTicks(upper, step float64, format func(float64) string) []Tick {
	if step <= 0 || math.IsNaN(upper) || math.IsInf(upper, 0) {
		return nil
	}
	if upper < 0 {
		return []Tick{}
	}
	n := int(math.Floor(upper/step)) + 1
	ticks := make([]Tick, 0, n)
	for k := 0; k < n; k++ {
		v := float64(k) * step
		ticks = append(ticks, Tick{Value: v, Label: format(v)})
	}
	return ticks
}
