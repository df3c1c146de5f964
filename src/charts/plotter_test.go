package charts

import (
	"math"
	"math/rand"
	"testing"
)

// TestPlotDecileBars_YUpperBound checks the y-range top is 1.05x the largest value
// for arbitrary 10-value inputs.
func TestPlotDecileBars_YUpperBound(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 200; n++ {
		vals := make([]float64, 10)
		max := 0.0
		for i := range vals {
			vals[i] = rng.Float64() * 50000
			if vals[i] > max {
				max = vals[i]
			}
		}
		f := &Figure{}
		f.PlotDecileBars("t", vals, BarOptions{})
		if math.Abs(f.Y.Max-max*1.05) > 1e-9 {
			t.Fatalf("case %d: y max=%v want %v", n, f.Y.Max, max*1.05)
		}
		if f.Y.Min != 0 {
			t.Fatalf("case %d: y min=%v want 0", n, f.Y.Min)
		}
		assertTicksWithin(t, f.Y)
	}
}

func assertTicksWithin(t *testing.T, a Axis) {
	t.Helper()
	if len(a.Ticks) == 0 {
		t.Fatalf("no ticks for axis %+v", a)
	}
	if a.Ticks[0].Value != a.Min {
		t.Fatalf("first tick %v, want axis min %v", a.Ticks[0].Value, a.Min)
	}
	for i, tk := range a.Ticks {
		if tk.Value > a.Max {
			t.Fatalf("tick %v beyond axis max %v", tk.Value, a.Max)
		}
		if i > 0 && tk.Value <= a.Ticks[i-1].Value {
			t.Fatalf("ticks not strictly increasing at %d: %v", i, a.Ticks)
		}
	}
}

func TestPlotDecileBars_Axes(t *testing.T) {
	vals := []float64{1779, 3429, 4579, 5730, 7026, 8457, 10224, 12810, 17146, 31617}
	f := &Figure{}
	f.PlotDecileBars("Ingresos", vals, BarOptions{})

	if f.X.Min != 0.5 || f.X.Max != 11 {
		t.Fatalf("x range = [%v,%v]", f.X.Min, f.X.Max)
	}
	if len(f.X.Ticks) != 10 {
		t.Fatalf("x ticks = %d want 10", len(f.X.Ticks))
	}
	if f.X.Ticks[0].Value != 1.25 || f.X.Ticks[0].Label != "1" || f.X.Ticks[9].Label != "10" {
		t.Fatalf("unexpected decile ticks: %+v", f.X.Ticks)
	}
	// 31617*1.05 = 33197.85 -> 0..30000 every 5000
	if len(f.Y.Ticks) != 7 {
		t.Fatalf("y ticks = %d want 7: %+v", len(f.Y.Ticks), f.Y.Ticks)
	}
	if f.Y.Ticks[1].Label != "$5,000" || f.Y.Ticks[6].Label != "$30,000" {
		t.Fatalf("unexpected y labels: %+v", f.Y.Ticks)
	}
	if f.Bars[0].Color != Green || f.Bars[0].Width != 0.5 {
		t.Fatalf("default bar style = %+v", f.Bars[0])
	}
	if f.Title != "Ingresos" {
		t.Fatalf("title=%q", f.Title)
	}
}

func TestPlotDecileBars_OverlayRangeCoversAllSeries(t *testing.T) {
	f := &Figure{}
	f.PlotDecileBars("t", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100}, BarOptions{})
	f.PlotDecileBars("t", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, BarOptions{})
	if math.Abs(f.Y.Max-105) > 1e-9 {
		t.Fatalf("overlay y max=%v want 105", f.Y.Max)
	}
	if len(f.Bars) != 2 {
		t.Fatalf("bars=%d want 2", len(f.Bars))
	}
}

// TestGrouped_NoOverlap verifies side-by-side series share the decile slot without overlapping.
func TestGrouped_NoOverlap(t *testing.T) {
	for _, n := range []int{2, 3} {
		var bars []Bars
		for i := 0; i < n; i++ {
			o := Grouped(i, n, Blue, "")
			bars = append(bars, Bars{Offset: o.Offset, Width: o.Width})
		}
		for d := 0; d < 10; d++ {
			for i := 1; i < n; i++ {
				_, prevRight := bars[i-1].Span(d)
				left, right := bars[i].Span(d)
				if left < prevRight-1e-12 {
					t.Fatalf("n=%d decile %d: series %d starts at %v before %v", n, d+1, i, left, prevRight)
				}
				if right > float64(d+1)+0.5+1e-12 {
					t.Fatalf("n=%d decile %d: series %d leaves the slot (%v)", n, d+1, i, right)
				}
			}
		}
	}
}

func TestStepTicks(t *testing.T) {
	ticks := StepTicks(12.3, PercentStep, FormatPercent)
	want := []string{"0%", "2%", "4%", "6%", "8%", "10%", "12%"}
	if len(ticks) != len(want) {
		t.Fatalf("ticks=%+v", ticks)
	}
	for i, w := range want {
		if ticks[i].Label != w {
			t.Fatalf("tick %d label=%q want %q", i, ticks[i].Label, w)
		}
	}
	if got := StepTicks(math.NaN(), 2, FormatPercent); got != nil {
		t.Fatalf("NaN upper should yield nil, got %+v", got)
	}
	if got := StepTicks(10, 0, FormatPercent); got != nil {
		t.Fatalf("zero step should yield nil, got %+v", got)
	}
	if got := StepTicks(-5, 2, FormatPercent); len(got) != 0 {
		t.Fatalf("negative upper should yield no ticks, got %+v", got)
	}
}

func TestStepTicks_CoverLargeRanges(t *testing.T) {
	upper := 5.25e6
	ticks := StepTicks(upper, IncomeStep, FormatCurrency)
	if len(ticks) != 1051 {
		t.Fatalf("got %d ticks want 1051", len(ticks))
	}
	last := ticks[len(ticks)-1]
	if last.Value != 5.25e6 || last.Label != "$5,250,000" {
		t.Fatalf("last tick=%+v", last)
	}
}

func TestBarsValidate(t *testing.T) {
	if err := (Bars{Values: make([]float64, 10)}).Validate(); err != nil {
		t.Fatalf("10 values rejected: %v", err)
	}
	for _, n := range []int{0, 9, 11} {
		if err := (Bars{Values: make([]float64, n)}).Validate(); err == nil {
			t.Fatalf("%d values accepted", n)
		}
	}
}

func TestArrowHead_Symmetric(t *testing.T) {
	lx, ly, rx, ry := arrowHead(0, 10, 0, 0, 8)
	if math.Abs(lx+rx) > 1e-9 || math.Abs(ly-ry) > 1e-9 {
		t.Fatalf("barbs not symmetric: (%v,%v) (%v,%v)", lx, ly, rx, ry)
	}
	if ly <= 0 {
		t.Fatalf("barbs should point back towards the tail, got y=%v", ly)
	}
}
