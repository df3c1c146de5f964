package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// barSeries draws one Bars value as filled rectangles in data space.
type barSeries struct {
	bars Bars
}

func (s barSeries) GetName() string           { return s.bars.Label }
func (s barSeries) GetYAxis() chart.YAxisType { return chart.YAxisSecondary }
func (s barSeries) Validate() error           { return s.bars.Validate() }
func (s barSeries) GetStyle() chart.Style {
	return chart.Style{FillColor: s.bars.Color, StrokeColor: s.bars.Color}
}

func (s barSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	r.SetFillColor(s.bars.Color)
	r.SetStrokeColor(s.bars.Color)
	r.SetStrokeWidth(0)
	for i, v := range s.bars.Values {
		if math.IsNaN(v) {
			continue
		}
		x0, x1 := s.bars.Span(i)
		lo, hi := clampSpan(0, v, yrange.GetMin(), yrange.GetMax())
		if hi <= lo {
			continue
		}
		left := canvasBox.Left + xrange.Translate(x0)
		right := canvasBox.Left + xrange.Translate(x1)
		top := canvasBox.Bottom - yrange.Translate(hi)
		bottom := canvasBox.Bottom - yrange.Translate(lo)
		r.MoveTo(left, top)
		r.LineTo(right, top)
		r.LineTo(right, bottom)
		r.LineTo(left, bottom)
		r.LineTo(left, top)
		r.Close()
		r.Fill()
	}
	r.ResetStyle()
}

// lineSeries draws a ReferenceLine across the canvas.
type lineSeries struct {
	line ReferenceLine
}

func (s lineSeries) GetName() string           { return "" }
func (s lineSeries) GetYAxis() chart.YAxisType { return chart.YAxisSecondary }
func (s lineSeries) Validate() error           { return nil }
func (s lineSeries) GetStyle() chart.Style {
	return chart.Style{StrokeColor: s.line.Color, StrokeWidth: s.line.Width}
}

func (s lineSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	if s.line.Value < yrange.GetMin() || s.line.Value > yrange.GetMax() {
		return
	}
	y := canvasBox.Bottom - yrange.Translate(s.line.Value)
	r.SetStrokeColor(s.line.Color)
	r.SetStrokeWidth(s.line.Width)
	r.MoveTo(canvasBox.Left, y)
	r.LineTo(canvasBox.Right, y)
	r.Stroke()
	r.ResetStyle()
}

// annotationSeries draws a label offset from its anchor with an arrow back to it.
type annotationSeries struct {
	note Annotation
	dpi  float64
}

func (s annotationSeries) GetName() string           { return "" }
func (s annotationSeries) GetYAxis() chart.YAxisType { return chart.YAxisSecondary }
func (s annotationSeries) Validate() error           { return nil }
func (s annotationSeries) GetStyle() chart.Style {
	return chart.Style{FontColor: s.note.Color, FontSize: s.note.FontSize}
}

func (s annotationSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	a := s.note
	ax := float64(canvasBox.Left + xrange.Translate(a.X))
	ay := float64(canvasBox.Bottom - yrange.Translate(a.Y))
	// pixel y grows downwards, offsets are given with y up
	tx := ax + pointsToPixels(a.DX, s.dpi)
	ty := ay - pointsToPixels(a.DY, s.dpi)

	r.SetFont(defaults.GetFont())
	r.SetFontColor(a.Color)
	r.SetFontSize(a.FontSize)
	tb := r.MeasureText(a.Text)
	r.Text(a.Text, int(tx), int(ty))

	fromX := tx + float64(tb.Width())/2
	fromY := ty + 3
	if ty > ay {
		fromY = ty - float64(tb.Height()) - 3
	}
	r.SetStrokeColor(a.Color)
	r.SetStrokeWidth(1)
	r.MoveTo(int(fromX), int(fromY))
	r.LineTo(int(ax), int(ay))
	lx, ly, rx, ry := arrowHead(fromX, fromY, ax, ay, arrowHeadLength)
	r.MoveTo(int(lx), int(ly))
	r.LineTo(int(ax), int(ay))
	r.LineTo(int(rx), int(ry))
	r.Stroke()
	r.ResetStyle()
}

// barLegend draws a swatch per labelled series in the upper-left corner of the canvas.
func barLegend(bars []Bars) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		var labelled []Bars
		for _, b := range bars {
			if b.Label != "" {
				labelled = append(labelled, b)
			}
		}
		if len(labelled) == 0 {
			return
		}
		const pad, swatchW, gap = 6, 16, 6
		r.SetFont(defaults.GetFont())
		r.SetFontSize(9)
		textW, textH := 0, 0
		for _, b := range labelled {
			tb := r.MeasureText(b.Label)
			if tb.Width() > textW {
				textW = tb.Width()
			}
			if tb.Height() > textH {
				textH = tb.Height()
			}
		}
		rowH := textH + gap
		left := canvasBox.Left + 8
		top := canvasBox.Top + 8
		right := left + pad*2 + swatchW + gap + textW
		bottom := top + pad*2 + rowH*len(labelled) - gap

		r.SetFillColor(drawing.ColorWhite.WithAlpha(220))
		r.SetStrokeColor(chart.ColorLightGray)
		r.SetStrokeWidth(1)
		r.MoveTo(left, top)
		r.LineTo(right, top)
		r.LineTo(right, bottom)
		r.LineTo(left, bottom)
		r.LineTo(left, top)
		r.Close()
		r.FillStroke()

		for i, b := range labelled {
			y := top + pad + i*rowH
			r.SetFillColor(b.Color)
			r.SetStrokeWidth(0)
			r.MoveTo(left+pad, y)
			r.LineTo(left+pad+swatchW, y)
			r.LineTo(left+pad+swatchW, y+textH)
			r.LineTo(left+pad, y+textH)
			r.LineTo(left+pad, y)
			r.Close()
			r.Fill()
			r.SetFontColor(chart.ColorBlack)
			r.Text(b.Label, left+pad+swatchW+gap, y+textH)
		}
		r.ResetStyle()
	}
}

// chartTicks converts axis ticks; go-chart fits the range to the outermost
// ticks, so unlabelled ticks pin the axis bounds.
func chartTicks(a Axis) []chart.Tick {
	out := make([]chart.Tick, 0, len(a.Ticks)+2)
	if len(a.Ticks) == 0 || a.Ticks[0].Value > a.Min {
		out = append(out, chart.Tick{Value: a.Min})
	}
	for _, t := range a.Ticks {
		out = append(out, chart.Tick{Value: t.Value, Label: t.Label})
	}
	if len(a.Ticks) == 0 || a.Ticks[len(a.Ticks)-1].Value < a.Max {
		out = append(out, chart.Tick{Value: a.Max})
	}
	return out
}

// goChart assembles the go-chart value for fig. Bars and overlays share the
// left-hand (secondary) axis; the primary axis carries the same range hidden.
func goChart(fig *Figure, width, height int) chart.Chart {
	yRange := &chart.ContinuousRange{Min: fig.Y.Min, Max: fig.Y.Max}
	yTicks := chartTicks(fig.Y)
	ch := chart.Chart{
		Title:      fig.Title,
		TitleStyle: chart.Style{FontSize: 13},
		Width:      width,
		Height:     height,
		DPI:        chart.DefaultDPI,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 24, Bottom: 16}},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: fig.X.Min, Max: fig.X.Max},
			Ticks: chartTicks(fig.X),
		},
		// go-chart derives the secondary range from the primary axis ticks
		YAxis: chart.YAxis{
			Style: chart.Hidden(),
			Range: &chart.ContinuousRange{Min: fig.Y.Min, Max: fig.Y.Max},
			Ticks: yTicks,
		},
		YAxisSecondary: chart.YAxis{
			Range: yRange,
			Ticks: yTicks,
		},
	}
	for _, b := range fig.Bars {
		ch.Series = append(ch.Series, barSeries{bars: b})
	}
	for _, l := range fig.Lines {
		ch.Series = append(ch.Series, lineSeries{line: l})
	}
	for _, a := range fig.Annotations {
		ch.Series = append(ch.Series, annotationSeries{note: a, dpi: ch.GetDPI()})
	}
	if fig.Legend {
		ch.Elements = []chart.Renderable{barLegend(fig.Bars)}
	}
	return ch
}

// RenderGoChart writes fig as PNG or SVG. PNG output carries fig.Note when set.
func RenderGoChart(fig *Figure, format Format, width, height int, w io.Writer) error {
	ch := goChart(fig, width, height)
	switch format {
	case SVG:
		if err := ch.Render(chart.SVG, w); err != nil {
			return fmt.Errorf("render %s: %w", fig.Name, err)
		}
		return nil
	case PNG:
		img, err := GoChartImage(fig, width, height)
		if err != nil {
			return err
		}
		return png.Encode(w, img)
	default:
		return fmt.Errorf("%w: go-chart cannot write %s", ErrUnsupportedFormat, format)
	}
}

// GoChartImage renders fig to a raster image, stamping fig.Note when set.
func GoChartImage(fig *Figure, width, height int) (image.Image, error) {
	ch := goChart(fig, width, height)
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", fig.Name, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", fig.Name, err)
	}
	return StampNote(img, fig.Note), nil
}
