package charts

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// gonum lays out in points; raster backends rasterise at 96 dpi.
const pointsPerPixel = 72.0 / 96.0

// decileBars is a plot.Plotter for one Bars value with widths in data units.
type decileBars struct {
	bars Bars
}

func (b *decileBars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for i, v := range b.bars.Values {
		if math.IsNaN(v) {
			continue
		}
		x0, x1 := b.bars.Span(i)
		lo, hi := clampSpan(0, v, plt.Y.Min, plt.Y.Max)
		if hi <= lo {
			continue
		}
		pts := []vg.Point{
			{X: trX(x0), Y: trY(lo)},
			{X: trX(x1), Y: trY(lo)},
			{X: trX(x1), Y: trY(hi)},
			{X: trX(x0), Y: trY(hi)},
		}
		c.FillPolygon(b.bars.Color, pts)
	}
}

// Thumbnail draws the legend swatch.
func (b *decileBars) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(b.bars.Color, pts)
}

// arrowLabel is a plot.Plotter for one Annotation.
type arrowLabel struct {
	note Annotation
}

func (a *arrowLabel) Plot(c draw.Canvas, plt *plot.Plot) {
	n := a.note
	trX, trY := plt.Transforms(&c)
	anchor := vg.Point{X: trX(n.X), Y: trY(n.Y)}
	at := vg.Point{X: anchor.X + vg.Points(n.DX), Y: anchor.Y + vg.Points(n.DY)}

	sty := plt.Title.TextStyle
	sty.Color = n.Color
	sty.Font.Size = vg.Points(n.FontSize)
	sty.XAlign = draw.XLeft
	sty.YAlign = draw.YBottom
	c.FillText(sty, at, n.Text)

	from := vg.Point{X: at.X + sty.Width(n.Text)/2, Y: at.Y - 3}
	if at.Y < anchor.Y {
		from.Y = at.Y + sty.Height(n.Text) + 3
	}
	ls := draw.LineStyle{Color: n.Color, Width: vg.Points(1)}
	c.StrokeLine2(ls, from.X, from.Y, anchor.X, anchor.Y)
	lx, ly, rx, ry := arrowHead(float64(from.X), float64(from.Y), float64(anchor.X), float64(anchor.Y), arrowHeadLength)
	c.StrokeLines(ls, []vg.Point{
		{X: vg.Length(lx), Y: vg.Length(ly)},
		anchor,
		{X: vg.Length(rx), Y: vg.Length(ry)},
	})
}

func gonumTicks(ticks []Tick) plot.ConstantTicks {
	out := make(plot.ConstantTicks, len(ticks))
	for i, t := range ticks {
		out[i] = plot.Tick{Value: t.Value, Label: t.Label}
	}
	return out
}

// gonumPlot assembles the gonum plot for fig.
func gonumPlot(fig *Figure) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fig.Title
	p.Title.Padding = vg.Points(8)
	for _, b := range fig.Bars {
		bp := &decileBars{bars: b}
		p.Add(bp)
		if fig.Legend && b.Label != "" {
			p.Legend.Add(b.Label, bp)
		}
	}
	p.Legend.Top = true
	p.Legend.Left = true
	for _, l := range fig.Lines {
		line, err := plotter.NewLine(plotter.XYs{{X: fig.X.Min, Y: l.Value}, {X: fig.X.Max, Y: l.Value}})
		if err != nil {
			return nil, fmt.Errorf("reference line %v: %w", l.Value, err)
		}
		line.LineStyle.Color = l.Color
		line.LineStyle.Width = vg.Points(l.Width)
		p.Add(line)
	}
	for _, a := range fig.Annotations {
		p.Add(&arrowLabel{note: a})
	}
	// fixed ranges win over whatever Add widened
	p.X.Min, p.X.Max = fig.X.Min, fig.X.Max
	p.Y.Min, p.Y.Max = fig.Y.Min, fig.Y.Max
	p.X.Tick.Marker = gonumTicks(fig.X.Ticks)
	p.Y.Tick.Marker = gonumTicks(fig.Y.Ticks)
	return p, nil
}

// RenderGonum writes fig in any format gonum/plot supports (png, svg, pdf, eps, tiff).
func RenderGonum(fig *Figure, format Format, width, height int, w io.Writer) error {
	if err := fig.Validate(); err != nil {
		return fmt.Errorf("render %s: %w", fig.Name, err)
	}
	p, err := gonumPlot(fig)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(vg.Length(float64(width)*pointsPerPixel), vg.Length(float64(height)*pointsPerPixel), string(format))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", fig.Name, err)
	}
	return nil
}
