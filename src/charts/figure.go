// Package charts builds decile income figures and renders them.
//
// A Figure is backend independent: the wrappers in figures.go compose it from
// quarter data, and the renderers turn it into raster or vector output through
// go-chart or gonum/plot.
package charts

import (
	"errors"
	"fmt"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/fernandezpablo85/indec-income/src/types"
)

// Palette mirrors the first five colours of the seaborn "deep" palette.
var (
	Blue   = drawing.ColorFromHex("4C72B0")
	Green  = drawing.ColorFromHex("55A868")
	Red    = drawing.ColorFromHex("C44E52")
	Violet = drawing.ColorFromHex("8172B2")
	Yellow = drawing.ColorFromHex("CCB974")
)

// ErrDecileCount is reported for a bar series that does not hold one value per decile.
var ErrDecileCount = errors.New("bar series must hold exactly 10 values")

// Tick is one labelled axis position.
type Tick struct {
	Value float64
	Label string
}

// Axis is a fixed data range with explicit ticks.
type Axis struct {
	Min   float64
	Max   float64
	Ticks []Tick
}

// Bars is one bar series; bar i spans [i+1+Offset, i+1+Offset+Width] in data units.
type Bars struct {
	Label  string
	Values []float64
	Color  drawing.Color
	Offset float64
	Width  float64
}

// Validate reports series whose length is not one value per decile.
func (b Bars) Validate() error {
	if len(b.Values) != types.Deciles {
		return fmt.Errorf("%w: %q has %d", ErrDecileCount, b.Label, len(b.Values))
	}
	return nil
}

// Span returns the data-space x interval of bar i.
func (b Bars) Span(i int) (float64, float64) {
	left := float64(i+1) + b.Offset
	return left, left + b.Width
}

// ReferenceLine is a horizontal line across the whole x-range.
type ReferenceLine struct {
	Value float64
	Color drawing.Color
	Width float64
}

// Annotation places Text at an offset of (DX, DY) points from the data
// anchor (X, Y), with an arrow pointing back at the anchor. Positive DY is up.
type Annotation struct {
	Text     string
	X, Y     float64
	DX, DY   float64
	Color    drawing.Color
	FontSize float64
}

// Figure is a single chart ready to render.
type Figure struct {
	Name        string
	Title       string
	Bars        []Bars
	Lines       []ReferenceLine
	Annotations []Annotation
	X, Y        Axis
	Legend      bool
	// Note is stamped bottom-left on raster output (e.g. the data source).
	Note string
}

// Validate checks every bar series.
func (f *Figure) Validate() error {
	for _, b := range f.Bars {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AddReferenceLine draws a thin translucent horizontal line at y.
func (f *Figure) AddReferenceLine(y float64, col drawing.Color) {
	f.Lines = append(f.Lines, ReferenceLine{Value: y, Color: col.WithAlpha(128), Width: 1})
}

// Annotate adds a label with an arrow to the anchor (x, y).
func (f *Figure) Annotate(text string, x, y, dx, dy float64, col drawing.Color) {
	f.Annotations = append(f.Annotations, Annotation{
		Text:     text,
		X:        x,
		Y:        y,
		DX:       dx,
		DY:       dy,
		Color:    col.WithAlpha(178),
		FontSize: 10,
	})
}
