package charts

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func mustFigure(t *testing.T, build func(IncomeSource) (*Figure, error)) *Figure {
	t.Helper()
	f, err := build(sample)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return f
}

func TestRenderGoChart_PNGSize(t *testing.T) {
	f := mustFigure(t, IncomeBothQuarters)
	var buf bytes.Buffer
	if err := Render(f, Options{Width: 900, Height: 500, Format: PNG}, &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 900 || b.Dy() != 500 {
		t.Fatalf("size=%dx%d want 900x500", b.Dx(), b.Dy())
	}
}

func TestRenderGoChart_SVG(t *testing.T) {
	f := mustFigure(t, func(s IncomeSource) (*Figure, error) {
		return IncomeDifferencePercentWithInflation(s, 5.1)
	})
	var buf bytes.Buffer
	if err := Render(f, Options{Format: SVG}, &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Fatalf("not an svg document: %.80s", out)
	}
	if !strings.Contains(out, "Inflacion Julio - Septiembre") {
		t.Fatalf("annotation text missing from svg")
	}
}

// Every catalog figure must render with the default options and with SVG,
// both of which go through go-chart.
func TestRenderGoChart_DefaultOptionsWholeCatalog(t *testing.T) {
	for _, e := range Catalog(DefaultReferences) {
		f := mustFigure(t, e.Build)
		for _, o := range []Options{DefaultOptions, {Format: SVG}} {
			var buf bytes.Buffer
			if err := Render(f, o, &buf); err != nil {
				t.Fatalf("%s %s: %v", e.Name, o.Format, err)
			}
			if buf.Len() == 0 {
				t.Fatalf("%s %s: empty output", e.Name, o.Format)
			}
		}
		if _, err := GoChartImage(f, 800, 480); err != nil {
			t.Fatalf("%s image: %v", e.Name, err)
		}
	}
}

func TestGoChart_PrimaryAxisCarriesTicks(t *testing.T) {
	f := mustFigure(t, IncomeThirdQuarter)
	ch := goChart(f, 800, 480)
	if len(ch.YAxis.Ticks) == 0 || len(ch.YAxis.Ticks) != len(ch.YAxisSecondary.Ticks) {
		t.Fatalf("primary ticks=%d secondary ticks=%d", len(ch.YAxis.Ticks), len(ch.YAxisSecondary.Ticks))
	}
	last := ch.YAxis.Ticks[len(ch.YAxis.Ticks)-1]
	if last.Value != f.Y.Max {
		t.Fatalf("top tick=%v want axis max %v", last.Value, f.Y.Max)
	}
}

func TestRenderGonum_Formats(t *testing.T) {
	f := mustFigure(t, func(s IncomeSource) (*Figure, error) {
		return IncomeBothQuartersWithMinimumWage(s, 8080)
	})
	cases := []struct {
		format Format
		prefix string
	}{
		{PDF, "%PDF"},
		{EPS, "%%!PS-Adobe"},
		{SVG, ""},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		if err := Render(f, Options{Format: c.format, Backend: BackendGonum}, &buf); err != nil {
			t.Fatalf("%s: %v", c.format, err)
		}
		if !strings.HasPrefix(buf.String(), c.prefix) {
			t.Fatalf("%s output starts with %.10q", c.format, buf.String())
		}
		if c.format == SVG && !strings.Contains(buf.String(), "<svg") {
			t.Fatalf("svg output has no <svg> element")
		}
	}
	var buf bytes.Buffer
	if err := Render(f, Options{Format: PNG, Backend: BackendGonum}, &buf); err != nil {
		t.Fatalf("png: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("gonum png does not decode: %v", err)
	}
}

func TestRender_WrongLengthFails(t *testing.T) {
	f := &Figure{Name: "short"}
	f.PlotDecileBars("short", []float64{1, 2, 3}, BarOptions{})
	for _, b := range []Backend{BackendGoChart, BackendGonum} {
		err := Render(f, Options{Format: SVG, Backend: b}, &bytes.Buffer{})
		if !errors.Is(err, ErrDecileCount) {
			t.Fatalf("%s: err=%v want ErrDecileCount", b, err)
		}
	}
}

func TestRender_GoChartRejectsPDF(t *testing.T) {
	f := mustFigure(t, IncomeThirdQuarter)
	err := Render(f, Options{Format: PDF, Backend: BackendGoChart}, &bytes.Buffer{})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err=%v want ErrUnsupportedFormat", err)
	}
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	f := mustFigure(t, IncomeDifference)
	path, err := RenderFile(f, Options{Format: PDF}, dir)
	if err != nil {
		t.Fatalf("RenderFile: %v", err)
	}
	if filepath.Base(path) != "income_diff.pdf" {
		t.Fatalf("path=%s", path)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("output missing or empty: %v", err)
	}
}

func TestParseFormatAndBackend(t *testing.T) {
	for in, want := range map[string]Format{"png": PNG, ".SVG": SVG, "tif": TIFF, "pdf": PDF} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q)=%q,%v want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("gif"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("gif accepted: %v", err)
	}
	if b, err := ParseBackend("go-chart"); err != nil || b != BackendGoChart {
		t.Fatalf("ParseBackend(go-chart)=%q,%v", b, err)
	}
	if _, err := ParseBackend("matplotlib"); err == nil {
		t.Fatalf("unknown backend accepted")
	}
	if o := (Options{Format: EPS}).resolve(); o.Backend != BackendGonum || o.Width != 1000 {
		t.Fatalf("resolve eps=%+v", o)
	}
}

func TestStampNote(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 300, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 300; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	if out := StampNote(src, "  "); out != image.Image(src) {
		t.Fatalf("blank note should return the input image")
	}
	out := StampNote(src, "Fuente: INDEC - EPH")
	changed := 0
	for y := 60; y < 80; y++ {
		for x := 0; x < 160; x++ {
			r, _, _, _ := out.At(x, y).RGBA()
			if r < 0xf000 {
				changed++
			}
		}
	}
	if changed == 0 {
		t.Fatalf("note not drawn in the bottom-left corner")
	}
	if r, _, _, _ := src.At(10, 75).RGBA(); r != 0xffff {
		t.Fatalf("input image was modified")
	}
}

func TestGoChartImage_AppliesNote(t *testing.T) {
	f := mustFigure(t, IncomeSecondQuarter)
	plain, err := GoChartImage(f, 800, 400)
	if err != nil {
		t.Fatalf("plain: %v", err)
	}
	f.Note = "Fuente: INDEC - EPH"
	noted, err := GoChartImage(f, 800, 400)
	if err != nil {
		t.Fatalf("noted: %v", err)
	}
	diff := 0
	b := plain.Bounds()
	for y := b.Max.Y - 20; y < b.Max.Y; y++ {
		for x := 0; x < 200; x++ {
			r1, g1, b1, _ := plain.At(x, y).RGBA()
			r2, g2, b2, _ := noted.At(x, y).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 {
				diff++
			}
		}
	}
	if diff == 0 {
		t.Fatalf("note did not change the rendered image")
	}
}
