package charts

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format is an output file format.
type Format string

const (
	PNG  Format = "png"
	SVG  Format = "svg"
	PDF  Format = "pdf"
	EPS  Format = "eps"
	TIFF Format = "tiff"
)

// Backend selects the rendering library.
type Backend string

const (
	BackendAuto    Backend = ""
	BackendGoChart Backend = "gochart"
	BackendGonum   Backend = "gonum"
)

// ErrUnsupportedFormat is returned when a backend cannot produce a format.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Options controls one render call.
type Options struct {
	Width   int
	Height  int
	Format  Format
	Backend Backend
}

// DefaultOptions renders 1000x600 PNG with go-chart.
var DefaultOptions = Options{Width: 1000, Height: 600, Format: PNG}

// ParseFormat maps a name or file extension ("png", ".PDF", "tif") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "png":
		return PNG, nil
	case "svg":
		return SVG, nil
	case "pdf":
		return PDF, nil
	case "eps":
		return EPS, nil
	case "tif", "tiff":
		return TIFF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ParseBackend accepts "", "auto", "gochart" or "gonum".
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return BackendAuto, nil
	case "gochart", "go-chart":
		return BackendGoChart, nil
	case "gonum", "gonum/plot":
		return BackendGonum, nil
	}
	return "", fmt.Errorf("unknown backend %q", s)
}

// resolve fills defaults; the auto backend prefers go-chart for the formats it supports.
func (o Options) resolve() Options {
	if o.Width <= 0 {
		o.Width = DefaultOptions.Width
	}
	if o.Height <= 0 {
		o.Height = DefaultOptions.Height
	}
	if o.Format == "" {
		o.Format = DefaultOptions.Format
	}
	if o.Backend == BackendAuto {
		switch o.Format {
		case PNG, SVG:
			o.Backend = BackendGoChart
		default:
			o.Backend = BackendGonum
		}
	}
	return o
}

// Render writes fig to w.
func Render(fig *Figure, o Options, w io.Writer) error {
	o = o.resolve()
	if err := fig.Validate(); err != nil {
		return fmt.Errorf("render %s: %w", fig.Name, err)
	}
	switch o.Backend {
	case BackendGonum:
		return RenderGonum(fig, o.Format, o.Width, o.Height, w)
	default:
		return RenderGoChart(fig, o.Format, o.Width, o.Height, w)
	}
}

// RenderFile writes fig to dir/<fig.Name>.<format> and returns the path.
func RenderFile(fig *Figure, o Options, dir string) (string, error) {
	o = o.resolve()
	path := filepath.Join(dir, fig.Name+"."+string(o.Format))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := Render(fig, o, f); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	return path, f.Close()
}
