// indec-income entrypoint.
//
// Renders the decile income figures of the 2nd vs 3rd quarter 2016 comparison
// from a CSV/XLSX table into one file per figure.
//
// Design notes:
//   - Figures are built first (charts package, backend independent) and then rendered;
//     the output format picks the backend unless --backend is given.
//   - --figures selects a subset by name (see --list); unknown names abort before rendering.
//   - Reference values (minimum wage, inflation) default to the published ones and
//     can be overridden for other periods.
//   - --config loads a YAML file first; flags passed explicitly win over it.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fernandezpablo85/indec-income/src/charts"
	"github.com/fernandezpablo85/indec-income/src/config"
	"github.com/fernandezpablo85/indec-income/src/dataset"
	"github.com/fernandezpablo85/indec-income/src/logging"
)

// splitList parses a comma separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func main() {
	def := config.DefaultConfig()
	configPath := flag.String("config", "", "Optional YAML config file; flags given explicitly override it")
	dataPath := flag.String("data", def.Data, "Path to the income table (.csv or .xlsx)")
	outDir := flag.String("out", def.Out, "Output directory for rendered figures")
	formatName := flag.String("format", def.Format, "Output format (png|svg|pdf|eps|tiff)")
	backendName := flag.String("backend", def.Backend, "Rendering backend (auto|gochart|gonum)")
	figureNames := flag.String("figures", "", "Comma separated figure names to render (default all)")
	list := flag.Bool("list", false, "List figure names and exit")
	width := flag.Int("width", def.Width, "Figure width in pixels")
	height := flag.Int("height", def.Height, "Figure height in pixels")
	minWage := flag.Float64("min-wage", def.References.MinimumWage, "Minimum wage reference line")
	inflation := flag.Float64("inflation", def.References.Inflation, "Inflation reference line (percent)")
	note := flag.String("note", "", "Footnote stamped on raster go-chart output (e.g. data source)")
	quarterCol := flag.String("quarter-col", def.Columns.Quarter, "Quarter column name")
	decileCol := flag.String("decile-col", def.Columns.Decile, "Decile column name")
	incomeCol := flag.String("income-col", def.Columns.Income, "Mean income column name")
	logLevel := flag.String("log-level", def.LogLevel, "Log level (debug|info|warn|error)")
	flag.Parse()

	cfg, found, err := config.LoadFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	overrides := map[string]func(){
		"data":        func() { cfg.Data = *dataPath },
		"out":         func() { cfg.Out = *outDir },
		"format":      func() { cfg.Format = *formatName },
		"backend":     func() { cfg.Backend = *backendName },
		"figures":     func() { cfg.Figures = splitList(*figureNames) },
		"width":       func() { cfg.Width = *width },
		"height":      func() { cfg.Height = *height },
		"min-wage":    func() { cfg.References.MinimumWage = *minWage },
		"inflation":   func() { cfg.References.Inflation = *inflation },
		"note":        func() { cfg.Note = *note },
		"quarter-col": func() { cfg.Columns.Quarter = *quarterCol },
		"decile-col":  func() { cfg.Columns.Decile = *decileCol },
		"income-col":  func() { cfg.Columns.Income = *incomeCol },
		"log-level":   func() { cfg.LogLevel = *logLevel },
	}
	flag.Visit(func(f *flag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply()
		}
	})

	logging.SetLogLevel(cfg.LogLevel)
	defer logging.Sync()
	if *configPath != "" && !found {
		logging.Warnf("config file %s not found, using defaults and flags", *configPath)
	}

	catalog := charts.Catalog(cfg.ChartReferences())
	if *list {
		for _, e := range catalog {
			fmt.Println(e.Name)
		}
		return
	}

	if err := cfg.Validate(); err != nil {
		logging.Errorf("config: %v", err)
		logging.Sync()
		os.Exit(1)
	}
	if err := run(cfg.Data, cfg.Out, cfg.Format, cfg.Backend, cfg.Figures, catalog,
		cfg.RenderOptions(), cfg.Note, cfg.DatasetColumns()); err != nil {
		logging.Errorf("%v", err)
		logging.Sync()
		os.Exit(1)
	}
}

// run loads the table and renders the selected figures into outDir.
func run(dataPath, outDir, formatName, backendName string, names []string, catalog []charts.Entry, opts charts.Options, note string, cols dataset.Columns) error {
	start := time.Now()
	defer logging.TimeTrack(start, "render all figures")

	format, err := charts.ParseFormat(formatName)
	if err != nil {
		return err
	}
	backend, err := charts.ParseBackend(backendName)
	if err != nil {
		return err
	}
	opts.Format = format
	opts.Backend = backend

	selected, unknown := charts.Select(catalog, names)
	if len(unknown) > 0 {
		return fmt.Errorf("unknown figures: %s (use --list)", strings.Join(unknown, ", "))
	}

	ds, err := dataset.Load(dataPath, cols)
	if err != nil {
		return fmt.Errorf("load %s: %w", dataPath, err)
	}
	c := ds.Columns()
	logging.Infof("loaded %d rows from %s (quarter=%s decile=%s income=%s)", ds.Nrow(), dataPath, c.Quarter, c.Decile, c.Income)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	for _, e := range selected {
		fig, err := e.Build(ds)
		if err != nil {
			return fmt.Errorf("%s: %w", e.Name, err)
		}
		fig.Note = note
		path, err := charts.RenderFile(fig, opts, outDir)
		if err != nil {
			return fmt.Errorf("%s: %w", e.Name, err)
		}
		logging.Infof("wrote %s", path)
	}
	return nil
}
