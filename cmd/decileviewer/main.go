package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/fernandezpablo85/indec-income/cmd/decileviewer/uihelpers"
	"github.com/fernandezpablo85/indec-income/src/charts"
	"github.com/fernandezpablo85/indec-income/src/dataset"
	"github.com/fernandezpablo85/indec-income/src/logging"
)

const maxRecent = 10

type uiState struct {
	app      fyne.App
	window   fyne.Window
	filePath string

	refs charts.References
	note string

	figures []*charts.Figure
	images  []image.Image

	tabs       *container.AppTabs
	fileLabel  *widget.Label
	statusText *widget.Label
}

func main() {
	var fileFlag, noteFlag string
	var minWage, inflation float64
	flag.StringVar(&fileFlag, "data", "", "Path to the income table (.csv or .xlsx)")
	flag.Float64Var(&minWage, "min-wage", charts.DefaultReferences.MinimumWage, "Minimum wage reference line")
	flag.Float64Var(&inflation, "inflation", charts.DefaultReferences.Inflation, "Inflation reference line (percent)")
	flag.StringVar(&noteFlag, "note", "", "Footnote stamped on each chart")
	flag.Parse()

	a := app.NewWithID("org.indec-income.viewer")
	w := a.NewWindow("Ingresos por Decil")
	w.Resize(fyne.NewSize(1100, 760))

	state := &uiState{
		app:        a,
		window:     w,
		filePath:   fileFlag,
		refs:       charts.References{MinimumWage: minWage, Inflation: inflation},
		note:       noteFlag,
		tabs:       container.NewAppTabs(),
		fileLabel:  widget.NewLabel(""),
		statusText: widget.NewLabel(""),
	}
	if state.filePath == "" {
		state.filePath = a.Preferences().StringWithFallback("lastFile", "")
	}
	state.fileLabel.SetText(uihelpers.TruncatePath(state.filePath, 60))

	top := container.NewHBox(widget.NewLabel("Archivo:"), state.fileLabel)
	w.SetContent(container.NewBorder(top, state.statusText, nil, nil, state.tabs))
	buildMenus(state)
	loadAll(state)
	w.ShowAndRun()
}

func buildMenus(state *uiState) {
	var items []*fyne.MenuItem
	for _, f := range recentFiles(state) {
		f := f
		items = append(items, fyne.NewMenuItem(uihelpers.TruncatePath(f, 60), func() {
			state.filePath = f
			loadAll(state)
		}))
	}
	clearRecent := fyne.NewMenuItem("Clear Recent", func() {
		state.app.Preferences().SetString("recentFiles", "")
		buildMenus(state)
	})
	recentMenu := fyne.NewMenu("Open Recent", append(items, clearRecent)...)
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state) }),
		fyne.NewMenuItem("Reload", func() { loadAll(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Figure…", func() { exportCurrent(state) }),
		fyne.NewMenuItem("Export All PNG…", func() { exportAll(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu, recentMenu))

	if canv := state.window.Canvas(); canv != nil {
		for _, mod := range []fyne.KeyModifier{fyne.KeyModifierSuper, fyne.KeyModifierControl} {
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: mod}, func(fyne.Shortcut) { openFileDialog(state) })
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: mod}, func(fyne.Shortcut) { loadAll(state) })
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: mod}, func(fyne.Shortcut) { exportCurrent(state) })
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: mod}, func(fyne.Shortcut) { state.window.Close() })
		}
	}
}

func openFileDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		state.filePath = rc.URI().Path()
		loadAll(state)
	}, state.window)
	d.Show()
}

// loadAll reads the table, rebuilds every figure and replaces the tabs.
func loadAll(state *uiState) {
	state.fileLabel.SetText(uihelpers.TruncatePath(state.filePath, 60))
	if state.filePath == "" {
		state.statusText.SetText("Open a .csv or .xlsx table (File → Open…)")
		return
	}
	ds, err := dataset.Load(state.filePath, dataset.Columns{})
	if err != nil {
		logging.Errorf("load %s: %v", state.filePath, err)
		dialog.ShowError(err, state.window)
		return
	}
	addRecentFile(state, state.filePath)
	state.app.Preferences().SetString("lastFile", state.filePath)
	buildMenus(state)

	cw, ch := uihelpers.ComputeChartDimensions(int(state.window.Canvas().Size().Width))
	state.figures = state.figures[:0]
	state.images = state.images[:0]
	var tabs []*container.TabItem
	for _, e := range charts.Catalog(state.refs) {
		fig, err := e.Build(ds)
		if err != nil {
			logging.Warnf("%s: %v", e.Name, err)
			continue
		}
		fig.Note = state.note
		img, err := charts.GoChartImage(fig, cw, ch)
		if err != nil {
			logging.Warnf("%s: %v", e.Name, err)
			continue
		}
		state.figures = append(state.figures, fig)
		state.images = append(state.images, img)
		ci := canvas.NewImageFromImage(img)
		ci.FillMode = canvas.ImageFillContain
		ci.SetMinSize(fyne.NewSize(float32(cw)/2, float32(ch)/2))
		tabs = append(tabs, container.NewTabItem(e.Name, ci))
	}
	state.tabs.SetItems(tabs)
	state.statusText.SetText(fmt.Sprintf("%d rows, %d figures", ds.Nrow(), len(state.figures)))
}

// exportCurrent saves the selected figure; the chosen extension picks the format.
func exportCurrent(state *uiState) {
	idx := state.tabs.SelectedIndex()
	if idx < 0 || idx >= len(state.figures) {
		dialog.ShowInformation("Export", "No figure to export.", state.window)
		return
	}
	fig := state.figures[idx]
	img := state.images[idx]
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		format, ferr := charts.ParseFormat(filepath.Ext(wc.URI().Name()))
		if ferr != nil || format == charts.PNG {
			// unknown extensions fall back to the on-screen PNG
			if err := png.Encode(wc, img); err != nil {
				dialog.ShowError(err, state.window)
			}
			return
		}
		b := img.Bounds()
		if err := charts.Render(fig, charts.Options{Width: b.Dx(), Height: b.Dy(), Format: format}, wc); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName(fig.Name + ".png")
	fs.Show()
}

// exportAll writes every figure as PNG into a chosen folder.
func exportAll(state *uiState) {
	if len(state.figures) == 0 {
		dialog.ShowInformation("Export", "No figures to export.", state.window)
		return
	}
	d := dialog.NewFolderOpen(func(lu fyne.ListableURI, err error) {
		if err != nil || lu == nil {
			return
		}
		dir := lu.Path()
		for i, fig := range state.figures {
			b := state.images[i].Bounds()
			path, err := charts.RenderFile(fig, charts.Options{Width: b.Dx(), Height: b.Dy(), Format: charts.PNG}, dir)
			if err != nil {
				dialog.ShowError(err, state.window)
				return
			}
			logging.Infof("exported %s", path)
		}
		state.statusText.SetText(fmt.Sprintf("Exported %d figures to %s", len(state.figures), uihelpers.TruncatePath(dir, 50)))
	}, state.window)
	d.Show()
}

func recentFiles(state *uiState) []string {
	raw := state.app.Preferences().StringWithFallback("recentFiles", "")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}

func addRecentFile(state *uiState, path string) {
	list := uihelpers.MergeRecent(path, recentFiles(state), maxRecent)
	state.app.Preferences().SetString("recentFiles", strings.Join(list, "\n"))
}
