package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/fernandezpablo85/indec-income/src/analysis"
	"github.com/fernandezpablo85/indec-income/src/charts"
	"github.com/fernandezpablo85/indec-income/src/dataset"
	"github.com/fernandezpablo85/indec-income/src/types"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Align(lipgloss.Center)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// comparisonTable renders the per-decile comparison between two quarters.
func comparisonTable(from, to int, rows []analysis.DecileDelta) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Decil", fmt.Sprintf("T%d", from), fmt.Sprintf("T%d", to), "Diferencia", "%")
	for _, r := range rows {
		t.Row(
			strconv.Itoa(r.Decile),
			charts.FormatCurrencyCents(r.Before),
			charts.FormatCurrencyCents(r.After),
			charts.FormatCurrencyCents(r.Diff),
			strconv.FormatFloat(r.Percent, 'f', 2, 64),
		)
	}
	return t.Render()
}

func main() {
	var file string
	var from, to int
	var asJSON bool
	flag.StringVar(&file, "data", "./data/eph_2016.csv", "Path to the income table (.csv or .xlsx)")
	flag.IntVar(&from, "from", types.SecondQuarter, "Baseline quarter")
	flag.IntVar(&to, "to", types.ThirdQuarter, "Compared quarter")
	flag.BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	flag.Parse()

	ds, err := dataset.Load(file, dataset.Columns{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	before, err := ds.QuarterIncome(from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	after, err := ds.QuarterIncome(to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	rows := analysis.Compare(before, after)
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	fmt.Printf("Rows: %d\n", ds.Nrow())
	fmt.Println(comparisonTable(from, to, rows))
}
