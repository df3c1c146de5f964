// Package dataset wraps the income-by-decile table in a gota DataFrame and
// selects per-quarter income columns out of it.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"github.com/fernandezpablo85/indec-income/src/types"
)

// Columns names the three columns the figures need.
type Columns struct {
	Quarter string
	Decile  string
	Income  string
}

// DefaultColumns matches the published EPH decile tables.
var DefaultColumns = Columns{Quarter: "Trimestre", Decile: "Decil", Income: "IngresoMedio"}

func (c Columns) orDefault() Columns {
	if c.Quarter == "" {
		c.Quarter = DefaultColumns.Quarter
	}
	if c.Decile == "" {
		c.Decile = DefaultColumns.Decile
	}
	if c.Income == "" {
		c.Income = DefaultColumns.Income
	}
	return c
}

func (c Columns) loadOptions() []dataframe.LoadOption {
	return []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.WithTypes(map[string]series.Type{
			c.Quarter: series.Int,
			c.Decile:  series.Int,
			c.Income:  series.Float,
		}),
	}
}

// ErrUnsupportedFormat is returned by Load for extensions other than .csv and .xlsx.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Dataset is a read-only income table.
type Dataset struct {
	df   dataframe.DataFrame
	cols Columns
}

// ReadCSV parses a CSV table with a header row.
func ReadCSV(r io.Reader, cols Columns) (*Dataset, error) {
	cols = cols.orDefault()
	df := dataframe.ReadCSV(r, cols.loadOptions()...)
	if df.Err != nil {
		return nil, fmt.Errorf("read csv: %w", df.Err)
	}
	return &Dataset{df: df, cols: cols}, nil
}

// ReadXLSX parses the first sheet of a workbook; the first row is the header.
func ReadXLSX(path string, cols Columns) (*Dataset, error) {
	cols = cols.orDefault()
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("open xlsx %s: no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return fromRecords(padRecords(rows), cols)
}

// Load reads a .csv or .xlsx file.
func Load(path string, cols Columns) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadCSV(f, cols)
	case ".xlsx":
		return ReadXLSX(path, cols)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// FromRows builds a dataset with the default column names.
func FromRows(rows []types.IncomeRow) (*Dataset, error) {
	cols := DefaultColumns
	records := make([][]string, 0, len(rows)+1)
	records = append(records, []string{cols.Quarter, cols.Decile, cols.Income})
	for _, r := range rows {
		records = append(records, []string{
			strconv.Itoa(r.Quarter),
			strconv.Itoa(r.Decile),
			strconv.FormatFloat(r.MeanIncome, 'f', -1, 64),
		})
	}
	return fromRecords(records, cols)
}

func fromRecords(records [][]string, cols Columns) (*Dataset, error) {
	df := dataframe.LoadRecords(records, cols.loadOptions()...)
	if df.Err != nil {
		return nil, fmt.Errorf("load records: %w", df.Err)
	}
	return &Dataset{df: df, cols: cols}, nil
}

// padRecords fills trailing cells that spreadsheets omit on short rows.
func padRecords(rows [][]string) [][]string {
	if len(rows) == 0 {
		return rows
	}
	width := len(rows[0])
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		if len(r) == 0 {
			continue
		}
		for len(r) < width {
			r = append(r, "")
		}
		out = append(out, r[:width])
	}
	return out
}

// Nrow returns the number of rows.
func (d *Dataset) Nrow() int { return d.df.Nrow() }

// Columns returns the column names in use.
func (d *Dataset) Columns() Columns { return d.cols }

// QuarterIncome returns the income column of the rows whose quarter equals
// quarter, in row order. Decile completeness is not checked.
func (d *Dataset) QuarterIncome(quarter int) ([]float64, error) {
	sel := d.df.Filter(dataframe.F{
		Colname:    d.cols.Quarter,
		Comparator: series.Eq,
		Comparando: quarter,
	})
	if sel.Err != nil {
		return nil, fmt.Errorf("select quarter %d: %w", quarter, sel.Err)
	}
	col := sel.Col(d.cols.Income)
	if col.Err != nil {
		return nil, fmt.Errorf("select quarter %d: %w", quarter, col.Err)
	}
	return col.Float(), nil
}

// Quarters returns the distinct quarter ids in ascending order.
func (d *Dataset) Quarters() ([]int, error) {
	col := d.df.Col(d.cols.Quarter)
	if col.Err != nil {
		return nil, col.Err
	}
	vals, err := col.Int()
	if err != nil {
		return nil, fmt.Errorf("quarter column: %w", err)
	}
	seen := map[int]bool{}
	out := []int{}
	for _, v := range vals {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out, nil
}
