package charts

import (
	"fmt"

	"github.com/fernandezpablo85/indec-income/src/analysis"
	"github.com/fernandezpablo85/indec-income/src/types"
)

// IncomeSource yields the mean income per decile of one quarter, in decile order.
type IncomeSource interface {
	QuarterIncome(quarter int) ([]float64, error)
}

// References are the values drawn as horizontal reference lines.
type References struct {
	MinimumWage float64
	Inflation   float64
}

// DefaultReferences: minimum wage as of January 2017, July-September 2016 inflation (%).
var DefaultReferences = References{MinimumWage: 8080, Inflation: 5.1}

const (
	labelSecondQuarter = "2do Trimestre"
	labelThirdQuarter  = "3er Trimestre"
	labelMinimumWage   = "Salario Minimo (Enero 2017)"
	labelInflation     = "Inflacion Julio - Septiembre"
)

func quarterIncome(src IncomeSource, quarter int) ([]float64, error) {
	income, err := src.QuarterIncome(quarter)
	if err != nil {
		return nil, fmt.Errorf("quarter %d income: %w", quarter, err)
	}
	return income, nil
}

func bothQuarters(src IncomeSource) (q2, q3 []float64, err error) {
	if q2, err = quarterIncome(src, types.SecondQuarter); err != nil {
		return nil, nil, err
	}
	if q3, err = quarterIncome(src, types.ThirdQuarter); err != nil {
		return nil, nil, err
	}
	return q2, q3, nil
}

// IncomeThirdQuarter plots 3rd quarter income by decile.
func IncomeThirdQuarter(src IncomeSource) (*Figure, error) {
	income, err := quarterIncome(src, types.ThirdQuarter)
	if err != nil {
		return nil, err
	}
	f := &Figure{Name: "income_q3"}
	f.PlotDecileBars("Ingresos Medios por Decil - 3er Trimestre - 2016", income, BarOptions{})
	return f, nil
}

// IncomeSecondQuarter plots 2nd quarter income by decile.
func IncomeSecondQuarter(src IncomeSource) (*Figure, error) {
	income, err := quarterIncome(src, types.SecondQuarter)
	if err != nil {
		return nil, err
	}
	f := &Figure{Name: "income_q2"}
	f.PlotDecileBars("Ingresos Medios por Decil - 2do Trimestre - 2016", income, BarOptions{Color: Blue})
	return f, nil
}

// IncomeBothQuarters groups both quarters side by side in each decile slot,
// 3rd quarter on the left.
func IncomeBothQuarters(src IncomeSource) (*Figure, error) {
	q2, q3, err := bothQuarters(src)
	if err != nil {
		return nil, err
	}
	const title = "Ingresos Medios por Decil - 2016"
	f := &Figure{Name: "income_both", Legend: true}
	f.PlotDecileBars(title, q2, Grouped(1, 2, Blue, labelSecondQuarter))
	f.PlotDecileBars(title, q3, Grouped(0, 2, Green, labelThirdQuarter))
	return f, nil
}

// IncomeBothQuartersWithMinimumWage adds a minimum wage line to IncomeBothQuarters.
func IncomeBothQuartersWithMinimumWage(src IncomeSource, minWage float64) (*Figure, error) {
	f, err := IncomeBothQuarters(src)
	if err != nil {
		return nil, err
	}
	f.Name = "income_both_min_wage"
	f.AddReferenceLine(minWage, Red)
	f.Annotate(labelMinimumWage, 2, minWage, 10, 30, Red)
	return f, nil
}

// IncomeDifference plots q3 - q2 per decile.
func IncomeDifference(src IncomeSource) (*Figure, error) {
	q2, q3, err := bothQuarters(src)
	if err != nil {
		return nil, err
	}
	diff := analysis.Difference(q2, q3)
	f := &Figure{Name: "income_diff"}
	f.PlotDecileBars("Diferencia de Ingresos - 2do y 3er Trimestre", diff, BarOptions{Color: Violet})
	f.SetYTicks(DifferenceStep, FormatCurrency)
	return f, nil
}

// IncomeDifferencePercent plots (q3 - q2) * 100 / q2 per decile.
func IncomeDifferencePercent(src IncomeSource) (*Figure, error) {
	q2, q3, err := bothQuarters(src)
	if err != nil {
		return nil, err
	}
	pct := analysis.PercentDifference(q2, q3)
	f := &Figure{Name: "income_diff_percent"}
	f.PlotDecileBars("Diferencia de Ingresos (%) - 2do y 3er Trimestre", pct, BarOptions{Color: Yellow})
	f.SetYTicks(PercentStep, FormatPercent)
	return f, nil
}

// IncomeDifferencePercentWithInflation adds an inflation line to IncomeDifferencePercent.
func IncomeDifferencePercentWithInflation(src IncomeSource, inflation float64) (*Figure, error) {
	f, err := IncomeDifferencePercent(src)
	if err != nil {
		return nil, err
	}
	f.Name = "income_diff_percent_inflation"
	f.AddReferenceLine(inflation, Red)
	f.Annotate(labelInflation, 2, inflation, -50, 75, Red)
	return f, nil
}

// Entry is one named figure builder.
type Entry struct {
	Name  string
	Build func(IncomeSource) (*Figure, error)
}

// Catalog lists every figure in publication order.
func Catalog(refs References) []Entry {
	return []Entry{
		{"income_q2", IncomeSecondQuarter},
		{"income_q3", IncomeThirdQuarter},
		{"income_both", IncomeBothQuarters},
		{"income_both_min_wage", func(src IncomeSource) (*Figure, error) {
			return IncomeBothQuartersWithMinimumWage(src, refs.MinimumWage)
		}},
		{"income_diff", IncomeDifference},
		{"income_diff_percent", IncomeDifferencePercent},
		{"income_diff_percent_inflation", func(src IncomeSource) (*Figure, error) {
			return IncomeDifferencePercentWithInflation(src, refs.Inflation)
		}},
	}
}

// Select filters the catalog by name, keeping catalog order. Unknown names are returned separately.
func Select(entries []Entry, names []string) ([]Entry, []string) {
	if len(names) == 0 {
		return entries, nil
	}
	want := map[string]bool{}
	for _, n := range names {
		want[n] = true
	}
	var out []Entry
	for _, e := range entries {
		if want[e.Name] {
			out = append(out, e)
			delete(want, e.Name)
		}
	}
	var unknown []string
	for _, n := range names {
		if want[n] {
			unknown = append(unknown, n)
			delete(want, n)
		}
	}
	return out, unknown
}
