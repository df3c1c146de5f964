// Package types holds the plain row types shared by the loaders and entrypoints.
package types

// Quarters compared by the published figures.
const (
	SecondQuarter = 2
	ThirdQuarter  = 3
)

// Deciles is the number of income segments per quarter.
const Deciles = 10

// IncomeRow is one (quarter, decile) observation of mean income.
type IncomeRow struct {
	Quarter    int     `json:"trimestre"`
	Decile     int     `json:"decil"`
	MeanIncome float64 `json:"ingreso_medio"`
}
