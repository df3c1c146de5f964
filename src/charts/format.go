package charts

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCurrency renders a whole-unit amount with thousands separators, e.g. $1,000,000.
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "$" + fmt.Sprint(v)
	}
	d := decimal.NewFromFloat(v).Round(0)
	return "$" + printer.Sprintf("%d", d.IntPart())
}

// FormatCurrencyCents keeps two decimals; used for table output.
func FormatCurrencyCents(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	whole := d.Truncate(0)
	cents := d.Sub(whole).Abs().Shift(2).IntPart()
	sign := ""
	if d.IsNegative() && whole.IsZero() {
		sign = "-"
	}
	return "$" + sign + printer.Sprintf("%d", whole.IntPart()) + fmt.Sprintf(".%02d", cents)
}

// FormatPercent renders whole percentages, e.g. 4%.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%d%%", int(v))
}
