package calc

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// formatPlain prints v the shortest way that round-trips, without grouping.
func formatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatFixed prints v with exactly digits decimals.
func formatFixed(v float64, digits int) string {
	return strconv.FormatFloat(v, 'f', digits, 64)
}

// formatGrouped prints v with thousands separators and at most maxFrac decimals.
func formatGrouped(v float64, maxFrac int) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(maxFrac)))
}

func rupees(v float64, maxFrac int) string {
	return "₹" + formatGrouped(v, maxFrac)
}
