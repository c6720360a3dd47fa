package calc

import (
	"fmt"
	"math"
)

// FutureValue compounds principal annually at ratePercent for years.
func FutureValue(principal, ratePercent, years float64) float64 {
	return principal * math.Pow(1+ratePercent/100, years)
}

// Money computes the wealth projection; the score is the future value in thousands.
func Money(fields map[string]string) Result {
	p := value(fields, spec(CategoryMoney, "principal"))
	pct := value(fields, spec(CategoryMoney, "rate"))
	r := pct / 100
	n := value(fields, spec(CategoryMoney, "years"))

	fv := FutureValue(p, pct, n)
	interest := fv - p

	return Result{
		Title:   "Wealth Projection",
		Score:   fv / 1000,
		Formula: fmt.Sprintf("FV = %s * (1 + %s)^%s", formatPlain(p), formatPlain(r), formatPlain(n)),
		Details: []string{
			"Projected Value: " + rupees(fv, 0),
			"Estimated Interest: " + rupees(interest, 0),
			"Savings Goal: Projected Progress 🚀",
		},
		Breakdown: []BreakdownStep{
			{Label: "Principal", Value: rupees(p, 3)},
			{Label: "Rate", Value: formatFixed(r*100, 1) + "%"},
			{Label: "Years", Value: formatPlain(n) + " years"},
			{Label: "Final Value", Value: rupees(fv, 0)},
		},
		Interpretation: fmt.Sprintf("Your investment is projected to grow by %s over %s years.", rupees(interest, 3), formatPlain(n)),
		Category:       CategoryMoney,
	}
}
