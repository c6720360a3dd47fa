package main

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"lifecalc/internal/calc"
)

var printer = message.NewPrinter(language.English)

// formatScore renders a result score the way the results page shows it.
func formatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}

// resultMarkdown is the body of the results page: interpretation, breakdown,
// details and formula.
func resultMarkdown(res calc.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", res.Title)
	if res.Interpretation != "" {
		fmt.Fprintf(&b, "%s\n\n", res.Interpretation)
	}

	if len(res.Breakdown) > 0 {
		b.WriteString("## Step-by-step Breakdown\n\n")
		for i, step := range res.Breakdown {
			fmt.Fprintf(&b, "%d. **%s:** %s\n", i+1, step.Label, step.Value)
		}
		b.WriteString("\n")
	}

	if len(res.Details) > 0 {
		b.WriteString("## Details\n\n")
		for _, detail := range res.Details {
			fmt.Fprintf(&b, "- %s\n", detail)
		}
		b.WriteString("\n")
	}

	if res.Formula != "" {
		fmt.Fprintf(&b, "Formula: `%s`\n", res.Formula)
	}
	return b.String()
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// sparkline scales values onto block glyphs between their min and max.
func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	var b strings.Builder
	for _, v := range values {
		idx := 0
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(sparkBlocks)-1))
		}
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}

func intsToFloats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
