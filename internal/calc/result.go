package calc

import "math"

// BreakdownStep is one labeled intermediate value shown on the results page.
type BreakdownStep struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// Result is the outcome of a single Analyze action.
type Result struct {
	Title          string          `yaml:"title"`
	Score          float64         `yaml:"score"`
	Details        []string        `yaml:"details"`
	Formula        string          `yaml:"formula"`
	Category       string          `yaml:"category"`
	Breakdown      []BreakdownStep `yaml:"breakdown,omitempty"`
	Interpretation string          `yaml:"interpretation,omitempty"`
}

// ScoreBand buckets a result score for display.
type ScoreBand int

const (
	BandLow ScoreBand = iota
	BandMid
	BandHigh
)

// Band returns BandHigh above 80, BandMid above 50, BandLow otherwise.
func Band(score float64) ScoreBand {
	switch {
	case score > 80:
		return BandHigh
	case score > 50:
		return BandMid
	default:
		return BandLow
	}
}

const curvePoints = 20

// Curve returns the illustrative formula curve drawn next to a result:
// a decaying curve for health, a compounding one for everything else.
func Curve(category string) []float64 {
	out := make([]float64, curvePoints)
	for i := range out {
		x := float64(i)
		if category == CategoryHealth {
			out[i] = 40 / (1 + x*0.1)
		} else {
			out[i] = 10 * math.Pow(1.1, x)
		}
	}
	return out
}
