package calc

import (
	"math"
	"strconv"
	"strings"

	apperrors "lifecalc/internal/errors"
)

// Category names accepted by Compute.
const (
	CategoryHealth = "health"
	CategoryMoney  = "money"
	CategoryCareer = "career"
	CategoryDaily  = "daily"
)

// FieldSpec describes one numeric input on a category form.
type FieldSpec struct {
	ID      string
	Label   string
	Default float64
}

// Placeholder is the hint shown in an empty input: the value used when the
// field is left blank.
func (f FieldSpec) Placeholder() string {
	return formatPlain(f.Default)
}

var fieldSpecs = map[string][]FieldSpec{
	CategoryHealth: {
		{ID: "weight", Label: "Weight (kg)", Default: 70},
		{ID: "height", Label: "Height (cm)", Default: 175},
		{ID: "age", Label: "Age", Default: 25},
	},
	CategoryMoney: {
		{ID: "principal", Label: "Principal (₹)", Default: 100000},
		{ID: "rate", Label: "Interest Rate (%)", Default: 10},
		{ID: "years", Label: "Years", Default: 5},
	},
	CategoryCareer: {
		{ID: "salary", Label: "Current Salary", Default: 50000},
		{ID: "raise", Label: "Exp. Raise (%)", Default: 15},
		{ID: "years", Label: "Years", Default: 3},
	},
}

// Fields returns the input form for category in display order. Categories
// without a form (daily, unknown) return nil.
func Fields(category string) []FieldSpec {
	specs := fieldSpecs[category]
	if len(specs) == 0 {
		return nil
	}
	out := make([]FieldSpec, len(specs))
	copy(out, specs)
	return out
}

// ParseField parses raw as a float. Missing, blank, non-numeric and
// non-finite input yields def. Zero and negative numbers are kept.
func ParseField(raw string, def float64) float64 {
	v, ok := parseFloat(raw)
	if !ok {
		return def
	}
	return v
}

func parseFloat(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func value(fields map[string]string, spec FieldSpec) float64 {
	return ParseField(fields[spec.ID], spec.Default)
}

// Fallbacks reports, in form order, every field of category whose value was
// replaced by its default.
func Fallbacks(category string, fields map[string]string) []*apperrors.FallbackError {
	var out []*apperrors.FallbackError
	for _, spec := range fieldSpecs[category] {
		raw := fields[spec.ID]
		if _, ok := parseFloat(raw); ok {
			continue
		}
		out = append(out, &apperrors.FallbackError{Field: spec.ID, Raw: raw, Default: spec.Default})
	}
	return out
}

func spec(category, id string) FieldSpec {
	for _, s := range fieldSpecs[category] {
		if s.ID == id {
			return s
		}
	}
	return FieldSpec{ID: id}
}
