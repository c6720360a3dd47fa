package calc

import "fmt"

// BMITier is the interpretation band of a body mass index.
type BMITier int

const (
	Underweight BMITier = iota
	Healthy
	Overweight
	Obese
)

func (t BMITier) String() string {
	switch t {
	case Underweight:
		return "underweight"
	case Healthy:
		return "healthy"
	case Overweight:
		return "overweight"
	default:
		return "obese"
	}
}

// ClassifyBMI maps bmi onto half-open bands: [..,18.5) [18.5,25) [25,30) [30,..).
func ClassifyBMI(bmi float64) BMITier {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return Healthy
	case bmi < 30:
		return Overweight
	default:
		return Obese
	}
}

var bmiInterpretations = map[BMITier]string{
	Underweight: "Your weight is lower than the ideal range for your height.",
	Healthy:     "Your weight is in the healthy range for your height.",
	Overweight:  "Your weight is slightly above the ideal range for your height.",
	Obese:       "Your weight is significantly above the ideal range for your height.",
}

// BMI is weight (kg) over height (m) squared.
func BMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return weightKg / (m * m)
}

// BMR is the Mifflin-St Jeor basal metabolic rate (male constant).
func BMR(weightKg, heightCm, age float64) float64 {
	return 10*weightKg + 6.25*heightCm - 5*age + 5
}

// IdealWeight is height - 100 - (height - 150)/2.
func IdealWeight(heightCm float64) float64 {
	return heightCm - 100 - (heightCm-150)/2
}

// Health computes the health projection; the score is the BMI.
func Health(fields map[string]string) Result {
	w := value(fields, spec(CategoryHealth, "weight"))
	h := value(fields, spec(CategoryHealth, "height"))
	a := value(fields, spec(CategoryHealth, "age"))

	bmi := BMI(w, h)
	bmr := BMR(w, h, a)
	ideal := IdealWeight(h)

	mark := "⚠️"
	if bmi < 25 {
		mark = "✅"
	}
	meters := formatFixed(h/100, 1)

	return Result{
		Title:   "Health Projection",
		Score:   bmi,
		Formula: fmt.Sprintf("BMI = %s / (%s²) = %s", formatPlain(w), formatPlain(h/100), formatFixed(bmi, 1)),
		Details: []string{
			fmt.Sprintf("BMI: %s %s", formatFixed(bmi, 1), mark),
			fmt.Sprintf("BMR: %s kcal/day", formatFixed(bmr, 0)),
			fmt.Sprintf("Ideal Weight: %s kg", formatFixed(ideal, 1)),
		},
		Breakdown: []BreakdownStep{
			{Label: "Weight", Value: formatPlain(w) + "kg"},
			{Label: "Height", Value: meters + "m"},
			{Label: "Calculation", Value: fmt.Sprintf("%s ÷ (%s × %s)", formatPlain(w), meters, meters)},
			{Label: "Result", Value: formatFixed(bmi, 1)},
		},
		Interpretation: bmiInterpretations[ClassifyBMI(bmi)],
		Category:       CategoryHealth,
	}
}
