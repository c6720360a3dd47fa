package calc

// CareerPlaceholderScore is the fixed career "prediction". No projection is
// computed for this category; the inputs are only echoed in the breakdown.
const CareerPlaceholderScore = 92

// Career returns the illustrative career projection. Daily and unknown
// categories resolve here as well.
func Career(fields map[string]string) Result {
	salary := value(fields, spec(CategoryCareer, "salary"))
	raise := value(fields, spec(CategoryCareer, "raise"))
	years := value(fields, spec(CategoryCareer, "years"))

	return Result{
		Title:   "Career Projection",
		Score:   CareerPlaceholderScore,
		Formula: "Growth = Current * (1 + rate)^years",
		Details: []string{
			"Potential promotion in 1.2 years",
			"Salary growth estimate: +45%",
			"Skill match: 94%",
		},
		Breakdown: []BreakdownStep{
			{Label: "Current Salary", Value: formatPlain(salary)},
			{Label: "Raise Rate", Value: formatPlain(raise) + "%"},
			{Label: "Timeline", Value: formatPlain(years) + " years"},
			{Label: "Projection", Value: "High Growth"},
		},
		Interpretation: "Your career path shows strong growth potential with a high likelihood of promotion.",
		Category:       CategoryCareer,
	}
}
