// Package calc holds the closed-form estimators behind each dashboard category.
//
// Every function is pure and total: malformed or missing input is replaced by
// the field default and no error is ever returned.
package calc

// Compute dispatches to the estimator for category. Daily and unknown
// categories fall through to the career placeholder.
func Compute(category string, fields map[string]string) Result {
	switch category {
	case CategoryHealth:
		return Health(fields)
	case CategoryMoney:
		return Money(fields)
	default:
		return Career(fields)
	}
}

// Categories lists the dashboard categories in tile order.
func Categories() []string {
	return []string{CategoryHealth, CategoryMoney, CategoryCareer, CategoryDaily}
}
