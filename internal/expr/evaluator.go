// Package expr evaluates calculator keypad input.
//
// Expressions are tokenized and parsed into a small tree; nothing is handed
// to a general purpose interpreter.
package expr

import (
	"math"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	apperrors "lifecalc/internal/errors"
)

// ErrorToken is the display value shown after a failed evaluation.
const ErrorToken = "Error"

// DefaultCacheSize bounds the number of compiled expressions kept per Evaluator.
const DefaultCacheSize = 128

// Evaluator parses and evaluates infix expressions, caching parse trees by
// source text. It is safe for concurrent use.
type Evaluator struct {
	cache *lru.Cache[string, node]
}

// NewEvaluator creates an Evaluator with room for size compiled expressions.
// Non-positive sizes fall back to DefaultCacheSize.
func NewEvaluator(size int) *Evaluator {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, node](size)
	if err != nil {
		// Only returned for non-positive sizes.
		panic(err)
	}
	return &Evaluator{cache: cache}
}

var defaultEvaluator = NewEvaluator(DefaultCacheSize)

// Eval returns the numeric value of expression. Failures are *errors.EvalError
// wrapping ErrParse, ErrDivisionByZero or ErrDomain.
func (e *Evaluator) Eval(expression string) (float64, error) {
	tree, err := e.compile(expression)
	if err != nil {
		return 0, &apperrors.EvalError{Expression: expression, Err: err}
	}
	v, err := tree.eval()
	if err != nil {
		return 0, &apperrors.EvalError{Expression: expression, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &apperrors.EvalError{Expression: expression, Err: apperrors.ErrDomain}
	}
	return v, nil
}

// Evaluate returns the display string for expression: "0" for an empty
// expression, ErrorToken on any failure.
func (e *Evaluator) Evaluate(expression string) string {
	if strings.TrimSpace(expression) == "" {
		return "0"
	}
	v, err := e.Eval(expression)
	if err != nil {
		return ErrorToken
	}
	return FormatNumber(v)
}

// Len reports how many compiled expressions are cached.
func (e *Evaluator) Len() int {
	return e.cache.Len()
}

func (e *Evaluator) compile(expression string) (node, error) {
	if tree, ok := e.cache.Get(expression); ok {
		return tree, nil
	}
	tree, err := parse(expression)
	if err != nil {
		return nil, err
	}
	e.cache.Add(expression, tree)
	return tree, nil
}

// Evaluate evaluates expression with the package evaluator.
func Evaluate(expression string) string {
	return defaultEvaluator.Evaluate(expression)
}

// FormatNumber renders v the way a calculator display shows it: the shortest
// decimal that round-trips, switching to exponent form below 1e-6 and from 1e21.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
