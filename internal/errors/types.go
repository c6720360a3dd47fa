package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the classification of errors surfaced by the app.
type ErrorType int

const (
	// ErrorTypeUnknown - anything not produced by this module
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeFallback - input was replaced by a default, never shown to the user
	ErrorTypeFallback
	// ErrorTypeEvaluator - calculator expression could not be evaluated
	ErrorTypeEvaluator
	// ErrorTypeNavigation - navigation target has no view
	ErrorTypeNavigation
	// ErrorTypeConfig - configuration could not be loaded or is invalid
	ErrorTypeConfig
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeFallback:
		return "fallback"
	case ErrorTypeEvaluator:
		return "evaluator"
	case ErrorTypeNavigation:
		return "navigation"
	case ErrorTypeConfig:
		return "config"
	default:
		return "unknown"
	}
}

var (
	// ErrParse marks malformed calculator input.
	ErrParse = errors.New("parse error")
	// ErrDivisionByZero marks a division whose divisor evaluated to zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrDomain marks results that are not finite numbers (e.g. √ of a negative).
	ErrDomain = errors.New("result out of domain")
)

// EvalError wraps a failed calculator evaluation.
type EvalError struct {
	Expression string
	Err        error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluate %q: %v", e.Expression, e.Err)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}

// UnknownPageError reports a navigation target that resolves to the not-found view.
type UnknownPageError struct {
	Page string
}

func (e *UnknownPageError) Error() string {
	return fmt.Sprintf("unknown page %q", e.Page)
}

// FallbackError records that a field was substituted with its default.
// It is informational only and is never returned to callers of calc.
type FallbackError struct {
	Field   string
	Raw     string
	Default float64
}

func (e *FallbackError) Error() string {
	if e.Raw == "" {
		return fmt.Sprintf("field %s missing, using %g", e.Field, e.Default)
	}
	return fmt.Sprintf("field %s=%q not numeric, using %g", e.Field, e.Raw, e.Default)
}

// ConfigError wraps configuration load and validation failures.
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsEvaluatorFailure checks if err came from the expression evaluator.
func IsEvaluatorFailure(err error) bool {
	if err == nil {
		return false
	}
	var evalErr *EvalError
	if errors.As(err, &evalErr) {
		return true
	}
	return errors.Is(err, ErrParse) || errors.Is(err, ErrDivisionByZero) || errors.Is(err, ErrDomain)
}

// IsUnknownPage checks if err reports an unresolvable navigation target.
func IsUnknownPage(err error) bool {
	var pageErr *UnknownPageError
	return errors.As(err, &pageErr)
}

// Classify maps an error onto the app's error taxonomy.
func Classify(err error) ErrorType {
	if err == nil {
		return ErrorTypeUnknown
	}

	var fallbackErr *FallbackError
	if errors.As(err, &fallbackErr) {
		return ErrorTypeFallback
	}

	if IsEvaluatorFailure(err) {
		return ErrorTypeEvaluator
	}

	if IsUnknownPage(err) {
		return ErrorTypeNavigation
	}

	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return ErrorTypeConfig
	}

	return ErrorTypeUnknown
}
