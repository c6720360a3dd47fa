// Package analysis wraps a calculation in the simulated "thinking" delay and
// tags each Analyze press with a token so a late result can be recognised.
package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lifecalc/internal/calc"
)

// DefaultDelay is how long Analyze pretends to think.
const DefaultDelay = 2 * time.Second

// Request is one Analyze press: the category and a private copy of the
// fields as they were when the button was pressed.
type Request struct {
	Token     string
	Category  string
	Fields    map[string]string
	CreatedAt time.Time
}

// NewRequest snapshots fields under a fresh token.
func NewRequest(category string, fields map[string]string) Request {
	snapshot := make(map[string]string, len(fields))
	for k, v := range fields {
		snapshot[k] = v
	}
	return Request{
		Token:     uuid.NewString(),
		Category:  category,
		Fields:    snapshot,
		CreatedAt: time.Now(),
	}
}

// Compute evaluates the request immediately.
func (r Request) Compute() calc.Result {
	return calc.Compute(r.Category, r.Fields)
}

// Run waits delay and then computes the request. If ctx ends first the
// computation is skipped and ctx.Err() is returned.
func Run(ctx context.Context, delay time.Duration, req Request) (calc.Result, error) {
	if err := ctx.Err(); err != nil {
		return calc.Result{}, err
	}
	if delay <= 0 {
		return req.Compute(), nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return calc.Result{}, ctx.Err()
	case <-timer.C:
		return req.Compute(), nil
	}
}
