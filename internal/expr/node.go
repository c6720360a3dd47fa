package expr

import (
	"math"

	apperrors "lifecalc/internal/errors"
)

type node interface {
	eval() (float64, error)
}

type nodeNumber struct{ v float64 }

type nodeUnary struct {
	op byte
	x  node
}

type nodeBinary struct {
	op          byte
	left, right node
}

type nodeSqrt struct{ x node }

func (n nodeNumber) eval() (float64, error) { return n.v, nil }

func (n nodeUnary) eval() (float64, error) {
	x, err := n.x.eval()
	if err != nil {
		return 0, err
	}
	if n.op == '-' {
		return -x, nil
	}
	return x, nil
}

func (n nodeSqrt) eval() (float64, error) {
	x, err := n.x.eval()
	if err != nil {
		return 0, err
	}
	if x < 0 {
		return 0, apperrors.ErrDomain
	}
	return math.Sqrt(x), nil
}

func (n nodeBinary) eval() (float64, error) {
	a, err := n.left.eval()
	if err != nil {
		return 0, err
	}
	b, err := n.right.eval()
	if err != nil {
		return 0, err
	}
	switch n.op {
	case '+':
		return a + b, nil
	case '-':
		return a - b, nil
	case '*':
		return a * b, nil
	case '/':
		if b == 0 {
			return 0, apperrors.ErrDivisionByZero
		}
		return a / b, nil
	case '^':
		return math.Pow(a, b), nil
	default:
		return 0, parseErr("unknown operator %q", n.op)
	}
}
