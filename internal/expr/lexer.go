package expr

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	apperrors "lifecalc/internal/errors"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokSqrt
	tokLParen
	tokRParen
	tokInvalid
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

type lexer struct {
	s string
	i int
}

func (l *lexer) next() token {
	for l.i < len(l.s) {
		r, size := utf8.DecodeRuneInString(l.s[l.i:])
		if !unicode.IsSpace(r) {
			break
		}
		l.i += size
	}
	if l.i >= len(l.s) {
		return token{kind: tokEOF, pos: l.i}
	}

	start := l.i
	r, size := utf8.DecodeRuneInString(l.s[l.i:])
	switch r {
	case '+':
		l.i += size
		return token{kind: tokPlus, text: "+", pos: start}
	case '-', '−':
		l.i += size
		return token{kind: tokMinus, text: "-", pos: start}
	case '*', '×':
		l.i += size
		return token{kind: tokStar, text: "*", pos: start}
	case '/', '÷':
		l.i += size
		return token{kind: tokSlash, text: "/", pos: start}
	case '^':
		l.i += size
		return token{kind: tokCaret, text: "^", pos: start}
	case '√':
		l.i += size
		return token{kind: tokSqrt, text: "√", pos: start}
	case '(':
		l.i += size
		return token{kind: tokLParen, text: "(", pos: start}
	case ')':
		l.i += size
		return token{kind: tokRParen, text: ")", pos: start}
	}

	if r == '.' || unicode.IsDigit(r) {
		l.i = scanNumber(l.s, l.i)
		txt := l.s[start:l.i]
		n, err := strconv.ParseFloat(txt, 64)
		if err != nil {
			return token{kind: tokInvalid, text: txt, pos: start}
		}
		return token{kind: tokNumber, text: txt, num: n, pos: start}
	}

	l.i += size
	return token{kind: tokInvalid, text: string(r), pos: start}
}

// scanNumber consumes digits with at most one decimal point. A second point
// is left for the parser to reject.
func scanNumber(s string, i int) int {
	seenDot := false
	for i < len(s) {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			i++
		case c == '.' && !seenDot:
			seenDot = true
			i++
		default:
			return i
		}
	}
	return i
}

func parseErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperrors.ErrParse, fmt.Sprintf(format, args...))
}
