// Package plural implements gettext plural rule selection.
//
// A rule maps a cardinal number onto a zero-based plural category index as
// declared by the Plural-Forms catalog header. Common language families are
// served by a table of precompiled rules; anything else is handled by a small
// formula interpreter compiled once per catalog.
package plural

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Evaluator maps a cardinal number onto a plural category index.
type Evaluator func(n int) int

// Rule is the plural rule of one catalog: the number of plural categories,
// the formula source text, and the compiled evaluator.
type Rule struct {
	NPlurals  int
	Formula   string
	Evaluator Evaluator
}

// DefaultRule returns the Germanic two-form rule used by catalogs
// that never declare a Plural-Forms header.
func DefaultRule() Rule {
	return Rule{
		NPlurals: 2,
		Formula:  "(n != 1)",
		Evaluator: func(n int) int {
			if n == 1 {
				return 0
			}
			return 1
		},
	}
}

var (
	ErrMalformedForms = errors.New("malformed Plural-Forms header")
	ErrExpression     = errors.New("malformed plural expression")
)

// regexpForms matches a whitespace-stripped Plural-Forms header value.
// The expression character class is deliberately narrow: digits, the
// variable n and the operator set the formula grammar supports.
var regexpForms = regexp.MustCompile(
	`^nplurals=([0-9]+);plural=([n0-9?:()!=%<>|&]+);?$`,
)

// ParseForms parses a raw Plural-Forms header value into a Rule.
//
// The header must match `nplurals=<digits>; plural=<expr>;` with <expr>
// restricted to digits, n and the operators `? : ( ) ! = % < > | &`.
// Canonical headers of well-known language families resolve to precompiled
// evaluators; everything else is compiled by the generic interpreter.
func ParseForms(header string) (Rule, error) {
	normalized := stripWhitespace(header)

	m := regexpForms.FindStringSubmatch(normalized)
	if m == nil {
		return Rule{}, fmt.Errorf("%w: %q", ErrMalformedForms, header)
	}

	nplurals, err := strconv.Atoi(m[1])
	if err != nil || nplurals < 1 {
		return Rule{}, fmt.Errorf("%w: nplurals must be >= 1", ErrMalformedForms)
	}
	expr := m[2]

	if eval, ok := lookupKnown(normalized); ok {
		return Rule{NPlurals: nplurals, Formula: expr, Evaluator: eval}, nil
	}

	eval, err := Compile(expr)
	if err != nil {
		return Rule{}, err
	}
	return Rule{NPlurals: nplurals, Formula: expr, Evaluator: eval}, nil
}

func stripWhitespace(s string) string {
	if !strings.ContainsAny(s, " \t") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\t' {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
