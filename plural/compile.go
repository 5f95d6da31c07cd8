package plural

import (
	"fmt"
	"strconv"
)

// Compile parses a gettext plural formula into an Evaluator.
//
// The accepted grammar is the C conditional expression subset gettext uses:
// ternary chains, `|| && !`, the comparisons `== != < <= > >=`, modulo,
// parentheses, integer literals and the variable n. Following C semantics,
// comparisons and boolean operators yield 0 or 1 and any non-zero value is
// true in a condition, so a bare boolean formula like `n != 1` already
// produces a valid category index.
//
// The formula is parsed once; the returned Evaluator walks the resulting
// expression tree and never re-parses.
func Compile(expr string) (Evaluator, error) {
	p := exprParser{src: expr}
	root, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	tok, _, err := p.lex()
	if err != nil {
		return nil, err
	}
	if tok != tokEOF {
		return nil, p.errSyntax("end of expression")
	}
	return root.eval, nil
}

type exprNode interface {
	eval(n int) int
}

type nodeNum int

func (e nodeNum) eval(int) int { return int(e) }

type nodeVar struct{}

func (nodeVar) eval(n int) int { return n }

type nodeNot struct{ x exprNode }

func (e nodeNot) eval(n int) int {
	if e.x.eval(n) == 0 {
		return 1
	}
	return 0
}

type binaryOp uint8

const (
	opMod binaryOp = iota
	opLess
	opLessEq
	opGreater
	opGreaterEq
	opEq
	opNotEq
	opAnd
	opOr
)

type nodeBinary struct {
	op   binaryOp
	l, r exprNode
}

func (e nodeBinary) eval(n int) int {
	switch e.op {
	case opAnd:
		if e.l.eval(n) != 0 && e.r.eval(n) != 0 {
			return 1
		}
		return 0
	case opOr:
		if e.l.eval(n) != 0 || e.r.eval(n) != 0 {
			return 1
		}
		return 0
	}

	l, r := e.l.eval(n), e.r.eval(n)
	var b bool
	switch e.op {
	case opMod:
		if r == 0 {
			// Modulo by zero is kept total instead of panicking.
			return 0
		}
		return l % r
	case opLess:
		b = l < r
	case opLessEq:
		b = l <= r
	case opGreater:
		b = l > r
	case opGreaterEq:
		b = l >= r
	case opEq:
		b = l == r
	case opNotEq:
		b = l != r
	}
	if b {
		return 1
	}
	return 0
}

type nodeCond struct{ cond, then, els exprNode }

func (e nodeCond) eval(n int) int {
	if e.cond.eval(n) != 0 {
		return e.then.eval(n)
	}
	return e.els.eval(n)
}

type exprToken uint8

const (
	tokEOF exprToken = iota
	tokNum
	tokVar
	tokLParen
	tokRParen
	tokNot
	tokMod
	tokLess
	tokLessEq
	tokGreater
	tokGreaterEq
	tokEq
	tokNotEq
	tokAnd
	tokOr
	tokQuestion
	tokColon
)

type exprParser struct {
	src string
	pos int
}

func (p *exprParser) errSyntax(expected string) error {
	return fmt.Errorf("%w at offset %d: expected %s",
		ErrExpression, p.pos, expected)
}

// peek returns the next token without consuming it.
func (p *exprParser) peek() (exprToken, int) {
	pos := p.pos
	tok, num, _ := p.lex()
	p.pos = pos
	return tok, num
}

func (p *exprParser) lex() (tok exprToken, num int, err error) {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
	if p.pos >= len(p.src) {
		return tokEOF, 0, nil
	}

	c := p.src[p.pos]
	switch {
	case c >= '0' && c <= '9':
		start := p.pos
		for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
			p.pos++
		}
		num, err := strconv.Atoi(p.src[start:p.pos])
		if err != nil {
			return tokEOF, 0, p.errSyntax("integer literal")
		}
		return tokNum, num, nil
	case c == 'n':
		p.pos++
		return tokVar, 0, nil
	}

	p.pos++
	switch c {
	case '(':
		return tokLParen, 0, nil
	case ')':
		return tokRParen, 0, nil
	case '?':
		return tokQuestion, 0, nil
	case ':':
		return tokColon, 0, nil
	case '%':
		return tokMod, 0, nil
	case '!':
		if p.pos < len(p.src) && p.src[p.pos] == '=' {
			p.pos++
			return tokNotEq, 0, nil
		}
		return tokNot, 0, nil
	case '=':
		if p.pos < len(p.src) && p.src[p.pos] == '=' {
			p.pos++
			return tokEq, 0, nil
		}
		return tokEOF, 0, p.errSyntax("'=='")
	case '<':
		if p.pos < len(p.src) && p.src[p.pos] == '=' {
			p.pos++
			return tokLessEq, 0, nil
		}
		return tokLess, 0, nil
	case '>':
		if p.pos < len(p.src) && p.src[p.pos] == '=' {
			p.pos++
			return tokGreaterEq, 0, nil
		}
		return tokGreater, 0, nil
	case '&':
		// Accept both the `&&` and the legacy single `&` dialect.
		if p.pos < len(p.src) && p.src[p.pos] == '&' {
			p.pos++
		}
		return tokAnd, 0, nil
	case '|':
		if p.pos < len(p.src) && p.src[p.pos] == '|' {
			p.pos++
		}
		return tokOr, 0, nil
	}
	return tokEOF, 0, p.errSyntax("operator, literal or n")
}

// parseTernary parses `cond ? a : b` chains. The ternary operator is
// right-associative, so the else branch recurses into another ternary.
func (p *exprParser) parseTernary() (exprNode, error) {
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok, _ := p.peek(); tok != tokQuestion {
		return cond, nil
	}
	if _, _, err := p.lex(); err != nil {
		return nil, err
	}

	then, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	tok, _, err := p.lex()
	if err != nil {
		return nil, err
	}
	if tok != tokColon {
		return nil, p.errSyntax("':'")
	}
	els, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	return nodeCond{cond: cond, then: then, els: els}, nil
}

func (p *exprParser) parseOr() (exprNode, error) {
	return p.parseBinary(tokOr, opOr, p.parseAnd)
}

func (p *exprParser) parseAnd() (exprNode, error) {
	return p.parseBinary(tokAnd, opAnd, p.parseEquality)
}

func (p *exprParser) parseBinary(
	tok exprToken, op binaryOp, next func() (exprNode, error),
) (exprNode, error) {
	l, err := next()
	if err != nil {
		return nil, err
	}
	for {
		if t, _ := p.peek(); t != tok {
			return l, nil
		}
		if _, _, err := p.lex(); err != nil {
			return nil, err
		}
		r, err := next()
		if err != nil {
			return nil, err
		}
		l = nodeBinary{op: op, l: l, r: r}
	}
}

func (p *exprParser) parseEquality() (exprNode, error) {
	l, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for {
		var op binaryOp
		switch t, _ := p.peek(); t {
		case tokEq:
			op = opEq
		case tokNotEq:
			op = opNotEq
		default:
			return l, nil
		}
		if _, _, err := p.lex(); err != nil {
			return nil, err
		}
		r, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		l = nodeBinary{op: op, l: l, r: r}
	}
}

func (p *exprParser) parseRelational() (exprNode, error) {
	l, err := p.parseModulo()
	if err != nil {
		return nil, err
	}
	for {
		var op binaryOp
		switch t, _ := p.peek(); t {
		case tokLess:
			op = opLess
		case tokLessEq:
			op = opLessEq
		case tokGreater:
			op = opGreater
		case tokGreaterEq:
			op = opGreaterEq
		default:
			return l, nil
		}
		if _, _, err := p.lex(); err != nil {
			return nil, err
		}
		r, err := p.parseModulo()
		if err != nil {
			return nil, err
		}
		l = nodeBinary{op: op, l: l, r: r}
	}
}

func (p *exprParser) parseModulo() (exprNode, error) {
	return p.parseBinary(tokMod, opMod, p.parseUnary)
}

func (p *exprParser) parseUnary() (exprNode, error) {
	if t, _ := p.peek(); t == tokNot {
		if _, _, err := p.lex(); err != nil {
			return nil, err
		}
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return nodeNot{x: x}, nil
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (exprNode, error) {
	tok, num, err := p.lex()
	if err != nil {
		return nil, err
	}
	switch tok {
	case tokNum:
		return nodeNum(num), nil
	case tokVar:
		return nodeVar{}, nil
	case tokLParen:
		inner, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		tok, _, err := p.lex()
		if err != nil {
			return nil, err
		}
		if tok != tokRParen {
			return nil, p.errSyntax("')'")
		}
		return inner, nil
	}
	return nil, p.errSyntax("integer literal, n or '('")
}
