package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// === Lexer =================================================================

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp     // + - * / ^
	tokLParen // (
	tokRParen // )
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

type lexer struct {
	src []rune
	at  int
}

func (lx *lexer) next() (token, error) {
	for lx.at < len(lx.src) && unicode.IsSpace(lx.src[lx.at]) {
		lx.at++
	}
	if lx.at >= len(lx.src) {
		return token{kind: tokEOF, pos: lx.at}, nil
	}
	start := lx.at
	r := lx.src[lx.at]
	switch {
	case strings.ContainsRune("+-*/^", r):
		lx.at++
		return token{tokOp, string(r), start}, nil
	case r == '(':
		lx.at++
		return token{tokLParen, "(", start}, nil
	case r == ')':
		lx.at++
		return token{tokRParen, ")", start}, nil
	case unicode.IsDigit(r) || r == '.':
		for lx.at < len(lx.src) && (unicode.IsDigit(lx.src[lx.at]) || lx.src[lx.at] == '.') {
			lx.at++
		}
		// Exponent suffix, e.g. 1.5e-3
		if lx.at < len(lx.src) && (lx.src[lx.at] == 'e' || lx.src[lx.at] == 'E') {
			mark := lx.at
			lx.at++
			if lx.at < len(lx.src) && (lx.src[lx.at] == '+' || lx.src[lx.at] == '-') {
				lx.at++
			}
			if lx.at < len(lx.src) && unicode.IsDigit(lx.src[lx.at]) {
				for lx.at < len(lx.src) && unicode.IsDigit(lx.src[lx.at]) {
					lx.at++
				}
			} else {
				lx.at = mark // not an exponent after all
			}
		}
		return token{tokNumber, string(lx.src[start:lx.at]), start}, nil
	case unicode.IsLetter(r) || r == '_':
		for lx.at < len(lx.src) && (unicode.IsLetter(lx.src[lx.at]) || unicode.IsDigit(lx.src[lx.at]) || lx.src[lx.at] == '_') {
			lx.at++
		}
		return token{tokIdent, string(lx.src[start:lx.at]), start}, nil
	}
	return token{}, fmt.Errorf("%w: unexpected character %q at position %d", ErrParse, r, start)
}

// === Parser ================================================================

// Binding powers. '^' is right-associative and binds tighter than unary minus,
// so "-x^2" parses as -(x^2).
const (
	precAdd   = 1
	precMul   = 2
	precUnary = 3
	precPow   = 4
)

type parser struct {
	lx       *lexer
	tok      token
	variable string
}

// Parse parses src as an expression in the designated variable.
//
//	e, err := expr.Parse("15*sin(0.05*x)", "x")
//
// The grammar covers numeric literals, the variable, parentheses, unary
// minus, the binary operators + - * / ^, and the function table (sin, cos,
// tan, asin, acos, atan, sinh, cosh, tanh, exp, log, sqrt, abs).
func Parse(src, variable string) (Expr, error) {
	if strings.TrimSpace(variable) == "" {
		return nil, fmt.Errorf("%w: empty variable name", ErrParse)
	}
	p := &parser{lx: &lexer{src: []rune(src)}, variable: variable}
	if err := p.advance(); err != nil {
		return nil, err
	}
	e, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected %q at position %d", ErrParse, p.tok.text, p.tok.pos)
	}
	tracer().Debugf("parsed %q as %s", src, e)
	return e, nil
}

func (p *parser) advance() error {
	t, err := p.lx.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) parseExpr(minPrec int) (Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokOp {
		op := p.tok.text[0]
		prec := opPrec(op)
		if prec < minPrec {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		next := prec + 1
		if op == '^' { // right-associative
			next = prec
		}
		right, err := p.parseExpr(next)
		if err != nil {
			return nil, err
		}
		left = combine(op, left, right)
	}
	return left, nil
}

func opPrec(op byte) int {
	switch op {
	case '+', '-':
		return precAdd
	case '*', '/':
		return precMul
	case '^':
		return precPow
	}
	return 0
}

func combine(op byte, l, r Expr) Expr {
	switch op {
	case '+':
		return add(l, r)
	case '-':
		return sub(l, r)
	case '*':
		return mul(l, r)
	case '/':
		return quo(l, r)
	case '^':
		return pow(l, r)
	}
	return Const(0)
}

func (p *parser) parsePrimary() (Expr, error) {
	switch p.tok.kind {
	case tokNumber:
		v, err := strconv.ParseFloat(p.tok.text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad number %q at position %d", ErrParse, p.tok.text, p.tok.pos)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return Const(v), nil
	case tokIdent:
		name := p.tok.text
		pos := p.tok.pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokLParen {
			if !IsKnownFunc(name) {
				return nil, fmt.Errorf("%w: %q at position %d", ErrUnknownFunc, name, pos)
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			arg, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			if p.tok.kind != tokRParen {
				return nil, fmt.Errorf("%w: missing ')' for %s(...)", ErrParse, name)
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			return call(strings.ToLower(name), arg), nil
		}
		if name != p.variable {
			return nil, fmt.Errorf("%w: %q at position %d (variable is %q)", ErrUnknownVariable, name, pos, p.variable)
		}
		return Var{Name: name}, nil
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, fmt.Errorf("%w: missing ')' at position %d", ErrParse, p.tok.pos)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return e, nil
	case tokOp:
		if p.tok.text == "-" {
			if err := p.advance(); err != nil {
				return nil, err
			}
			arg, err := p.parseExpr(precUnary)
			if err != nil {
				return nil, err
			}
			return negate(arg), nil
		}
		if p.tok.text == "+" {
			if err := p.advance(); err != nil {
				return nil, err
			}
			return p.parseExpr(precUnary)
		}
	}
	return nil, fmt.Errorf("%w: unexpected %q at position %d", ErrParse, p.tok.text, p.tok.pos)
}
