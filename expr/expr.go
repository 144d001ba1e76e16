/*
Package expr implements scalar symbolic expressions in a single variable,
with exact evaluation and symbolic differentiation.

# BSD License

# Copyright (c) Alireza Palm

All rights reserved.

Please refer to the license file for more information.
*/
package expr

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'expr'
func tracer() tracing.Trace {
	return tracing.Select("expr")
}

var (
	// ErrParse indicates malformed expression input.
	ErrParse = errors.New("cannot parse expression")
	// ErrUnknownFunc indicates a call to a function not in the function table.
	ErrUnknownFunc = errors.New("unknown function")
	// ErrUnknownVariable indicates an identifier other than the designated variable.
	ErrUnknownVariable = errors.New("unknown variable")
	// ErrDomain indicates an expression evaluates non-real over a sampled domain.
	ErrDomain = errors.New("expression is not real-valued over the domain")
)

// Expr is a scalar expression in one variable. Expressions are immutable;
// Derive returns a new expression tree.
type Expr interface {
	Eval(x float64) float64
	Derive() Expr
	String() string
}

// === Atomic nodes ==========================================================

// Const is a numeric literal.
type Const float64

// Eval returns the literal value.
func (c Const) Eval(x float64) float64 { return float64(c) }

// Derive of a constant is 0.
func (c Const) Derive() Expr { return Const(0) }

func (c Const) String() string { return fmt.Sprintf("%g", float64(c)) }

// Var is the designated independent variable.
type Var struct {
	Name string
}

// Eval returns the sample point itself.
func (v Var) Eval(x float64) float64 { return x }

// Derive of the variable is 1.
func (v Var) Derive() Expr { return Const(1) }

func (v Var) String() string { return v.Name }

// === Composite nodes =======================================================

type binop struct {
	op   byte // one of + - * / ^
	l, r Expr
}

func (b binop) Eval(x float64) float64 {
	lv, rv := b.l.Eval(x), b.r.Eval(x)
	switch b.op {
	case '+':
		return lv + rv
	case '-':
		return lv - rv
	case '*':
		return lv * rv
	case '/':
		return lv / rv
	case '^':
		return math.Pow(lv, rv)
	}
	return math.NaN()
}

func (b binop) Derive() Expr {
	switch b.op {
	case '+':
		return add(b.l.Derive(), b.r.Derive())
	case '-':
		return sub(b.l.Derive(), b.r.Derive())
	case '*': // product rule
		return add(mul(b.l.Derive(), b.r), mul(b.l, b.r.Derive()))
	case '/': // quotient rule
		num := sub(mul(b.l.Derive(), b.r), mul(b.l, b.r.Derive()))
		return quo(num, pow(b.r, Const(2)))
	case '^':
		if c, ok := b.r.(Const); ok {
			// d/dx u^c = c u^(c-1) u'
			return mul(mul(c, pow(b.l, Const(float64(c)-1))), b.l.Derive())
		}
		// General case: u^v = exp(v log u)
		rewritten := call("exp", mul(b.r, call("log", b.l)))
		return rewritten.Derive()
	}
	tracer().Errorf("derive of unknown operator %q", b.op)
	return Const(math.NaN())
}

func (b binop) String() string {
	return fmt.Sprintf("(%s %c %s)", b.l, b.op, b.r)
}

type neg struct {
	arg Expr
}

func (n neg) Eval(x float64) float64 { return -n.arg.Eval(x) }
func (n neg) Derive() Expr           { return negate(n.arg.Derive()) }
func (n neg) String() string         { return fmt.Sprintf("(-%s)", n.arg) }

// Call is the application of a named function to an argument expression.
type Call struct {
	Fn  string
	Arg Expr
}

type fn struct {
	eval  func(float64) float64
	deriv func(u Expr) Expr
}

// funcs is the function table: evaluator plus the derivative of f(u)
// with respect to u (chain-rule factor u' is appended by Derive). The
// derivative of abs is u/|u|, undefined at u=0; sampling surfaces that
// as an ErrDomain.
//
// Populated in init: the derivative closures build trees through call,
// which in turn consults the table for constant folding, so a literal
// initializer would be cyclic.
var funcs map[string]fn

func init() {
	funcs = map[string]fn{
		"sin":  {math.Sin, func(u Expr) Expr { return call("cos", u) }},
		"cos":  {math.Cos, func(u Expr) Expr { return negate(call("sin", u)) }},
		"tan":  {math.Tan, func(u Expr) Expr { return quo(Const(1), pow(call("cos", u), Const(2))) }},
		"asin": {math.Asin, func(u Expr) Expr { return quo(Const(1), call("sqrt", sub(Const(1), pow(u, Const(2))))) }},
		"acos": {math.Acos, func(u Expr) Expr { return negate(quo(Const(1), call("sqrt", sub(Const(1), pow(u, Const(2)))))) }},
		"atan": {math.Atan, func(u Expr) Expr { return quo(Const(1), add(Const(1), pow(u, Const(2)))) }},
		"sinh": {math.Sinh, func(u Expr) Expr { return call("cosh", u) }},
		"cosh": {math.Cosh, func(u Expr) Expr { return call("sinh", u) }},
		"tanh": {math.Tanh, func(u Expr) Expr { return quo(Const(1), pow(call("cosh", u), Const(2))) }},
		"exp":  {math.Exp, func(u Expr) Expr { return call("exp", u) }},
		"log":  {math.Log, func(u Expr) Expr { return quo(Const(1), u) }},
		"sqrt": {math.Sqrt, func(u Expr) Expr { return quo(Const(1), mul(Const(2), call("sqrt", u))) }},
		"abs":  {math.Abs, func(u Expr) Expr { return quo(u, call("abs", u)) }},
	}
}

// Eval applies the function; domain violations surface as NaN/Inf.
func (c Call) Eval(x float64) float64 {
	f, ok := funcs[c.Fn]
	if !ok {
		tracer().Errorf("eval of unknown function %q", c.Fn)
		return math.NaN()
	}
	return f.eval(c.Arg.Eval(x))
}

// Derive applies the chain rule.
func (c Call) Derive() Expr {
	f, ok := funcs[c.Fn]
	if !ok {
		tracer().Errorf("derive of unknown function %q", c.Fn)
		return Const(math.NaN())
	}
	return mul(f.deriv(c.Arg), c.Arg.Derive())
}

func (c Call) String() string {
	return fmt.Sprintf("%s(%s)", c.Fn, c.Arg)
}

// === Simplifying constructors ==============================================

// The constructors fold constants and collapse polynomial subtrees into
// Polynomial nodes, keeping derived trees small.

func add(l, r Expr) Expr {
	if p, q, ok := polyPair(l, r); ok {
		return fromPolynomial(p.Add(q))
	}
	return binop{'+', l, r}
}

func sub(l, r Expr) Expr {
	if p, q, ok := polyPair(l, r); ok {
		return fromPolynomial(p.Add(q.Scale(-1)))
	}
	return binop{'-', l, r}
}

func mul(l, r Expr) Expr {
	if lc, ok := l.(Const); ok {
		if lc == 0 {
			return Const(0)
		}
		if lc == 1 {
			return r
		}
	}
	if rc, ok := r.(Const); ok {
		if rc == 0 {
			return Const(0)
		}
		if rc == 1 {
			return l
		}
	}
	if p, q, ok := polyPair(l, r); ok {
		return fromPolynomial(p.Mul(q))
	}
	return binop{'*', l, r}
}

func quo(l, r Expr) Expr {
	if rc, ok := r.(Const); ok && rc != 0 {
		if p, ok := asPolynomial(l); ok {
			return fromPolynomial(p.Scale(1 / float64(rc)))
		}
	}
	return binop{'/', l, r}
}

func pow(l, r Expr) Expr {
	if rc, ok := r.(Const); ok {
		n := float64(rc)
		if n == math.Trunc(n) && n >= 0 && n <= 64 {
			if p, ok := asPolynomial(l); ok {
				return fromPolynomial(p.Pow(int(n)))
			}
		}
	}
	return binop{'^', l, r}
}

func negate(e Expr) Expr {
	if p, ok := asPolynomial(e); ok {
		return fromPolynomial(p.Scale(-1))
	}
	return neg{e}
}

func call(fn string, arg Expr) Expr {
	if c, ok := arg.(Const); ok {
		if f, known := funcs[fn]; known {
			return Const(f.eval(float64(c)))
		}
	}
	return Call{Fn: fn, Arg: arg}
}

// polyPair collapses both operands to polynomials, if possible.
func polyPair(l, r Expr) (Polynomial, Polynomial, bool) {
	p, ok := asPolynomial(l)
	if !ok {
		return Polynomial{}, Polynomial{}, false
	}
	q, ok := asPolynomial(r)
	if !ok {
		return Polynomial{}, Polynomial{}, false
	}
	return p, q, true
}

// SampleReal evaluates e at every point of xs and fails with ErrDomain on the
// first non-real result. This is the construction-time domain check demanded
// of symbolic roads.
func SampleReal(e Expr, xs []float64) ([]float64, error) {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		y := e.Eval(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return nil, fmt.Errorf("%w: %s undefined at x=%g", ErrDomain, e, x)
		}
		ys[i] = y
	}
	return ys, nil
}

// IsKnownFunc reports whether name is in the function table.
func IsKnownFunc(name string) bool {
	_, ok := funcs[strings.ToLower(name)]
	return ok
}
