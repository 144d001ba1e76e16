package expr

import (
	"bytes"
	"fmt"
	"math"

	"github.com/emirpasic/gods/maps/treemap"
)

// === Polynomial Data Type ==================================================

// Polynomial is a univariate polynomial
//
//	c.0 + c.1 x + c.2 x^2 + ... + c.n x^n .
//
// We store the coefficients only, in a TreeMap (sorted map) keyed by
// exponent. Index 0 is the constant term. Pure polynomial subtrees of an
// expression collapse into this representation, which keeps repeated
// differentiation cheap and exact.
type Polynomial struct {
	terms *treemap.Map
}

// NewConstantPolynomial creates a Polynomial consisting of just a constant term.
func NewConstantPolynomial(c float64) Polynomial {
	p := Polynomial{}
	p.checkTerms()
	p.terms.Put(0, c)
	return p
}

// NewVariablePolynomial creates the Polynomial x (single term, coefficient 1).
func NewVariablePolynomial() Polynomial {
	p := Polynomial{}
	p.checkTerms()
	p.terms.Put(1, 1.0)
	return p.zap()
}

func (p *Polynomial) checkTerms() {
	if p.terms == nil {
		p.terms = treemap.NewWithIntComparator()
	}
}

// SetTerm sets the coefficient for the term x^i within a Polynomial.
// For i=0, sets the constant term.
func (p Polynomial) SetTerm(i int, coeff float64) Polynomial {
	p.checkTerms()
	p.terms.Put(i, coeff)
	return p
}

// Coeff gets the coefficient for the term x^i.
func (p Polynomial) Coeff(i int) float64 {
	p.checkTerms()
	if c, found := p.terms.Get(i); found {
		return c.(float64)
	}
	return 0.0
}

// Degree returns the largest exponent with a non-zero coefficient.
func (p Polynomial) Degree() int {
	p.checkTerms()
	deg := 0
	it := p.terms.Iterator()
	for it.Next() {
		if i := it.Key().(int); i > deg && it.Value().(float64) != 0 {
			deg = i
		}
	}
	return deg
}

// copyPolynomial makes a copy of p.
func (p Polynomial) copyPolynomial() Polynomial {
	p1 := NewConstantPolynomial(0.0)
	p.checkTerms()
	it := p.terms.Iterator()
	for it.Next() {
		p1.SetTerm(it.Key().(int), it.Value().(float64))
	}
	return p1
}

// Add adds two Polynomials. Returns a new Polynomial; the arguments are
// unchanged.
func (p Polynomial) Add(q Polynomial) Polynomial {
	p1 := p.copyPolynomial()
	q.checkTerms()
	it := q.terms.Iterator()
	for it.Next() {
		i := it.Key().(int)
		p1.SetTerm(i, p1.Coeff(i)+it.Value().(float64))
	}
	return p1.zap()
}

// Scale multiplies every coefficient by a constant. Returns a new Polynomial.
func (p Polynomial) Scale(c float64) Polynomial {
	p1 := p.copyPolynomial()
	it := p1.terms.Iterator()
	for it.Next() {
		p1.SetTerm(it.Key().(int), it.Value().(float64)*c)
	}
	return p1.zap()
}

// Mul multiplies two Polynomials (coefficient convolution). Returns a new
// Polynomial.
func (p Polynomial) Mul(q Polynomial) Polynomial {
	p.checkTerms()
	q.checkTerms()
	prod := NewConstantPolynomial(0.0)
	it := p.terms.Iterator()
	for it.Next() {
		i, a := it.Key().(int), it.Value().(float64)
		if a == 0 {
			continue
		}
		jt := q.terms.Iterator()
		for jt.Next() {
			j, b := jt.Key().(int), jt.Value().(float64)
			prod.SetTerm(i+j, prod.Coeff(i+j)+a*b)
		}
	}
	return prod.zap()
}

// Pow raises p to a non-negative integer power.
func (p Polynomial) Pow(n int) Polynomial {
	result := NewConstantPolynomial(1.0)
	for ; n > 0; n-- {
		result = result.Mul(p)
	}
	return result
}

// Derive returns the exact derivative d/dx p.
func (p Polynomial) Derive() Polynomial {
	p.checkTerms()
	d := NewConstantPolynomial(0.0)
	it := p.terms.Iterator()
	for it.Next() {
		i, c := it.Key().(int), it.Value().(float64)
		if i > 0 {
			d.SetTerm(i-1, float64(i)*c)
		}
	}
	return d.zap()
}

// Eval evaluates p at x by Horner's rule over the sorted terms.
func (p Polynomial) Eval(x float64) float64 {
	p.checkTerms()
	acc := 0.0
	prev := -1
	// Iterate descending exponents: collect keys, walk backwards.
	keys := p.terms.Keys()
	for k := len(keys) - 1; k >= 0; k-- {
		i := keys[k].(int)
		c, _ := p.terms.Get(i)
		if prev >= 0 {
			acc *= math.Pow(x, float64(prev-i))
		}
		acc += c.(float64)
		prev = i
	}
	if prev > 0 {
		acc *= math.Pow(x, float64(prev))
	}
	return acc
}

// IsConstant checks whether p is a constant, i.e. p = { c }.
// Returns the constant and a flag.
func (p Polynomial) IsConstant() (float64, bool) {
	p.checkTerms()
	return p.Coeff(0), p.terms.Size() == 1 && p.Degree() == 0
}

// zap eliminates all terms with coefficient 0 from a polynomial.
func (p Polynomial) zap() Polynomial {
	p.checkTerms()
	for _, pos := range p.terms.Keys() {
		if c, _ := p.terms.Get(pos); c.(float64) == 0 && pos.(int) != 0 {
			p.terms.Remove(pos)
		}
	}
	if _, ok := p.terms.Get(0); !ok {
		p.terms.Put(0, 0.0) // p may have lost its constant term: re-introduce c
	}
	return p
}

// String creates a readable string representation for a Polynomial.
func (p Polynomial) String() string {
	p.checkTerms()
	var buffer bytes.Buffer
	first := true
	keys := p.terms.Keys()
	for k := len(keys) - 1; k >= 0; k-- {
		i := keys[k].(int)
		c := p.Coeff(i)
		if c == 0 && !(i == 0 && first) {
			continue
		}
		if !first {
			if c < 0 {
				buffer.WriteString(" - ")
				c = -c
			} else {
				buffer.WriteString(" + ")
			}
		}
		switch {
		case i == 0:
			buffer.WriteString(fmt.Sprintf("%g", c))
		case c == 1:
			buffer.WriteString(term(i))
		default:
			buffer.WriteString(fmt.Sprintf("%g%s", c, term(i)))
		}
		first = false
	}
	if first {
		return "0"
	}
	return buffer.String()
}

func term(i int) string {
	if i == 1 {
		return "x"
	}
	return fmt.Sprintf("x^%d", i)
}

// === Polynomial as an expression node ======================================

// poly adapts a Polynomial to the Expr interface.
type poly struct {
	p Polynomial
}

func (pn poly) Eval(x float64) float64 { return pn.p.Eval(x) }
func (pn poly) Derive() Expr           { return fromPolynomial(pn.p.Derive()) }
func (pn poly) String() string         { return pn.p.String() }

// fromPolynomial wraps a polynomial as an expression, degrading to Const
// where possible.
func fromPolynomial(p Polynomial) Expr {
	if c, isconst := p.IsConstant(); isconst {
		return Const(c)
	}
	return poly{p}
}

// asPolynomial collapses an expression node to a Polynomial, if it is one.
func asPolynomial(e Expr) (Polynomial, bool) {
	switch n := e.(type) {
	case Const:
		return NewConstantPolynomial(float64(n)), true
	case Var:
		return NewVariablePolynomial(), true
	case poly:
		return n.p, true
	}
	return Polynomial{}, false
}
