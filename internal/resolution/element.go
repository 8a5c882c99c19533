package resolution

import (
	"errors"
	"math/big"
	"sort"
	"strings"

	"github.com/commalg/dgares/internal/ring"
)

// ErrInhomogeneous indicates an element mixing S-degrees where a homogeneous
// one is required.
var ErrInhomogeneous = errors.New("element is not S-homogeneous")

// ElemTerm is one basis element with its polynomial coefficient.
type ElemTerm struct {
	Basis Basis
	Coef  ring.Poly
}

type elemTerm struct {
	basis Basis
	coef  ring.Poly
}

// Element is a sparse linear combination of basis elements with ring.Poly
// coefficients. The zero value is the zero element.
type Element struct {
	terms map[string]elemTerm
}

// Monomial returns the element consisting of the single basis element b with
// coefficient 1.
func Monomial(b Basis) Element {
	return FromTerm(b, ring.One())
}

// FromTerm returns coef*b as an element.
func FromTerm(b Basis, coef ring.Poly) Element {
	if coef.IsZero() {
		return Element{}
	}
	return Element{terms: map[string]elemTerm{
		b.Key(): {basis: b, coef: coef},
	}}
}

// IsZero reports whether the element has no terms.
func (e Element) IsZero() bool { return len(e.terms) == 0 }

// Len returns the number of basis elements with nonzero coefficient.
func (e Element) Len() int { return len(e.terms) }

// Coefficient returns the coefficient of basis element b (zero if absent).
func (e Element) Coefficient(b Basis) ring.Poly {
	if t, ok := e.terms[b.Key()]; ok {
		return t.coef
	}
	return ring.Zero()
}

func (e Element) clone() Element {
	if len(e.terms) == 0 {
		return Element{}
	}
	out := make(map[string]elemTerm, len(e.terms))
	for k, t := range e.terms {
		out[k] = t
	}
	return Element{terms: out}
}

// addInto accumulates coef*b, pruning cancelled terms. The receiver map must
// be non-nil.
func addInto(terms map[string]elemTerm, b Basis, coef ring.Poly) {
	if coef.IsZero() {
		return
	}
	key := b.Key()
	if existing, ok := terms[key]; ok {
		sum := existing.coef.Add(coef)
		if sum.IsZero() {
			delete(terms, key)
		} else {
			terms[key] = elemTerm{basis: existing.basis, coef: sum}
		}
		return
	}
	terms[key] = elemTerm{basis: b, coef: coef}
}

// Add returns e + f.
func (e Element) Add(f Element) Element {
	out := e.clone()
	if out.terms == nil {
		out.terms = make(map[string]elemTerm, len(f.terms))
	}
	for _, t := range f.terms {
		addInto(out.terms, t.basis, t.coef)
	}
	if len(out.terms) == 0 {
		return Element{}
	}
	return out
}

// Sub returns e - f.
func (e Element) Sub(f Element) Element {
	return e.Add(f.Neg())
}

// Neg returns -e.
func (e Element) Neg() Element {
	out := make(map[string]elemTerm, len(e.terms))
	for k, t := range e.terms {
		out[k] = elemTerm{basis: t.basis, coef: t.coef.Neg()}
	}
	return Element{terms: out}
}

// Scale multiplies every coefficient by p.
func (e Element) Scale(p ring.Poly) Element {
	if p.IsZero() {
		return Element{}
	}
	out := make(map[string]elemTerm, len(e.terms))
	for k, t := range e.terms {
		c := t.coef.Mul(p)
		if !c.IsZero() {
			out[k] = elemTerm{basis: t.basis, coef: c}
		}
	}
	return Element{terms: out}
}

// ScaleRat multiplies every coefficient by the rational r.
func (e Element) ScaleRat(r *big.Rat) Element {
	if r.Sign() == 0 {
		return Element{}
	}
	out := make(map[string]elemTerm, len(e.terms))
	for k, t := range e.terms {
		out[k] = elemTerm{basis: t.basis, coef: t.coef.MulRat(r)}
	}
	return Element{terms: out}
}

// SubstituteCoeffs applies a variable substitution to every coefficient,
// pruning terms that vanish. Used to specialize a computed system's solution
// back into elements.
func (e Element) SubstituteCoeffs(assign map[ring.Var]ring.Poly) Element {
	out := make(map[string]elemTerm, len(e.terms))
	for k, t := range e.terms {
		c := t.coef.Substitute(assign)
		if !c.IsZero() {
			out[k] = elemTerm{basis: t.basis, coef: c}
		}
	}
	if len(out) == 0 {
		return Element{}
	}
	return Element{terms: out}
}

// Equal reports whether e and f agree term by term.
func (e Element) Equal(f Element) bool {
	if len(e.terms) != len(f.terms) {
		return false
	}
	for k, t := range e.terms {
		o, ok := f.terms[k]
		if !ok || !t.coef.Equal(o.coef) {
			return false
		}
	}
	return true
}

// Terms returns the terms sorted by basis key.
func (e Element) Terms() []ElemTerm {
	out := make([]ElemTerm, 0, len(e.terms))
	for _, t := range e.terms {
		out = append(out, ElemTerm{Basis: t.basis, Coef: t.coef})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Basis.Key() < out[j].Basis.Key()
	})
	return out
}

// SDeg returns the common S-degree of all terms. Zero elements have S-degree
// zero; mixed elements return ErrInhomogeneous.
func (e Element) SDeg() (int, error) {
	deg := -1
	for _, t := range e.terms {
		d := t.basis.S.SDeg()
		if deg == -1 {
			deg = d
		} else if d != deg {
			return 0, ErrInhomogeneous
		}
	}
	if deg == -1 {
		return 0, nil
	}
	return deg, nil
}

// String renders the element with coefficients in parentheses when they have
// more than one term, e.g. "(A1 + B2)*e(1,1;0,1) - x0*y1*e()".
func (e Element) String() string {
	if e.IsZero() {
		return "0"
	}
	var sb strings.Builder
	one := big.NewRat(1, 1)
	for i, t := range e.Terms() {
		if t.Coef.Len() > 1 {
			if i > 0 {
				sb.WriteString(" + ")
			}
			sb.WriteString("(")
			sb.WriteString(t.Coef.String())
			sb.WriteString(")*")
			sb.WriteString(t.Basis.Key())
			continue
		}
		rt := t.Coef.Terms()[0]
		neg := rt.Coef.Sign() < 0
		abs := new(big.Rat).Abs(rt.Coef)
		switch {
		case i == 0 && neg:
			sb.WriteString("-")
		case i > 0 && neg:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		if abs.Cmp(one) != 0 {
			sb.WriteString(abs.RatString())
			sb.WriteString("*")
		}
		if !rt.Mono.IsConstant() {
			sb.WriteString(rt.Mono.Key())
			sb.WriteString("*")
		}
		sb.WriteString(t.Basis.Key())
	}
	return sb.String()
}
