package ring

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// Term is one monomial with its rational coefficient.
type Term struct {
	Mono Mono
	Coef *big.Rat
}

type term struct {
	mono Mono
	coef *big.Rat
}

// Poly is a sparse polynomial over the rationals in the unknown coefficient
// variables. The zero value is the zero polynomial. Polynomials are immutable:
// every operation returns a fresh value and coefficients are copied on the way
// in and out.
type Poly struct {
	terms map[string]term
}

// Zero returns the zero polynomial.
func Zero() Poly { return Poly{} }

// One returns the constant polynomial 1.
func One() Poly { return FromInt(1) }

// FromInt returns the constant polynomial n.
func FromInt(n int64) Poly {
	return FromRat(new(big.Rat).SetInt64(n))
}

// FromRat returns the constant polynomial with value r.
func FromRat(r *big.Rat) Poly {
	return FromTerm(Mono{}, r)
}

// FromVar returns the polynomial consisting of the single variable v.
func FromVar(v Var) Poly {
	return FromTerm(MonoOf(v), big.NewRat(1, 1))
}

// FromTerm returns the polynomial c*m.
func FromTerm(m Mono, c *big.Rat) Poly {
	if c == nil || c.Sign() == 0 {
		return Poly{}
	}
	return Poly{terms: map[string]term{
		m.Key(): {mono: m, coef: new(big.Rat).Set(c)},
	}}
}

// IsZero reports whether p is the zero polynomial.
func (p Poly) IsZero() bool { return len(p.terms) == 0 }

// Len returns the number of terms.
func (p Poly) Len() int { return len(p.terms) }

func (p Poly) clone() Poly {
	if len(p.terms) == 0 {
		return Poly{}
	}
	out := make(map[string]term, len(p.terms))
	for k, t := range p.terms {
		out[k] = term{mono: t.mono, coef: new(big.Rat).Set(t.coef)}
	}
	return Poly{terms: out}
}

// addTerm accumulates c*m into the mutable map, pruning cancellations.
func addTerm(terms map[string]term, m Mono, c *big.Rat) {
	if c.Sign() == 0 {
		return
	}
	key := m.Key()
	if existing, ok := terms[key]; ok {
		sum := new(big.Rat).Add(existing.coef, c)
		if sum.Sign() == 0 {
			delete(terms, key)
		} else {
			terms[key] = term{mono: existing.mono, coef: sum}
		}
		return
	}
	terms[key] = term{mono: m, coef: new(big.Rat).Set(c)}
}

// Add returns p + q.
func (p Poly) Add(q Poly) Poly {
	out := p.clone()
	if out.terms == nil {
		out.terms = make(map[string]term, len(q.terms))
	}
	for _, t := range q.terms {
		addTerm(out.terms, t.mono, t.coef)
	}
	if len(out.terms) == 0 {
		return Poly{}
	}
	return out
}

// Sub returns p - q.
func (p Poly) Sub(q Poly) Poly {
	return p.Add(q.Neg())
}

// Neg returns -p.
func (p Poly) Neg() Poly {
	out := p.clone()
	for k, t := range out.terms {
		out.terms[k] = term{mono: t.mono, coef: t.coef.Neg(t.coef)}
	}
	return out
}

// MulRat returns r*p.
func (p Poly) MulRat(r *big.Rat) Poly {
	if r.Sign() == 0 || p.IsZero() {
		return Poly{}
	}
	out := p.clone()
	for k, t := range out.terms {
		out.terms[k] = term{mono: t.mono, coef: t.coef.Mul(t.coef, r)}
	}
	return out
}

// MulVar returns v*p.
func (p Poly) MulVar(v Var) Poly {
	if p.IsZero() {
		return Poly{}
	}
	out := make(map[string]term, len(p.terms))
	for _, t := range p.terms {
		m := t.mono.MulVar(v)
		out[m.Key()] = term{mono: m, coef: new(big.Rat).Set(t.coef)}
	}
	return Poly{terms: out}
}

// Mul returns the product p*q. Needed for associativity defects, which are
// quadratic in the unknowns.
func (p Poly) Mul(q Poly) Poly {
	if p.IsZero() || q.IsZero() {
		return Poly{}
	}
	out := make(map[string]term, len(p.terms)*len(q.terms))
	prod := new(big.Rat)
	for _, a := range p.terms {
		for _, b := range q.terms {
			prod.Mul(a.coef, b.coef)
			addTerm(out, a.mono.Mul(b.mono), prod)
		}
	}
	if len(out) == 0 {
		return Poly{}
	}
	return Poly{terms: out}
}

// Equal reports whether p and q have identical terms.
func (p Poly) Equal(q Poly) bool {
	if len(p.terms) != len(q.terms) {
		return false
	}
	for k, t := range p.terms {
		o, ok := q.terms[k]
		if !ok || t.coef.Cmp(o.coef) != 0 {
			return false
		}
	}
	return true
}

// Degree returns the total degree; the zero polynomial has degree -1.
func (p Poly) Degree() int {
	if p.IsZero() {
		return -1
	}
	max := 0
	for _, t := range p.terms {
		if d := t.mono.Degree(); d > max {
			max = d
		}
	}
	return max
}

// Coefficient returns a copy of the coefficient of monomial m (zero if absent).
func (p Poly) Coefficient(m Mono) *big.Rat {
	if t, ok := p.terms[m.Key()]; ok {
		return new(big.Rat).Set(t.coef)
	}
	return new(big.Rat)
}

// Constant returns a copy of the constant term.
func (p Poly) Constant() *big.Rat {
	return p.Coefficient(Mono{})
}

// Vars returns the sorted set of variables occurring in p.
func (p Poly) Vars() []Var {
	seen := make(map[Var]bool)
	for _, t := range p.terms {
		for _, f := range t.mono.factors {
			seen[f.Var] = true
		}
	}
	out := make([]Var, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	SortVars(out)
	return out
}

// Linear decomposes an affine polynomial into variable coefficients and a
// constant. ok is false when p has a term of degree two or higher.
func (p Poly) Linear() (coeffs map[Var]*big.Rat, constant *big.Rat, ok bool) {
	coeffs = make(map[Var]*big.Rat)
	constant = new(big.Rat)
	for _, t := range p.terms {
		switch t.mono.Degree() {
		case 0:
			constant.Set(t.coef)
		case 1:
			coeffs[t.mono.factors[0].Var] = new(big.Rat).Set(t.coef)
		default:
			return nil, nil, false
		}
	}
	return coeffs, constant, true
}

// Substitute replaces each assigned variable by its polynomial and expands.
// Unassigned variables pass through.
func (p Poly) Substitute(assign map[Var]Poly) Poly {
	out := Poly{}
	for _, t := range p.terms {
		part := FromRat(t.coef)
		for _, f := range t.mono.factors {
			rep, ok := assign[f.Var]
			if !ok {
				rep = FromVar(f.Var)
			}
			for e := 0; e < f.Exp; e++ {
				part = part.Mul(rep)
			}
		}
		out = out.Add(part)
	}
	return out
}

// EvalRat evaluates p at a full rational assignment. Variables missing from
// the assignment evaluate as zero.
func (p Poly) EvalRat(assign map[Var]*big.Rat) *big.Rat {
	total := new(big.Rat)
	factor := new(big.Rat)
	for _, t := range p.terms {
		factor.Set(t.coef)
		for _, f := range t.mono.factors {
			val, ok := assign[f.Var]
			if !ok {
				factor.SetInt64(0)
				break
			}
			for e := 0; e < f.Exp; e++ {
				factor.Mul(factor, val)
			}
		}
		total.Add(total, factor)
	}
	return total
}

// Terms returns the terms sorted by descending degree, then monomial key.
func (p Poly) Terms() []Term {
	out := make([]Term, 0, len(p.terms))
	for _, t := range p.terms {
		out = append(out, Term{Mono: t.mono, Coef: new(big.Rat).Set(t.coef)})
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].Mono.Degree(), out[j].Mono.Degree()
		if di != dj {
			return di > dj
		}
		return out[i].Mono.Key() < out[j].Mono.Key()
	})
	return out
}

// Normalize returns p scaled by a positive rational so that all coefficients
// are coprime integers and the leading term in canonical order is positive.
// Zero is unchanged. Proportional polynomials normalize to the same value,
// which makes normalized renderings usable as dedupe keys.
func (p Poly) Normalize() Poly {
	if p.IsZero() {
		return p
	}
	lcm := big.NewInt(1)
	for _, t := range p.terms {
		d := t.coef.Denom()
		g := new(big.Int).GCD(nil, nil, lcm, d)
		lcm.Mul(lcm, new(big.Int).Div(d, g))
	}
	var g *big.Int
	for _, t := range p.terms {
		n := new(big.Int).Mul(t.coef.Num(), lcm)
		n.Div(n, t.coef.Denom())
		n.Abs(n)
		if g == nil {
			g = n
		} else {
			g.GCD(nil, nil, g, n)
		}
	}
	q := p.MulRat(new(big.Rat).SetFrac(lcm, g))
	if q.Terms()[0].Coef.Sign() < 0 {
		q = q.MulRat(big.NewRat(-1, 1))
	}
	return q
}

// ParsePoly parses the String rendering back into a polynomial: terms joined
// by "+" and "-", each an optional rational times a monomial in the unknowns.
func ParsePoly(s string) (Poly, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return Zero(), nil
	}
	terms := make(map[string]term)
	i := 0
	for i < len(s) {
		neg := false
		for i < len(s) && (s[i] == ' ' || s[i] == '+' || s[i] == '-') {
			if s[i] == '-' {
				neg = !neg
			}
			i++
		}
		j := i
		for j < len(s) && s[j] != ' ' && s[j] != '+' && s[j] != '-' {
			j++
		}
		if j == i {
			return Poly{}, fmt.Errorf("invalid polynomial %q", s)
		}
		m, coef, err := parsePolyTerm(s[i:j])
		if err != nil {
			return Poly{}, fmt.Errorf("invalid polynomial %q: %w", s, err)
		}
		if neg {
			coef.Neg(coef)
		}
		addTerm(terms, m, coef)
		i = j
	}
	if len(terms) == 0 {
		return Poly{}, nil
	}
	return Poly{terms: terms}, nil
}

func parsePolyTerm(chunk string) (Mono, *big.Rat, error) {
	m := Mono{}
	coef := big.NewRat(1, 1)
	for _, f := range strings.Split(chunk, "*") {
		if f == "" {
			return Mono{}, nil, fmt.Errorf("empty factor in term %q", chunk)
		}
		if f[0] >= '0' && f[0] <= '9' {
			r, ok := new(big.Rat).SetString(f)
			if !ok {
				return Mono{}, nil, fmt.Errorf("bad rational %q", f)
			}
			coef.Mul(coef, r)
			continue
		}
		fm, err := ParseMono(f)
		if err != nil {
			return Mono{}, nil, err
		}
		m = m.Mul(fm)
	}
	return m, coef, nil
}

// String renders the polynomial deterministically, e.g. "2*A1*B2 - A3 + 1/2".
func (p Poly) String() string {
	if p.IsZero() {
		return "0"
	}
	var sb strings.Builder
	for i, t := range p.Terms() {
		neg := t.Coef.Sign() < 0
		abs := new(big.Rat).Abs(t.Coef)
		switch {
		case i == 0 && neg:
			sb.WriteString("-")
		case i > 0 && neg:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		one := abs.Cmp(big.NewRat(1, 1)) == 0
		switch {
		case t.Mono.IsConstant():
			sb.WriteString(abs.RatString())
		case one:
			sb.WriteString(t.Mono.Key())
		default:
			sb.WriteString(abs.RatString())
			sb.WriteString("*")
			sb.WriteString(t.Mono.Key())
		}
	}
	return sb.String()
}
