package resolution

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/commalg/dgares/internal/ring"
)

// ParseElement parses the element notation produced by Element.String and
// Basis.Key: terms joined by "+" and "-", each a product of optional
// coefficient factors (rationals, unknown variables, parenthesized
// polynomials), optional x/y variable powers and exactly one e(...) part.
//
//	e(1,1;0,1)
//	x0^2*y3*e(1,2;0,2,4) - 2*e()
//	(A1 + B2)*x4*e(2,1;1,2,3)
func (c *Complex) ParseElement(s string) (Element, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return Element{}, nil
	}
	terms := make(map[string]elemTerm)
	i := 0
	for i < len(s) {
		neg := false
		for i < len(s) && (s[i] == ' ' || s[i] == '+' || s[i] == '-') {
			if s[i] == '-' {
				neg = !neg
			}
			i++
		}
		if i >= len(s) {
			return Element{}, fmt.Errorf("%w: trailing operator in %q", ErrBadBasis, s)
		}
		j := i
		depth := 0
	scan:
		for ; j < len(s); j++ {
			switch s[j] {
			case '(':
				depth++
			case ')':
				depth--
			case '+', '-':
				if depth == 0 {
					break scan
				}
			}
		}
		if depth != 0 {
			return Element{}, fmt.Errorf("%w: unbalanced parentheses in %q", ErrBadBasis, s)
		}
		b, coef, err := c.parseTerm(s[i:j])
		if err != nil {
			return Element{}, err
		}
		if neg {
			coef = coef.Neg()
		}
		addInto(terms, b, coef)
		i = j
	}
	if len(terms) == 0 {
		return Element{}, nil
	}
	return Element{terms: terms}, nil
}

// ParseBasis parses a single basis element with coefficient one.
func (c *Complex) ParseBasis(s string) (Basis, error) {
	e, err := c.ParseElement(s)
	if err != nil {
		return Basis{}, err
	}
	ts := e.Terms()
	if len(ts) != 1 || !ts[0].Coef.Equal(ring.One()) {
		return Basis{}, fmt.Errorf("%w: %q is not a single basis element", ErrBadBasis, s)
	}
	return ts[0].Basis, nil
}

// parseTerm parses one product of factors into a basis element and its
// coefficient polynomial.
func (c *Complex) parseTerm(chunk string) (Basis, ring.Poly, error) {
	coef := ring.One()
	mono := make([]int, c.RingVars())
	var sp *SPart
	for _, f := range splitFactors(chunk) {
		f = strings.TrimSpace(f)
		if f == "" {
			return Basis{}, ring.Poly{}, fmt.Errorf("%w: empty factor in %q", ErrBadBasis, chunk)
		}
		switch {
		case strings.HasPrefix(f, "e("):
			if sp != nil {
				return Basis{}, ring.Poly{}, fmt.Errorf("%w: repeated S-part in %q", ErrBadBasis, chunk)
			}
			part, err := parseSPart(f)
			if err != nil {
				return Basis{}, ring.Poly{}, err
			}
			sp = &part
		case f[0] == '(':
			if !strings.HasSuffix(f, ")") {
				return Basis{}, ring.Poly{}, fmt.Errorf("%w: unbalanced parentheses in %q", ErrBadBasis, chunk)
			}
			p, err := ring.ParsePoly(f[1 : len(f)-1])
			if err != nil {
				return Basis{}, ring.Poly{}, fmt.Errorf("%w: %v", ErrBadBasis, err)
			}
			coef = coef.Mul(p)
		case f[0] == 'x' || f[0] == 'y':
			pos, exp, err := c.parseSVar(f)
			if err != nil {
				return Basis{}, ring.Poly{}, err
			}
			mono[pos] += exp
		case f[0] >= '0' && f[0] <= '9':
			r, ok := new(big.Rat).SetString(f)
			if !ok {
				return Basis{}, ring.Poly{}, fmt.Errorf("%w: bad rational %q", ErrBadBasis, f)
			}
			coef = coef.MulRat(r)
		default:
			m, err := ring.ParseMono(f)
			if err != nil {
				return Basis{}, ring.Poly{}, fmt.Errorf("%w: %v", ErrBadBasis, err)
			}
			coef = coef.Mul(ring.FromTerm(m, big.NewRat(1, 1)))
		}
	}
	if sp == nil {
		return Basis{}, ring.Poly{}, fmt.Errorf("%w: missing e(...) part in %q", ErrBadBasis, chunk)
	}
	b := Basis{Mono: mono, S: *sp}
	if err := c.CheckBasis(b); err != nil {
		return Basis{}, ring.Poly{}, err
	}
	return b, coef, nil
}

// splitFactors splits a term on '*' outside parentheses.
func splitFactors(chunk string) []string {
	var out []string
	start, depth := 0, 0
	for i := 0; i < len(chunk); i++ {
		switch chunk[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '*':
			if depth == 0 {
				out = append(out, chunk[start:i])
				start = i + 1
			}
		}
	}
	return append(out, chunk[start:])
}

// parseSVar parses an x or y variable power like "x0" or "y3^2" into its
// position in the exponent vector and its exponent.
func (c *Complex) parseSVar(f string) (pos, exp int, err error) {
	name := f
	exp = 1
	if at := strings.IndexByte(f, '^'); at >= 0 {
		name = f[:at]
		exp, err = strconv.Atoi(f[at+1:])
		if err != nil || exp < 1 {
			return 0, 0, fmt.Errorf("%w: bad exponent in %q", ErrBadBasis, f)
		}
	}
	idx, err := strconv.Atoi(name[1:])
	if err != nil || idx < 0 || idx >= c.N {
		return 0, 0, fmt.Errorf("%w: variable %q out of range for n=%d", ErrBadBasis, name, c.N)
	}
	if name[0] == 'y' {
		idx += c.N
	}
	return idx, exp, nil
}

// parseSPart parses "e()" or "e(xdeg,ydeg;v1,...,vk)".
func parseSPart(f string) (SPart, error) {
	if !strings.HasSuffix(f, ")") {
		return SPart{}, fmt.Errorf("%w: bad S-part %q", ErrBadBasis, f)
	}
	inner := f[2 : len(f)-1]
	if inner == "" {
		return Unit(), nil
	}
	head, tail, ok := strings.Cut(inner, ";")
	if !ok {
		return SPart{}, fmt.Errorf("%w: missing ';' in S-part %q", ErrBadBasis, f)
	}
	xs, ys, ok := strings.Cut(head, ",")
	if !ok {
		return SPart{}, fmt.Errorf("%w: bad bidegree in S-part %q", ErrBadBasis, f)
	}
	xdeg, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return SPart{}, fmt.Errorf("%w: bad bidegree in S-part %q", ErrBadBasis, f)
	}
	ydeg, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return SPart{}, fmt.Errorf("%w: bad bidegree in S-part %q", ErrBadBasis, f)
	}
	var verts []int
	for _, vs := range strings.Split(tail, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(vs))
		if err != nil {
			return SPart{}, fmt.Errorf("%w: bad vertex %q in S-part %q", ErrBadBasis, vs, f)
		}
		verts = append(verts, v)
	}
	return NewSPart(xdeg, ydeg, verts)
}
