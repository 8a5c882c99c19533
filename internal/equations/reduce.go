package equations

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/commalg/dgares/internal/ring"
)

// Reduction is the outcome of eliminating the affine subsystem.
type Reduction struct {
	// Pivots maps each solved unknown to its affine expression in free
	// variables.
	Pivots map[ring.Var]ring.Poly
	// Free lists the unknowns of the system not solved by a pivot, sorted.
	Free []ring.Var
	// Rank is the number of pivots.
	Rank int
	// Contradiction is set when an equation reduces to a nonzero constant.
	Contradiction bool
	// ContradictionSource points at the first offending equation.
	ContradictionSource *Source
	// Redundant counts equations that reduced to 0 = 0.
	Redundant int
	// Residual holds the nonlinear equations after pivot substitution,
	// renormalized and deduplicated. They are reported, not solved.
	Residual []Equation
}

// SolvedVars returns the pivot variables, sorted.
func (r *Reduction) SolvedVars() []ring.Var {
	out := make([]ring.Var, 0, len(r.Pivots))
	for v := range r.Pivots {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func smallestVar(coeffs map[ring.Var]*big.Rat) ring.Var {
	var min ring.Var
	first := true
	for v := range coeffs {
		if first || v.Less(min) {
			min = v
			first = false
		}
	}
	return min
}

// Reduce runs sparse Gauss-Jordan elimination over the rationals on the
// affine equations, picking as pivot the smallest unknown in variable order
// (A1 < A2 < ... < B1 < ...). Nonlinear equations get the solved variables
// substituted in and come back as the residual.
func Reduce(sys *System) *Reduction {
	red := &Reduction{Pivots: make(map[ring.Var]ring.Poly)}
	var nonlinear []Equation

	for _, eq := range sys.Equations {
		if !eq.IsAffine() {
			nonlinear = append(nonlinear, eq)
			continue
		}
		p := eq.Poly.Substitute(red.Pivots)
		if p.IsZero() {
			red.Redundant++
			continue
		}
		coeffs, _, _ := p.Linear()
		if len(coeffs) == 0 {
			red.flagContradiction(eq.Source)
			continue
		}
		v := smallestVar(coeffs)
		a := coeffs[v]
		// Solve p = 0 for v: v = -(p - a*v)/a.
		expr := p.Sub(ring.FromTerm(ring.MonoOf(v), a)).
			MulRat(new(big.Rat).Quo(big.NewRat(-1, 1), a))
		for w, e := range red.Pivots {
			red.Pivots[w] = e.Substitute(map[ring.Var]ring.Poly{v: expr})
		}
		red.Pivots[v] = expr
	}
	red.Rank = len(red.Pivots)

	for _, v := range sys.Vars() {
		if _, ok := red.Pivots[v]; !ok {
			red.Free = append(red.Free, v)
		}
	}

	res := NewSystem(sys.N, sys.Kind)
	for _, eq := range nonlinear {
		p := eq.Poly.Substitute(red.Pivots)
		switch {
		case p.IsZero():
			red.Redundant++
		case p.Degree() == 0:
			red.flagContradiction(eq.Source)
		default:
			res.Add(Equation{Poly: p, Source: eq.Source})
		}
	}
	red.Residual = res.Equations
	return red
}

func (r *Reduction) flagContradiction(src Source) {
	if r.Contradiction {
		return
	}
	r.Contradiction = true
	cp := src
	r.ContradictionSource = &cp
}

// ApplySolution substitutes the reduction's solved variables into every
// equation of the system, renormalizing and deduplicating. Equations that
// collapse to 0 = 0 are dropped.
func ApplySolution(sys *System, red *Reduction) *System {
	out := NewSystem(sys.N, sys.Kind)
	for _, eq := range sys.Equations {
		out.Add(Equation{Poly: eq.Poly.Substitute(red.Pivots), Source: eq.Source})
	}
	return out
}

// ModReduction is the rank profile of the affine subsystem over GF(p).
type ModReduction struct {
	P             uint64
	Rank          int
	Vars          int
	Equations     int
	Contradiction bool
}

type modRow struct {
	coeffs map[ring.Var]uint64
	c      uint64
}

// ReduceMod eliminates the affine subsystem over GF(p) for a small prime p.
// A modular rank below the rational one flags primes where the integer
// system degenerates.
func ReduceMod(sys *System, p uint64) (*ModReduction, error) {
	if p < 2 || p >= 1<<31 {
		return nil, fmt.Errorf("modulus %d out of range (need 2 <= p < 2^31)", p)
	}
	if !isPrime(p) {
		return nil, fmt.Errorf("modulus %d is not prime", p)
	}

	out := &ModReduction{P: p, Vars: len(sys.Vars())}
	pivots := make(map[ring.Var]modRow)

	for _, eq := range sys.Equations {
		coeffs, c, ok := eq.Poly.Linear()
		if !ok {
			continue
		}
		out.Equations++
		row, err := newModRow(coeffs, c, p)
		if err != nil {
			return nil, err
		}
		// Substitute known pivots; their expressions only mention free
		// variables, so one pass over a snapshot terminates.
		var subst []ring.Var
		for v := range row.coeffs {
			if _, ok := pivots[v]; ok {
				subst = append(subst, v)
			}
		}
		for _, v := range subst {
			row.addScaled(pivots[v], row.coeffs[v], p)
			delete(row.coeffs, v)
		}
		if len(row.coeffs) == 0 {
			if row.c != 0 {
				out.Contradiction = true
			}
			continue
		}
		v := smallestModVar(row.coeffs)
		a := row.coeffs[v]
		delete(row.coeffs, v)
		// v = -(row - a*v)/a over GF(p).
		inv := invMod(a, p)
		expr := modRow{coeffs: make(map[ring.Var]uint64, len(row.coeffs)), c: mulMod(p-row.c%p, inv, p)}
		for w, cw := range row.coeffs {
			expr.coeffs[w] = mulMod(p-cw, inv, p)
		}
		for w, e := range pivots {
			if cv, ok := e.coeffs[v]; ok {
				delete(e.coeffs, v)
				e.addScaled(expr, cv, p)
				pivots[w] = e
			}
		}
		pivots[v] = expr
	}
	out.Rank = len(pivots)
	return out, nil
}

// newModRow maps rational coefficients into GF(p). System equations are
// normalized to integers, so denominators reduce to 1.
func newModRow(coeffs map[ring.Var]*big.Rat, c *big.Rat, p uint64) (modRow, error) {
	row := modRow{coeffs: make(map[ring.Var]uint64, len(coeffs))}
	pc, err := ratMod(c, p)
	if err != nil {
		return modRow{}, err
	}
	row.c = pc
	for v, r := range coeffs {
		m, err := ratMod(r, p)
		if err != nil {
			return modRow{}, err
		}
		if m != 0 {
			row.coeffs[v] = m
		}
	}
	return row, nil
}

func ratMod(r *big.Rat, p uint64) (uint64, error) {
	pb := new(big.Int).SetUint64(p)
	den := new(big.Int).Mod(r.Denom(), pb)
	if den.Sign() == 0 {
		return 0, fmt.Errorf("denominator of %s divisible by %d", r.RatString(), p)
	}
	num := new(big.Int).Mod(r.Num(), pb)
	return mulMod(num.Uint64(), invMod(den.Uint64(), p), p), nil
}

// addScaled adds s*other to the row in place, pruning zeros. The scaled row
// must not mention variables being iterated by the caller.
func (r *modRow) addScaled(other modRow, s uint64, p uint64) {
	for v, c := range other.coeffs {
		sum := addMod(r.coeffs[v], mulMod(c, s, p), p)
		if sum == 0 {
			delete(r.coeffs, v)
		} else {
			r.coeffs[v] = sum
		}
	}
	r.c = addMod(r.c, mulMod(other.c, s, p), p)
}

func smallestModVar(coeffs map[ring.Var]uint64) ring.Var {
	var min ring.Var
	first := true
	for v := range coeffs {
		if first || v.Less(min) {
			min = v
			first = false
		}
	}
	return min
}

func addMod(a, b, p uint64) uint64 { return (a + b) % p }

func mulMod(a, b, p uint64) uint64 { return (a % p) * (b % p) % p }

// invMod returns the inverse of a modulo prime p by extended Euclid.
func invMod(a, p uint64) uint64 {
	t, newT := int64(0), int64(1)
	r, newR := int64(p), int64(a%p)
	for newR != 0 {
		q := r / newR
		t, newT = newT, t-q*newT
		r, newR = newR, r-q*newR
	}
	if t < 0 {
		t += int64(p)
	}
	return uint64(t)
}

func isPrime(p uint64) bool {
	if p < 2 {
		return false
	}
	for d := uint64(2); d*d <= p; d++ {
		if p%d == 0 {
			return false
		}
	}
	return true
}
