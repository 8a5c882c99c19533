// Package equations extracts coefficient constraints from Leibniz and
// associativity defects and reduces the resulting systems. Every defect
// component contributes one polynomial equation over the unknown product
// coefficients; the reducer solves the affine part exactly over the
// rationals and reports whatever nonlinear residue remains.
package equations

import (
	"sort"

	"github.com/commalg/dgares/internal/resolution"
	"github.com/commalg/dgares/internal/ring"
)

// Equation kinds, by the identity that generated them.
const (
	KindLeibniz       = "leibniz"
	KindAssociativity = "associativity"
)

// Source records where an equation came from: the generating basis elements
// and the defect component it was read off.
type Source struct {
	Kind     string
	Factors  []string
	BasisKey string
}

// Equation is one polynomial constraint Poly = 0 over the unknowns, stored in
// normalized form: coprime integer coefficients with a positive leading term.
type Equation struct {
	Poly   ring.Poly
	Source Source
}

// Key is the canonical rendering of the normalized polynomial. Equations that
// differ only by a rational scale share a key.
func (e Equation) Key() string { return e.Poly.String() }

// IsAffine reports whether the equation is affine-linear in the unknowns.
func (e Equation) IsAffine() bool {
	_, _, ok := e.Poly.Linear()
	return ok
}

// System is an ordered, deduplicated collection of equations over a fixed
// complex.
type System struct {
	N         int
	Kind      string
	Equations []Equation

	seen map[string]bool
}

// NewSystem returns an empty system for the complex on n vertices.
func NewSystem(n int, kind string) *System {
	return &System{N: n, Kind: kind, seen: make(map[string]bool)}
}

// Add normalizes the equation and appends it unless it is trivial (0 = 0) or
// a scalar multiple of one already present. It reports whether the equation
// was kept.
func (s *System) Add(eq Equation) bool {
	p := eq.Poly.Normalize()
	if p.IsZero() {
		return false
	}
	key := p.String()
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	if s.seen[key] {
		return false
	}
	s.seen[key] = true
	s.Equations = append(s.Equations, Equation{Poly: p, Source: eq.Source})
	return true
}

// Extract appends one equation per component of the defect element, in basis
// key order. It returns the number of equations kept after deduplication.
func (s *System) Extract(defect resolution.Element, src Source) int {
	kept := 0
	for _, term := range defect.Terms() {
		eq := Equation{Poly: term.Coef, Source: src}
		eq.Source.BasisKey = term.Basis.Key()
		if s.Add(eq) {
			kept++
		}
	}
	return kept
}

// Len returns the number of equations.
func (s *System) Len() int { return len(s.Equations) }

// Vars returns every unknown appearing in the system, sorted.
func (s *System) Vars() []ring.Var {
	set := make(map[ring.Var]bool)
	for _, eq := range s.Equations {
		for _, v := range eq.Poly.Vars() {
			set[v] = true
		}
	}
	out := make([]ring.Var, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// AffineCount returns how many equations are affine-linear.
func (s *System) AffineCount() int {
	n := 0
	for _, eq := range s.Equations {
		if eq.IsAffine() {
			n++
		}
	}
	return n
}
