package resolution

import "github.com/commalg/dgares/internal/ring"

// incMono returns a copy of m with position pos incremented.
func incMono(m []int, pos int) []int {
	out := make([]int, len(m))
	copy(out, m)
	out[pos]++
	return out
}

// removeAt returns a copy of verts with position idx removed.
func removeAt(verts []int, idx int) []int {
	out := make([]int, 0, len(verts)-1)
	out = append(out, verts[:idx]...)
	out = append(out, verts[idx+1:]...)
	return out
}

// DifferentialBasis computes the differential of a single basis element.
// Unit elements map to zero. At homological degree one the image lands in
// the free module itself:
//
//	d(m*e(1,1;i,j)) = m*x_i*y_j*e() - m*x_j*y_i*e()
//
// In higher degrees each vertex is removed in turn with alternating sign,
// lowering XDeg (vertex moves into the x block) or YDeg (into the y block),
// skipping whichever degree is already 1. The basis element must be valid
// for this complex.
func (c *Complex) DifferentialBasis(b Basis) Element {
	if b.S.IsUnit() {
		return Element{}
	}

	if len(b.S.Verts) == 2 {
		i, j := b.S.Verts[0], b.S.Verts[1]
		plus := Basis{Mono: incMono(incMono(b.Mono, i), j+c.N), S: Unit()}
		minus := Basis{Mono: incMono(incMono(b.Mono, j), i+c.N), S: Unit()}
		return Monomial(plus).Sub(Monomial(minus))
	}

	terms := make(map[string]elemTerm)
	for idx, v := range b.S.Verts {
		signX := int64(1)
		if idx%2 == 1 {
			signX = -1
		}
		rest := removeAt(b.S.Verts, idx)
		if b.S.XDeg > 1 {
			nb := Basis{
				Mono: incMono(b.Mono, v),
				S:    SPart{XDeg: b.S.XDeg - 1, YDeg: b.S.YDeg, Verts: rest},
			}
			addInto(terms, nb, ring.FromInt(signX))
		}
		if b.S.YDeg > 1 {
			nb := Basis{
				Mono: incMono(b.Mono, v+c.N),
				S:    SPart{XDeg: b.S.XDeg, YDeg: b.S.YDeg - 1, Verts: rest},
			}
			addInto(terms, nb, ring.FromInt(-signX))
		}
	}
	if len(terms) == 0 {
		return Element{}
	}
	return Element{terms: terms}
}

// Differential extends DifferentialBasis linearly over an element.
func (c *Complex) Differential(e Element) Element {
	out := Element{}
	for _, t := range e.terms {
		out = out.Add(c.DifferentialBasis(t.basis).Scale(t.coef))
	}
	return out
}
