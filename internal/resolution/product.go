package resolution

import "github.com/commalg/dgares/internal/ring"

// addMono returns the componentwise sum of two exponent vectors.
func addMono(a, b []int) []int {
	out := make([]int, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

// mergeVerts merges two strictly increasing vertex lists into their sorted
// union and intersection.
func mergeVerts(a, b []int) (union, inter []int) {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			union = append(union, a[i])
			i++
		case a[i] > b[j]:
			union = append(union, b[j])
			j++
		default:
			union = append(union, a[i])
			inter = append(inter, a[i])
			i++
			j++
		}
	}
	union = append(union, a[i:]...)
	union = append(union, b[j:]...)
	return union, inter
}

// ProductBasis computes the candidate product of two basis elements. Unknown
// coefficients A_k and B_k enter through the vertex positions of the combined
// S-part; everything else is forced by the multigrading:
//
//   - a unit S-part acts by shifting the monomial of the other factor
//   - more vertices than n+1 in total leaves no room in the resolution
//   - two degree-one factors are put in vertex order first, with a sign
//   - disjoint vertex sets contribute one A and one B term per union vertex,
//     dropping that vertex; a single shared vertex contributes its two terms
//     with the union kept; two or more shared vertices kill the product
func (c *Complex) ProductBasis(f, g Basis) Element {
	if f.S.IsUnit() {
		return Monomial(Basis{Mono: addMono(f.Mono, g.Mono), S: g.S})
	}
	if g.S.IsUnit() {
		return Monomial(Basis{Mono: addMono(f.Mono, g.Mono), S: f.S})
	}
	if len(f.S.Verts)+len(g.S.Verts) > c.N+1 {
		return Element{}
	}
	if len(f.S.Verts) == 2 && len(g.S.Verts) == 2 && f.S.Verts[0] > g.S.Verts[0] {
		return c.ProductBasis(g, f).Neg()
	}

	union, inter := mergeVerts(f.S.Verts, g.S.Verts)
	if len(inter) >= 2 {
		return Element{}
	}
	xdeg := f.S.XDeg + g.S.XDeg
	ydeg := f.S.YDeg + g.S.YDeg
	mono := addMono(f.Mono, g.Mono)

	terms := make(map[string]elemTerm)
	emit := func(k, v int, verts []int) {
		xb := Basis{
			Mono: incMono(mono, v),
			S:    SPart{XDeg: xdeg - 1, YDeg: ydeg, Verts: verts},
		}
		addInto(terms, xb, ring.FromVar(ring.A(k+1)))
		yb := Basis{
			Mono: incMono(mono, v+c.N),
			S:    SPart{XDeg: xdeg, YDeg: ydeg - 1, Verts: verts},
		}
		addInto(terms, yb, ring.FromVar(ring.B(k+1)))
	}

	if len(inter) == 0 {
		for k, v := range union {
			emit(k, v, removeAt(union, k))
		}
	} else {
		v := inter[0]
		k := 0
		for union[k] != v {
			k++
		}
		emit(k, v, union)
	}
	if len(terms) == 0 {
		return Element{}
	}
	return Element{terms: terms}
}

// Product extends ProductBasis bilinearly. Coefficients multiply in the
// unknowns ring, so products of elements that already carry A and B
// variables pick up quadratic coefficients.
func (c *Complex) Product(e1, e2 Element) Element {
	out := Element{}
	for _, t1 := range e1.terms {
		for _, t2 := range e2.terms {
			p := c.ProductBasis(t1.basis, t2.basis)
			out = out.Add(p.Scale(t1.coef.Mul(t2.coef)))
		}
	}
	return out
}
