package resolution

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadBasis indicates a malformed basis element.
var ErrBadBasis = errors.New("malformed basis element")

// SPart is the S-module part of a basis element: the unit in homological
// degree zero, or a bidegree over a vertex subset in positive degree.
type SPart struct {
	XDeg  int
	YDeg  int
	Verts []int
}

// Unit returns the degree-zero S-part e().
func Unit() SPart { return SPart{} }

// NewSPart builds and validates a positive-degree S-part. Vertices must be
// strictly increasing with xdeg, ydeg >= 1 and xdeg+ydeg == len(verts).
func NewSPart(xdeg, ydeg int, verts []int) (SPart, error) {
	if xdeg < 1 || ydeg < 1 {
		return SPart{}, fmt.Errorf("%w: bidegree (%d,%d)", ErrBadBasis, xdeg, ydeg)
	}
	if xdeg+ydeg != len(verts) {
		return SPart{}, fmt.Errorf("%w: bidegree (%d,%d) over %d vertices", ErrBadBasis, xdeg, ydeg, len(verts))
	}
	for i := 1; i < len(verts); i++ {
		if verts[i] <= verts[i-1] {
			return SPart{}, fmt.Errorf("%w: vertices %v not strictly increasing", ErrBadBasis, verts)
		}
	}
	if len(verts) > 0 && verts[0] < 0 {
		return SPart{}, fmt.Errorf("%w: negative vertex in %v", ErrBadBasis, verts)
	}
	vs := make([]int, len(verts))
	copy(vs, verts)
	return SPart{XDeg: xdeg, YDeg: ydeg, Verts: vs}, nil
}

// IsUnit reports whether the S-part is the degree-zero unit.
func (s SPart) IsUnit() bool { return len(s.Verts) == 0 }

// HDeg is the homological degree: 0 for the unit, len(Verts)-1 otherwise.
func (s SPart) HDeg() int {
	if s.IsUnit() {
		return 0
	}
	return len(s.Verts) - 1
}

// SDeg is the S-degree xdeg+ydeg (zero for the unit). For a basis element in
// homological degree h this equals h+1.
func (s SPart) SDeg() int { return s.XDeg + s.YDeg }

// String renders the S-part, e.g. "e(1,2;0,2,4)" or "e()".
func (s SPart) String() string {
	if s.IsUnit() {
		return "e()"
	}
	var sb strings.Builder
	sb.WriteString("e(")
	sb.WriteString(strconv.Itoa(s.XDeg))
	sb.WriteByte(',')
	sb.WriteString(strconv.Itoa(s.YDeg))
	sb.WriteByte(';')
	for i, v := range s.Verts {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteByte(')')
	return sb.String()
}

// Basis is one basis element of the ambient free module: a monomial exponent
// vector over x_0..x_{n-1},y_0..y_{n-1} (x-block first) and an S-part.
type Basis struct {
	Mono []int
	S    SPart
}

// Key renders the canonical encoding used for map keys and display, e.g.
// "x0^2*y3*e(1,2;0,2,4)". A zero monomial leaves no prefix.
func (b Basis) Key() string {
	mono := monoString(b.Mono)
	if mono == "" {
		return b.S.String()
	}
	return mono + "*" + b.S.String()
}

// String is the Key rendering.
func (b Basis) String() string { return b.Key() }

// TwistedDeg is the internal degree of the basis element: total monomial
// degree plus the S-degree.
func (b Basis) TwistedDeg() int {
	d := b.S.SDeg()
	for _, e := range b.Mono {
		d += e
	}
	return d
}

// monoString renders an exponent vector split into x- and y-blocks.
func monoString(mono []int) string {
	n := len(mono) / 2
	var sb strings.Builder
	writeVar := func(name string, idx, exp int) {
		if exp == 0 {
			return
		}
		if sb.Len() > 0 {
			sb.WriteByte('*')
		}
		sb.WriteString(name)
		sb.WriteString(strconv.Itoa(idx))
		if exp > 1 {
			sb.WriteByte('^')
			sb.WriteString(strconv.Itoa(exp))
		}
	}
	for i := 0; i < n; i++ {
		writeVar("x", i, mono[i])
	}
	for i := 0; i < n; i++ {
		writeVar("y", i, mono[n+i])
	}
	return sb.String()
}

// Complex is the minimal free resolution of the binomial edge ideal of the
// complete graph on N vertices together with its candidate product structure.
type Complex struct {
	N int
}

// New returns the complex for the complete graph K_n. n must be at least 2.
func New(n int) (*Complex, error) {
	if n < 2 {
		return nil, fmt.Errorf("complete graph needs at least 2 vertices, got %d", n)
	}
	return &Complex{N: n}, nil
}

// Length is the projective dimension n-1: homological degrees run 0..Length.
func (c *Complex) Length() int { return c.N - 1 }

// RingVars is the number of edge-ring variables, 2n.
func (c *Complex) RingVars() int { return 2 * c.N }

// ZeroMono returns a fresh all-zero exponent vector.
func (c *Complex) ZeroMono() []int { return make([]int, 2*c.N) }

// CheckBasis validates a basis element against the complex: exponent vector of
// length 2n with non-negative entries, vertices within 0..n-1, and a valid
// S-part.
func (c *Complex) CheckBasis(b Basis) error {
	if len(b.Mono) != 2*c.N {
		return fmt.Errorf("%w: exponent vector has length %d, want %d", ErrBadBasis, len(b.Mono), 2*c.N)
	}
	for _, e := range b.Mono {
		if e < 0 {
			return fmt.Errorf("%w: negative exponent in %v", ErrBadBasis, b.Mono)
		}
	}
	if b.S.IsUnit() {
		return nil
	}
	if _, err := NewSPart(b.S.XDeg, b.S.YDeg, b.S.Verts); err != nil {
		return err
	}
	if last := b.S.Verts[len(b.S.Verts)-1]; last >= c.N {
		return fmt.Errorf("%w: vertex %d outside 0..%d", ErrBadBasis, last, c.N-1)
	}
	return nil
}

// sParts enumerates the S-parts in homological degree h: xdeg outer from 1 to
// h, vertex subsets inner in lexicographic order. Degree zero yields the unit.
func (c *Complex) sParts(h int) []SPart {
	if h == 0 {
		return []SPart{Unit()}
	}
	var out []SPart
	for xdeg := 1; xdeg <= h; xdeg++ {
		EachCombination(c.N, h+1, func(verts []int) bool {
			vs := make([]int, len(verts))
			copy(vs, verts)
			out = append(out, SPart{XDeg: xdeg, YDeg: h + 1 - xdeg, Verts: vs})
			return true
		})
	}
	return out
}

// SBasis returns the zero-monomial basis elements in homological degree h.
// These generate every graded slice under monomial shifts, so sweeps over
// products and defects range over them.
func (c *Complex) SBasis(h int) []Basis {
	parts := c.sParts(h)
	out := make([]Basis, 0, len(parts))
	for _, s := range parts {
		out = append(out, Basis{Mono: c.ZeroMono(), S: s})
	}
	return out
}

// coeffDeg is the monomial degree of slice (h, r): r in degree zero and
// r-(h+1) above. Negative means the slice is empty.
func coeffDeg(h, r int) int {
	if h == 0 {
		return r
	}
	return r - (h + 1)
}

// Slice enumerates the basis of the graded slice in homological degree h and
// ring degree r: every monomial of the slice's coefficient degree paired with
// every S-part, monomial-major.
func (c *Complex) Slice(h, r int) []Basis {
	d := coeffDeg(h, r)
	if d < 0 || h < 0 || h > c.Length() {
		return nil
	}
	parts := c.sParts(h)
	var out []Basis
	EachCombination(d+2*c.N-1, 2*c.N-1, func(comb []int) bool {
		mono := CombinationTuple(comb, d)
		for _, s := range parts {
			m := make([]int, len(mono))
			copy(m, mono)
			out = append(out, Basis{Mono: m, S: s})
		}
		return true
	})
	return out
}

// SliceSize counts the slice basis without materializing it.
func (c *Complex) SliceSize(h, r int) int64 {
	d := coeffDeg(h, r)
	if d < 0 || h < 0 || h > c.Length() {
		return 0
	}
	monos := Binomial(d+2*c.N-1, 2*c.N-1)
	if h == 0 {
		return monos
	}
	return monos * int64(h) * Binomial(c.N, h+1)
}

// SBasisSize counts the S-basis in homological degree h; this is the rank of
// the h-th free module in the resolution.
func (c *Complex) SBasisSize(h int) int64 {
	if h < 0 || h > c.Length() {
		return 0
	}
	if h == 0 {
		return 1
	}
	return int64(h) * Binomial(c.N, h+1)
}
