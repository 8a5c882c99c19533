package resolution

import "testing"

func TestDifferentialUnit(t *testing.T) {
	c := mustComplex(t, 3)
	d := c.DifferentialBasis(mustBasis(t, c, "x0^2*y1*e()"))
	if !d.IsZero() {
		t.Errorf("d(unit element) = %s, want 0", d)
	}
}

func TestDifferentialDegreeOne(t *testing.T) {
	c := mustComplex(t, 2)
	got := c.DifferentialBasis(mustBasis(t, c, "e(1,1;0,1)"))
	want := mustElement(t, c, "x0*y1*e() - x1*y0*e()")
	if !got.Equal(want) {
		t.Errorf("d(e(1,1;0,1)) = %s, want %s", got, want)
	}
}

func TestDifferentialDegreeOneShifted(t *testing.T) {
	c := mustComplex(t, 3)
	got := c.DifferentialBasis(mustBasis(t, c, "y2*e(1,1;0,2)"))
	want := mustElement(t, c, "x0*y2^2*e() - x2*y0*y2*e()")
	if !got.Equal(want) {
		t.Errorf("d(y2*e(1,1;0,2)) = %s, want %s", got, want)
	}
}

func TestDifferentialHigherDegree(t *testing.T) {
	c := mustComplex(t, 3)
	cases := []struct {
		in   string
		want string
	}{
		// XDeg 1 keeps only the y branch, YDeg 1 only the x branch.
		{"e(1,2;0,1,2)", "-y0*e(1,1;1,2) + y1*e(1,1;0,2) - y2*e(1,1;0,1)"},
		{"e(2,1;0,1,2)", "x0*e(1,1;1,2) - x1*e(1,1;0,2) + x2*e(1,1;0,1)"},
	}
	for _, cse := range cases {
		got := c.DifferentialBasis(mustBasis(t, c, cse.in))
		want := mustElement(t, c, cse.want)
		if !got.Equal(want) {
			t.Errorf("d(%s) = %s, want %s", cse.in, got, want)
		}
	}
}

func TestDifferentialBothBranches(t *testing.T) {
	c := mustComplex(t, 4)
	got := c.DifferentialBasis(mustBasis(t, c, "e(2,2;0,1,2,3)"))
	want := mustElement(t, c,
		"x0*e(1,2;1,2,3) - x1*e(1,2;0,2,3) + x2*e(1,2;0,1,3) - x3*e(1,2;0,1,2)"+
			" - y0*e(2,1;1,2,3) + y1*e(2,1;0,2,3) - y2*e(2,1;0,1,3) + y3*e(2,1;0,1,2)")
	if !got.Equal(want) {
		t.Errorf("d(e(2,2;0,1,2,3)) = %s, want %s", got, want)
	}
}

func TestDifferentialSquareZero(t *testing.T) {
	for _, n := range []int{3, 4, 5} {
		c := mustComplex(t, n)
		for h := 2; h <= c.Length(); h++ {
			for _, b := range c.SBasis(h) {
				dd := c.Differential(c.DifferentialBasis(b))
				if !dd.IsZero() {
					t.Errorf("n=%d: d(d(%s)) = %s, want 0", n, b.Key(), dd)
				}
			}
		}
	}
}

func TestDifferentialSquareZeroShifted(t *testing.T) {
	c := mustComplex(t, 4)
	b := mustBasis(t, c, "x1*y0^2*e(2,2;0,1,2,3)")
	dd := c.Differential(c.DifferentialBasis(b))
	if !dd.IsZero() {
		t.Errorf("d(d(%s)) = %s, want 0", b.Key(), dd)
	}
}

func TestDifferentialPreservesTwistedDegree(t *testing.T) {
	c := mustComplex(t, 4)
	b := mustBasis(t, c, "x0*e(2,1;0,2,3)")
	deg := b.TwistedDeg()
	for _, term := range c.DifferentialBasis(b).Terms() {
		if got := term.Basis.TwistedDeg(); got != deg {
			t.Errorf("term %s has twisted degree %d, want %d", term.Basis.Key(), got, deg)
		}
	}
}

func TestDifferentialLinearOverUnknowns(t *testing.T) {
	c := mustComplex(t, 2)
	got := c.Differential(mustElement(t, c, "A1*e(1,1;0,1)"))
	want := mustElement(t, c, "A1*x0*y1*e() - A1*x1*y0*e()")
	if !got.Equal(want) {
		t.Errorf("d(A1*e(1,1;0,1)) = %s, want %s", got, want)
	}
}

func TestDifferentialCommutesWithShift(t *testing.T) {
	c := mustComplex(t, 4)
	shift := mustElement(t, c, "x2*y0*e()")
	b := mustBasis(t, c, "e(1,2;0,1,3)")
	left := c.Differential(c.Product(shift, Monomial(b)))
	right := c.Product(shift, c.DifferentialBasis(b))
	if !left.Equal(right) {
		t.Errorf("d(m*b) = %s, m*d(b) = %s", left, right)
	}
}
