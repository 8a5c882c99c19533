package resolution

import (
	"errors"
	"testing"

	"github.com/commalg/dgares/internal/ring"
)

func TestElementStringRendering(t *testing.T) {
	c := mustComplex(t, 3)
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"e()", "e()"},
		{"-e(1,1;0,1)", "-e(1,1;0,1)"},
		{"x0*y1*e() - x1*y0*e()", "x0*y1*e() - x1*y0*e()"},
		{"e(1,1;0,2) + e(1,1;0,1)", "e(1,1;0,1) + e(1,1;0,2)"},
		{"e(1,1;0,1) - 2*e(1,1;0,2)", "e(1,1;0,1) - 2*e(1,1;0,2)"},
		{"(A1 + B2)*e(1,1;0,1)", "(A1 + B2)*e(1,1;0,1)"},
		{"-A1*e(1,1;0,1)", "-A1*e(1,1;0,1)"},
		{"1/2*x0*e()", "1/2*x0*e()"},
	}
	for _, cse := range cases {
		if got := mustElement(t, c, cse.in).String(); got != cse.want {
			t.Errorf("String(%q) = %q, want %q", cse.in, got, cse.want)
		}
	}
}

func TestElementAddCancel(t *testing.T) {
	c := mustComplex(t, 3)
	e := mustElement(t, c, "e(1,1;0,1) - x0*e()")
	if got := e.Sub(e); !got.IsZero() {
		t.Errorf("e - e = %s, want 0", got)
	}
	sum := e.Add(e)
	b := mustBasis(t, c, "e(1,1;0,1)")
	if got := sum.Coefficient(b); !got.Equal(ring.FromInt(2)) {
		t.Errorf("coef after doubling = %s, want 2", got)
	}
}

func TestElementScale(t *testing.T) {
	c := mustComplex(t, 3)
	e := mustElement(t, c, "e(1,1;0,1)")
	scaled := e.Scale(ring.FromVar(ring.A(1)))
	want := mustElement(t, c, "A1*e(1,1;0,1)")
	if !scaled.Equal(want) {
		t.Errorf("scaled = %s, want %s", scaled, want)
	}
	if got := e.Scale(ring.Zero()); !got.IsZero() {
		t.Errorf("scale by zero = %s, want 0", got)
	}
}

func TestElementSDeg(t *testing.T) {
	c := mustComplex(t, 3)
	cases := []struct {
		in   string
		want int
	}{
		{"0", 0},
		{"x0^3*e()", 0},
		{"e(1,1;0,1) + e(1,1;1,2)", 2},
		{"e(1,2;0,1,2)", 3},
	}
	for _, cse := range cases {
		got, err := mustElement(t, c, cse.in).SDeg()
		if err != nil {
			t.Fatalf("SDeg(%q): %v", cse.in, err)
		}
		if got != cse.want {
			t.Errorf("SDeg(%q) = %d, want %d", cse.in, got, cse.want)
		}
	}
	mixed := mustElement(t, c, "e() + e(1,1;0,1)")
	if _, err := mixed.SDeg(); !errors.Is(err, ErrInhomogeneous) {
		t.Errorf("SDeg(mixed) err = %v, want ErrInhomogeneous", err)
	}
}

func TestElementSubstituteCoeffs(t *testing.T) {
	c := mustComplex(t, 3)
	e := mustElement(t, c, "(A1 - 1)*e(1,1;0,1) + B1*e(1,1;0,2)")
	out := e.SubstituteCoeffs(map[ring.Var]ring.Poly{
		ring.A(1): ring.One(),
		ring.B(1): ring.FromInt(3),
	})
	want := mustElement(t, c, "3*e(1,1;0,2)")
	if !out.Equal(want) {
		t.Errorf("substituted = %s, want %s", out, want)
	}
}
