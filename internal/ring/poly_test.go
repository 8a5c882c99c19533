package ring

import (
	"math/big"
	"testing"
)

func rat(a, b int64) *big.Rat { return big.NewRat(a, b) }

func TestVarNamesAndOrder(t *testing.T) {
	if got := A(3).Name(); got != "A3" {
		t.Errorf("A(3).Name() = %q, want A3", got)
	}
	if got := C(0).Name(); got != "C0" {
		t.Errorf("C(0).Name() = %q, want C0", got)
	}

	v, err := ParseVar("B12")
	if err != nil {
		t.Fatalf("ParseVar: %v", err)
	}
	if v != B(12) {
		t.Errorf("ParseVar(B12) = %v, want B12", v)
	}

	if _, err := ParseVar("D1"); err == nil {
		t.Error("ParseVar(D1) should fail")
	}
	if _, err := ParseVar("A"); err == nil {
		t.Error("ParseVar(A) should fail")
	}

	if !A(9).Less(B(0)) {
		t.Error("A9 should sort before B0")
	}
	if !B(1).Less(B(2)) {
		t.Error("B1 should sort before B2")
	}
	if B(2).Less(B(2)) {
		t.Error("B2 should not sort before itself")
	}
}

func TestMonoKeyAndMul(t *testing.T) {
	m := MonoOf(B(2), A(1), B(2))
	if got := m.Key(); got != "A1*B2^2" {
		t.Errorf("Key = %q, want A1*B2^2", got)
	}
	if got := m.Degree(); got != 3 {
		t.Errorf("Degree = %d, want 3", got)
	}

	p := MonoOf(A(1)).Mul(MonoOf(A(1), C(0)))
	if got := p.Key(); got != "A1^2*C0" {
		t.Errorf("Mul key = %q, want A1^2*C0", got)
	}

	if !MonoOf().IsConstant() {
		t.Error("empty monomial should be constant")
	}

	parsed, err := ParseMono("A1*B2^2")
	if err != nil {
		t.Fatalf("ParseMono: %v", err)
	}
	if parsed.Key() != m.Key() {
		t.Errorf("round trip = %q, want %q", parsed.Key(), m.Key())
	}
	unit, err := ParseMono("1")
	if err != nil || !unit.IsConstant() {
		t.Errorf("ParseMono(1) = %v, %v; want constant", unit, err)
	}
	if _, err := ParseMono("A1^0"); err == nil {
		t.Error("ParseMono(A1^0) should fail")
	}
}

func TestPolyAddCancel(t *testing.T) {
	p := FromVar(A(1))
	sum := p.Add(p.Neg())
	if !sum.IsZero() {
		t.Errorf("A1 + (-A1) = %s, want 0", sum)
	}

	q := p.Add(p)
	if got := q.Coefficient(MonoOf(A(1))); got.Cmp(rat(2, 1)) != 0 {
		t.Errorf("A1 + A1 coefficient = %s, want 2", got)
	}
}

func TestPolyMul(t *testing.T) {
	a1 := FromVar(A(1))
	p := a1.Add(One())         // A1 + 1
	q := a1.Sub(One())         // A1 - 1
	prod := p.Mul(q)           // A1^2 - 1
	want := FromTerm(MonoOf(A(1), A(1)), rat(1, 1)).Add(FromInt(-1))
	if !prod.Equal(want) {
		t.Errorf("(A1+1)(A1-1) = %s, want %s", prod, want)
	}
	if got := prod.Degree(); got != 2 {
		t.Errorf("Degree = %d, want 2", got)
	}
}

func TestPolyString(t *testing.T) {
	p := FromTerm(MonoOf(A(1), B(2)), rat(2, 1)).
		Add(FromTerm(MonoOf(A(3)), rat(-1, 1))).
		Add(FromRat(rat(1, 2)))
	if got := p.String(); got != "2*A1*B2 - A3 + 1/2" {
		t.Errorf("String = %q", got)
	}

	if got := Zero().String(); got != "0" {
		t.Errorf("Zero().String() = %q, want 0", got)
	}

	neg := FromTerm(MonoOf(A(0)), rat(-1, 3))
	if got := neg.String(); got != "-1/3*A0" {
		t.Errorf("String = %q, want -1/3*A0", got)
	}
}

func TestLinearDecompose(t *testing.T) {
	p := FromVar(A(1)).MulRat(rat(3, 2)).Add(FromVar(B(0)).Neg()).Add(FromInt(4))
	coeffs, c, ok := p.Linear()
	if !ok {
		t.Fatal("expected affine decomposition")
	}
	if c.Cmp(rat(4, 1)) != 0 {
		t.Errorf("constant = %s, want 4", c)
	}
	if got := coeffs[A(1)]; got == nil || got.Cmp(rat(3, 2)) != 0 {
		t.Errorf("coeff A1 = %v, want 3/2", got)
	}
	if got := coeffs[B(0)]; got == nil || got.Cmp(rat(-1, 1)) != 0 {
		t.Errorf("coeff B0 = %v, want -1", got)
	}

	if _, _, ok := p.Mul(p).Linear(); ok {
		t.Error("quadratic polynomial should not decompose as affine")
	}
}

func TestSubstitute(t *testing.T) {
	sq := FromVar(A(1)).Mul(FromVar(A(1))) // A1^2
	sub := map[Var]Poly{A(1): FromVar(B(1)).Add(One())}
	got := sq.Substitute(sub)
	want := FromTerm(MonoOf(B(1), B(1)), rat(1, 1)).
		Add(FromVar(B(1)).MulRat(rat(2, 1))).
		Add(One())
	if !got.Equal(want) {
		t.Errorf("substitute = %s, want %s", got, want)
	}

	// Unassigned variables pass through.
	passthrough := FromVar(B(7)).Substitute(sub)
	if !passthrough.Equal(FromVar(B(7))) {
		t.Errorf("passthrough = %s, want B7", passthrough)
	}
}

func TestEvalRat(t *testing.T) {
	p := FromVar(A(1)).Mul(FromVar(B(1))).Add(FromInt(1)) // A1*B1 + 1
	val := p.EvalRat(map[Var]*big.Rat{A(1): rat(2, 1), B(1): rat(1, 2)})
	if val.Cmp(rat(2, 1)) != 0 {
		t.Errorf("eval = %s, want 2", val)
	}

	// Missing assignment zeroes the term.
	val = p.EvalRat(map[Var]*big.Rat{A(1): rat(2, 1)})
	if val.Cmp(rat(1, 1)) != 0 {
		t.Errorf("eval with missing var = %s, want 1", val)
	}
}

func TestDegreeAndVars(t *testing.T) {
	if got := Zero().Degree(); got != -1 {
		t.Errorf("Degree(0) = %d, want -1", got)
	}
	p := FromVar(B(2)).Mul(FromVar(A(0))).Add(FromVar(C(1)))
	vars := p.Vars()
	want := []Var{A(0), B(2), C(1)}
	if len(vars) != len(want) {
		t.Fatalf("Vars = %v, want %v", vars, want)
	}
	for i := range want {
		if vars[i] != want[i] {
			t.Errorf("Vars[%d] = %v, want %v", i, vars[i], want[i])
		}
	}
}
