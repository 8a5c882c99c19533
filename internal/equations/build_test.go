package equations

import (
	"sync/atomic"
	"testing"
)

func TestRunJobsCoversAllIndices(t *testing.T) {
	for _, workers := range []int{1, 4, 100} {
		n := 57
		var calls int64
		results := make([]int, n)
		runJobs(workers, n, func(i int) {
			atomic.AddInt64(&calls, 1)
			results[i] = i + 1
		})
		if calls != int64(n) {
			t.Errorf("workers=%d: %d calls, want %d", workers, calls, n)
		}
		for i, r := range results {
			if r != i+1 {
				t.Fatalf("workers=%d: job %d not run", workers, i)
			}
		}
	}
}

func TestBuildLeibnizContainsVerifiedEquations(t *testing.T) {
	c := mustComplex(t, 3)
	sys := BuildLeibniz(c, Options{Workers: 1})
	if sys.Kind != KindLeibniz || sys.N != 3 {
		t.Fatalf("system kind/n = %q/%d", sys.Kind, sys.N)
	}
	if sys.Len() == 0 {
		t.Fatal("empty system")
	}
	// The pair (e(1,1;0,1), e(1,1;1,2)) shares vertex 1 in the middle of the
	// union and pins the second product coefficients.
	have := make(map[string]bool)
	for _, eq := range sys.Equations {
		have[eq.Key()] = true
	}
	for _, want := range []string{"A2 - 1", "B2 - 1", "A2 - B2"} {
		if !have[want] {
			t.Errorf("system is missing %q", want)
		}
	}
	if got := sys.AffineCount(); got != sys.Len() {
		t.Errorf("AffineCount = %d of %d, want every Leibniz equation affine", got, sys.Len())
	}
}

func TestBuildLeibnizSources(t *testing.T) {
	c := mustComplex(t, 3)
	sys := BuildLeibniz(c, Options{Workers: 1})
	for i, eq := range sys.Equations {
		src := eq.Source
		if src.Kind != KindLeibniz {
			t.Fatalf("equation %d kind = %q", i, src.Kind)
		}
		if len(src.Factors) != 2 {
			t.Fatalf("equation %d factors = %v", i, src.Factors)
		}
		hf := mustBasis(t, c, src.Factors[0]).S.HDeg()
		hg := mustBasis(t, c, src.Factors[1]).S.HDeg()
		if hf < 1 || hg < 1 || hf+hg > c.N {
			t.Errorf("equation %d from degrees (%d,%d) outside the sweep", i, hf, hg)
		}
		if src.BasisKey == "" {
			t.Errorf("equation %d has no basis key", i)
		}
	}
}

func TestBuildLeibnizDeterministic(t *testing.T) {
	c := mustComplex(t, 4)
	serial := BuildLeibniz(c, Options{Workers: 1})
	parallel := BuildLeibniz(c, Options{Workers: 8})
	if serial.Len() != parallel.Len() {
		t.Fatalf("lengths differ: %d vs %d", serial.Len(), parallel.Len())
	}
	for i := range serial.Equations {
		a, b := serial.Equations[i], parallel.Equations[i]
		if a.Key() != b.Key() {
			t.Fatalf("equation %d differs: %q vs %q", i, a.Key(), b.Key())
		}
		if a.Source.BasisKey != b.Source.BasisKey || a.Source.Factors[0] != b.Source.Factors[0] {
			t.Fatalf("equation %d source differs", i)
		}
	}
}

func TestBuildAssociativity(t *testing.T) {
	c := mustComplex(t, 5)
	sys := BuildAssociativity(c, Options{})
	if sys.Kind != KindAssociativity {
		t.Fatalf("kind = %q", sys.Kind)
	}
	if sys.Len() == 0 {
		t.Fatal("empty system")
	}
	sawQuadratic := false
	for i, eq := range sys.Equations {
		if len(eq.Source.Factors) != 3 {
			t.Fatalf("equation %d factors = %v", i, eq.Source.Factors)
		}
		hsum := 0
		for _, f := range eq.Source.Factors {
			hsum += mustBasis(t, c, f).S.HDeg()
		}
		if hsum > c.N-1 {
			t.Errorf("equation %d from degree sum %d outside the sweep", i, hsum)
		}
		if d := eq.Poly.Degree(); d > 2 {
			t.Errorf("equation %d has degree %d, want at most 2", i, d)
		} else if d == 2 {
			sawQuadratic = true
		}
	}
	if !sawQuadratic {
		t.Error("no quadratic associativity equation found")
	}
}
