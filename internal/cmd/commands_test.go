package cmd

import (
	"encoding/json"
	"strings"
	"testing"
)

// noWorkspace points discovery at a directory without a marker so the math
// commands fall back to flags and defaults.
func noWorkspace(t *testing.T) {
	t.Helper()
	t.Setenv("DGA_WORKSPACE", t.TempDir())
}

func TestBasisOverview(t *testing.T) {
	noWorkspace(t)
	oldV, oldH, oldD := basisVertices, basisHdeg, basisDegree
	basisVertices, basisHdeg, basisDegree = 3, -1, -1
	defer func() { basisVertices, basisHdeg, basisDegree = oldV, oldH, oldD }()

	out, err := invoke(t, basisCmd, runBasis, nil)
	if err != nil {
		t.Fatalf("basis: %v", err)
	}
	// ranks 1, 3, 2 for n=3
	if !strings.Contains(out, "total 6") {
		t.Errorf("overview output:\n%s", out)
	}
}

func TestBasisHdegListing(t *testing.T) {
	noWorkspace(t)
	oldV, oldH := basisVertices, basisHdeg
	basisVertices, basisHdeg = 3, 1
	defer func() { basisVertices, basisHdeg = oldV, oldH }()

	out, err := invoke(t, basisCmd, runBasis, nil)
	if err != nil {
		t.Fatalf("basis --hdeg 1: %v", err)
	}
	for _, want := range []string{"e(1,1;0,1)", "e(1,1;0,2)", "e(1,1;1,2)", "3 elements"} {
		if !strings.Contains(out, want) {
			t.Errorf("listing missing %q:\n%s", want, out)
		}
	}
}

func TestBasisSliceJSON(t *testing.T) {
	noWorkspace(t)
	oldV, oldH, oldD, oldJ := basisVertices, basisHdeg, basisDegree, basisJSON
	basisVertices, basisHdeg, basisDegree, basisJSON = 3, 1, 2, true
	defer func() { basisVertices, basisHdeg, basisDegree, basisJSON = oldV, oldH, oldD, oldJ }()

	out, err := invoke(t, basisCmd, runBasis, nil)
	if err != nil {
		t.Fatalf("basis --json: %v", err)
	}
	var got struct {
		Vertices int   `json:"vertices"`
		Hdeg     int   `json:"hdeg"`
		Degree   int   `json:"degree"`
		Count    int64 `json:"count"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	// degree-2 slice carries no monomial factors, one per edge
	if got.Vertices != 3 || got.Hdeg != 1 || got.Count != 3 {
		t.Errorf("got %+v", got)
	}
}

func TestBasisRejectsDegreeWithoutHdeg(t *testing.T) {
	noWorkspace(t)
	oldH, oldD := basisHdeg, basisDegree
	basisHdeg, basisDegree = -1, 4
	defer func() { basisHdeg, basisDegree = oldH, oldD }()

	if _, err := invoke(t, basisCmd, runBasis, nil); err == nil {
		t.Fatal("expected an error for --degree without --hdeg")
	}
}

func TestDiffCommand(t *testing.T) {
	noWorkspace(t)
	oldV := diffVertices
	diffVertices = 3
	defer func() { diffVertices = oldV }()

	out, err := invoke(t, diffCmd, runDiff, []string{"e(1,1;0,1)"})
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	if !strings.Contains(out, "x0*y1*e() - x1*y0*e()") {
		t.Errorf("diff output: %q", out)
	}
}

func TestDiffSquareIsZero(t *testing.T) {
	noWorkspace(t)
	oldV, oldS := diffVertices, diffSquare
	diffVertices, diffSquare = 3, true
	defer func() { diffVertices, diffSquare = oldV, oldS }()

	out, err := invoke(t, diffCmd, runDiff, []string{"x0*e(2,1;0,1,2)"})
	if err != nil {
		t.Fatalf("diff --square: %v", err)
	}
	if strings.TrimSpace(out) != "0" {
		t.Errorf("d(d(x0*e(2,1;0,1,2))) = %q, want 0", out)
	}
}

func TestDiffRejectsBadElement(t *testing.T) {
	noWorkspace(t)
	if _, err := invoke(t, diffCmd, runDiff, []string{"e(1,1;0,9)"}); err == nil {
		t.Fatal("vertex 9 should not parse for n=4")
	}
}

func TestProductCommand(t *testing.T) {
	noWorkspace(t)
	oldV := productVertices
	productVertices = 3
	defer func() { productVertices = oldV }()

	out, err := invoke(t, productCmd, runProduct, []string{"e(1,1;0,1)", "e(1,1;1,2)"})
	if err != nil {
		t.Fatalf("product: %v", err)
	}
	// shared-vertex product carries the unknown coefficients
	if !strings.Contains(out, "A2") || !strings.Contains(out, "B2") {
		t.Errorf("product output: %q", out)
	}
}

func TestLeibnizCommand(t *testing.T) {
	noWorkspace(t)
	oldV := leibnizVertices
	leibnizVertices = 3
	defer func() { leibnizVertices = oldV }()

	out, err := invoke(t, leibnizCmd, runLeibniz, []string{"e(1,1;0,1)", "e(1,1;1,2)"})
	if err != nil {
		t.Fatalf("leibniz: %v", err)
	}
	for _, want := range []string{"d(f*g)", "defect"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLeibnizDefectOnly(t *testing.T) {
	noWorkspace(t)
	oldV, oldD := leibnizVertices, leibnizDefectOnly
	leibnizVertices, leibnizDefectOnly = 3, true
	defer func() { leibnizVertices, leibnizDefectOnly = oldV, oldD }()

	out, err := invoke(t, leibnizCmd, runLeibniz, []string{"e(1,1;0,1)", "e(1,1;1,2)"})
	if err != nil {
		t.Fatalf("leibniz --defect: %v", err)
	}
	// the shared-vertex defect constrains A2 and B2
	if !strings.Contains(out, "A2") {
		t.Errorf("defect output: %q", out)
	}
}

func TestVerifyComplex(t *testing.T) {
	noWorkspace(t)
	oldV, oldH, oldD, oldR := verifyVertices, verifyHdeg, verifyDegree, verifyRun
	verifyVertices, verifyHdeg, verifyDegree, verifyRun = 3, -1, -1, ""
	defer func() { verifyVertices, verifyHdeg, verifyDegree, verifyRun = oldV, oldH, oldD, oldR }()

	out, err := invoke(t, verifyCmd, runVerify, nil)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	for _, want := range []string{"d∘d = 0", "antisymmetric", "all checks passed"} {
		if !strings.Contains(out, want) {
			t.Errorf("verify output missing %q:\n%s", want, out)
		}
	}
}

func TestVerifySlice(t *testing.T) {
	noWorkspace(t)
	oldV, oldH, oldD := verifyVertices, verifyHdeg, verifyDegree
	verifyVertices, verifyHdeg, verifyDegree = 3, 1, 3
	defer func() { verifyVertices, verifyHdeg, verifyDegree = oldV, oldH, oldD }()

	out, err := invoke(t, verifyCmd, runVerify, nil)
	if err != nil {
		t.Fatalf("verify slice: %v", err)
	}
	if !strings.Contains(out, "slice of degree 3") {
		t.Errorf("verify output:\n%s", out)
	}
}

func TestVerifyQuiet(t *testing.T) {
	noWorkspace(t)
	oldV, oldQ := verifyVertices, verifyQuiet
	verifyVertices, verifyQuiet = 3, true
	defer func() { verifyVertices, verifyQuiet = oldV, oldQ }()

	out, err := invoke(t, verifyCmd, runVerify, nil)
	if err != nil {
		t.Fatalf("verify --quiet: %v", err)
	}
	if out != "" {
		t.Errorf("quiet mode printed %q", out)
	}
}

func TestInfoOutsideWorkspace(t *testing.T) {
	noWorkspace(t)
	out, err := invoke(t, infoCmd, runInfo, nil)
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if !strings.Contains(out, "dga version") || !strings.Contains(out, "not inside a workspace") {
		t.Errorf("info output:\n%s", out)
	}
}

func TestInfoInsideWorkspace(t *testing.T) {
	testWorkspace(t, 5)
	out, err := invoke(t, infoCmd, runInfo, nil)
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	for _, want := range []string{"workspace", "K_5", "runs       0"} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}
}

func TestInfoNotation(t *testing.T) {
	noWorkspace(t)
	oldN := infoNotation
	infoNotation = true
	defer func() { infoNotation = oldN }()

	out, err := invoke(t, infoCmd, runInfo, nil)
	if err != nil {
		t.Fatalf("info --notation: %v", err)
	}
	if !strings.Contains(out, "e(a,b;V)") {
		t.Errorf("notation guide output:\n%s", out)
	}
}

func TestWorkspaceComplexPrecedence(t *testing.T) {
	testWorkspace(t, 5)

	c, err := workspaceComplex(0)
	if err != nil {
		t.Fatalf("workspaceComplex(0): %v", err)
	}
	if c.N != 5 {
		t.Errorf("config vertices ignored: N = %d", c.N)
	}

	c, err = workspaceComplex(3)
	if err != nil {
		t.Fatalf("workspaceComplex(3): %v", err)
	}
	if c.N != 3 {
		t.Errorf("flag override ignored: N = %d", c.N)
	}
}

func TestWorkspaceComplexDefault(t *testing.T) {
	noWorkspace(t)
	c, err := workspaceComplex(0)
	if err != nil {
		t.Fatalf("workspaceComplex: %v", err)
	}
	if c.N != 4 {
		t.Errorf("built-in default N = %d, want 4", c.N)
	}
}
