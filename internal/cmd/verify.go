package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/commalg/dgares/internal/equations"
	"github.com/commalg/dgares/internal/events"
	"github.com/commalg/dgares/internal/resolution"
	"github.com/commalg/dgares/internal/store"
	"github.com/commalg/dgares/internal/style"
	"github.com/commalg/dgares/internal/ui"
	"github.com/commalg/dgares/internal/workspace"
)

var (
	verifyHdeg     int
	verifyDegree   int
	verifyRun      string
	verifyQuiet    bool
	verifyVertices int
)

var verifyCmd = &cobra.Command{
	Use:     "verify",
	GroupID: GroupCompute,
	Short:   "Check structural identities of the resolution",
	Long: `Verify sweeps identities that must hold no matter what the unknown
coefficients are: the differential squares to zero, differential and
product preserve the twisted degree, and products of edge generators
are antisymmetric under swapping.

With --run the stored reduction is substituted back into that run's
system; every affine equation must then vanish. Nonlinear constraints
that stay symbolic are reported but do not fail the check.

Exit status is nonzero when any check fails; --quiet suppresses all
output and leaves only the exit status.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().IntVar(&verifyHdeg, "hdeg", -1, "restrict to one homological degree")
	verifyCmd.Flags().IntVar(&verifyDegree, "degree", -1, "check slices of this twisted degree instead of the S-basis")
	verifyCmd.Flags().StringVar(&verifyRun, "run", "", "check a stored reduction instead of the complex")
	verifyCmd.Flags().BoolVarP(&verifyQuiet, "quiet", "q", false, "no output, exit status only")
	verifyCmd.Flags().IntVarP(&verifyVertices, "vertices", "n", 0, "override the vertex count")
}

// verifier tallies check outcomes, printing them unless quiet.
type verifier struct {
	quiet    bool
	failures int
}

func (v *verifier) pass(format string, args ...interface{}) {
	if !v.quiet {
		fmt.Printf("%s %s\n", ui.RenderPassIcon(), fmt.Sprintf(format, args...))
	}
}

func (v *verifier) warn(format string, args ...interface{}) {
	if !v.quiet {
		fmt.Printf("%s %s\n", ui.RenderWarnIcon(), fmt.Sprintf(format, args...))
	}
}

func (v *verifier) fail(format string, args ...interface{}) {
	v.failures++
	if !v.quiet {
		fmt.Printf("%s %s\n", ui.RenderFailIcon(), fmt.Sprintf(format, args...))
	}
}

func runVerify(cmd *cobra.Command, args []string) error {
	v := &verifier{quiet: verifyQuiet}
	scope := "complex"
	if verifyRun != "" {
		short, err := verifyReduction(cmd, v)
		if err != nil {
			return err
		}
		scope = "run " + short
	} else if err := verifyComplex(v); err != nil {
		return err
	}

	if root, err := workspace.FindFromCwd(); err == nil {
		_ = events.Log(root, events.TypeVerify, "cli", events.VerifyPayload(scope, v.failures == 0))
	}

	if v.failures > 0 {
		if !v.quiet {
			fmt.Printf("\n%s %d checks failed\n", style.ErrorPrefix, v.failures)
		}
		return NewSilentExit(1)
	}
	if !v.quiet {
		fmt.Printf("\n%s all checks passed\n", style.SuccessPrefix)
	}
	return nil
}

func verifyComplex(v *verifier) error {
	c, err := workspaceComplex(verifyVertices)
	if err != nil {
		return err
	}
	var hdegs []int
	if verifyHdeg >= 0 {
		if verifyHdeg > c.Length() {
			return fmt.Errorf("homological degree %d out of range (resolution has length %d)", verifyHdeg, c.Length())
		}
		hdegs = []int{verifyHdeg}
	} else {
		for h := 1; h <= c.Length(); h++ {
			hdegs = append(hdegs, h)
		}
	}

	for _, h := range hdegs {
		basis := c.SBasis(h)
		label := fmt.Sprintf("S-basis of hdeg %d", h)
		if verifyDegree >= 0 {
			basis = c.Slice(h, verifyDegree)
			label = fmt.Sprintf("hdeg %d slice of degree %d", h, verifyDegree)
		}

		if bad := firstSquareFailure(c, basis); bad != "" {
			v.fail("d∘d != 0 at %s", bad)
		} else {
			v.pass("d∘d = 0 on %s (%s elements)", label, style.Count(len(basis)))
		}

		if bad := firstGradingFailure(c, basis, h); bad != "" {
			v.fail("differential breaks the grading at %s", bad)
		} else {
			v.pass("differential preserves twisted degree on %s", label)
		}
	}

	verifyEdgeProducts(v, c)
	return nil
}

// firstSquareFailure returns the key of the first element whose differential
// does not die under a second application.
func firstSquareFailure(c *resolution.Complex, basis []resolution.Basis) string {
	for _, b := range basis {
		if dd := c.Differential(c.DifferentialBasis(b)); !dd.IsZero() {
			return b.Key()
		}
	}
	return ""
}

// firstGradingFailure returns the key of the first element whose differential
// leaves the expected twisted degree or homological degree.
func firstGradingFailure(c *resolution.Complex, basis []resolution.Basis, h int) string {
	for _, b := range basis {
		for _, t := range c.DifferentialBasis(b).Terms() {
			if t.Basis.TwistedDeg() != b.TwistedDeg() || t.Basis.S.HDeg() != h-1 {
				return b.Key()
			}
		}
	}
	return ""
}

// verifyEdgeProducts checks grading and swap antisymmetry on all products of
// degree-one generators.
func verifyEdgeProducts(v *verifier, c *resolution.Complex) {
	edges := c.SBasis(1)
	badGrade, badSwap := "", ""
	pairs := 0
	for i, f := range edges {
		for j := i; j < len(edges); j++ {
			g := edges[j]
			pairs++
			p := c.ProductBasis(f, g)
			want := f.TwistedDeg() + g.TwistedDeg()
			for _, t := range p.Terms() {
				if t.Basis.TwistedDeg() != want && badGrade == "" {
					badGrade = f.Key() + " * " + g.Key()
				}
			}
			if f.S.Verts[0] != g.S.Verts[0] && badSwap == "" {
				if !p.Equal(c.ProductBasis(g, f).Neg()) {
					badSwap = f.Key() + " * " + g.Key()
				}
			}
		}
	}
	if badGrade != "" {
		v.fail("product breaks the grading at %s", badGrade)
	} else {
		v.pass("product preserves twisted degree on %s edge pairs", style.Count(pairs))
	}
	if badSwap != "" {
		v.fail("product is not antisymmetric at %s", badSwap)
	} else {
		v.pass("edge products are antisymmetric under swapping")
	}
}

// verifyReduction substitutes a stored reduction back into its system and
// reports what survives.
func verifyReduction(cmd *cobra.Command, v *verifier) (string, error) {
	root, _, err := loadWorkspace()
	if err != nil {
		return "", err
	}
	st := store.Open(root)
	id, err := resolveRun(cmd.Context(), st, verifyRun)
	if err != nil {
		return "", err
	}
	short := store.ShortID(id)
	sys, err := st.System(id)
	if err != nil {
		return "", err
	}
	red, err := st.Reduction(id)
	if err != nil {
		if errors.Is(err, store.ErrNoReduction) {
			return "", fmt.Errorf("run %s has no reduction; run 'dga system reduce %s' first", short, short)
		}
		return "", err
	}

	if red.Contradiction {
		v.fail("reduction of %s is contradictory; no coefficient assignment satisfies the system", short)
		return short, nil
	}

	out := equations.ApplySolution(sys, red)
	affine := out.AffineCount()
	nonlinear := out.Len() - affine
	if affine == 0 {
		v.pass("pivots of %s solve all %s affine equations", short, style.Count(sys.AffineCount()))
	} else {
		v.fail("%s affine equations survive substituting the pivots of %s", style.Count(affine), short)
	}
	if nonlinear > 0 {
		v.warn("%s nonlinear constraints stay symbolic; reduce an applied assoc run to chase them", style.Count(nonlinear))
	}
	return short, nil
}
