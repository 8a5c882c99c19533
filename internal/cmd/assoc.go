package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/commalg/dgares/internal/equations"
	"github.com/commalg/dgares/internal/events"
	"github.com/commalg/dgares/internal/resolution"
	"github.com/commalg/dgares/internal/store"
	"github.com/commalg/dgares/internal/style"
	"github.com/commalg/dgares/internal/ui"
)

var assocCmd = &cobra.Command{
	Use:     "assoc",
	GroupID: GroupSystems,
	Short:   "Build associativity constraint systems",
	RunE:    requireSubcommand,
}

var (
	assocBuildWorkers int
	assocBuildApply   string
	assocBuildNotes   string
)

var assocBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Extract associator equations for the workspace graph",
	Long: `Build sweeps S-basis triples and extracts the coefficients of each
associator (f*g)*h - f*(g*h). The constraints are quadratic in the
unknown coefficients, so the rational reducer consumes only their
affine part and keeps the rest symbolic.

With --apply the pivots of a reduced Leibniz run are substituted first,
which collapses most constraints and shows whether the solved product
is associative.`,
	Args: cobra.NoArgs,
	RunE: runAssocBuild,
}

func init() {
	rootCmd.AddCommand(assocCmd)
	assocCmd.AddCommand(assocBuildCmd)

	assocBuildCmd.Flags().IntVar(&assocBuildWorkers, "workers", 0, "concurrent associator computations")
	assocBuildCmd.Flags().StringVar(&assocBuildApply, "apply", "", "substitute the reduction of this run first")
	assocBuildCmd.Flags().StringVar(&assocBuildNotes, "notes", "", "free-form note stored with the run")
}

func runAssocBuild(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadWorkspace()
	if err != nil {
		return err
	}
	c, err := resolution.New(cfg.Vertices)
	if err != nil {
		return err
	}
	workers := assocBuildWorkers
	if workers <= 0 {
		workers = cfg.Workers
	}
	st := store.Open(root)

	start := time.Now()
	sys := equations.BuildAssociativity(c, equations.Options{Workers: workers})
	elapsed := time.Since(start).Round(time.Millisecond)
	raw := sys.Len()

	notes := assocBuildNotes
	applied := ""
	if assocBuildApply != "" {
		id, err := resolveRun(cmd.Context(), st, assocBuildApply)
		if err != nil {
			return err
		}
		red, err := st.Reduction(id)
		if err != nil {
			if errors.Is(err, store.ErrNoReduction) {
				return fmt.Errorf("run %s has no reduction; run 'dga system reduce %s' first",
					store.ShortID(id), store.ShortID(id))
			}
			return err
		}
		sys = equations.ApplySolution(sys, red)
		applied = store.ShortID(id)
		if notes == "" {
			notes = fmt.Sprintf("coefficients from %s", applied)
		}
		_ = events.Log(root, events.TypeSolutionApply, "cli", events.StatusPayload(id, "applied"))
	}

	meta, err := st.CreateRun(cmd.Context(), sys, workers, notes)
	if err != nil {
		return err
	}
	_ = events.Log(root, events.TypeRunSaved, "cli", events.RunPayload(meta.ID, meta.Kind, meta.Vertices, meta.Equations))

	fmt.Printf("%s Built %s system %s for n=%d in %s\n",
		style.SuccessPrefix, meta.Kind, ui.RenderID(meta.Short()), meta.Vertices, elapsed)
	if applied != "" {
		fmt.Printf("  applied    reduction of %s, %s of %s constraints survive\n",
			ui.RenderID(applied), style.Count(sys.Len()), style.Count(raw))
	}
	fmt.Printf("  equations  %s (%s affine)\n", style.Count(sys.Len()), style.Count(sys.AffineCount()))
	fmt.Printf("  unknowns   %s\n", style.Count(meta.Variables))
	fmt.Printf("%s Next: 'dga system reduce %s'\n", style.ArrowPrefix, meta.Short())
	return nil
}
