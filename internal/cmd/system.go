package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/commalg/dgares/internal/equations"
	"github.com/commalg/dgares/internal/events"
	"github.com/commalg/dgares/internal/resolution"
	"github.com/commalg/dgares/internal/ring"
	"github.com/commalg/dgares/internal/store"
	"github.com/commalg/dgares/internal/style"
	"github.com/commalg/dgares/internal/ui"
)

var systemCmd = &cobra.Command{
	Use:     "system",
	GroupID: GroupSystems,
	Short:   "Build, reduce, and inspect Leibniz equation systems",
	RunE:    requireSubcommand,
}

var (
	systemBuildWorkers int
	systemBuildNotes   string
)

var systemBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Extract the Leibniz system for the workspace graph",
	Long: `Build sweeps every pair of S-basis elements, computes the Leibniz
defect, and extracts one equation per basis coefficient of each defect.
Duplicate equations are dropped. The system is saved as a new run under
runs/ and registered in the catalog.

Defect computation parallelizes across pairs; --workers caps the
goroutines and defaults to the workspace config.`,
	Args: cobra.NoArgs,
	RunE: runSystemBuild,
}

var (
	systemReduceMods []uint
	systemReduceJSON bool
)

var systemReduceCmd = &cobra.Command{
	Use:   "reduce <run>",
	Short: "Gauss-Jordan reduce a stored system",
	Long: `Reduce runs exact Gauss-Jordan elimination over Q on the affine
equations of a run, then cross-checks the rank modulo the primes from
the workspace config or --mod. The solved coefficients, free variables,
and any contradiction are stored with the run.

Run IDs may be abbreviated to any unique prefix.`,
	Args: cobra.ExactArgs(1),
	RunE: runSystemReduce,
}

var (
	systemShowFull    bool
	systemShowJSON    bool
	systemShowNoPager bool
)

var systemShowCmd = &cobra.Command{
	Use:   "show <run>",
	Short: "Show a run's system and reduction",
	Long: `Show prints a run summary: dimensions, status, and the reduction
outcome when one is stored. With --full every equation is listed,
paged when the listing exceeds the terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: runSystemShow,
}

func init() {
	rootCmd.AddCommand(systemCmd)
	systemCmd.AddCommand(systemBuildCmd)
	systemCmd.AddCommand(systemReduceCmd)
	systemCmd.AddCommand(systemShowCmd)

	systemBuildCmd.Flags().IntVar(&systemBuildWorkers, "workers", 0, "concurrent defect computations")
	systemBuildCmd.Flags().StringVar(&systemBuildNotes, "notes", "", "free-form note stored with the run")

	systemReduceCmd.Flags().UintSliceVar(&systemReduceMods, "mod", nil, "extra primes for modular rank checks")
	systemReduceCmd.Flags().BoolVar(&systemReduceJSON, "json", false, "output as JSON")

	systemShowCmd.Flags().BoolVar(&systemShowFull, "full", false, "list every equation")
	systemShowCmd.Flags().BoolVar(&systemShowJSON, "json", false, "output as JSON")
	systemShowCmd.Flags().BoolVar(&systemShowNoPager, "no-pager", false, "never pipe output through a pager")
}

func runSystemBuild(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadWorkspace()
	if err != nil {
		return err
	}
	c, err := resolution.New(cfg.Vertices)
	if err != nil {
		return err
	}
	workers := systemBuildWorkers
	if workers <= 0 {
		workers = cfg.Workers
	}

	start := time.Now()
	sys := equations.BuildLeibniz(c, equations.Options{Workers: workers})
	elapsed := time.Since(start).Round(time.Millisecond)

	st := store.Open(root)
	meta, err := st.CreateRun(cmd.Context(), sys, workers, systemBuildNotes)
	if err != nil {
		return err
	}
	_ = events.Log(root, events.TypeRunSaved, "cli", events.RunPayload(meta.ID, meta.Kind, meta.Vertices, meta.Equations))

	fmt.Printf("%s Built %s system %s for n=%d in %s\n",
		style.SuccessPrefix, meta.Kind, ui.RenderID(meta.Short()), meta.Vertices, elapsed)
	fmt.Printf("  equations  %s (%s affine)\n", style.Count(sys.Len()), style.Count(sys.AffineCount()))
	fmt.Printf("  unknowns   %s\n", style.Count(meta.Variables))
	fmt.Printf("%s Next: 'dga system reduce %s'\n", style.ArrowPrefix, meta.Short())
	return nil
}

func runSystemReduce(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadWorkspace()
	if err != nil {
		return err
	}
	st := store.Open(root)
	id, err := resolveRun(cmd.Context(), st, args[0])
	if err != nil {
		return err
	}
	sys, err := st.System(id)
	if err != nil {
		return err
	}

	red := equations.Reduce(sys)
	meta, err := st.SaveReduction(cmd.Context(), id, red)
	if err != nil {
		return err
	}
	_ = events.Log(root, events.TypeReduceComplete, "cli", events.ReducePayload(id, red.Rank, red.Contradiction))

	mods := make([]uint64, 0, len(systemReduceMods))
	for _, p := range systemReduceMods {
		mods = append(mods, uint64(p))
	}
	if len(mods) == 0 {
		mods = cfg.Reduce.Mod
	}
	modResults := make([]*equations.ModReduction, 0, len(mods))
	for _, p := range mods {
		mr, err := equations.ReduceMod(sys, p)
		if err != nil {
			return err
		}
		modResults = append(modResults, mr)
	}

	if systemReduceJSON {
		pivots := map[string]string{}
		for _, v := range red.SolvedVars() {
			pivots[v.Name()] = red.Pivots[v].String()
		}
		free := make([]string, 0, len(red.Free))
		for _, v := range red.Free {
			free = append(free, v.Name())
		}
		out := map[string]interface{}{
			"id":            id,
			"status":        meta.Status,
			"rank":          red.Rank,
			"free":          free,
			"pivots":        pivots,
			"redundant":     red.Redundant,
			"residual":      len(red.Residual),
			"contradiction": red.Contradiction,
		}
		if len(modResults) > 0 {
			mod := make([]map[string]interface{}, 0, len(modResults))
			for _, mr := range modResults {
				mod = append(mod, map[string]interface{}{
					"p":             mr.P,
					"rank":          mr.Rank,
					"contradiction": mr.Contradiction,
				})
			}
			out["mod"] = mod
		}
		return printJSON(out)
	}

	fmt.Printf("%s Reduced %s: rank %d, %d free, %s redundant\n",
		style.SuccessPrefix, ui.RenderID(store.ShortID(id)), red.Rank, len(red.Free), style.Count(red.Redundant))
	if len(red.Free) > 0 {
		fmt.Printf("  free       %s\n", joinVars(red.Free))
	}
	if len(red.Residual) > 0 {
		fmt.Printf("  residual   %s nonlinear equations kept symbolic\n", style.Count(len(red.Residual)))
	}
	printPivots(red, "  ")
	if red.Contradiction {
		fmt.Printf("\n%s system is inconsistent", style.ErrorPrefix)
		if src := red.ContradictionSource; src != nil {
			fmt.Printf(" (first seen at %s defect of %s)", src.Kind, strings.Join(src.Factors, " * "))
		}
		fmt.Println()
	}
	for _, mr := range modResults {
		marker := style.SuccessPrefix
		note := "matches"
		if mr.Contradiction != red.Contradiction || mr.Rank != red.Rank {
			marker = style.WarningPrefix
			note = fmt.Sprintf("rank %d vs %d over Q", mr.Rank, red.Rank)
			if mr.Contradiction != red.Contradiction {
				note = fmt.Sprintf("contradiction=%v vs %v over Q", mr.Contradiction, red.Contradiction)
			}
		}
		fmt.Printf("%s mod %d: rank %d (%s)\n", marker, mr.P, mr.Rank, note)
	}
	return nil
}

// printPivots lists solved coefficients when there are few enough to scan.
func printPivots(red *equations.Reduction, indent string) {
	vars := red.SolvedVars()
	if len(vars) == 0 || len(vars) > 24 {
		return
	}
	fmt.Printf("%spivots\n", indent)
	for _, v := range vars {
		fmt.Printf("%s  %s = %s\n", indent, v.Name(), red.Pivots[v])
	}
}

func joinVars(vars []ring.Var) string {
	parts := make([]string, 0, len(vars))
	for _, v := range vars {
		parts = append(parts, v.Name())
	}
	return strings.Join(parts, " ")
}

func runSystemShow(cmd *cobra.Command, args []string) error {
	root, _, err := loadWorkspace()
	if err != nil {
		return err
	}
	st := store.Open(root)
	id, err := resolveRun(cmd.Context(), st, args[0])
	if err != nil {
		return err
	}
	meta, err := st.Meta(id)
	if err != nil {
		return err
	}
	sys, err := st.System(id)
	if err != nil {
		return err
	}
	red, err := st.Reduction(id)
	if err != nil {
		if !errors.Is(err, store.ErrNoReduction) {
			return err
		}
		red = nil
	}

	if systemShowJSON {
		out := map[string]interface{}{"meta": meta}
		if red != nil {
			out["reduction"] = reductionJSON(red)
		}
		if systemShowFull {
			out["system"] = sys
		}
		return printJSON(out)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Run %s (%s, n=%d)\n", ui.RenderID(meta.Short()), ui.RenderKind(meta.Kind), meta.Vertices)
	fmt.Fprintf(&b, "  created    %s\n", meta.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "  status     %s %s\n", ui.RenderStatusIcon(meta.Status), ui.RenderStatus(meta.Status))
	fmt.Fprintf(&b, "  equations  %s (%s affine)\n", style.Count(sys.Len()), style.Count(sys.AffineCount()))
	fmt.Fprintf(&b, "  unknowns   %s\n", style.Count(meta.Variables))
	if meta.Notes != "" {
		fmt.Fprintf(&b, "  notes      %s\n", meta.Notes)
	}
	if red != nil {
		fmt.Fprintf(&b, "\nReduction: rank %d, %d free, %s redundant\n", red.Rank, len(red.Free), style.Count(red.Redundant))
		for _, v := range red.SolvedVars() {
			fmt.Fprintf(&b, "  %s = %s\n", v.Name(), red.Pivots[v])
		}
		if red.Contradiction {
			fmt.Fprintf(&b, "  %s inconsistent over Q\n", style.ErrorPrefix)
		}
	}
	if systemShowFull {
		fmt.Fprintf(&b, "\nEquations:\n")
		for i, eq := range sys.Equations {
			fmt.Fprintf(&b, "%6d  %s = 0\n", i+1, eq.Key())
		}
	}
	return ui.ToPager(b.String(), ui.PagerOptions{NoPager: systemShowNoPager})
}

func reductionJSON(red *equations.Reduction) map[string]interface{} {
	pivots := map[string]string{}
	for _, v := range red.SolvedVars() {
		pivots[v.Name()] = red.Pivots[v].String()
	}
	free := make([]string, 0, len(red.Free))
	for _, v := range red.Free {
		free = append(free, v.Name())
	}
	return map[string]interface{}{
		"rank":          red.Rank,
		"free":          free,
		"pivots":        pivots,
		"redundant":     red.Redundant,
		"residual":      len(red.Residual),
		"contradiction": red.Contradiction,
	}
}
