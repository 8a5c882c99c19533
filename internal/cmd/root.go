// Package cmd implements the dga command-line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/commalg/dgares/internal/config"
	"github.com/commalg/dgares/internal/resolution"
	"github.com/commalg/dgares/internal/store"
	"github.com/commalg/dgares/internal/style"
	"github.com/commalg/dgares/internal/ui"
	"github.com/commalg/dgares/internal/workspace"
)

// Command group IDs, in display order.
const (
	GroupWorkspace = "workspace"
	GroupCompute   = "compute"
	GroupSystems   = "systems"
	GroupDiag      = "diag"
)

var rootCmd = &cobra.Command{
	Use:   "dga",
	Short: "Explore DG algebra structures on resolutions of binomial edge ideals",
	Long: `dga studies the minimal free resolution of the binomial edge ideal of a
complete graph K_n, probing whether a candidate multiplication makes the
resolution a differential graded algebra.

The candidate product carries unknown coefficients A_k and B_k. dga
computes differentials and products symbolically, measures Leibniz-rule
defects, and reduces the resulting equation systems over Q with optional
prime-field cross-checks.

Start with 'dga init' to create a workspace, then 'dga system build' to
extract a Leibniz system. Elements are written in the e-notation
described by 'dga info --notation', e.g. x0*y2*e(1,1;0,1).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupWorkspace, Title: "Workspace:"},
		&cobra.Group{ID: GroupCompute, Title: "Computing:"},
		&cobra.Group{ID: GroupSystems, Title: "Equation Systems:"},
		&cobra.Group{ID: GroupDiag, Title: "Diagnostics:"},
	)
	rootCmd.SetHelpCommandGroupID(GroupDiag)
	rootCmd.SetCompletionCommandGroupID(GroupDiag)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	applyTheme()
	if err := rootCmd.Execute(); err != nil {
		if code, ok := IsSilentExit(err); ok {
			return code
		}
		fmt.Fprintf(os.Stderr, "%s %v\n", style.ErrorPrefix, err)
		return 1
	}
	return 0
}

// applyTheme resolves terminal colors before any command output. Workspace
// config is honored when we are inside one; elsewhere env and defaults apply.
func applyTheme() {
	theme := ""
	if root, err := workspace.FindFromCwd(); err == nil {
		if cfg, err := config.Load(root); err == nil {
			theme = cfg.Theme
		}
	}
	ui.InitTheme(theme)
	ui.ApplyThemeMode()
}

// requireSubcommand is the RunE for parent commands that only dispatch.
func requireSubcommand(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// loadWorkspace locates the enclosing workspace and its config.
func loadWorkspace() (string, *config.Config, error) {
	root, err := workspace.FindFromCwd()
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return "", nil, err
	}
	return root, cfg, nil
}

// workspaceComplex builds the resolution complex for a command. An explicit
// --vertices flag wins, then the workspace config, then built-in defaults,
// so the math commands work outside a workspace too.
func workspaceComplex(vertices int) (*resolution.Complex, error) {
	n := vertices
	if n == 0 {
		if root, err := workspace.FindFromCwd(); err == nil {
			if cfg, err := config.Load(root); err == nil {
				n = cfg.Vertices
			}
		}
	}
	if n == 0 {
		cfg, err := config.Default()
		if err != nil {
			return nil, err
		}
		n = cfg.Vertices
	}
	return resolution.New(n)
}

// resolveRun expands a run ID prefix, listing candidates when ambiguous.
func resolveRun(ctx context.Context, st *store.Store, prefix string) (string, error) {
	id, err := st.Resolve(ctx, prefix)
	if err == nil {
		return id, nil
	}
	if errors.Is(err, store.ErrAmbiguousRun) {
		metas, listErr := st.List(ctx)
		if listErr == nil {
			var matches []string
			for _, m := range metas {
				if strings.HasPrefix(m.ID, prefix) {
					matches = append(matches, fmt.Sprintf("%s  %s n=%d (%s)", m.Short(), m.Kind, m.Vertices, m.Status))
				}
			}
			fmt.Print(style.SuggestionBox(
				fmt.Sprintf("run prefix %q matches several runs", prefix),
				matches,
				"Retry with a longer prefix.",
			))
			return "", NewSilentExit(1)
		}
	}
	return "", err
}
