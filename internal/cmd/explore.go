package cmd

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/commalg/dgares/internal/store"
	"github.com/commalg/dgares/internal/tui/explore"
)

var exploreCmd = &cobra.Command{
	Use:     "explore <run>",
	GroupID: GroupSystems,
	Short:   "Browse a run's equations interactively",
	Long: `Explore opens a full-screen browser over a run's equation system. The
list pane scrolls through the equations, 'a' filters to the affine
ones, and the detail pane shows the factor pair and basis coefficient
each equation was extracted from. Tab moves focus between panes.`,
	Args: cobra.ExactArgs(1),
	RunE: runExplore,
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}

func runExplore(cmd *cobra.Command, args []string) error {
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

	p := tea.NewProgram(explore.New(*meta, sys, red), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
