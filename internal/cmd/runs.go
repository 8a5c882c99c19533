package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/commalg/dgares/internal/store"
	"github.com/commalg/dgares/internal/style"
	"github.com/commalg/dgares/internal/ui"
)

var runsJSON bool

var runsCmd = &cobra.Command{
	Use:     "runs",
	GroupID: GroupSystems,
	Short:   "List stored runs",
	Long: `Runs lists the equation systems stored in the workspace catalog, newest
first. Any unique ID prefix shown here is accepted wherever a command
takes a run argument.`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().BoolVar(&runsJSON, "json", false, "output as JSON")
}

func runRuns(cmd *cobra.Command, args []string) error {
	root, _, err := loadWorkspace()
	if err != nil {
		return err
	}
	st := store.Open(root)
	metas, err := st.List(cmd.Context())
	if err != nil {
		return err
	}
	if runsJSON {
		return printJSON(metas)
	}
	if len(metas) == 0 {
		fmt.Println("No runs yet. Create one with 'dga system build'.")
		return nil
	}

	tbl := style.NewTable(
		style.Column{Name: "RUN", Width: 8},
		style.Column{Name: "KIND", Width: 13},
		style.Column{Name: "N", Width: 2, Align: style.AlignRight},
		style.Column{Name: "EQNS", Width: 9, Align: style.AlignRight},
		style.Column{Name: "VARS", Width: 4, Align: style.AlignRight},
		style.Column{Name: "RANK", Width: 4, Align: style.AlignRight},
		style.Column{Name: "STATUS", Width: 15},
		style.Column{Name: "CREATED", Width: 16},
	)
	for _, m := range metas {
		rank := "-"
		if m.Status != store.StatusBuilt {
			rank = fmt.Sprintf("%d", m.Rank)
		}
		tbl.AddRow(
			ui.RenderID(m.Short()),
			ui.RenderKind(m.Kind),
			fmt.Sprintf("%d", m.Vertices),
			style.Count(m.Equations),
			fmt.Sprintf("%d", m.Variables),
			rank,
			ui.RenderStatusIcon(m.Status)+" "+ui.RenderStatus(m.Status),
			m.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	fmt.Print(tbl.Render())
	return nil
}
