package cmd

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/commalg/dgares/internal/config"
	"github.com/commalg/dgares/internal/store"
	"github.com/commalg/dgares/internal/style"
	"github.com/commalg/dgares/internal/ui"
	"github.com/commalg/dgares/internal/version"
	"github.com/commalg/dgares/internal/workspace"
)

//go:embed notation.md
var notationGuide string

var (
	infoJSON     bool
	infoNotation bool
)

var infoCmd = &cobra.Command{
	Use:     "info",
	GroupID: GroupDiag,
	Short:   "Show version and workspace information",
	Long: `Info reports the binary version and, inside a workspace, its location,
configured graph, and stored runs. With --notation it prints the
element notation guide instead.`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "output as JSON")
	infoCmd.Flags().BoolVar(&infoNotation, "notation", false, "print the element notation guide")
}

func runInfo(cmd *cobra.Command, args []string) error {
	if infoNotation {
		fmt.Print(ui.RenderMarkdown(notationGuide))
		return nil
	}

	out := map[string]interface{}{
		"version": Version,
		"build":   Build,
	}
	if commit := commitHash(); commit != "" {
		out["commit"] = version.ShortCommit(commit)
	}

	root, rootErr := workspace.FindFromCwd()
	if rootErr == nil {
		out["workspace"] = root
		if cfg, err := config.Load(root); err == nil {
			out["vertices"] = cfg.Vertices
			out["workers"] = cfg.Workers
		}
		if metas, err := store.Open(root).List(cmd.Context()); err == nil {
			out["runs"] = len(metas)
		}
	}

	if infoJSON {
		return printJSON(out)
	}

	fmt.Printf("dga version %s (%s)\n", Version, Build)
	if rootErr != nil {
		fmt.Println(ui.RenderMuted("not inside a workspace"))
		return nil
	}
	fmt.Printf("  workspace  %s\n", root)
	if v, ok := out["vertices"]; ok {
		fmt.Printf("  graph      K_%v\n", v)
	}
	if runs, ok := out["runs"]; ok {
		fmt.Printf("  runs       %v\n", runs)
	}
	fmt.Printf("%s 'dga info --notation' explains the element syntax\n", style.ArrowPrefix)
	return nil
}
