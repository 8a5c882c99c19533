package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/commalg/dgares/internal/config"
	"github.com/commalg/dgares/internal/events"
	"github.com/commalg/dgares/internal/style"
	"github.com/commalg/dgares/internal/workspace"
)

var initVertices int

var initCmd = &cobra.Command{
	Use:     "init [dir]",
	GroupID: GroupWorkspace,
	Short:   "Create a dga workspace",
	Long: `Init creates a workspace: a dga.toml config plus a runs/ directory that
holds extracted equation systems. The target directory is created if
missing and defaults to the current one.

The vertex count fixes the complete graph K_n whose binomial edge ideal
the workspace studies. It can be changed later in dga.toml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().IntVarP(&initVertices, "vertices", "n", 4, "number of vertices of the complete graph")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	if initVertices < 2 {
		return fmt.Errorf("need at least 2 vertices, got %d", initVertices)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	marker := filepath.Join(abs, workspace.Marker)
	if _, err := os.Stat(marker); err == nil {
		return fmt.Errorf("%s already contains %s", abs, workspace.Marker)
	}
	if err := os.MkdirAll(workspace.RunsDir(abs), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(marker, config.Initial(initVertices), 0644); err != nil {
		return err
	}
	_ = events.Log(abs, events.TypeInit, "cli", events.InitPayload(initVertices))

	fmt.Printf("%s Initialized workspace in %s (n=%d)\n", style.SuccessPrefix, abs, initVertices)
	fmt.Printf("%s Next: 'dga system build' extracts the Leibniz equations\n", style.ArrowPrefix)
	return nil
}
