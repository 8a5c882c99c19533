package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/commalg/dgares/internal/version"
)

// Version, Build, Commit, and Branch are stamped by the release ldflags. A
// plain `go build` leaves the defaults, and commit and branch then fall back
// to the VCS info the toolchain embeds.
var (
	Version = "0.3.0"
	Build   = "dev"
	Commit  = ""
	Branch  = ""
)

var versionCmd = &cobra.Command{
	Use:     "version",
	GroupID: GroupDiag,
	Short:   "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(versionLine())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// versionLine formats the version with as much VCS detail as the binary
// carries.
func versionLine() string {
	commit := commitHash()
	branch := Branch
	if branch == "" {
		branch = vcsSetting("vcs.branch")
	}
	switch {
	case commit != "" && branch != "":
		return fmt.Sprintf("dga version %s (%s: %s@%s)", Version, Build, branch, version.ShortCommit(commit))
	case commit != "":
		return fmt.Sprintf("dga version %s (%s: %s)", Version, Build, version.ShortCommit(commit))
	default:
		return fmt.Sprintf("dga version %s (%s)", Version, Build)
	}
}

func commitHash() string {
	if Commit != "" {
		return Commit
	}
	return vcsSetting("vcs.revision")
}

// vcsSetting reads one key from the build info embedded in the binary.
func vcsSetting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
