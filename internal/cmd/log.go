package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/commalg/dgares/internal/events"
	"github.com/commalg/dgares/internal/ui"
	"github.com/commalg/dgares/internal/workspace"
)

var (
	logLimit int
	logJSON  bool
)

var logCmd = &cobra.Command{
	Use:     "log",
	GroupID: GroupDiag,
	Short:   "Show recent workspace events",
	Long: `Log prints the tail of the workspace event journal: inits, run builds,
reductions, applied solutions, and verify outcomes.`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().IntVar(&logLimit, "limit", 20, "number of events to show")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON")
}

func runLog(cmd *cobra.Command, args []string) error {
	root, err := workspace.FindFromCwd()
	if err != nil {
		return err
	}
	evts, err := events.Tail(root, logLimit)
	if err != nil {
		return err
	}
	if logJSON {
		return printJSON(evts)
	}
	if len(evts) == 0 {
		fmt.Println("No events yet.")
		return nil
	}
	for _, e := range evts {
		fmt.Printf("%s  %-16s %s\n", ui.RenderMuted(shortTimestamp(e.Timestamp)), e.Type, payloadSummary(e.Payload))
	}
	return nil
}

func shortTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("01-02 15:04:05")
}

// payloadSummary flattens a payload into sorted k=v pairs.
func payloadSummary(payload map[string]interface{}) string {
	if len(payload) == 0 {
		return ""
	}
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, payload[k]))
	}
	return strings.Join(parts, " ")
}
