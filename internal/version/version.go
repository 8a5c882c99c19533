// Package version exposes helpers for build-time version metadata.
package version

// ShortCommit truncates a full git commit hash to the conventional
// 7-character short form for display.
func ShortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
