// Package workspace locates the directory a dga project lives in.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound indicates no workspace marker was found.
var ErrNotFound = errors.New("not inside a dga workspace (run 'dga init' first)")

// Marker is the config file that identifies a workspace root.
const Marker = "dga.toml"

// EnvRoot overrides discovery when set. Useful for scripts that run outside
// the workspace tree.
const EnvRoot = "DGA_WORKSPACE"

// Find locates the workspace root by walking up from the given directory.
// It does not resolve symlinks, staying consistent with os.Getwd().
func Find(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	current := absDir
	for {
		if ok, err := IsWorkspace(current); err != nil {
			return "", err
		} else if ok {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrNotFound
		}
		current = parent
	}
}

// FindFromCwd locates the workspace root from the current working directory.
// The DGA_WORKSPACE environment variable takes precedence when it names a
// valid workspace.
func FindFromCwd() (string, error) {
	if root := os.Getenv(EnvRoot); root != "" {
		ok, err := IsWorkspace(root)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("%s=%s: %w", EnvRoot, root, ErrNotFound)
		}
		return filepath.Abs(root)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return Find(cwd)
}

// IsWorkspace reports whether dir contains the marker file.
func IsWorkspace(dir string) (bool, error) {
	info, err := os.Stat(filepath.Join(dir, Marker))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// RunsDir returns the directory run artifacts are stored under.
func RunsDir(root string) string {
	return filepath.Join(root, "runs")
}
