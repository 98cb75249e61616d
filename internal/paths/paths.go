// Package paths centralizes the state-directory layout and path
// canonicalization rules.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// StateDirName is the tool's state directory inside a scanned tree.
const StateDirName = ".codemap"

const (
	scanCacheFile    = "scan.json"
	summaryCacheFile = "summaries.json"
	configFile       = "config.json"
)

// StateDir returns the state directory for a project root.
func StateDir(root string) string {
	return filepath.Join(root, StateDirName)
}

// EnsureStateDir creates the state directory if needed and returns its path.
func EnsureStateDir(root string) (string, error) {
	dir := StateDir(root)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// ScanCachePath returns the location of the persisted ProjectScan.
func ScanCachePath(root string) string {
	return filepath.Join(StateDir(root), scanCacheFile)
}

// SummaryCachePath returns the location of the persisted summary mapping.
func SummaryCachePath(root string) string {
	return filepath.Join(StateDir(root), summaryCacheFile)
}

// ConfigPath returns the location of the config file.
func ConfigPath(root string) string {
	return filepath.Join(StateDir(root), configFile)
}

// CanonicalizePath converts an absolute path to a root-relative canonical path
// with forward slashes. Symlinks are resolved when the target exists.
func CanonicalizePath(absolutePath string, root string) (string, error) {
	resolved, err := filepath.EvalSymlinks(absolutePath)
	if err != nil {
		if os.IsNotExist(err) {
			resolved = absolutePath
		} else {
			return "", err
		}
	}

	rootResolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		if os.IsNotExist(err) {
			rootResolved = root
		} else {
			return "", err
		}
	}

	relativePath, err := filepath.Rel(rootResolved, resolved)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(relativePath), nil
}

// IsWithinRoot reports whether path is inside root.
func IsWithinRoot(path string, root string) bool {
	canonical, err := CanonicalizePath(path, root)
	if err != nil {
		return false
	}
	return !strings.HasPrefix(canonical, "..")
}

// NormalizePath converts backslashes to forward slashes.
func NormalizePath(path string) string {
	return filepath.ToSlash(path)
}
