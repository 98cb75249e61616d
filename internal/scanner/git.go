package scanner

import (
	"bytes"
	"os/exec"
	"path/filepath"
)

// isGitRepo checks if root is inside a git repository.
func isGitRepo(root string) bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = root
	return cmd.Run() == nil
}

// gitTrackedFiles returns absolute paths of all tracked files under root.
// Uses -z for NUL-separated output to handle paths with spaces.
func gitTrackedFiles(root string) ([]string, error) {
	cmd := exec.Command("git", "ls-files", "-z")
	cmd.Dir = root
	output, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	var files []string
	for _, rel := range bytes.Split(output, []byte{0}) {
		if len(rel) == 0 {
			continue
		}
		files = append(files, filepath.Join(root, string(rel)))
	}
	return files, nil
}
