package indexer

import (
	"os"
	"path/filepath"

	"codemap/internal/errors"
	"codemap/internal/model"
	"codemap/internal/scanner"
)

// GenerateIndexes writes the root .index.md plus one .index.md inside every
// directory that has modules. Returns the number of files written.
func GenerateIndexes(scan *model.ProjectScan, root string) (int, error) {
	meta := scanner.ReadProjectMeta(root)

	rootPath := filepath.Join(root, IndexFileName)
	if err := os.WriteFile(rootPath, []byte(RenderRootIndex(scan, meta)), 0o644); err != nil {
		return 0, errors.NewMapError(errors.IndexWriteFailed, "failed to write root index", err, nil)
	}
	written := 1

	for i := range scan.Modules {
		module := &scan.Modules[i]
		indexPath := filepath.Join(module.Path, IndexFileName)
		if err := os.WriteFile(indexPath, []byte(RenderModuleIndex(module)), 0o644); err != nil {
			return written, errors.NewMapError(errors.IndexWriteFailed,
				"failed to write directory index", err, nil).WithDetails(module.Path)
		}
		written++
	}

	return written, nil
}
