package indexer

import (
	"encoding/json"
	"os"

	"codemap/internal/errors"
	"codemap/internal/model"
	"codemap/internal/paths"
)

// SaveCache persists a ProjectScan as JSON under the state directory. The
// JSON form round-trips losslessly, nested AST structures included.
func SaveCache(scan *model.ProjectScan, root string) error {
	if _, err := paths.EnsureStateDir(root); err != nil {
		return errors.NewMapError(errors.CacheWriteFailed, "failed to create state directory", err, nil)
	}

	data, err := json.MarshalIndent(scan, "", "  ")
	if err != nil {
		return errors.NewMapError(errors.CacheWriteFailed, "failed to encode scan cache", err, nil)
	}

	if err := os.WriteFile(paths.ScanCachePath(root), data, 0o644); err != nil {
		return errors.NewMapError(errors.CacheWriteFailed, "failed to write scan cache", err, nil)
	}
	return nil
}

// LoadCache reads the persisted ProjectScan for a root. Callers that only
// need "nothing cached" semantics should treat any error as absence.
func LoadCache(root string) (*model.ProjectScan, error) {
	data, err := os.ReadFile(paths.ScanCachePath(root))
	if err != nil {
		return nil, err
	}

	var scan model.ProjectScan
	if err := json.Unmarshal(data, &scan); err != nil {
		return nil, errors.NewMapError(errors.CacheCorrupt, "failed to decode scan cache", err,
			errors.GetSuggestedFixes(errors.CacheCorrupt))
	}
	return &scan, nil
}
