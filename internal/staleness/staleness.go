// Package staleness diffs a fresh scan against the previously cached scan to
// decide which directory modules need re-summarization.
package staleness

import (
	"codemap/internal/indexer"
	"codemap/internal/model"
)

// fileSignature is the per-file content signature used for modification
// detection. Size and line count together catch edits without hashing.
type fileSignature struct {
	sizeBytes int64
	lineCount int
}

// DetectStaleModules compares current against previous per directory path.
// Directories with no detectable difference are omitted. A nil previous scan
// marks every directory as new.
func DetectStaleModules(current, previous *model.ProjectScan) []model.StaleModule {
	if current == nil {
		return nil
	}

	var stale []model.StaleModule

	for _, module := range current.Modules {
		if previous == nil {
			stale = append(stale, model.StaleModule{
				ModulePath: module.Path,
				Reason:     model.ReasonNewModule,
			})
			continue
		}

		prevModule := previous.ModuleByPath(module.Path)
		if prevModule == nil {
			stale = append(stale, model.StaleModule{
				ModulePath: module.Path,
				Reason:     model.ReasonNewModule,
			})
			continue
		}

		if sm, changed := diffModule(&module, prevModule); changed {
			stale = append(stale, sm)
		}
	}

	return stale
}

// diffModule compares one directory's file sets and signatures.
func diffModule(current, previous *model.DirectoryModule) (model.StaleModule, bool) {
	currentSigs := signatures(current)
	previousSigs := signatures(previous)

	var added, removed, modified []string

	for path := range currentSigs {
		if _, ok := previousSigs[path]; !ok {
			added = append(added, path)
		}
	}
	for path := range previousSigs {
		if _, ok := currentSigs[path]; !ok {
			removed = append(removed, path)
		}
	}
	for path, sig := range currentSigs {
		if prev, ok := previousSigs[path]; ok && prev != sig {
			modified = append(modified, path)
		}
	}

	switch {
	case len(added) > 0:
		return model.StaleModule{
			ModulePath:   current.Path,
			Reason:       model.ReasonFilesAdded,
			ChangedFiles: sortedInFileOrder(current, added),
		}, true
	case len(removed) > 0:
		return model.StaleModule{
			ModulePath:   current.Path,
			Reason:       model.ReasonFilesRemoved,
			ChangedFiles: sortedInFileOrder(previous, removed),
		}, true
	case len(modified) > 0:
		return model.StaleModule{
			ModulePath:   current.Path,
			Reason:       model.ReasonFilesModified,
			ChangedFiles: sortedInFileOrder(current, modified),
		}, true
	}

	return model.StaleModule{}, false
}

func signatures(module *model.DirectoryModule) map[string]fileSignature {
	sigs := make(map[string]fileSignature, len(module.Files))
	for _, f := range module.Files {
		sigs[f.FileInfo.Path] = fileSignature{
			sizeBytes: f.FileInfo.SizeBytes,
			lineCount: f.FileInfo.LineCount,
		}
	}
	return sigs
}

// sortedInFileOrder returns the subset of paths in the module's file order,
// keeping results deterministic regardless of map iteration.
func sortedInFileOrder(module *model.DirectoryModule, paths []string) []string {
	want := make(map[string]bool, len(paths))
	for _, p := range paths {
		want[p] = true
	}

	var out []string
	for _, f := range module.Files {
		if want[f.FileInfo.Path] {
			out = append(out, f.FileInfo.Path)
		}
	}
	return out
}

// LoadPreviousScan reads the persisted scan cache for a root. A missing or
// unreadable cache returns nil: everything is then treated as new.
func LoadPreviousScan(root string) *model.ProjectScan {
	previous, err := indexer.LoadCache(root)
	if err != nil {
		return nil
	}
	return previous
}
