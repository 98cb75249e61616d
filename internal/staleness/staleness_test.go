package staleness

import (
	"reflect"
	"testing"

	"codemap/internal/model"
)

func module(path string, files ...model.FileInfo) model.DirectoryModule {
	m := model.DirectoryModule{Path: path}
	for _, f := range files {
		m.Files = append(m.Files, model.ModuleInfo{FileInfo: f})
	}
	return m
}

func scanOf(modules ...model.DirectoryModule) *model.ProjectScan {
	return &model.ProjectScan{Modules: modules}
}

func file(path string, size int64, lines int) model.FileInfo {
	return model.FileInfo{Path: path, SizeBytes: size, LineCount: lines}
}

func TestDetectStaleModulesNilPrevious(t *testing.T) {
	current := scanOf(
		module("/r/a", file("/r/a/x.py", 10, 2)),
		module("/r/b", file("/r/b/y.py", 20, 4)),
	)

	stale := DetectStaleModules(current, nil)

	if len(stale) != 2 {
		t.Fatalf("expected every module stale, got %d", len(stale))
	}
	for _, sm := range stale {
		if sm.Reason != model.ReasonNewModule {
			t.Errorf("%s: reason %q, want new_module", sm.ModulePath, sm.Reason)
		}
	}
}

func TestDetectStaleModulesUnchanged(t *testing.T) {
	prev := scanOf(module("/r/a", file("/r/a/x.py", 10, 2)))
	curr := scanOf(module("/r/a", file("/r/a/x.py", 10, 2)))

	if stale := DetectStaleModules(curr, prev); len(stale) != 0 {
		t.Errorf("identical scans should yield no stale modules, got %+v", stale)
	}
}

func TestDetectStaleModulesSingleModifiedFile(t *testing.T) {
	prev := scanOf(module("/r/a",
		file("/r/a/x.py", 10, 2),
		file("/r/a/y.py", 30, 6),
	))
	curr := scanOf(module("/r/a",
		file("/r/a/x.py", 10, 2),
		file("/r/a/y.py", 35, 7),
	))

	stale := DetectStaleModules(curr, prev)

	if len(stale) != 1 {
		t.Fatalf("expected exactly one stale module, got %d", len(stale))
	}
	sm := stale[0]
	if sm.ModulePath != "/r/a" || sm.Reason != model.ReasonFilesModified {
		t.Errorf("unexpected stale module: %+v", sm)
	}
	if !reflect.DeepEqual(sm.ChangedFiles, []string{"/r/a/y.py"}) {
		t.Errorf("changed files = %v", sm.ChangedFiles)
	}
}

func TestDetectStaleModulesReasonPrecedence(t *testing.T) {
	// The same directory gains a file, loses a file, and has one modified.
	// Additions take precedence.
	prev := scanOf(module("/r/a",
		file("/r/a/stays.py", 10, 2),
		file("/r/a/gone.py", 5, 1),
	))
	curr := scanOf(module("/r/a",
		file("/r/a/stays.py", 99, 20),
		file("/r/a/new.py", 7, 1),
	))

	stale := DetectStaleModules(curr, prev)
	if len(stale) != 1 {
		t.Fatalf("expected one stale module, got %d", len(stale))
	}
	if stale[0].Reason != model.ReasonFilesAdded {
		t.Errorf("reason = %q, want files_added", stale[0].Reason)
	}
	if !reflect.DeepEqual(stale[0].ChangedFiles, []string{"/r/a/new.py"}) {
		t.Errorf("changed files = %v", stale[0].ChangedFiles)
	}
}

func TestDetectStaleModulesFilesRemoved(t *testing.T) {
	prev := scanOf(module("/r/a",
		file("/r/a/keep.py", 10, 2),
		file("/r/a/gone.py", 5, 1),
	))
	curr := scanOf(module("/r/a", file("/r/a/keep.py", 10, 2)))

	stale := DetectStaleModules(curr, prev)
	if len(stale) != 1 || stale[0].Reason != model.ReasonFilesRemoved {
		t.Fatalf("expected files_removed, got %+v", stale)
	}
	if !reflect.DeepEqual(stale[0].ChangedFiles, []string{"/r/a/gone.py"}) {
		t.Errorf("changed files = %v", stale[0].ChangedFiles)
	}
}

func TestDetectStaleModulesNewDirectory(t *testing.T) {
	prev := scanOf(module("/r/a", file("/r/a/x.py", 10, 2)))
	curr := scanOf(
		module("/r/a", file("/r/a/x.py", 10, 2)),
		module("/r/b", file("/r/b/y.py", 3, 1)),
	)

	stale := DetectStaleModules(curr, prev)
	if len(stale) != 1 {
		t.Fatalf("expected one stale module, got %d", len(stale))
	}
	if stale[0].ModulePath != "/r/b" || stale[0].Reason != model.ReasonNewModule {
		t.Errorf("unexpected stale module: %+v", stale[0])
	}
}

func TestDetectStaleModulesVanishedDirectoryIgnored(t *testing.T) {
	// A directory present only in the previous scan produces no stale entry;
	// its summary is dropped elsewhere.
	prev := scanOf(
		module("/r/a", file("/r/a/x.py", 10, 2)),
		module("/r/old", file("/r/old/z.py", 1, 1)),
	)
	curr := scanOf(module("/r/a", file("/r/a/x.py", 10, 2)))

	if stale := DetectStaleModules(curr, prev); len(stale) != 0 {
		t.Errorf("expected no stale modules, got %+v", stale)
	}
}

func TestLoadPreviousScanMissing(t *testing.T) {
	if got := LoadPreviousScan(t.TempDir()); got != nil {
		t.Errorf("expected nil for missing cache, got %+v", got)
	}
}
