package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"codemap/internal/logging"
	"codemap/internal/model"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path     string
		expected model.Language
	}{
		{"main.py", model.LangPython},
		{"MAIN.PY", model.LangPython},
		{"app.ts", model.LangTypeScript},
		{"component.tsx", model.LangTypeScript},
		{"index.js", model.LangJavaScript},
		{"widget.jsx", model.LangJavaScript},
		{"notes.txt", model.LangUnknown},
		{"Makefile", model.LangUnknown},
		{"noext", model.LangUnknown},
		{"archive.py.bak", model.LangUnknown},
	}

	for _, tt := range tests {
		if got := DetectLanguage(tt.path); got != tt.expected {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.path, got, tt.expected)
		}
	}
}

func TestDetectProjectType(t *testing.T) {
	file := func(lang model.Language) model.FileInfo {
		return model.FileInfo{Language: lang}
	}

	tests := []struct {
		name     string
		files    []model.FileInfo
		expected model.ProjectType
	}{
		{"empty", nil, model.ProjectUnknown},
		{"python only", []model.FileInfo{file(model.LangPython), file(model.LangPython)}, model.ProjectPython},
		{"typescript only", []model.FileInfo{file(model.LangTypeScript)}, model.ProjectTypeScript},
		{"javascript only", []model.FileInfo{file(model.LangJavaScript)}, model.ProjectTypeScript},
		{"ts and js mix", []model.FileInfo{file(model.LangTypeScript), file(model.LangJavaScript)}, model.ProjectTypeScript},
		{"python plus ts", []model.FileInfo{file(model.LangPython), file(model.LangTypeScript)}, model.ProjectMixed},
		{"python plus js", []model.FileInfo{file(model.LangJavaScript), file(model.LangPython)}, model.ProjectMixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectProjectType(tt.files); got != tt.expected {
				t.Errorf("DetectProjectType = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGroupIntoModules(t *testing.T) {
	files := []model.FileInfo{
		{Path: "/repo/a/one.py"},
		{Path: "/repo/b/two.py"},
		{Path: "/repo/a/three.py"},
		{Path: "/repo/four.py"},
	}

	modules := GroupIntoModules(files)

	if len(modules) != 3 {
		t.Fatalf("expected 3 modules, got %d", len(modules))
	}
	// Discovery order: a, b, repo root.
	if modules[0].Path != "/repo/a" || modules[1].Path != "/repo/b" || modules[2].Path != "/repo" {
		t.Errorf("unexpected module order: %s, %s, %s", modules[0].Path, modules[1].Path, modules[2].Path)
	}
	if len(modules[0].Files) != 2 {
		t.Errorf("expected 2 files in /repo/a, got %d", len(modules[0].Files))
	}
	if modules[0].Files[0].FileInfo.Path != "/repo/a/one.py" || modules[0].Files[1].FileInfo.Path != "/repo/a/three.py" {
		t.Errorf("files not in discovery order: %+v", modules[0].Files)
	}
	// Minimal ModuleInfo: no AST fields populated.
	for _, m := range modules {
		for _, f := range m.Files {
			if f.Functions != nil || f.Classes != nil || f.ParseError != "" {
				t.Errorf("expected minimal ModuleInfo for %s", f.FileInfo.Path)
			}
		}
	}
}

func TestGroupIntoModulesEmpty(t *testing.T) {
	if modules := GroupIntoModules(nil); len(modules) != 0 {
		t.Errorf("expected no modules for empty input, got %d", len(modules))
	}
}

// writeFile creates a file with parents under dir.
func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScanProject(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pkg/main.py", "import os\n\ndef main():\n    pass\n")
	writeFile(t, dir, "pkg/util.py", "x = 1\n")
	writeFile(t, dir, "web/app.ts", "export function run() {}\n")
	writeFile(t, dir, "README.md", "# readme\n")
	writeFile(t, dir, "__pycache__/main.cpython-311.pyc", "binary")
	writeFile(t, dir, "node_modules/lib/index.js", "module.exports = {}\n")
	writeFile(t, dir, ".venv/lib/site.py", "pass\n")
	writeFile(t, dir, ".codemap/scan.json", "{}")

	s := NewScanner(dir, logging.NewDiscardLogger(), WithoutGit())
	result, err := s.ScanProject()
	if err != nil {
		t.Fatalf("ScanProject failed: %v", err)
	}

	if result.TotalFiles != 3 {
		t.Errorf("expected 3 files, got %d", result.TotalFiles)
	}
	if result.ProjectType != model.ProjectMixed {
		t.Errorf("expected mixed project, got %q", result.ProjectType)
	}
	if result.TotalFunctions != 0 || result.TotalClasses != 0 {
		t.Errorf("L1 scan must report zero symbols, got %d/%d", result.TotalFunctions, result.TotalClasses)
	}

	// Totals invariant: total_files equals the sum across modules.
	sum := 0
	for _, m := range result.Modules {
		sum += len(m.Files)
	}
	if sum != result.TotalFiles {
		t.Errorf("total_files %d != sum of module files %d", result.TotalFiles, sum)
	}

	for _, m := range result.Modules {
		for _, f := range m.Files {
			base := filepath.Base(f.FileInfo.Path)
			if base == "index.js" || base == "site.py" {
				t.Errorf("pruned directory leaked file %s", f.FileInfo.Path)
			}
			if f.FileInfo.Language == model.LangUnknown {
				t.Errorf("unknown-language file survived: %s", f.FileInfo.Path)
			}
		}
	}
}

func TestScanProjectLineCounts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "one\ntwo\nthree\n")
	writeFile(t, dir, "b.py", "no trailing newline")
	writeFile(t, dir, "c.py", "")

	s := NewScanner(dir, nil, WithoutGit())
	files, err := s.DiscoverFiles()
	if err != nil {
		t.Fatalf("DiscoverFiles failed: %v", err)
	}

	counts := map[string]int{}
	for _, f := range files {
		counts[filepath.Base(f.Path)] = f.LineCount
	}

	if counts["a.py"] != 3 {
		t.Errorf("a.py: expected 3 lines, got %d", counts["a.py"])
	}
	if counts["b.py"] != 1 {
		t.Errorf("b.py: expected 1 line, got %d", counts["b.py"])
	}
	if counts["c.py"] != 0 {
		t.Errorf("c.py: expected 0 lines, got %d", counts["c.py"])
	}
}

func TestScanProjectEmptyTree(t *testing.T) {
	dir := t.TempDir()

	s := NewScanner(dir, nil, WithoutGit())
	result, err := s.ScanProject()
	if err != nil {
		t.Fatalf("ScanProject failed: %v", err)
	}

	if result.TotalFiles != 0 || len(result.Modules) != 0 {
		t.Errorf("expected empty scan, got %d files, %d modules", result.TotalFiles, len(result.Modules))
	}
	if result.ProjectType != model.ProjectUnknown {
		t.Errorf("expected unknown project type, got %q", result.ProjectType)
	}
}

func TestScanProjectExcludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/ok.py", "pass\n")
	writeFile(t, dir, "generated/gen.py", "pass\n")

	s := NewScanner(dir, nil, WithoutGit(), WithExcludes([]string{"generated"}))
	result, err := s.ScanProject()
	if err != nil {
		t.Fatalf("ScanProject failed: %v", err)
	}

	if result.TotalFiles != 1 {
		t.Errorf("expected 1 file after exclude, got %d", result.TotalFiles)
	}
}
