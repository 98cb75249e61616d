//go:build cgo

package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"codemap/internal/model"
	"codemap/internal/parser"
	"codemap/internal/scanner"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func scanTree(t *testing.T, dir string) *model.ProjectScan {
	t.Helper()
	s := scanner.NewScanner(dir, nil, scanner.WithoutGit())
	o := NewOrchestrator(s, parser.New(nil), nil)
	result, err := o.ScanAndParse(context.Background())
	if err != nil {
		t.Fatalf("ScanAndParse failed: %v", err)
	}
	return result
}

func TestScanAndParseTotals(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "api/service.py", `class Service:
    def start(self):
        pass

    def stop(self):
        pass

def make_service():
    return Service()
`)
	writeFile(t, dir, "api/broken.py", "def oops(\n")
	writeFile(t, dir, "web/app.ts", "export function render() {}\n")

	result := scanTree(t, dir)

	if result.TotalFiles != 3 {
		t.Fatalf("expected 3 files, got %d", result.TotalFiles)
	}

	// Methods count toward total_functions alongside free functions.
	if result.TotalFunctions != 4 {
		t.Errorf("expected 4 functions, got %d", result.TotalFunctions)
	}
	if result.TotalClasses != 1 {
		t.Errorf("expected 1 class, got %d", result.TotalClasses)
	}

	// Totals invariant against per-module sums.
	functions, classes, files := 0, 0, 0
	for _, m := range result.Modules {
		files += len(m.Files)
		for _, f := range m.Files {
			fn, cl := f.CountSymbols()
			functions += fn
			classes += cl
		}
	}
	if files != result.TotalFiles || functions != result.TotalFunctions || classes != result.TotalClasses {
		t.Errorf("totals drifted: files %d/%d functions %d/%d classes %d/%d",
			files, result.TotalFiles, functions, result.TotalFunctions, classes, result.TotalClasses)
	}

	// The broken file carries a parse_error and contributes no symbols.
	broken := result.ModuleByPath(filepath.Join(dir, "api"))
	if broken == nil {
		t.Fatal("api module missing")
	}
	var found bool
	for _, f := range broken.Files {
		if filepath.Base(f.FileInfo.Path) == "broken.py" {
			found = true
			if f.ParseError == "" {
				t.Error("broken.py should carry a parse_error")
			}
			if len(f.Functions) != 0 {
				t.Error("broken.py should have no extracted functions")
			}
		}
	}
	if !found {
		t.Fatal("broken.py not scanned")
	}
}

func TestScanAndParseIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib/mod.py", "def f():\n    pass\n")

	first := scanTree(t, dir)
	second := scanTree(t, dir)

	if first.TotalFiles != second.TotalFiles ||
		first.TotalFunctions != second.TotalFunctions ||
		first.TotalClasses != second.TotalClasses ||
		first.ProjectType != second.ProjectType {
		t.Errorf("repeated scans disagree: %+v vs %+v", first, second)
	}
	if len(first.Modules) != len(second.Modules) {
		t.Fatalf("module counts differ: %d vs %d", len(first.Modules), len(second.Modules))
	}
	for i := range first.Modules {
		if first.Modules[i].Path != second.Modules[i].Path {
			t.Errorf("module order not stable: %s vs %s", first.Modules[i].Path, second.Modules[i].Path)
		}
	}
}
