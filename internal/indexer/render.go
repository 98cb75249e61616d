// Package indexer renders hierarchical markdown indexes from a ProjectScan
// and persists the scan cache.
package indexer

import (
	"fmt"
	"path/filepath"
	"strings"

	"codemap/internal/model"
	"codemap/internal/scanner"
)

// IndexFileName is the name of every generated index file.
const IndexFileName = ".index.md"

// RenderRootIndex renders the root summary: aggregate counts and one table
// row per directory module. Purely deterministic; no network or AI calls.
func RenderRootIndex(scan *model.ProjectScan, meta scanner.ProjectMeta) string {
	var sb strings.Builder

	title := meta.Name
	if title == "" {
		title = filepath.Base(scan.ProjectRoot)
	}

	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	if meta.Description != "" {
		sb.WriteString(meta.Description + "\n\n")
	}

	sb.WriteString(fmt.Sprintf("- Project type: %s\n", scan.ProjectType))
	sb.WriteString(fmt.Sprintf("- Files: %d\n", scan.TotalFiles))
	sb.WriteString(fmt.Sprintf("- Functions: %d\n", scan.TotalFunctions))
	sb.WriteString(fmt.Sprintf("- Classes: %d\n", scan.TotalClasses))
	sb.WriteString(fmt.Sprintf("- Scanned: %s\n\n", scan.ScannedAt.Format("2006-01-02 15:04:05 UTC")))

	if len(scan.Modules) == 0 {
		sb.WriteString("No source directories found.\n")
		return sb.String()
	}

	sb.WriteString("| Directory | Files | Classes | Functions | Purpose |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, module := range scan.Modules {
		functions, classes := 0, 0
		for _, f := range module.Files {
			fn, cl := f.CountSymbols()
			functions += fn
			classes += cl
		}
		sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %s |\n",
			displayPath(module.Path, scan.ProjectRoot),
			len(module.Files), classes, functions,
			tableCell(module.Purpose)))
	}

	return sb.String()
}

// RenderModuleIndex renders one directory's index: its purpose when present,
// then per-file structure with classes, methods, and functions.
func RenderModuleIndex(module *model.DirectoryModule) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", filepath.Base(module.Path)))
	if module.Purpose != "" {
		sb.WriteString(module.Purpose + "\n\n")
	}

	for _, file := range module.Files {
		sb.WriteString(fmt.Sprintf("## %s\n\n", filepath.Base(file.FileInfo.Path)))
		sb.WriteString(fmt.Sprintf("%s, %d lines\n\n", file.FileInfo.Language, file.FileInfo.LineCount))

		if file.ParseError != "" {
			sb.WriteString(fmt.Sprintf("Parse error: %s\n\n", file.ParseError))
			continue
		}
		if file.ModuleDocstring != "" {
			sb.WriteString(file.ModuleDocstring + "\n\n")
		}

		for _, cls := range file.Classes {
			heading := "### class " + cls.Name
			if len(cls.Bases) > 0 {
				heading += "(" + strings.Join(cls.Bases, ", ") + ")"
			}
			sb.WriteString(heading + "\n\n")
			if cls.Docstring != "" {
				sb.WriteString(cls.Docstring + "\n\n")
			}
			for _, m := range cls.Methods {
				sb.WriteString(renderFunctionLine(m))
			}
			if len(cls.Methods) > 0 {
				sb.WriteString("\n")
			}
		}

		if len(file.Functions) > 0 {
			sb.WriteString("### Functions\n\n")
			for _, fn := range file.Functions {
				sb.WriteString(renderFunctionLine(fn))
			}
			sb.WriteString("\n")
		}

		if len(file.Exports) > 0 {
			sb.WriteString(fmt.Sprintf("Exports: %s\n\n", strings.Join(file.Exports, ", ")))
		}
	}

	return sb.String()
}

func renderFunctionLine(fn model.FunctionInfo) string {
	var sb strings.Builder
	sb.WriteString("- ")
	if fn.IsAsync {
		sb.WriteString("async ")
	}
	sb.WriteString(fmt.Sprintf("`%s%s` (line %d)", fn.Name, fn.Signature, fn.LineNumber))
	if fn.Docstring != "" {
		sb.WriteString(" — " + firstLine(fn.Docstring))
	}
	sb.WriteString("\n")
	return sb.String()
}

// displayPath renders a directory path relative to the project root, with
// "." for the root itself.
func displayPath(path, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "" {
		return path
	}
	return filepath.ToSlash(rel)
}

// tableCell flattens text into one markdown table cell.
func tableCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.TrimSpace(s)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}
