package summary

import (
	"fmt"
	"path/filepath"
	"strings"

	"codemap/internal/model"
)

// BuildPrompt renders one directory module into a deterministic prompt for
// the AI collaborator. Sections with no content are omitted entirely rather
// than rendered as empty headers.
func BuildPrompt(module model.DirectoryModule) string {
	var sb strings.Builder

	sb.WriteString("Summarize the purpose of this source directory in one paragraph.\n\n")
	sb.WriteString(fmt.Sprintf("Directory: %s\n\n", module.Path))

	sb.WriteString("Files:\n")
	for _, f := range module.Files {
		sb.WriteString(fmt.Sprintf("- %s (%d lines)\n", filepath.Base(f.FileInfo.Path), f.FileInfo.LineCount))
	}

	if classes := renderClasses(module); classes != "" {
		sb.WriteString("\nClasses:\n")
		sb.WriteString(classes)
	}
	if functions := renderFunctions(module); functions != "" {
		sb.WriteString("\nFunctions:\n")
		sb.WriteString(functions)
	}
	if imports := renderImports(module); imports != "" {
		sb.WriteString("\nImports:\n")
		sb.WriteString(imports)
	}
	if exports := renderExports(module); exports != "" {
		sb.WriteString("\nExports:\n")
		sb.WriteString(exports)
	}

	return sb.String()
}

func renderClasses(module model.DirectoryModule) string {
	var sb strings.Builder
	for _, f := range module.Files {
		for _, c := range f.Classes {
			sb.WriteString(fmt.Sprintf("- %s", c.Name))
			if len(c.Bases) > 0 {
				sb.WriteString(fmt.Sprintf("(%s)", strings.Join(c.Bases, ", ")))
			}
			if c.Docstring != "" {
				sb.WriteString(": " + firstLine(c.Docstring))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func renderFunctions(module model.DirectoryModule) string {
	var sb strings.Builder
	for _, f := range module.Files {
		for _, fn := range f.Functions {
			sb.WriteString(fmt.Sprintf("- %s%s", fn.Name, fn.Signature))
			if fn.Docstring != "" {
				sb.WriteString(": " + firstLine(fn.Docstring))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func renderImports(module model.DirectoryModule) string {
	var sb strings.Builder
	for _, f := range module.Files {
		for _, imp := range f.Imports {
			if imp.IsFromImport {
				sb.WriteString(fmt.Sprintf("- from %s import %s\n", imp.Module, strings.Join(imp.Names, ", ")))
			} else {
				sb.WriteString(fmt.Sprintf("- import %s\n", imp.Module))
			}
		}
	}
	return sb.String()
}

func renderExports(module model.DirectoryModule) string {
	var sb strings.Builder
	for _, f := range module.Files {
		if len(f.Exports) > 0 {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", filepath.Base(f.FileInfo.Path), strings.Join(f.Exports, ", ")))
		}
	}
	return sb.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}
