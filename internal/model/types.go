// Package model defines the scan data model shared by the scanner, parser,
// staleness detector, summarizer, and indexer.
package model

import "time"

// Language identifies the source language of a file.
type Language string

const (
	LangPython     Language = "python"
	LangTypeScript Language = "typescript"
	LangJavaScript Language = "javascript"
	LangUnknown    Language = "unknown"
)

// ProjectType is the inferred overall type of a scanned tree.
type ProjectType string

const (
	ProjectPython     ProjectType = "python"
	ProjectTypeScript ProjectType = "typescript"
	ProjectMixed      ProjectType = "mixed"
	ProjectUnknown    ProjectType = "unknown"
)

// FileInfo describes one discovered source file.
type FileInfo struct {
	Path      string   `json:"path"`
	SizeBytes int64    `json:"size_bytes"`
	Language  Language `json:"language"`
	LineCount int      `json:"line_count"`
}

// FunctionInfo describes one function or method.
type FunctionInfo struct {
	Name       string   `json:"name"`
	Signature  string   `json:"signature"`
	LineNumber int      `json:"line_number"`
	Docstring  string   `json:"docstring,omitempty"`
	IsMethod   bool     `json:"is_method"`
	IsAsync    bool     `json:"is_async"`
	Decorators []string `json:"decorators,omitempty"`
}

// ClassInfo describes one class with its methods in source order.
type ClassInfo struct {
	Name       string         `json:"name"`
	LineNumber int            `json:"line_number"`
	Docstring  string         `json:"docstring,omitempty"`
	Bases      []string       `json:"bases,omitempty"`
	Methods    []FunctionInfo `json:"methods,omitempty"`
}

// ImportInfo describes one import statement. Names is empty for plain
// imports; for from-imports it holds the imported symbols.
type ImportInfo struct {
	Module       string   `json:"module"`
	Names        []string `json:"names,omitempty"`
	IsFromImport bool     `json:"is_from_import"`
}

// ModuleInfo is the per-file parse result. ParseError is set instead of the
// AST lists when parsing or reading failed; the two never coexist.
type ModuleInfo struct {
	FileInfo        FileInfo       `json:"file_info"`
	Functions       []FunctionInfo `json:"functions,omitempty"`
	Classes         []ClassInfo    `json:"classes,omitempty"`
	Imports         []ImportInfo   `json:"imports,omitempty"`
	ModuleDocstring string         `json:"module_docstring,omitempty"`
	Exports         []string       `json:"exports,omitempty"`
	ParseError      string         `json:"parse_error,omitempty"`
}

// DirectoryModule groups the files directly inside one directory. Purpose is
// filled only by the summarizer.
type DirectoryModule struct {
	Path    string       `json:"path"`
	Files   []ModuleInfo `json:"files"`
	Purpose string       `json:"purpose,omitempty"`
}

// ProjectScan is the full result of scanning one tree. It is persisted as the
// scan cache and reloaded for staleness comparison on later runs.
type ProjectScan struct {
	ProjectRoot    string            `json:"project_root"`
	ProjectType    ProjectType       `json:"project_type"`
	Modules        []DirectoryModule `json:"modules"`
	TotalFiles     int               `json:"total_files"`
	TotalFunctions int               `json:"total_functions"`
	TotalClasses   int               `json:"total_classes"`
	ScannedAt      time.Time         `json:"scanned_at"`
}

// SummaryEntry is one cached directory purpose with provenance.
type SummaryEntry struct {
	Purpose      string    `json:"purpose"`
	SummarizedAt time.Time `json:"summarized_at"`
	ModelUsed    string    `json:"model_used,omitempty"`
}

// StaleReason tags why a directory module needs re-summarization.
type StaleReason string

const (
	ReasonNewModule     StaleReason = "new_module"
	ReasonFilesAdded    StaleReason = "files_added"
	ReasonFilesRemoved  StaleReason = "files_removed"
	ReasonFilesModified StaleReason = "files_modified"
)

// StaleModule records one directory that changed since the previous scan.
// Computed transiently; never persisted.
type StaleModule struct {
	ModulePath   string      `json:"module_path"`
	Reason       StaleReason `json:"reason"`
	ChangedFiles []string    `json:"changed_files,omitempty"`
}

// TokenUsage accumulates token accounting across AI invocations.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
	Requests     int `json:"requests"`
}

// Add accumulates another usage record into u.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.TotalTokens += other.TotalTokens
	u.Requests += other.Requests
}

// CountSymbols returns the function and class counts for one file, including
// methods nested in classes.
func (m *ModuleInfo) CountSymbols() (functions, classes int) {
	functions = len(m.Functions)
	classes = len(m.Classes)
	for _, c := range m.Classes {
		functions += len(c.Methods)
	}
	return functions, classes
}

// ModuleByPath returns the directory module at path, or nil.
func (s *ProjectScan) ModuleByPath(path string) *DirectoryModule {
	for i := range s.Modules {
		if s.Modules[i].Path == path {
			return &s.Modules[i]
		}
	}
	return nil
}
