package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// BackendUnavailable indicates the AST backend is not compiled in
	BackendUnavailable ErrorCode = "BACKEND_UNAVAILABLE"
	// ScanFailed indicates file discovery could not complete
	ScanFailed ErrorCode = "SCAN_FAILED"
	// CacheCorrupt indicates a cache file could not be decoded
	CacheCorrupt ErrorCode = "CACHE_CORRUPT"
	// CacheWriteFailed indicates a cache file could not be persisted
	CacheWriteFailed ErrorCode = "CACHE_WRITE_FAILED"
	// IndexWriteFailed indicates an index file could not be written
	IndexWriteFailed ErrorCode = "INDEX_WRITE_FAILED"
	// InvocationFailed indicates the AI collaborator returned an error
	InvocationFailed ErrorCode = "INVOCATION_FAILED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
	// InstallTool suggests installing a tool
	InstallTool FixActionType = "install-tool"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
	Tool        string        `json:"tool,omitempty"`
}

// MapError represents a codemap error with code, message, and suggestions
type MapError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// NewMapError creates a new MapError
func NewMapError(code ErrorCode, message string, cause error, suggestedFixes []FixAction) *MapError {
	return &MapError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: suggestedFixes,
	}
}

// Error implements the error interface
func (e *MapError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *MapError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *MapError) WithDetails(details interface{}) *MapError {
	e.Details = details
	return e
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	BackendUnavailable: {
		{
			Type:        RunCommand,
			Command:     "CGO_ENABLED=1 go install codemap/cmd/codemap",
			Safe:        true,
			Description: "Rebuild with cgo so the tree-sitter backend is available",
		},
	},
	CacheCorrupt: {
		{
			Type:        RunCommand,
			Command:     "codemap scan",
			Safe:        true,
			Description: "Regenerate the scan cache from scratch",
		},
	},
	InvocationFailed: {
		{
			Type:        RunCommand,
			Command:     "codemap summarize",
			Safe:        true,
			Description: "Retry summarization; already-cached directories are skipped",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
