// Package parser implements per-file AST extraction, dispatched by language.
// The tree-sitter backend is compiled in under cgo; without cgo every parse
// degrades to an in-band parse error instead of failing the scan.
package parser

import (
	"context"

	"codemap/internal/logging"
	"codemap/internal/model"
)

// Parser dispatches per-file parsing by language. Parse failures are recorded
// on the returned ModuleInfo, never raised: one broken file must not abort
// the scan of the rest of the tree.
type Parser struct {
	backend *backend
	logger  *logging.Logger
}

// New creates a parser. The backend may be unavailable (non-cgo build); the
// parser still works, reporting the missing backend per file.
func New(logger *logging.Logger) *Parser {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Parser{
		backend: newBackend(),
		logger:  logger,
	}
}

// Available reports whether the tree-sitter backend is compiled in.
func Available() bool {
	return backendAvailable()
}

// ParseFile parses one file's source according to its detected language and
// returns the structural ModuleInfo. Unknown languages yield a ModuleInfo
// with only file info populated: absence of a parser is not an error.
func (p *Parser) ParseFile(ctx context.Context, file model.FileInfo, source []byte) model.ModuleInfo {
	switch file.Language {
	case model.LangPython:
		return p.parsePython(ctx, file, source)
	case model.LangTypeScript, model.LangJavaScript:
		return p.parseScript(ctx, file, source)
	default:
		return model.ModuleInfo{FileInfo: file}
	}
}

func (p *Parser) parsePython(ctx context.Context, file model.FileInfo, source []byte) model.ModuleInfo {
	if p.backend == nil {
		return model.ModuleInfo{FileInfo: file, ParseError: missingBackendMessage}
	}
	info := p.backend.parsePython(ctx, file, source)
	if info.ParseError != "" {
		p.logger.Debug("python parse failed", map[string]interface{}{
			"path":  file.Path,
			"error": info.ParseError,
		})
	}
	return info
}

func (p *Parser) parseScript(ctx context.Context, file model.FileInfo, source []byte) model.ModuleInfo {
	if p.backend == nil {
		return model.ModuleInfo{FileInfo: file, ParseError: missingBackendMessage}
	}
	info := p.backend.parseScript(ctx, file, source)
	if info.ParseError != "" {
		p.logger.Debug("script parse failed", map[string]interface{}{
			"path":  file.Path,
			"error": info.ParseError,
		})
	}
	return info
}

// missingBackendMessage explains how to get AST extraction working when the
// binary was built without the tree-sitter backend.
const missingBackendMessage = "AST backend unavailable: this binary was built without cgo, " +
	"so tree-sitter grammars are not compiled in. " +
	"Rebuild with CGO_ENABLED=1 to enable structural extraction."
