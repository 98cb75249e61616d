//go:build !cgo

package parser

import (
	"context"

	"codemap/internal/model"
)

// backend is a stub used when CGO is not available. Parsing degrades to an
// in-band parse error carrying rebuild guidance; nothing crashes.
type backend struct{}

func newBackend() *backend {
	return nil
}

func backendAvailable() bool {
	return false
}

func (b *backend) parsePython(ctx context.Context, file model.FileInfo, source []byte) model.ModuleInfo {
	return model.ModuleInfo{FileInfo: file, ParseError: missingBackendMessage}
}

func (b *backend) parseScript(ctx context.Context, file model.FileInfo, source []byte) model.ModuleInfo {
	return model.ModuleInfo{FileInfo: file, ParseError: missingBackendMessage}
}
