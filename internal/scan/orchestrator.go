// Package scan composes the scanner and parser into one enriched ProjectScan.
package scan

import (
	"context"
	"fmt"
	"os"

	"codemap/internal/logging"
	"codemap/internal/model"
	"codemap/internal/parser"
	"codemap/internal/scanner"
)

// Orchestrator runs the L1 scan and then enriches every file with AST data.
type Orchestrator struct {
	scanner *scanner.Scanner
	parser  *parser.Parser
	logger  *logging.Logger
}

// NewOrchestrator creates an orchestrator over a configured scanner.
func NewOrchestrator(s *scanner.Scanner, p *parser.Parser, logger *logging.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Orchestrator{scanner: s, parser: p, logger: logger}
}

// ScanAndParse produces a fully enriched ProjectScan: discovery, grouping,
// per-file AST extraction, and rolled-up symbol totals. A file that cannot be
// read gets a parse_error recorded and the scan continues; nothing aborts the
// tree.
func (o *Orchestrator) ScanAndParse(ctx context.Context) (*model.ProjectScan, error) {
	result, err := o.scanner.ScanProject()
	if err != nil {
		return nil, err
	}

	totalFunctions := 0
	totalClasses := 0

	for mi := range result.Modules {
		module := &result.Modules[mi]
		for fi := range module.Files {
			file := module.Files[fi].FileInfo

			source, readErr := os.ReadFile(file.Path)
			if readErr != nil {
				module.Files[fi] = model.ModuleInfo{
					FileInfo:   file,
					ParseError: fmt.Sprintf("failed to read file: %v", readErr),
				}
				continue
			}

			parsed := o.parser.ParseFile(ctx, file, source)
			module.Files[fi] = parsed

			functions, classes := parsed.CountSymbols()
			totalFunctions += functions
			totalClasses += classes
		}
	}

	result.TotalFunctions = totalFunctions
	result.TotalClasses = totalClasses

	o.logger.Info("parse complete", map[string]interface{}{
		"files":     result.TotalFiles,
		"functions": totalFunctions,
		"classes":   totalClasses,
	})

	return result, nil
}
