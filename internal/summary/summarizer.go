package summary

import (
	"context"
	"time"

	"codemap/internal/logging"
	"codemap/internal/model"
)

// InvokeFunc is the externally supplied AI collaborator: one prompt in, one
// summary and its token usage out. The core never retries; a failed
// invocation propagates untouched so the caller owns retry policy.
type InvokeFunc func(ctx context.Context, prompt string) (string, model.TokenUsage, error)

// SummarizeModule builds the prompt for one directory module and calls the
// collaborator exactly once, returning its result unmodified.
func SummarizeModule(ctx context.Context, module model.DirectoryModule, invoke InvokeFunc) (string, model.TokenUsage, error) {
	return invoke(ctx, BuildPrompt(module))
}

// Summarizer fills directory purposes across a scan, reusing cached entries.
type Summarizer struct {
	invoke    InvokeFunc
	modelName string
	logger    *logging.Logger
}

// NewSummarizer creates a summarizer. modelName is recorded as provenance on
// new cache entries; the core knows nothing else about the model.
func NewSummarizer(invoke InvokeFunc, modelName string, logger *logging.Logger) *Summarizer {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Summarizer{invoke: invoke, modelName: modelName, logger: logger}
}

// SummarizeProject fills the purpose of every directory module. Directories
// with a cached entry reuse it without any invocation; the rest are
// summarized sequentially, in the scan's module order, so usage totals are
// deterministic for a fixed input set and cache state.
//
// The returned mapping holds entries only for directories present in the
// scan: cached entries for vanished directories are dropped. All ProjectScan
// fields other than per-module purpose pass through unchanged.
func (s *Summarizer) SummarizeProject(ctx context.Context, scan *model.ProjectScan, cached map[string]model.SummaryEntry) (*model.ProjectScan, map[string]model.SummaryEntry, model.TokenUsage, error) {
	if cached == nil {
		cached = map[string]model.SummaryEntry{}
	}

	summaries := make(map[string]model.SummaryEntry, len(scan.Modules))
	var usage model.TokenUsage

	for i := range scan.Modules {
		module := &scan.Modules[i]

		if entry, ok := cached[module.Path]; ok {
			module.Purpose = entry.Purpose
			summaries[module.Path] = entry
			continue
		}

		purpose, callUsage, err := SummarizeModule(ctx, *module, s.invoke)
		if err != nil {
			return nil, nil, usage, err
		}
		callUsage.Requests = 0 // request counting is owned here
		usage.Add(callUsage)
		usage.Requests++

		module.Purpose = purpose
		summaries[module.Path] = model.SummaryEntry{
			Purpose:      purpose,
			SummarizedAt: time.Now().UTC(),
			ModelUsed:    s.modelName,
		}

		s.logger.Debug("summarized directory", map[string]interface{}{
			"path":   module.Path,
			"tokens": callUsage.TotalTokens,
		})
	}

	s.logger.Info("summarization complete", map[string]interface{}{
		"directories": len(scan.Modules),
		"requests":    usage.Requests,
	})

	return scan, summaries, usage, nil
}

// FilterFresh removes cached entries for stale directories so they get
// re-summarized, keeping only entries still considered fresh.
func FilterFresh(cached map[string]model.SummaryEntry, stale []model.StaleModule) map[string]model.SummaryEntry {
	if len(stale) == 0 {
		return cached
	}

	staleSet := make(map[string]bool, len(stale))
	for _, sm := range stale {
		staleSet[sm.ModulePath] = true
	}

	fresh := make(map[string]model.SummaryEntry, len(cached))
	for path, entry := range cached {
		if !staleSet[path] {
			fresh[path] = entry
		}
	}
	return fresh
}
