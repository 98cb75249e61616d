// Package summary implements the purpose-summary cache and the AI
// summarization pass over a ProjectScan.
package summary

import (
	"encoding/json"
	"os"
	"path/filepath"

	"codemap/internal/model"
)

// LoadSummaries reads the path-keyed summary mapping from a JSON file.
// Missing or corrupt files yield an empty mapping, never an error: a
// destroyed cache only means everything gets re-summarized.
func LoadSummaries(path string) map[string]model.SummaryEntry {
	data, err := os.ReadFile(path)
	if err != nil {
		return map[string]model.SummaryEntry{}
	}

	var summaries map[string]model.SummaryEntry
	if err := json.Unmarshal(data, &summaries); err != nil || summaries == nil {
		return map[string]model.SummaryEntry{}
	}
	return summaries
}

// SaveSummaries writes the summary mapping as one JSON document, creating
// the parent directory if needed.
func SaveSummaries(path string, summaries map[string]model.SummaryEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
