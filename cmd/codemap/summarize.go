package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codemap/internal/indexer"
	"codemap/internal/llm"
	"codemap/internal/paths"
	"codemap/internal/staleness"
	"codemap/internal/summary"
)

var (
	summarizeModel    string
	summarizeEndpoint string
	summarizeForce    bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Fill directory purposes via the AI collaborator and re-index",
	Long: `Re-scans the tree, compares it against the previous cached scan, and
summarizes only the directories whose contents changed. Fresh summaries come
from the cache without any AI call. Finishes by regenerating the markdown
indexes and persisting both caches.`,
	Run: runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVar(&summarizeModel, "model", "", "Model name (default from config)")
	summarizeCmd.Flags().StringVar(&summarizeEndpoint, "endpoint", "", "Ollama endpoint (default from config)")
	summarizeCmd.Flags().BoolVar(&summarizeForce, "force", false, "Re-summarize every directory")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) {
	root := mustGetRoot()
	cfg, logger := loadSetup(root)
	ctx := context.Background()

	modelName := cfg.Summarizer.Model
	if summarizeModel != "" {
		modelName = summarizeModel
	}
	endpoint := cfg.Summarizer.Endpoint
	if summarizeEndpoint != "" {
		endpoint = summarizeEndpoint
	}

	current, err := runPipeline(root, cfg, logger, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning project: %v\n", err)
		os.Exit(1)
	}

	previous := staleness.LoadPreviousScan(root)
	stale := staleness.DetectStaleModules(current, previous)

	cached := summary.LoadSummaries(paths.SummaryCachePath(root))
	if summarizeForce {
		cached = nil
	} else {
		cached = summary.FilterFresh(cached, stale)
	}

	client := llm.NewClient(endpoint, modelName, logger)
	summarizer := summary.NewSummarizer(client.Invoke, modelName, logger)

	enriched, summaries, usage, err := summarizer.SummarizeProject(ctx, current, cached)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error summarizing project: %v\n", err)
		os.Exit(1)
	}

	if err := summary.SaveSummaries(paths.SummaryCachePath(root), summaries); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing summary cache: %v\n", err)
		os.Exit(1)
	}
	if err := indexer.SaveCache(enriched, root); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing scan cache: %v\n", err)
		os.Exit(1)
	}
	written, err := indexer.GenerateIndexes(enriched, root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing indexes: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Summarized %d directories (%d cached), %d tokens, wrote %d index files\n",
		len(enriched.Modules), len(enriched.Modules)-usage.Requests, usage.TotalTokens, written)
}
