package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codemap/internal/config"
	"codemap/internal/indexer"
	"codemap/internal/logging"
	"codemap/internal/model"
	"codemap/internal/parser"
	"codemap/internal/scan"
	"codemap/internal/scanner"
)

var (
	scanL1Only  bool
	scanNoCache bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the tree and persist the structural cache",
	Long: `Discovers source files, classifies languages, extracts per-file AST
structure, and writes the scan cache under .codemap/. Use --l1 to skip
AST extraction and record file inventory only.`,
	Run: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanL1Only, "l1", false, "Discovery only, no AST extraction")
	scanCmd.Flags().BoolVar(&scanNoCache, "no-cache", false, "Do not persist the scan cache")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) {
	root := mustGetRoot()
	cfg, logger := loadSetup(root)

	result, err := runPipeline(root, cfg, logger, scanL1Only)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning project: %v\n", err)
		os.Exit(1)
	}

	if !scanNoCache {
		if err := indexer.SaveCache(result, root); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing scan cache: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Scanned %d files in %d directories (%d functions, %d classes)\n",
		result.TotalFiles, len(result.Modules),
		result.TotalFunctions, result.TotalClasses)
	if !parser.Available() && !scanL1Only {
		fmt.Println("Note: AST backend unavailable in this build; structure was not extracted.")
	}
}

// newScanner builds a scanner honoring config excludes and git preference.
func newScanner(root string, cfg *config.Config, logger *logging.Logger) *scanner.Scanner {
	opts := []scanner.Option{scanner.WithExcludes(cfg.Scanner.Excludes)}
	if !cfg.Scanner.UseGit {
		opts = append(opts, scanner.WithoutGit())
	}
	return scanner.NewScanner(root, logger, opts...)
}

// runPipeline runs the L1 scan, and the AST pass unless l1Only is set.
func runPipeline(root string, cfg *config.Config, logger *logging.Logger, l1Only bool) (*model.ProjectScan, error) {
	s := newScanner(root, cfg, logger)
	if l1Only {
		return s.ScanProject()
	}
	orch := scan.NewOrchestrator(s, parser.New(logger), logger)
	return orch.ScanAndParse(context.Background())
}
