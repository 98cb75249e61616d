package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codemap/internal/indexer"
)

var indexFresh bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Generate markdown indexes from the scan cache",
	Long: `Renders one .index.md per populated directory plus a root .index.md
from the persisted scan cache. Use --fresh to re-scan first instead of
reusing the cache.`,
	Run: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexFresh, "fresh", false, "Re-scan the tree before rendering")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) {
	root := mustGetRoot()
	cfg, logger := loadSetup(root)

	scanData, err := indexer.LoadCache(root)
	if indexFresh || err != nil {
		scanData, err = runPipeline(root, cfg, logger, false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error scanning project: %v\n", err)
			os.Exit(1)
		}
		if err := indexer.SaveCache(scanData, root); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing scan cache: %v\n", err)
			os.Exit(1)
		}
	}

	written, err := indexer.GenerateIndexes(scanData, root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing indexes: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d index files\n", written)
}
