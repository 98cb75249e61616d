package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codemap/internal/indexer"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Bundle the generated indexes into a tar+zstd archive",
	Run:   runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "codemap-indexes.tar.zst", "Output archive path")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) {
	root := mustGetRoot()

	scanData, err := indexer.LoadCache(root)
	if err != nil {
		fmt.Fprintln(os.Stderr, "No scan cache found; run `codemap index` first")
		os.Exit(1)
	}

	if err := indexer.ExportBundle(scanData, root, exportOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing bundle: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", exportOut)
}
