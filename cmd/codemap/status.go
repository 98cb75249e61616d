package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"codemap/internal/indexer"
	"codemap/internal/parser"
	"codemap/internal/paths"
	"codemap/internal/staleness"
	"codemap/internal/summary"
	"codemap/internal/version"
)

var statusOutput string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cache state and scan totals",
	Long:  "Display the cached scan totals, summary coverage, and staleness against the current tree",
	Run:   runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusOutput, "output", "human", "Output format (human, json, yaml)")
	rootCmd.AddCommand(statusCmd)
}

// StatusReport is the machine-readable shape of `codemap status`.
type StatusReport struct {
	Version          string    `json:"version" yaml:"version"`
	Root             string    `json:"root" yaml:"root"`
	BackendAvailable bool      `json:"backendAvailable" yaml:"backendAvailable"`
	CachePresent     bool      `json:"cachePresent" yaml:"cachePresent"`
	ScannedAt        time.Time `json:"scannedAt,omitempty" yaml:"scannedAt,omitempty"`
	ProjectType      string    `json:"projectType,omitempty" yaml:"projectType,omitempty"`
	TotalFiles       int       `json:"totalFiles" yaml:"totalFiles"`
	TotalFunctions   int       `json:"totalFunctions" yaml:"totalFunctions"`
	TotalClasses     int       `json:"totalClasses" yaml:"totalClasses"`
	Directories      int       `json:"directories" yaml:"directories"`
	SummarizedDirs   int       `json:"summarizedDirs" yaml:"summarizedDirs"`
	StaleDirs        int       `json:"staleDirs" yaml:"staleDirs"`
}

func runStatus(cmd *cobra.Command, args []string) {
	root := mustGetRoot()
	cfg, logger := loadSetup(root)

	report := StatusReport{
		Version:          version.Info(),
		Root:             root,
		BackendAvailable: parser.Available(),
	}

	cachedScan, err := indexer.LoadCache(root)
	if err == nil {
		report.CachePresent = true
		report.ScannedAt = cachedScan.ScannedAt
		report.ProjectType = string(cachedScan.ProjectType)
		report.TotalFiles = cachedScan.TotalFiles
		report.TotalFunctions = cachedScan.TotalFunctions
		report.TotalClasses = cachedScan.TotalClasses
		report.Directories = len(cachedScan.Modules)

		summaries := summary.LoadSummaries(paths.SummaryCachePath(root))
		for _, module := range cachedScan.Modules {
			if _, ok := summaries[module.Path]; ok {
				report.SummarizedDirs++
			}
		}

		if current, scanErr := newScanner(root, cfg, logger).ScanProject(); scanErr == nil {
			report.StaleDirs = len(staleness.DetectStaleModules(current, cachedScan))
		}
	}

	switch statusOutput {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(data))
	default:
		printHumanStatus(report)
	}
}

func printHumanStatus(report StatusReport) {
	fmt.Printf("codemap %s\n", report.Version)
	fmt.Printf("Root: %s\n", report.Root)
	fmt.Printf("AST backend: %s\n", availability(report.BackendAvailable))
	if !report.CachePresent {
		fmt.Println("Scan cache: none (run `codemap scan`)")
		return
	}
	fmt.Printf("Scan cache: %s, %s project\n", report.ScannedAt.Format(time.RFC3339), report.ProjectType)
	fmt.Printf("Files: %d | Functions: %d | Classes: %d | Directories: %d\n",
		report.TotalFiles, report.TotalFunctions, report.TotalClasses, report.Directories)
	fmt.Printf("Summaries: %d/%d directories", report.SummarizedDirs, report.Directories)
	if report.StaleDirs > 0 {
		fmt.Printf(" (%d stale)", report.StaleDirs)
	}
	fmt.Println()
}

func availability(ok bool) string {
	if ok {
		return "available"
	}
	return "unavailable (built without cgo)"
}
