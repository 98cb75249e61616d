package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"codemap/internal/config"
	"codemap/internal/logging"
	"codemap/internal/version"
)

var (
	// rootFlag is the CLI --root flag value
	rootFlag string
	// logLevelFlag is the CLI --log-level flag value
	logLevelFlag string
	// logFormatFlag is the CLI --log-format flag value
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "codemap",
	Short: "codemap - navigable structural maps of a source tree",
	Long: `codemap scans a source tree, extracts per-file structure (functions,
classes, imports, docstrings), renders hierarchical markdown indexes, and
keeps optional AI-generated directory summaries fresh across runs.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("codemap version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", ".", "Project root to scan")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format: human, json")
}

// mustGetRoot resolves the --root flag to an absolute path.
func mustGetRoot() string {
	root, err := filepath.Abs(rootFlag)
	if err != nil {
		os.Stderr.WriteString("invalid --root: " + err.Error() + "\n")
		os.Exit(1)
	}
	return root
}

// loadSetup loads config for the root and builds a logger honoring flag
// overrides. Precedence: CLI flags > config file > defaults.
func loadSetup(root string) (*config.Config, *logging.Logger) {
	cfg, err := config.LoadConfig(root)
	if err != nil {
		cfg = config.DefaultConfig()
	}

	format := cfg.Logging.Format
	if logFormatFlag != "" {
		format = logFormatFlag
	}
	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}

	logger := logging.NewLogger(logging.Config{
		Format: logging.Format(format),
		Level:  logging.LogLevel(level),
	})
	return cfg, logger
}
