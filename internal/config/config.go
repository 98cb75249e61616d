package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete codemap configuration
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`

	Scanner    ScannerConfig    `json:"scanner" mapstructure:"scanner"`
	Summarizer SummarizerConfig `json:"summarizer" mapstructure:"summarizer"`
	Logging    LoggingConfig    `json:"logging" mapstructure:"logging"`
}

// ScannerConfig contains file discovery configuration
type ScannerConfig struct {
	// Excludes are directory names pruned during filesystem walks, in
	// addition to the built-in prune set.
	Excludes []string `json:"excludes" mapstructure:"excludes"`

	// UseGit controls whether tracked files are sourced from git when the
	// root is a repository.
	UseGit bool `json:"useGit" mapstructure:"useGit"`
}

// SummarizerConfig contains AI summarization configuration
type SummarizerConfig struct {
	Endpoint string `json:"endpoint" mapstructure:"endpoint"`
	Model    string `json:"model" mapstructure:"model"`
	Enabled  bool   `json:"enabled" mapstructure:"enabled"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		RepoRoot: ".",
		Scanner: ScannerConfig{
			Excludes: []string{},
			UseGit:   true,
		},
		Summarizer: SummarizerConfig{
			Endpoint: "http://localhost:11434",
			Model:    "qwen2.5-coder",
			Enabled:  false,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .codemap/config.json
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("version", 1)
	v.SetDefault("repoRoot", ".")
	v.SetDefault("scanner.useGit", true)
	v.SetDefault("summarizer.endpoint", "http://localhost:11434")
	v.SetDefault("summarizer.model", "qwen2.5-coder")
	v.SetDefault("logging.format", "human")
	v.SetDefault("logging.level", "info")

	// Configure viper
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".codemap"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to .codemap/config.json
func (c *Config) Save(repoRoot string) error {
	configDir := filepath.Join(repoRoot, ".codemap")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, "config.json"), data, 0o644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	switch c.Logging.Format {
	case "", "human", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be human or json"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
