package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	apperrors "github.com/mcncl/modelgen/internal/errors"
	"github.com/mcncl/modelgen/internal/models"
)

// Config represents the complete configuration for modelgen
type Config struct {
	Meta       models.Meta      `yaml:"meta"`
	Target     string           `yaml:"target"`
	OutputDir  string           `yaml:"output_dir"`
	Formatting FormattingConfig `yaml:"formatting"`
	Analysis   AnalysisConfig   `yaml:"analysis"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
	Dev        DevConfig        `yaml:"dev"`
}

// FormattingConfig controls code formatting options
type FormattingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// AnalysisConfig controls schema inference
type AnalysisConfig struct {
	// MaxDepth bounds payload nesting; zero uses the analyzer default.
	MaxDepth int `yaml:"max_depth"`
	// Strict fails generation on type name collisions.
	Strict bool `yaml:"strict"`
}

// OutputConfig controls output generation options
type OutputConfig struct {
	FileHeader string `yaml:"file_header"`
	// Workers bounds concurrent file writes; zero means one per CPU.
	Workers int `yaml:"workers"`
}

// LoggingConfig controls the structured logger
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DevConfig contains development/debug options. Debug raises the log level
// to debug whatever logging.level says.
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Target: "go",
		Formatting: FormattingConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the values a YAML file can set out of range.
func (c *Config) Validate() error {
	if c.Analysis.MaxDepth < 0 {
		return fmt.Errorf("analysis.max_depth must not be negative, got %d", c.Analysis.MaxDepth)
	}
	if c.Output.Workers < 0 {
		return fmt.Errorf("output.workers must not be negative, got %d", c.Output.Workers)
	}
	if c.Logging.Level != "" && !contains(logLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("logging.level must be one of %v, got %q", logLevels, c.Logging.Level)
	}
	return nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	// Start from current directory
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return FindConfigFileFrom(currentDir)
}

// FindConfigFileFrom searches dir and its parents for a config file.
func FindConfigFileFrom(dir string) string {
	configNames := []string{".modelgen.yml", ".modelgen.yaml", "modelgen.yml", "modelgen.yaml"}

	currentDir := dir
	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		// Move up one directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// LoadMeta reads the naming configuration from a JSON file of the form
// {"name": "...", "namespace": "..."}. A missing file is reported as
// ErrMissingMeta.
func LoadMeta(path string) (models.Meta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Meta{}, fmt.Errorf("%w: %s does not exist", apperrors.ErrMissingMeta, path)
		}
		return models.Meta{}, fmt.Errorf("failed to read meta file: %w", err)
	}

	var meta models.Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return models.Meta{}, fmt.Errorf("failed to parse meta file %s: %w", path, err)
	}
	return meta, nil
}

// CLIOverrides carries the command line values that take precedence over the
// config file. Empty strings and false booleans leave the file value alone.
type CLIOverrides struct {
	ConfigPath string
	MetaPath   string
	Name       string
	Namespace  string
	Target     string
	OutputDir  string
	Strict     bool
	NoFormat   bool
	Debug      bool
	LogFile    string
}

// LoadConfigWithCLI loads config with CLI argument precedence: defaults, then
// the config file, then the meta file, then individual flags.
func LoadConfigWithCLI(o CLIOverrides) (*Config, error) {
	// Start with defaults
	cfg := NewConfig()

	// Load config file if provided
	if o.ConfigPath != "" {
		fileConfig, err := LoadConfig(o.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if o.MetaPath != "" {
		meta, err := LoadMeta(o.MetaPath)
		if err != nil {
			return nil, err
		}
		cfg.Meta = meta
	}

	if o.Name != "" {
		cfg.Meta.Name = o.Name
	}
	if o.Namespace != "" {
		cfg.Meta.Namespace = o.Namespace
	}
	if o.Target != "" {
		cfg.Target = o.Target
	}
	if o.OutputDir != "" {
		cfg.OutputDir = o.OutputDir
	}
	if o.LogFile != "" {
		cfg.Logging.File = o.LogFile
	}

	// Boolean flags can only switch behaviour on; the file decides otherwise.
	if o.Strict {
		cfg.Analysis.Strict = true
	}
	if o.NoFormat {
		cfg.Formatting.Enabled = false
	}
	if o.Debug {
		cfg.Dev.Debug = true
	}
	if cfg.Dev.Debug {
		cfg.Logging.Level = "debug"
	}

	return cfg, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
