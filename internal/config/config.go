// Package config loads and validates the pipeline configuration.
//
// Precedence: built-in defaults, then an optional config.yaml next to
// the executable, then PURCHASING_* environment variables. The binary
// runs with no configuration at all: defaults place raw/ and output/
// beside the executable.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Error policies for per-file load failures.
const (
	PolicySkip  = "skip"
	PolicyAbort = "abort"
)

// Config is the complete application configuration.
type Config struct {
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// PathsConfig holds the file system layout.
type PathsConfig struct {
	SourceDir string `yaml:"source_dir" envconfig:"SOURCE_DIR" default:"raw" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"output" validate:"required"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs" validate:"required"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/processor.log"`
}

// PipelineConfig controls stage behavior.
type PipelineConfig struct {
	// OnFileError selects what happens when a single spreadsheet cannot
	// be read: "skip" logs and continues with the remaining files,
	// "abort" fails the whole run.
	OnFileError string `yaml:"on_file_error" envconfig:"ON_FILE_ERROR" default:"skip" validate:"oneof=skip abort"`
	// Worksheet is the sheet read from every input workbook.
	Worksheet string `yaml:"worksheet" envconfig:"WORKSHEET" default:"Sheet2" validate:"required"`
}

// Load builds the configuration from defaults, optional config.yaml and
// environment variables, then validates it.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("PURCHASING", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		mergeConfigs(fileCfg, &cfg)
	}

	cfg.resolvePaths()

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile reads a YAML config file into a fresh Config, so unset
// fields stay zero and can be distinguished from set ones.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs overlays file values onto cfg for every field the
// environment did not set explicitly. Presence is checked against the
// environment itself, not against zero values, because envconfig
// default tags fire whenever a variable is absent.
func mergeConfigs(file *Config, cfg *Config) {
	merge := func(dst *string, fileVal, envKey string) {
		if fileVal == "" {
			return
		}
		if _, ok := os.LookupEnv(envKey); ok {
			return
		}
		*dst = fileVal
	}

	merge(&cfg.Paths.SourceDir, file.Paths.SourceDir, "PURCHASING_PATHS_SOURCE_DIR")
	merge(&cfg.Paths.OutputDir, file.Paths.OutputDir, "PURCHASING_PATHS_OUTPUT_DIR")
	merge(&cfg.Paths.LogsDir, file.Paths.LogsDir, "PURCHASING_PATHS_LOGS_DIR")
	merge(&cfg.Logging.Level, file.Logging.Level, "PURCHASING_LOGGING_LEVEL")
	merge(&cfg.Logging.Format, file.Logging.Format, "PURCHASING_LOGGING_FORMAT")
	merge(&cfg.Logging.Output, file.Logging.Output, "PURCHASING_LOGGING_OUTPUT")
	merge(&cfg.Logging.FilePath, file.Logging.FilePath, "PURCHASING_LOGGING_FILE_PATH")
	merge(&cfg.Pipeline.OnFileError, file.Pipeline.OnFileError, "PURCHASING_PIPELINE_ON_FILE_ERROR")
	merge(&cfg.Pipeline.Worksheet, file.Pipeline.Worksheet, "PURCHASING_PIPELINE_WORKSHEET")
}

// resolvePaths anchors relative paths at the executable's directory so
// the batch job behaves the same regardless of the working directory it
// is launched from.
func (c *Config) resolvePaths() {
	base := executableDir()
	c.Paths.SourceDir = anchor(base, c.Paths.SourceDir)
	c.Paths.OutputDir = anchor(base, c.Paths.OutputDir)
	c.Paths.LogsDir = anchor(base, c.Paths.LogsDir)
	c.Logging.FilePath = anchor(base, c.Logging.FilePath)
}

func anchor(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

func configFilePath() string {
	return filepath.Join(executableDir(), "config.yaml")
}

// EnsureDirectories creates the output and logs directories if absent.
// The source directory is intentionally not created: an absent source
// directory is an input error, not something to paper over.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
