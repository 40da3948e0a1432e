package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, PolicySkip, cfg.Pipeline.OnFileError)
	assert.Equal(t, "Sheet2", cfg.Pipeline.Worksheet)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	// Relative defaults are anchored at the executable's directory.
	assert.True(t, filepath.IsAbs(cfg.Paths.SourceDir))
	assert.Equal(t, "raw", filepath.Base(cfg.Paths.SourceDir))
	assert.Equal(t, "output", filepath.Base(cfg.Paths.OutputDir))
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PURCHASING_PIPELINE_ON_FILE_ERROR", "abort")
	t.Setenv("PURCHASING_LOGGING_LEVEL", "debug")
	t.Setenv("PURCHASING_PATHS_SOURCE_DIR", "/data/raw")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, PolicyAbort, cfg.Pipeline.OnFileError)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/data/raw", cfg.Paths.SourceDir, "absolute paths are not re-anchored")
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)
	cfgPath := filepath.Join(filepath.Dir(exe), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"pipeline:\n  on_file_error: abort\nlogging:\n  level: warn\n"), 0o644))
	t.Cleanup(func() { os.Remove(cfgPath) })

	t.Setenv("PURCHASING_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, PolicyAbort, cfg.Pipeline.OnFileError,
		"file values win over built-in defaults")
	assert.Equal(t, "debug", cfg.Logging.Level,
		"an explicitly set env var wins over the file")
	assert.Equal(t, "json", cfg.Logging.Format,
		"fields set by neither file nor env keep their defaults")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad error policy", "PURCHASING_PIPELINE_ON_FILE_ERROR", "retry"},
		{"bad log level", "PURCHASING_LOGGING_LEVEL", "verbose"},
		{"bad log output", "PURCHASING_LOGGING_OUTPUT", "syslog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		Paths: PathsConfig{
			SourceDir: filepath.Join(dir, "raw"),
			OutputDir: filepath.Join(dir, "output"),
			LogsDir:   filepath.Join(dir, "logs"),
		},
	}

	require.NoError(t, cfg.EnsureDirectories())

	for _, sub := range []string{"output", "logs"} {
		info, err := os.Stat(filepath.Join(dir, sub))
		require.NoError(t, err, sub)
		assert.True(t, info.IsDir())
	}

	// The source directory is deliberately not created.
	_, err := os.Stat(filepath.Join(dir, "raw"))
	assert.True(t, os.IsNotExist(err))

	// Idempotent.
	assert.NoError(t, cfg.EnsureDirectories())
}
