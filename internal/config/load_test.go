package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads; viper treats empty values as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"COURSEREG_LOG_LEVEL", "COURSEREG_DATA_DIR", "COURSEREG_GRADING_GPA_POLICY"} {
		t.Setenv(name, "")
	}
}

// inTempDir runs the test from an empty directory so no coursereg.yaml is picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

// TestLoadDefaults verifies the defaults when nothing else is configured.
func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	inTempDir(t)

	cfg, err := Load(nil)

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ".", cfg.Data.Dir)
	assert.Equal(t, "exclude_ungraded", cfg.Grading.GPAPolicy)
}

// TestLoadFromEnv verifies that the Load function correctly reads values from environment variables.
func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	inTempDir(t)
	t.Setenv("COURSEREG_LOG_LEVEL", "DEBUG")
	t.Setenv("COURSEREG_DATA_DIR", "/var/lib/coursereg")
	t.Setenv("COURSEREG_GRADING_GPA_POLICY", "include_ungraded")

	cfg, err := Load(newFlags(t))

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level, "log level is normalized to lower case")
	assert.Equal(t, "/var/lib/coursereg", cfg.Data.Dir)
	assert.Equal(t, "include_ungraded", cfg.Grading.GPAPolicy)
}

// TestLoadFromFile verifies that a config file is read and that env and flags take precedence.
func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	dir := inTempDir(t)

	path := filepath.Join(dir, "custom.yaml")
	content := "log:\n  level: warn\ndata:\n  dir: /srv/data\ngrading:\n  gpa_policy: include_ungraded\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(newFlags(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/srv/data", cfg.Data.Dir)
	assert.Equal(t, "include_ungraded", cfg.Grading.GPAPolicy)

	t.Setenv("COURSEREG_DATA_DIR", "/env/data")
	cfg, err = Load(newFlags(t, "--config", path, "--log-level", "error"))
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level, "flag beats file")
	assert.Equal(t, "/env/data", cfg.Data.Dir, "env beats file")
}

// TestLoadDiscoversDefaultFile verifies that coursereg.yaml in the working directory is used.
func TestLoadDiscoversDefaultFile(t *testing.T) {
	clearEnv(t)
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "coursereg.yaml"), []byte("data:\n  dir: ./state\n"), 0o644))

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "./state", cfg.Data.Dir)
}

// TestLoadValidationErrors verifies that the Load function correctly validates the configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "invalid log level", args: []string{"--log-level", "verbose"}},
		{name: "invalid gpa policy", args: []string{"--gpa-policy", "median"}},
		{name: "missing explicit config file", args: []string{"--config", "/does/not/exist.yaml"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			inTempDir(t)

			cfg, err := Load(newFlags(t, tc.args...))
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
