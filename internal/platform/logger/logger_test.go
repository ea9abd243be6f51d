package logger_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/config"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/platform/logger"
)

func restoreDefault(t *testing.T) {
	t.Helper()
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: " warn ", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "", want: slog.LevelInfo},
		{in: "verbose", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := logger.ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupFiltersByLevel(t *testing.T) {
	restoreDefault(t)
	buf := &logger.TestLogBuffer{}

	log, err := logger.Setup(config.LogConfig{Level: "warn"}, buf)
	require.NoError(t, err)
	require.NotNil(t, log)

	log.Info("hidden")
	log.Warn("shown", slog.String("course_id", "CS101"))

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])
	assert.Equal(t, "WARN", entries[0]["level"])
	logger.AssertLogField(t, buf, "course_id", "CS101")
}

func TestSetupInstallsDefault(t *testing.T) {
	restoreDefault(t)
	buf := &logger.TestLogBuffer{}

	_, err := logger.Setup(config.LogConfig{Level: "debug"}, buf)
	require.NoError(t, err)

	slog.Debug("through default")
	logger.AssertLogContains(t, buf, "through default")
}

func TestSetupInvalidLevelFallsBack(t *testing.T) {
	restoreDefault(t)
	buf := &logger.TestLogBuffer{}

	log, err := logger.Setup(config.LogConfig{Level: "loud"}, buf)
	assert.Error(t, err)
	require.NotNil(t, log)

	logger.AssertLogContains(t, buf, "invalid log level configured")
	buf.Reset()

	log.Debug("hidden")
	log.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
