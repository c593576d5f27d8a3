package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"placementwiz/internal/config"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{level: "", want: zapcore.WarnLevel},
		{level: "debug", want: zapcore.DebugLevel},
		{level: "info", want: zapcore.InfoLevel},
		{level: "ERROR", want: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := New(config.LogConfig{Level: tt.level, File: filepath.Join(t.TempDir(), "log.json")})
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	logger, err := New(config.LogConfig{Level: "chatty"})

	assert.Nil(t, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "placementwiz.log")
	logger, err := New(config.LogConfig{Level: "info", File: path})
	require.NoError(t, err)

	logger.Info("Posting submitted", zap.String("kind", "exam"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Posting submitted"`)
	assert.Contains(t, string(data), `"kind":"exam"`)
}
