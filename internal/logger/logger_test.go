package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/Tiliavir/spotsecure/internal/logger"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"", zapcore.WarnLevel},
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		log, err := logger.New(tt.level)
		require.NoError(t, err, tt.level)
		assert.True(t, log.Core().Enabled(tt.want), tt.level)
		if tt.want > zapcore.DebugLevel {
			assert.False(t, log.Core().Enabled(tt.want-1), tt.level)
		}
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := logger.New("chatty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"chatty"`)
}
