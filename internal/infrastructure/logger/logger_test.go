package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/infrastructure/config"
)

func TestNewLogger(t *testing.T) {
	t.Run("creates logger with JSON format", func(t *testing.T) {
		cfg := &config.LogConfig{
			Level:  "info",
			Format: "json",
		}

		logger, err := NewLogger(cfg)

		require.NoError(t, err)
		assert.NotNil(t, logger)
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("creates logger with console format on stderr", func(t *testing.T) {
		cfg := &config.LogConfig{
			Level:  "debug",
			Format: "console",
			Output: "stderr",
		}

		logger, err := NewLogger(cfg)

		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("defaults to info level for invalid level", func(t *testing.T) {
		cfg := &config.LogConfig{
			Level:  "invalid",
			Format: "json",
		}

		logger, err := NewLogger(cfg)

		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("creates logger with warn level", func(t *testing.T) {
		cfg := &config.LogConfig{
			Level:  "warn",
			Format: "console",
		}

		logger, err := NewLogger(cfg)

		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	})
}
