package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("Levels", func(t *testing.T) {
		for _, format := range []string{"json", "console", ""} {
			logger, err := New(Config{Level: "warn", Format: format})
			require.Nil(t, err, format)
			assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
			assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
		}
	})

	t.Run("Invalid level", func(t *testing.T) {
		_, err := New(Config{Level: "loud", Format: "json"})
		assert.NotNil(t, err)
	})

	t.Run("Invalid format", func(t *testing.T) {
		_, err := New(Config{Level: "info", Format: "xml"})
		assert.NotNil(t, err)
	})
}
