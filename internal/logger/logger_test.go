package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_DEV", "1")
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, Config{Level: "debug", Dev: true}, ConfigFromEnv())

	t.Setenv("LOG_DEV", "")
	t.Setenv("LOG_LEVEL", "warn")
	assert.Equal(t, Config{Level: "warn", Dev: false}, ConfigFromEnv())
}

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, levelFromString("debug"))
	assert.Equal(t, zapcore.WarnLevel, levelFromString("warning"))
	assert.Equal(t, zapcore.InfoLevel, levelFromString("verbose"))
}

func TestInitReplacesGlobals(t *testing.T) {
	previous := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(previous) })

	l, err := Init(Config{Level: "error"})
	require.NoError(t, err)

	assert.Same(t, l, zap.L())
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.ErrorLevel))
}
