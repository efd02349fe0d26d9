package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected zapcore.Level
	}{
		{name: "unset", value: "", expected: zapcore.WarnLevel},
		{name: "zero", value: "0", expected: zapcore.WarnLevel},
		{name: "false", value: "false", expected: zapcore.WarnLevel},
		{name: "one", value: "1", expected: zapcore.DebugLevel},
		{name: "true", value: "true", expected: zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, levelFromEnv(tt.value))
		})
	}
}

func TestProvideLogger_DebugEnabledByEnv(t *testing.T) {
	t.Setenv(DebugEnvVar, "1")

	logger, err := ProvideLogger()

	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestProvideLogger_WarnByDefault(t *testing.T) {
	t.Setenv(DebugEnvVar, "")

	logger, err := ProvideLogger()

	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}
