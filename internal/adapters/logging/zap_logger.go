package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const DebugEnvVar = "KJOB_DEBUG"

// ProvideLogger builds the diagnostic logger. It writes JSON to stderr and
// only reports warnings unless KJOB_DEBUG is set.
func ProvideLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(levelFromEnv(os.Getenv(DebugEnvVar)))
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func levelFromEnv(value string) zapcore.Level {
	switch value {
	case "", "0", "false":
		return zapcore.WarnLevel
	default:
		return zapcore.DebugLevel
	}
}
