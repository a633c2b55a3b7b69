package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a zap logger. Development mode switches to the console encoder
// and stack traces on warnings.
func New(level string, development bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}

	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		cfg.Level = lvl
	}

	return cfg.Build()
}
