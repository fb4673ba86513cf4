// Package logging builds the zap loggers used across the service.
package logging

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pageza/sofregit/backend/config"
)

// New returns a console logger in development and a JSON logger elsewhere,
// both at the given level ("debug", "info", "warn", "error").
func New(environment config.Environment, level string) (*zap.Logger, error) {
	var zcfg zap.Config
	if environment == config.Development {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}

	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		zcfg.Level = lvl
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.With(zap.String("env", string(environment))), nil
}
