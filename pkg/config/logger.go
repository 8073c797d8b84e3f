package config

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds a zap logger that writes to c.File. The terminal belongs
// to the renderer, so nothing is ever written to stdout or stderr. An empty
// file name returns a no-op logger.
func NewLogger(c LogConfig) (*zap.Logger, error) {
	if c.File == "" {
		return zap.NewNop(), nil
	}

	var zc zap.Config
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}

	if c.Level != "" {
		level, err := zap.ParseAtomicLevel(c.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		zc.Level = level
	}
	zc.OutputPaths = []string{c.File}
	zc.ErrorOutputPaths = []string{c.File}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
