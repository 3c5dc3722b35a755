package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nightmarlin/addressbook/cmd/addressbook/internal/config"
)

// newLogger builds a zap logger writing to stderr, keeping stdout for replies.
func newLogger(c config.LogConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Mode == "development" {
		zc = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc.Build()
}
