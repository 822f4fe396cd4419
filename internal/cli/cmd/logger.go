package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/clipstash/clipstash/internal/config"
)

// SetupLogger creates the zap logger for CLI runs. Verbose selects the
// development config on stderr; otherwise a production config that logs
// to the configured log directory when file logging is enabled, so
// command output stays clean.
func SetupLogger(cfg *config.Config, verbose, quiet bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopmentConfig().Build()
	}

	level := zapcore.InfoLevel
	if quiet {
		level = zapcore.WarnLevel
	}

	zcfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	if cfg != nil && cfg.Log.Format == "text" {
		zcfg.Encoding = "console"
		zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	if cfg != nil && cfg.Log.EnableFileLogging && cfg.SystemPaths.LogDir != "" {
		if err := os.MkdirAll(cfg.SystemPaths.LogDir, 0755); err == nil {
			zcfg.OutputPaths = []string{filepath.Join(cfg.SystemPaths.LogDir, "clipstash.log")}
		}
	}

	return zcfg.Build()
}

// GetLogger returns the configured logger, creating it if necessary
func GetLogger() (*zap.Logger, error) {
	if zapLogger != nil {
		return zapLogger, nil
	}

	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}

	logger, err := SetupLogger(cfg, verbose, quiet)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	zapLogger = logger
	return logger, nil
}
