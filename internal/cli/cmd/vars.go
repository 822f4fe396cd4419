package cmd

import (
	"go.uber.org/zap"

	"github.com/clipstash/clipstash/internal/config"
	"github.com/clipstash/clipstash/internal/history"
	"github.com/clipstash/clipstash/internal/metrics"
)

// Shared variables across all commands
var (
	cfg       *config.Config
	zapLogger *zap.Logger

	cfgFile string
	verbose bool
	quiet   bool
	useJSON bool
)

// SetConfig sets the configuration for commands
func SetConfig(config *config.Config) {
	cfg = config
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}

// SetZapLogger sets the logger for commands
func SetZapLogger(log *zap.Logger) {
	zapLogger = log
}

// GetZapLogger returns the configured logger
func GetZapLogger() *zap.Logger {
	return zapLogger
}

// openStore opens the history log configured for this run.
func openStore() (*history.Store, error) {
	return history.NewStore(history.StoreConfig{
		Path:          cfg.History.FilePath,
		MaxEntries:    cfg.History.MaxEntries,
		WarnThreshold: cfg.History.WarnThreshold,
		Logger:        zapLogger,
	})
}

// openRecorder opens the metrics database, or returns nil when metrics
// are disabled. A nil recorder is valid; its methods are no-ops.
func openRecorder() *metrics.Recorder {
	if cfg == nil || !cfg.Metrics.Enabled || cfg.Metrics.DBPath == "" {
		return nil
	}
	rec, err := metrics.NewRecorder(metrics.RecorderConfig{
		DBPath: cfg.Metrics.DBPath,
		Logger: zapLogger,
	})
	if err != nil {
		zapLogger.Warn("Failed to open metrics database", zap.Error(err))
		return nil
	}
	return rec
}
