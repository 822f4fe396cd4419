package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/clipstash/clipstash/internal/clipboard"
	"github.com/clipstash/clipstash/internal/config"
	"github.com/clipstash/clipstash/internal/history"
	"github.com/clipstash/clipstash/internal/metrics"
)

func main() {
	configPath := flag.String("config", "", "config file (default is the platform config dir)")
	restore := flag.Bool("restore", false, "copy the newest entry back to the clipboard on startup")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	// Load config first
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	var logger *zap.Logger
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	store, err := history.NewStore(history.StoreConfig{
		Path:          cfg.History.FilePath,
		MaxEntries:    cfg.History.MaxEntries,
		WarnThreshold: cfg.History.WarnThreshold,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal("Failed to open history store", zap.Error(err))
	}

	var recorder *metrics.Recorder
	if cfg.Metrics.Enabled && cfg.Metrics.DBPath != "" {
		recorder, err = metrics.NewRecorder(metrics.RecorderConfig{
			DBPath: cfg.Metrics.DBPath,
			Logger: logger,
		})
		if err != nil {
			logger.Warn("Continuing without metrics", zap.Error(err))
		} else {
			defer recorder.Close()
		}
	}

	monitor, err := clipboard.NewMonitor(clipboard.MonitorConfig{
		Interval: cfg.Monitor.PollingInterval(),
		Store:    store,
		Metrics:  recorder,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal("Failed to create monitor", zap.Error(err))
	}

	if err := monitor.Start(context.Background()); err != nil {
		logger.Fatal("Failed to start monitor", zap.Error(err))
	}
	defer monitor.Stop()

	if *restore {
		entries, err := store.LoadAll()
		if err != nil {
			logger.Warn("Failed to load history for restore", zap.Error(err))
		} else if len(entries) > 0 {
			if err := monitor.CopyToClipboard(entries[0].Content); err != nil {
				logger.Warn("Failed to restore last entry", zap.Error(err))
			}
		}
	}

	logger.Info("clipstashd running",
		zap.String("history", store.Path()),
		zap.Duration("interval", cfg.Monitor.PollingInterval()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutdown signal received")
}
