package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clipstash/clipstash/internal/clipboard"
	"github.com/clipstash/clipstash/internal/history"
)

// newWatchCmd creates the watch command
func newWatchCmd() *cobra.Command {
	var (
		duration time.Duration
		interval time.Duration
		restore  bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the clipboard and record changes",
		Long: `Run the clipboard monitor in the foreground, recording every
clipboard change to the history log.

With --restore the newest stored entry is copied back to the clipboard
on startup without being re-captured.

You can specify a duration for testing purposes, otherwise it runs
until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			recorder := openRecorder()
			defer recorder.Close()

			if interval <= 0 {
				interval = cfg.Monitor.PollingInterval()
			}

			monitor, err := clipboard.NewMonitor(clipboard.MonitorConfig{
				Interval: interval,
				Store:    store,
				Metrics:  recorder,
				Logger:   zapLogger,
			})
			if err != nil {
				return fmt.Errorf("failed to create monitor: %w", err)
			}

			if err := monitor.Start(context.Background()); err != nil {
				return fmt.Errorf("failed to start monitor: %w", err)
			}
			defer monitor.Stop()

			if restore {
				if err := restoreNewest(monitor, store); err != nil {
					zapLogger.Warn("Failed to restore last entry", zap.Error(err))
				}
			}

			zapLogger.Info("Watching clipboard",
				zap.Duration("interval", interval),
				zap.String("history", store.Path()))

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			if duration > 0 {
				select {
				case <-time.After(duration):
				case <-sigCh:
				}
				return nil
			}

			<-sigCh
			fmt.Println("\nShutdown signal received, stopping monitor...")
			return nil
		},
	}

	cmd.Flags().DurationVarP(&duration, "duration", "d", 0, "run for a specific duration (for testing)")
	cmd.Flags().DurationVar(&interval, "interval", 0, "polling interval (default from config)")
	cmd.Flags().BoolVar(&restore, "restore", false, "copy the newest entry back to the clipboard on startup")
	return cmd
}

// restoreNewest puts the newest stored entry back on the clipboard with
// the echo filter armed, so the monitor does not re-ingest it.
func restoreNewest(monitor *clipboard.Monitor, store *history.Store) error {
	entries, err := store.LoadAll()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	return monitor.CopyToClipboard(entries[0].Content)
}
