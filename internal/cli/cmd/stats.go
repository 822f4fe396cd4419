package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clipstash/clipstash/pkg/format"
)

// newStatsCmd creates the stats command
func newStatsCmd() *cobra.Command {
	var (
		noColors bool
		noIcons  bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show history statistics",
		Long: `Show statistics about the history log and, when metrics are
enabled, the capture counters recorded by the watcher.

Examples:
  clipstash stats          # Human-readable statistics
  clipstash stats --json   # Statistics as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}

			storeStats, err := store.Stats()
			if err != nil {
				return fmt.Errorf("failed to read history stats: %w", err)
			}

			stats := map[string]interface{}{
				"total_entries":   storeStats.Total,
				"tagged_entries":  storeStats.Tagged,
				"malformed_lines": storeStats.Malformed,
				"oldest_entry":    storeStats.Oldest,
				"newest_entry":    storeStats.Newest,
			}
			if info, err := os.Stat(store.Path()); err == nil {
				stats["file_size"] = info.Size()
			}

			if recorder := openRecorder(); recorder != nil {
				defer recorder.Close()
				if snap, err := recorder.Snapshot(); err == nil {
					stats["captured"] = snap.Captured
					stats["duplicates"] = snap.Duplicates
					stats["suppressed"] = snap.Suppressed
					if len(snap.ByKind) > 0 {
						stats["by_kind"] = snap.ByKind
					}
				}
			}

			if useJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}

			opts := format.DefaultOptions()
			if noColors {
				opts.UseColors = false
			}
			if noIcons {
				opts.UseIcons = false
			}

			fmt.Println(format.FormatStats(stats, opts))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColors, "no-colors", false, "disable colored output")
	cmd.Flags().BoolVar(&noIcons, "no-icons", false, "disable icons in output")
	return cmd
}
