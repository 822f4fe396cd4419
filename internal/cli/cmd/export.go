package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipstash/clipstash/internal/history"
	"github.com/clipstash/clipstash/internal/types"
)

// newExportCmd creates the export command
func newExportCmd() *cobra.Command {
	var (
		hashes   []string
		compress bool
	)

	cmd := &cobra.Command{
		Use:   "export <destination>",
		Short: "Export history to a file",
		Long: `Write history entries to a file in the on-disk line format,
oldest first. An exported file can be dropped in as a history log.

Examples:
  clipstash export backup.txt
  clipstash export backup.txt.gz --gzip
  clipstash export work.txt --hashes 3f2a91,77bc0e`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dst := args[0]

			store, err := openStore()
			if err != nil {
				return err
			}

			var ids []types.Identity
			if len(hashes) > 0 {
				entries, err := store.LoadAll()
				if err != nil {
					return fmt.Errorf("failed to load history: %w", err)
				}
				ids, err = history.ResolvePrefixes(entries, hashes)
				if err != nil {
					return err
				}
			}

			count, err := store.Export(dst, ids, compress)
			if errors.Is(err, history.ErrNotFound) {
				return fmt.Errorf("no stored entry matches the given hashes")
			}
			if err != nil {
				return fmt.Errorf("failed to export history: %w", err)
			}

			fmt.Printf("✓ Exported %d entries to %s\n", count, dst)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&hashes, "hashes", nil, "export only these hash prefixes")
	cmd.Flags().BoolVar(&compress, "gzip", false, "gzip the output")
	return cmd
}
