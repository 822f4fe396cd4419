package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clipstash/clipstash/internal/clipboard"
)

// entrySeparator joins multiple entries copied back in one operation.
const entrySeparator = "\n\n---\n\n"

// newCopyCmd creates the copy command
func newCopyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy <hash-prefix>...",
		Short: "Copy history entries back to the clipboard",
		Long: `Copy stored entries back to the system clipboard. Multiple
entries are joined with a dashed separator, in argument order.

A running watcher skips the copy of a single entry as a duplicate; a
joined payload is new content and will be captured.

Examples:
  clipstash copy 3f2a91
  clipstash copy 3f2a91 77bc0e`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}

			entries, err := store.LoadAll()
			if err != nil {
				return fmt.Errorf("failed to load history: %w", err)
			}

			selected, err := selectByPrefix(entries, args)
			if err != nil {
				return err
			}

			texts := make([]string, 0, len(selected))
			for _, entry := range selected {
				texts = append(texts, entry.Content)
			}

			clip := clipboard.NewSystemClipboard()
			if err := clip.Write(strings.Join(texts, entrySeparator)); err != nil {
				return fmt.Errorf("failed to write clipboard: %w", err)
			}

			fmt.Printf("✓ Copied %d entries to clipboard\n", len(selected))
			return nil
		},
	}

	return cmd
}
