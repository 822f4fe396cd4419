package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clipstash/clipstash/internal/clipboard"
	"github.com/clipstash/clipstash/internal/types"
	"github.com/clipstash/clipstash/pkg/format"
)

// newAddCmd creates the add command
func newAddCmd() *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Add an entry to the history",
		Long: `Add content to the history without going through the clipboard.

Content runs through the same pipeline as a captured clipboard change:
document paths and HTML markup are reduced to text, and an exact
duplicate of a stored entry is skipped.

Examples:
  clipstash add "remember this"
  clipstash add ~/reports/q3.pdf --tags work
  git log -1 | clipstash add --tags snippets`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw string
			if len(args) > 0 {
				// Content provided as argument
				raw = strings.Join(args, " ")
			} else {
				// Read from stdin
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read from stdin: %w", err)
				}
				raw = string(data)
			}
			raw = strings.TrimSpace(raw)
			if raw == "" {
				return fmt.Errorf("nothing to add")
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			recorder := openRecorder()
			defer recorder.Close()

			extractor := clipboard.NewExtractor(zapLogger)
			text, kind := extractor.Extract(raw)

			dup, err := store.IsDuplicate(text)
			if err != nil {
				return fmt.Errorf("failed to check for duplicates: %w", err)
			}
			if dup {
				recorder.IncDuplicates()
				fmt.Println("Skipped: an identical entry is already stored")
				return nil
			}

			entry := &types.Entry{
				Timestamp: time.Now(),
				Content:   text,
				Tags:      tags,
			}
			if err := store.Append(entry); err != nil {
				return fmt.Errorf("failed to append entry: %w", err)
			}
			recorder.IncCaptured(kind)

			zapLogger.Debug("Entry added",
				zap.String("kind", string(kind)),
				zap.Strings("tags", tags))

			fmt.Printf("✓ Added %s\n", format.ShortHash(entry))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "tags to attach (comma-separated)")
	return cmd
}
