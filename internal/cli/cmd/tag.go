package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipstash/clipstash/internal/history"
)

// newTagCmd creates the tag command
func newTagCmd() *cobra.Command {
	var (
		tags    []string
		replace bool
	)

	cmd := &cobra.Command{
		Use:   "tag <hash-prefix>...",
		Short: "Tag history entries",
		Long: `Add tags to history entries, or replace their tags outright.

New tags merge with existing ones by default; the merge is
case-insensitive, so "Work" and "work" count as one tag. With --replace
the existing tags are discarded first.

Examples:
  clipstash tag 3f2a91 --tags work,todo
  clipstash tag 3f2a91 77bc0e --tags done --replace`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(tags) == 0 {
				return fmt.Errorf("specify at least one tag with --tags")
			}

			store, err := openStore()
			if err != nil {
				return err
			}

			entries, err := store.LoadAll()
			if err != nil {
				return fmt.Errorf("failed to load history: %w", err)
			}

			ids, err := history.ResolvePrefixes(entries, args)
			if err != nil {
				return err
			}

			mode := history.TagModeAdd
			if replace {
				mode = history.TagModeReplace
			}

			count, err := store.UpdateTags(ids, tags, mode)
			if errors.Is(err, history.ErrNotFound) {
				return fmt.Errorf("no stored entry matches the given hashes")
			}
			if err != nil {
				return fmt.Errorf("failed to update tags: %w", err)
			}

			fmt.Printf("✓ Updated tags on %d entries\n", count)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "tags to apply (comma-separated)")
	cmd.Flags().BoolVar(&replace, "replace", false, "replace existing tags instead of merging")
	return cmd
}
