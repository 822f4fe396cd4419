package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipstash/clipstash/internal/history"
)

// newDeleteCmd creates the delete command
func newDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <hash-prefix>...",
		Short: "Delete history entries",
		Long: `Delete history entries by hash prefix. Deleting several at once
asks for confirmation unless --force is given.

Examples:
  clipstash delete 3f2a91            # Delete one entry
  clipstash delete 3f2a91 77bc0e     # Delete several at once`,
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

			ids, err := history.ResolvePrefixes(entries, args)
			if err != nil {
				return err
			}

			if !force && len(ids) > 1 {
				fmt.Printf("This will permanently delete %d entries. Continue? (y/N): ", len(ids))
				var response string
				fmt.Scanln(&response)
				if response != "y" && response != "Y" && response != "yes" {
					fmt.Println("Deletion cancelled.")
					return nil
				}
			}

			count, err := store.Delete(ids)
			if errors.Is(err, history.ErrNotFound) {
				return fmt.Errorf("no stored entry matches the given hashes")
			}
			if err != nil {
				return fmt.Errorf("failed to delete entries: %w", err)
			}

			fmt.Printf("✓ Deleted %d entries\n", count)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	return cmd
}
