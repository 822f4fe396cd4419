package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newClearCmd creates the clear command
func newClearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all clipboard history",
		Long: `Erase the entire history log. The file itself is kept, truncated
to zero length, and the capacity warning is re-armed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Print("This will permanently delete all clipboard history. Continue? (y/N): ")
				var response string
				fmt.Scanln(&response)
				if response != "y" && response != "Y" && response != "yes" {
					fmt.Println("Clear cancelled.")
					return nil
				}
			}

			store, err := openStore()
			if err != nil {
				return err
			}

			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			store.ResetWarning()

			fmt.Println("✓ History cleared")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	return cmd
}
