package cmd

import (
	"github.com/spf13/cobra"
)

// GetCommands returns all commands for registration
func GetCommands() []*cobra.Command {
	return []*cobra.Command{
		newHistoryCmd(),
		newAddCmd(),
		newTagCmd(),
		newDeleteCmd(),
		newClearCmd(),
		newCopyCmd(),
		newExportCmd(),
		newStatsCmd(),
		newWatchCmd(),
		newConfigCmd(),
		newVersionCmd(),
	}
}
