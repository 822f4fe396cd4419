package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clipstash/clipstash/internal/history"
	"github.com/clipstash/clipstash/internal/types"
	"github.com/clipstash/clipstash/pkg/format"
)

// newHistoryCmd creates the history command with all subcommands
func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect clipboard history",
		Long: `Inspect clipboard history:
  • List history entries, newest first
  • Filter entries by substring
  • Show single entries by hash prefix`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: list recent history
			return runHistoryList(format.DefaultOptions(), 10, "")
		},
	}

	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryShowCmd())

	return cmd
}

// newHistoryListCmd creates the list subcommand
func newHistoryListCmd() *cobra.Command {
	var (
		limit    int
		filter   string
		compact  bool
		noColors bool
		noIcons  bool
		maxWidth int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clipboard history",
		Long: `List clipboard history entries, newest first.

Examples:
  clipstash history list                  # Show last 10 entries
  clipstash history list -n 0             # Show everything
  clipstash history list --filter todo    # Only entries mentioning todo
  clipstash history list --compact        # Rows only, no header`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := format.DefaultOptions()
			if compact {
				opts = format.CompactOptions()
			}
			if noColors {
				opts.UseColors = false
			}
			if noIcons {
				opts.UseIcons = false
			}
			opts.MaxWidth = maxWidth

			return runHistoryList(opts, limit, filter)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of entries to show (0 = no limit)")
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only show entries containing this text")
	cmd.Flags().BoolVarP(&compact, "compact", "c", false, "rows only, without the list header")
	cmd.Flags().BoolVar(&noColors, "no-colors", false, "disable colored output")
	cmd.Flags().BoolVar(&noIcons, "no-icons", false, "disable icons in output")
	cmd.Flags().IntVar(&maxWidth, "max-width", 100, "maximum width per row (0 = no limit)")

	return cmd
}

// newHistoryShowCmd creates the show subcommand
func newHistoryShowCmd() *cobra.Command {
	var (
		raw      bool
		noColors bool
		noIcons  bool
	)

	cmd := &cobra.Command{
		Use:   "show <hash-prefix>...",
		Short: "Show specific history entries",
		Long: `Show history entries by hash prefix. A prefix must identify a
single entry; extend it when two entries share it.

Examples:
  clipstash history show 3f2a91          # Show the entry starting 3f2a91
  clipstash history show 3f2a91 --raw    # Print its content only`,
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

			if raw {
				for _, entry := range selected {
					fmt.Println(entry.Content)
				}
				return nil
			}

			if useJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(selected)
			}

			opts := format.DefaultOptions()
			if noColors {
				opts.UseColors = false
			}
			if noIcons {
				opts.UseIcons = false
			}
			opts.MaxWidth = 0 // No width limit for single entry view

			formatter := format.New(opts)
			blocks := make([]string, 0, len(selected))
			for _, entry := range selected {
				blocks = append(blocks, formatter.FormatEntry(entry))
			}
			fmt.Println(strings.Join(blocks, "\n"+format.CreateSeparator(opts)+"\n"))

			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "output content without metadata")
	cmd.Flags().BoolVar(&noColors, "no-colors", false, "disable colored output")
	cmd.Flags().BoolVar(&noIcons, "no-icons", false, "disable icons in output")

	return cmd
}

// runHistoryList loads, filters and prints history entries.
func runHistoryList(opts format.Options, limit int, filter string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	entries, err := store.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	entries = format.FilterEntries(entries, filter)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	if useJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	fmt.Println(format.FormatEntryList(entries, opts))
	return nil
}

// selectByPrefix maps each hash prefix to its entry, keeping argument
// order. Prefix validation matches the mutation commands, so show and
// copy reject exactly the prefixes tag and delete would.
func selectByPrefix(entries []*types.Entry, prefixes []string) ([]*types.Entry, error) {
	ids, err := history.ResolvePrefixes(entries, prefixes)
	if err != nil {
		return nil, err
	}

	selected := make([]*types.Entry, 0, len(ids))
	for _, id := range ids {
		for _, entry := range entries {
			if entry.Identity() == id {
				selected = append(selected, entry)
				break
			}
		}
	}
	return selected, nil
}
