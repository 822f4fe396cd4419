// Package format renders history entries and statistics for terminal
// display.
package format

import (
	"fmt"
	"strings"

	"github.com/clipstash/clipstash/internal/types"
)

const shortHashLen = 8

// Formatter renders history entries according to its options.
type Formatter struct {
	options Options
}

// New creates a new formatter with the given options
func New(opts Options) *Formatter {
	return &Formatter{options: opts}
}

// NewDefault creates a new formatter with default options
func NewDefault() *Formatter {
	return New(DefaultOptions())
}

// FormatEntry formats a single history entry in full.
func (f *Formatter) FormatEntry(entry *types.Entry) string {
	if entry == nil {
		return ColorizeIf("No entry", Gray, f.options.UseColors)
	}

	if f.options.Compact {
		return f.formatRow(entry)
	}

	var parts []string
	parts = append(parts, f.formatHeader(entry))
	if f.options.ShowMetadata {
		parts = append(parts, f.formatMetadata(entry))
	}
	if box := CreateBox("Content", f.formatContent(entry), f.options); box != "" {
		parts = append(parts, box)
	}
	return strings.Join(parts, "\n")
}

// FormatEntryList formats entries one row per entry, in the order given.
// Callers pass store output, which is newest first. Compact mode drops
// the header so the rows pipe cleanly.
func (f *Formatter) FormatEntryList(entries []*types.Entry) string {
	if len(entries) == 0 {
		return ColorizeIf("No clipboard history", Gray, f.options.UseColors)
	}

	var parts []string
	if !f.options.Compact {
		parts = append(parts, f.formatListHeader(len(entries)))
		parts = append(parts, "")
	}
	for _, entry := range entries {
		parts = append(parts, f.formatRow(entry))
	}
	return strings.Join(parts, "\n")
}

// formatRow renders the hash prefix, capture time, preview and tags as a
// single line.
func (f *Formatter) formatRow(entry *types.Entry) string {
	columns := []string{
		DimIf(ShortHash(entry), f.options.UseColors),
		ColorizeIf(entry.FormattedTime(), Cyan, f.options.UseColors),
		TruncateText(entry.Content, f.previewWidth()),
	}
	if f.options.ShowTags && len(entry.Tags) > 0 {
		tags := "[" + strings.Join(entry.Tags, ",") + "]"
		columns = append(columns, ColorizeIf(tags, Yellow, f.options.UseColors))
	}
	return strings.Join(columns, "  ")
}

// formatHeader creates the header line with hash and capture time
func (f *Formatter) formatHeader(entry *types.Entry) string {
	var parts []string
	if f.options.UseIcons {
		parts = append(parts, "📋")
	}
	parts = append(parts, BoldIf(ShortHash(entry), f.options.UseColors))
	parts = append(parts, ColorizeIf(entry.FormattedTime(), Cyan, f.options.UseColors))
	return strings.Join(parts, " ")
}

// formatMetadata creates the metadata line
func (f *Formatter) formatMetadata(entry *types.Entry) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("Captured: %s", FormatRelativeTime(entry.Timestamp)))
	parts = append(parts, fmt.Sprintf("Size: %s", FormatSize(int64(len(entry.Content)))))
	if len(entry.Tags) > 0 {
		parts = append(parts, fmt.Sprintf("Tags: %s", strings.Join(entry.Tags, ", ")))
	}
	if entry.Hash != "" {
		parts = append(parts, fmt.Sprintf("Hash: %s", entry.Hash))
	}

	return DimIf(strings.Join(parts, " • "), f.options.UseColors)
}

func (f *Formatter) formatContent(entry *types.Entry) string {
	if f.options.MaxWidth > 0 {
		return TruncateText(entry.Content, f.options.MaxWidth)
	}
	return entry.Content
}

// previewWidth leaves room in a row for the hash and timestamp columns.
func (f *Formatter) previewWidth() int {
	if f.options.MaxWidth <= 0 {
		return 0
	}
	width := f.options.MaxWidth - 31
	if width < 20 {
		width = 20
	}
	return width
}

// formatListHeader creates the header for entry lists
func (f *Formatter) formatListHeader(count int) string {
	noun := "entries"
	if count == 1 {
		noun = "entry"
	}
	title := fmt.Sprintf("Clipboard History (%d %s)", count, noun)
	if f.options.UseIcons {
		title = "📋 " + title
	}
	return ColorizeIf(title, BrightBlue, f.options.UseColors)
}

// ShortHash returns the display prefix of an entry's content hash.
func ShortHash(entry *types.Entry) string {
	if entry == nil || len(entry.Hash) < shortHashLen {
		return strings.Repeat("-", shortHashLen)
	}
	return entry.Hash[:shortHashLen]
}

// Package-level convenience functions

// FormatEntry formats a single entry with given options
func FormatEntry(entry *types.Entry, opts Options) string {
	return New(opts).FormatEntry(entry)
}

// FormatEntryList formats multiple entries with given options
func FormatEntryList(entries []*types.Entry, opts Options) string {
	return New(opts).FormatEntryList(entries)
}
