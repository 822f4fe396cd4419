package format

import (
	"fmt"
	"sort"
	"strings"
)

// FormatStats formats history and capture statistics for display
func FormatStats(stats map[string]interface{}, opts Options) string {
	var parts []string

	title := "Clipboard Statistics"
	if opts.UseIcons {
		title = "📊 " + title
	}
	parts = append(parts, ColorizeIf(title, BrightBlue, opts.UseColors))
	parts = append(parts, "")

	if total, ok := stats["total_entries"].(int); ok {
		parts = append(parts, formatStatLine("Total entries", fmt.Sprintf("%d", total), opts))
	}
	if tagged, ok := stats["tagged_entries"].(int); ok {
		parts = append(parts, formatStatLine("Tagged entries", fmt.Sprintf("%d", tagged), opts))
	}
	if malformed, ok := stats["malformed_lines"].(int); ok && malformed > 0 {
		parts = append(parts, formatStatLine("Malformed lines", fmt.Sprintf("%d", malformed), opts))
	}
	if size, ok := stats["file_size"].(int64); ok {
		parts = append(parts, formatStatLine("File size", FormatSize(size), opts))
	}
	if oldest, ok := stats["oldest_entry"].(string); ok && oldest != "" {
		parts = append(parts, formatStatLine("Oldest entry", oldest, opts))
	}
	if newest, ok := stats["newest_entry"].(string); ok && newest != "" {
		parts = append(parts, formatStatLine("Newest entry", newest, opts))
	}

	counters := []struct {
		key   string
		label string
	}{
		{"captured", "Captured"},
		{"duplicates", "Duplicates skipped"},
		{"suppressed", "Echoes suppressed"},
	}
	var counterLines []string
	for _, c := range counters {
		if v, ok := stats[c.key].(uint64); ok {
			counterLines = append(counterLines, formatStatLine(c.label, fmt.Sprintf("%d", v), opts))
		}
	}
	if len(counterLines) > 0 {
		parts = append(parts, "")
		parts = append(parts, formatSubHeader("Capture counters", opts))
		parts = append(parts, counterLines...)
	}

	if byKind, ok := stats["by_kind"].(map[string]uint64); ok && len(byKind) > 0 {
		kinds := make([]string, 0, len(byKind))
		for kind := range byKind {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)

		parts = append(parts, "")
		parts = append(parts, formatSubHeader("Captures by kind", opts))
		for _, kind := range kinds {
			parts = append(parts, formatStatLine(kind, fmt.Sprintf("%d", byKind[kind]), opts))
		}
	}

	return strings.Join(parts, "\n")
}

// formatStatLine formats a statistics line with label and value
func formatStatLine(label, value string, opts Options) string {
	if opts.UseColors {
		return fmt.Sprintf("  %s%s:%s %s", BrightCyan, label, Reset, value)
	}
	return fmt.Sprintf("  %s: %s", label, value)
}

// formatSubHeader formats a section subheader
func formatSubHeader(title string, opts Options) string {
	return ColorizeIf(title, BrightBlue, opts.UseColors)
}
