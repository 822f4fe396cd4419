package format

import (
	"strings"

	"github.com/clipstash/clipstash/internal/types"
)

// FilterEntries returns the entries whose displayed fields contain the
// query, compared case-insensitively. Entries match on content, capture
// time or any tag. An empty query matches everything.
func FilterEntries(entries []*types.Entry, query string) []*types.Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return entries
	}

	var matched []*types.Entry
	for _, entry := range entries {
		if entryMatches(entry, query) {
			matched = append(matched, entry)
		}
	}
	return matched
}

func entryMatches(entry *types.Entry, query string) bool {
	if entry == nil {
		return false
	}
	if strings.Contains(strings.ToLower(entry.Content), query) {
		return true
	}
	if strings.Contains(entry.FormattedTime(), query) {
		return true
	}
	for _, tag := range entry.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
