package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipstash/clipstash/internal/types"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation(types.TimeLayout, value, time.Local)
	require.NoError(t, err)
	return parsed
}

func makeEntry(t *testing.T, ts, content, hashSeed string, tags ...string) *types.Entry {
	t.Helper()
	return &types.Entry{
		Timestamp: mustTime(t, ts),
		Content:   content,
		Tags:      tags,
		Hash:      strings.Repeat(hashSeed, 64/len(hashSeed)),
	}
}

func TestShortHash(t *testing.T) {
	entry := makeEntry(t, "2024-03-01 10:00:00", "hello", "1a")
	assert.Equal(t, "1a1a1a1a", ShortHash(entry))

	assert.Equal(t, "--------", ShortHash(nil))
	assert.Equal(t, "--------", ShortHash(&types.Entry{Hash: "ab"}))
}

func TestFormatEntryList(t *testing.T) {
	entries := []*types.Entry{
		makeEntry(t, "2024-03-02 09:30:00", "newest entry", "2b", "work"),
		makeEntry(t, "2024-03-01 10:00:00", "older entry", "1a"),
	}

	out := FormatEntryList(entries, PlainOptions())
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 4)
	assert.Equal(t, "Clipboard History (2 entries)", lines[0])
	assert.Equal(t, "", lines[1])

	assert.Contains(t, lines[2], "2b2b2b2b")
	assert.Contains(t, lines[2], "2024-03-02 09:30:00")
	assert.Contains(t, lines[2], "newest entry")
	assert.Contains(t, lines[2], "[work]")

	assert.Contains(t, lines[3], "1a1a1a1a")
	assert.Contains(t, lines[3], "older entry")
	assert.NotContains(t, lines[3], "[")
}

func TestFormatEntryListSingular(t *testing.T) {
	entries := []*types.Entry{makeEntry(t, "2024-03-01 10:00:00", "only", "1a")}

	out := FormatEntryList(entries, PlainOptions())
	assert.Contains(t, out, "Clipboard History (1 entry)")
}

func TestFormatEntryListEmpty(t *testing.T) {
	assert.Equal(t, "No clipboard history", FormatEntryList(nil, PlainOptions()))
}

func TestFormatEntryListCompactDropsHeader(t *testing.T) {
	entries := []*types.Entry{makeEntry(t, "2024-03-01 10:00:00", "only", "1a")}

	opts := CompactOptions()
	opts.UseColors = false

	out := FormatEntryList(entries, opts)
	assert.NotContains(t, out, "Clipboard History")
	assert.Equal(t, 1, len(strings.Split(out, "\n")))
}

func TestFormatEntryListTruncatesPreview(t *testing.T) {
	long := strings.Repeat("x", 300)
	entries := []*types.Entry{makeEntry(t, "2024-03-01 10:00:00", long, "1a")}

	opts := PlainOptions()
	opts.MaxWidth = 60

	out := FormatEntryList(entries, opts)
	assert.Contains(t, out, "...")
	assert.NotContains(t, out, long)
}

func TestFormatEntry(t *testing.T) {
	entry := makeEntry(t, "2024-03-01 10:00:00", "copied text", "1a", "work", "todo")

	t.Run("FullView", func(t *testing.T) {
		opts := PlainOptions()
		out := FormatEntry(entry, opts)

		assert.Contains(t, out, "1a1a1a1a")
		assert.Contains(t, out, "2024-03-01 10:00:00")
		assert.Contains(t, out, "Captured:")
		assert.Contains(t, out, "Size: 11 B")
		assert.Contains(t, out, "Tags: work, todo")
		assert.Contains(t, out, "Hash: "+entry.Hash)
		assert.Contains(t, out, "▼ Content")
		assert.Contains(t, out, "  copied text")
	})

	t.Run("Compact", func(t *testing.T) {
		out := FormatEntry(entry, CompactOptions())
		assert.NotContains(t, out, "\n")
		assert.Contains(t, out, "copied text")
	})

	t.Run("Nil", func(t *testing.T) {
		assert.Equal(t, "No entry", FormatEntry(nil, PlainOptions()))
	})
}

func TestFilterEntries(t *testing.T) {
	entries := []*types.Entry{
		makeEntry(t, "2024-03-02 09:30:00", "Meeting notes for Monday", "2b", "Work"),
		makeEntry(t, "2024-03-01 10:00:00", "grocery list", "1a", "home"),
		makeEntry(t, "2023-12-25 08:00:00", "holiday recipe", "3c"),
	}

	t.Run("ByContentCaseInsensitive", func(t *testing.T) {
		matched := FilterEntries(entries, "MEETING")
		require.Len(t, matched, 1)
		assert.Equal(t, "Meeting notes for Monday", matched[0].Content)
	})

	t.Run("ByTag", func(t *testing.T) {
		matched := FilterEntries(entries, "work")
		require.Len(t, matched, 1)
		assert.Equal(t, "Meeting notes for Monday", matched[0].Content)
	})

	t.Run("ByTimestamp", func(t *testing.T) {
		matched := FilterEntries(entries, "2023-12")
		require.Len(t, matched, 1)
		assert.Equal(t, "holiday recipe", matched[0].Content)
	})

	t.Run("EmptyQueryReturnsAll", func(t *testing.T) {
		assert.Len(t, FilterEntries(entries, ""), 3)
		assert.Len(t, FilterEntries(entries, "   "), 3)
	})

	t.Run("NoMatch", func(t *testing.T) {
		assert.Empty(t, FilterEntries(entries, "nonexistent"))
	})
}

func TestFormatStats(t *testing.T) {
	stats := map[string]interface{}{
		"total_entries":   12,
		"tagged_entries":  4,
		"malformed_lines": 0,
		"file_size":       int64(2048),
		"oldest_entry":    "2024-01-01 10:00:00",
		"newest_entry":    "2024-03-02 09:30:00",
		"captured":        uint64(40),
		"duplicates":      uint64(3),
		"suppressed":      uint64(7),
		"by_kind":         map[string]uint64{"text": 38, "pdf": 2},
	}

	out := FormatStats(stats, PlainOptions())

	assert.Contains(t, out, "Clipboard Statistics")
	assert.Contains(t, out, "Total entries: 12")
	assert.Contains(t, out, "Tagged entries: 4")
	assert.NotContains(t, out, "Malformed lines")
	assert.Contains(t, out, "File size: 2.0 KB")
	assert.Contains(t, out, "Oldest entry: 2024-01-01 10:00:00")
	assert.Contains(t, out, "Captured: 40")
	assert.Contains(t, out, "Duplicates skipped: 3")
	assert.Contains(t, out, "Echoes suppressed: 7")

	// Kinds print in sorted order.
	pdfIdx := strings.Index(out, "pdf: 2")
	textIdx := strings.Index(out, "text: 38")
	require.NotEqual(t, -1, pdfIdx)
	require.NotEqual(t, -1, textIdx)
	assert.Less(t, pdfIdx, textIdx)
}

func TestFormatStatsShowsMalformedWhenPresent(t *testing.T) {
	out := FormatStats(map[string]interface{}{"malformed_lines": 2}, PlainOptions())
	assert.Contains(t, out, "Malformed lines: 2")
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "exactly", TruncateText("exactly", 7))
	assert.Equal(t, "long te...", TruncateText("long text here", 10))
	assert.Equal(t, "ab", TruncateText("abcdef", 2))
	assert.Equal(t, "unlimited", TruncateText("unlimited", 0))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", FormatSize(512))
	assert.Equal(t, "1.0 KB", FormatSize(1024))
	assert.Equal(t, "1.5 MB", FormatSize(1536*1024))
}

func TestFormatRelativeTime(t *testing.T) {
	assert.Equal(t, "just now", FormatRelativeTime(time.Now()))
	assert.Equal(t, "5 minutes ago", FormatRelativeTime(time.Now().Add(-5*time.Minute)))
	assert.Equal(t, "3 hours ago", FormatRelativeTime(time.Now().Add(-3*time.Hour)))
}

func TestColorizeIf(t *testing.T) {
	assert.Equal(t, "plain", ColorizeIf("plain", Cyan, false))
	assert.Equal(t, Cyan+"tinted"+Reset, ColorizeIf("tinted", Cyan, true))
}
