// Package history implements the flat-file clipboard history log: a
// line-oriented codec, an append-only store with full-rewrite mutations,
// deduplication, and capacity enforcement.
package history

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clipstash/clipstash/internal/types"
	"github.com/clipstash/clipstash/pkg/utils"
)

const (
	fieldSeparator = " | "
	tagsPrefix     = "Tags: "
)

// ErrMalformedLine is returned by Decode for lines that cannot be parsed.
// Loaders skip such lines; they are never fatal.
var ErrMalformedLine = errors.New("malformed history line")

// Sanitize makes free-form content safe for the line format. Carriage
// returns are removed, newlines become single spaces, and every bare
// field separator is escaped to " || ". The result never contains a bare
// " | ", so Sanitize is idempotent.
func Sanitize(content string) string {
	content = strings.ReplaceAll(content, "\r", "")
	content = strings.ReplaceAll(content, "\n", " ")
	for strings.Contains(content, fieldSeparator) {
		content = strings.ReplaceAll(content, fieldSeparator, " || ")
	}
	return content
}

// Encode serializes an entry as one newline-terminated line:
//
//	{timestamp} | {content} | Tags: {tag1,tag2}\n
//
// Content is assumed sanitized; Encode does not re-apply Sanitize.
func Encode(entry *types.Entry) string {
	return fmt.Sprintf("%s%s%s%s%s%s\n",
		entry.FormattedTime(), fieldSeparator,
		entry.Content, fieldSeparator,
		tagsPrefix, strings.Join(entry.Tags, ","))
}

// Decode parses one line into an entry. A line is malformed when it does
// not split into three fields or its timestamp does not parse; both cases
// return ErrMalformedLine. The tags field is parsed leniently: a missing
// "Tags: " prefix does not fail the line.
func Decode(line string) (*types.Entry, error) {
	line = strings.TrimRight(line, "\r\n")

	parts := strings.SplitN(line, fieldSeparator, 3)
	if len(parts) < 3 {
		return nil, fmt.Errorf("%w: expected 3 fields, got %d", ErrMalformedLine, len(parts))
	}

	ts, err := time.ParseInLocation(types.TimeLayout, parts[0], time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: bad timestamp %q", ErrMalformedLine, parts[0])
	}

	entry := &types.Entry{
		Timestamp: ts,
		Content:   parts[1],
		Tags:      parseTags(parts[2]),
	}
	entry.Hash = EntryHash(entry)
	return entry, nil
}

// EntryHash derives the surrogate identifier for an entry from its
// timestamp and content. The hash is stable across encode/decode cycles
// and is not part of the on-disk format.
func EntryHash(entry *types.Entry) string {
	return utils.HashContent([]byte(entry.FormattedTime() + "\n" + entry.Content))
}

// MergeTags unions added tags into existing ones, deduplicating
// case-insensitively while preserving the first-seen spelling and order.
// Every tag is normalized for the line format on the way in: commas (the
// on-disk joiner) and whitespace runs collapse to single spaces, and the
// content sanitizer applies. Tags that normalize to nothing are dropped.
func MergeTags(existing, added []string) []string {
	merged := make([]string, 0, len(existing)+len(added))
	seen := make(map[string]bool, len(existing)+len(added))
	for _, tag := range existing {
		tag = normalizeTag(tag)
		if tag == "" || seen[strings.ToLower(tag)] {
			continue
		}
		seen[strings.ToLower(tag)] = true
		merged = append(merged, tag)
	}
	for _, tag := range added {
		tag = normalizeTag(tag)
		if tag == "" || seen[strings.ToLower(tag)] {
			continue
		}
		seen[strings.ToLower(tag)] = true
		merged = append(merged, tag)
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}

// normalizeTag makes one tag safe for the comma-joined tags field. A tag
// holding a newline would split its record across two physical lines;
// one holding a comma would split into two tags on reload.
func normalizeTag(tag string) string {
	tag = strings.ReplaceAll(tag, ",", " ")
	tag = strings.Join(strings.Fields(tag), " ")
	return Sanitize(tag)
}

func parseTags(field string) []string {
	field = strings.TrimPrefix(field, tagsPrefix)
	if strings.TrimSpace(field) == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(field, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
