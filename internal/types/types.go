package types

import (
	"time"
)

// TimeLayout is the fixed timestamp format used on disk and in identities.
const TimeLayout = "2006-01-02 15:04:05"

// PreviewLength is the number of leading characters used to identify an entry.
const PreviewLength = 100

// ContentKind classifies a raw clipboard payload for extraction dispatch.
type ContentKind string

const (
	KindText     ContentKind = "text"
	KindPDFPath  ContentKind = "pdf"
	KindDocxPath ContentKind = "docx"
	KindXlsxPath ContentKind = "xlsx"
	KindHTML     ContentKind = "html"
)

// Entry represents one recorded clipboard capture
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`

	// Hash is derived from timestamp and content when the entry is
	// appended or decoded. It is never written to disk.
	Hash string `json:"hash,omitempty"`
}

// Identity addresses an entry for mutation. Entries sharing a timestamp
// and content preview share an identity.
type Identity struct {
	Timestamp string `json:"timestamp"`
	Preview   string `json:"preview"`
}

// FormattedTime returns the entry timestamp in the on-disk layout.
func (e *Entry) FormattedTime() string {
	return e.Timestamp.Format(TimeLayout)
}

// Preview returns the first PreviewLength characters of content, with an
// ellipsis marker when the content was truncated.
func (e *Entry) Preview() string {
	return MakePreview(e.Content)
}

// Identity returns the (timestamp, preview) pair addressing this entry.
func (e *Entry) Identity() Identity {
	return Identity{
		Timestamp: e.FormattedTime(),
		Preview:   e.Preview(),
	}
}

// Equal compares two entries by timestamp and content
func (e *Entry) Equal(other *Entry) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.FormattedTime() == other.FormattedTime() && e.Content == other.Content
}

// MakePreview truncates content to PreviewLength characters, marking
// truncation with an ellipsis.
func MakePreview(content string) string {
	runes := []rune(content)
	if len(runes) <= PreviewLength {
		return content
	}
	return string(runes[:PreviewLength]) + "..."
}
