// Package clipboard watches the system clipboard and feeds changed
// content through extraction and deduplication into the history store.
package clipboard

import (
	"fmt"

	atottoClip "github.com/atotto/clipboard"
)

// Clipboard abstracts the system clipboard. Only text is exchanged;
// richer payloads arrive as their textual form (a file path, markup).
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// SystemClipboard accesses the OS clipboard through the atotto/clipboard
// library.
type SystemClipboard struct{}

// NewSystemClipboard returns the default clipboard implementation.
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{}
}

func (c *SystemClipboard) Read() (string, error) {
	text, err := atottoClip.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard: %w", err)
	}
	return text, nil
}

func (c *SystemClipboard) Write(text string) error {
	if err := atottoClip.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}
