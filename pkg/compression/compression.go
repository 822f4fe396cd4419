// Package compression provides gzip helpers for history exports.
package compression

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
)

// Compress gzips data.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress data: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize compression: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress reverses Compress.
func Decompress(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open compressed data: %w", err)
	}
	defer zr.Close()

	uncompressed, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress data: %w", err)
	}
	return uncompressed, nil
}
