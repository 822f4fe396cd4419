package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
)

// GetHostname returns the machine hostname, or a placeholder when it
// cannot be determined.
func GetHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown-device"
	}
	return hostname
}

// HashContent returns the hex SHA-256 digest of data.
func HashContent(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
