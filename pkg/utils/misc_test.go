package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashContent(t *testing.T) {
	hash := HashContent([]byte("hello"))

	// SHA-256 of "hello", hex encoded.
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", hash)
	assert.Len(t, hash, 64)

	other := HashContent([]byte("hello "))
	assert.NotEqual(t, hash, other)
}

func TestHashContentEmpty(t *testing.T) {
	hash := HashContent(nil)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", hash)
}

func TestGetHostname(t *testing.T) {
	assert.NotEmpty(t, GetHostname())
}
