package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("test_group"))
	assert.True(t, IsValidSlug("cats-and-dogs2"))
	assert.False(t, IsValidSlug(""))
	assert.False(t, IsValidSlug("with space"))
	assert.False(t, IsValidSlug("группа"))
}

func TestIsValidUsername(t *testing.T) {
	assert.True(t, IsValidUsername("noname"))
	assert.True(t, IsValidUsername("leo.tolstoy+1@x"))
	assert.False(t, IsValidUsername("no name"))
	assert.False(t, IsValidUsername(""))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("password"))
	assert.True(t, IsValidPassword(strings.Repeat("x", MaxPasswordBytes)))
	assert.False(t, IsValidPassword("short"))
	assert.False(t, IsValidPassword(strings.Repeat("x", MaxPasswordBytes+1)))
	// Multibyte runes count by byte.
	assert.False(t, IsValidPassword(strings.Repeat("ж", 40)))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank(" \n\t"))
	assert.False(t, IsBlank(" text "))
}

func TestImageExtension(t *testing.T) {
	ext, ok := ImageExtension("Photo.JPG")
	assert.True(t, ok)
	assert.Equal(t, ".jpg", ext)

	_, ok = ImageExtension("script.sh")
	assert.False(t, ok)
}
