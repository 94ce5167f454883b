// File: /utils/validators.go
package utils

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	slugRegex     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".gif": true, ".webp": true,
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func IsValidSlug(slug string) bool {
	return len(slug) <= 50 && slugRegex.MatchString(slug)
}

func IsValidUsername(username string) bool {
	return len(username) <= 150 && usernameRegex.MatchString(username)
}

// MaxPasswordBytes is the longest input bcrypt will hash.
const MaxPasswordBytes = 72

func IsValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= MaxPasswordBytes
}

// IsBlank reports whether text is empty once surrounding whitespace is removed.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// ImageExtension returns the lowercased extension of filename and whether it
// is an accepted image type.
func ImageExtension(filename string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext, imageExtensions[ext]
}
