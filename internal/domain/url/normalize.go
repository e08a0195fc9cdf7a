// Package url provides URL helpers for panel navigation.
package url

import (
	"strings"
)

// schemes are passed through untouched.
var schemes = []string{
	"http://",
	"https://",
	"file://",
	"data:",
	"about:",
	"hostbridge://",
}

// Normalize adds an https:// prefix to host-like inputs.
// Returns the input unchanged if it already has a known scheme or doesn't
// look like a URL.
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	if input == "" || hasScheme(input) {
		return input
	}
	if LooksLikeURL(input) {
		return "https://" + input
	}
	return input
}

// LooksLikeURL reports whether input appears to be a URL.
// Returns true for strings like "example.com" or "localhost:8080/app".
func LooksLikeURL(input string) bool {
	if input == "" {
		return false
	}
	if hasScheme(input) {
		return true
	}
	if strings.Contains(input, " ") {
		return false
	}
	return strings.Contains(input, ".") || strings.HasPrefix(input, "localhost")
}

func hasScheme(input string) bool {
	for _, s := range schemes {
		if strings.HasPrefix(input, s) {
			return true
		}
	}
	return false
}
