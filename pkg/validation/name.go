// Package validation checks user-supplied text before it reaches the screen.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxPlayerNameLen is the longest name, in characters, shown above a tank.
const MaxPlayerNameLen = 32

// Allow alphanumeric, spaces, hyphens, underscores, and basic punctuation for player names
var validPlayerNameChars = regexp.MustCompile(`^[\p{L}\p{N} \-_.()]+$`)

// ValidatePlayerName validates a player name and returns it trimmed.
func ValidatePlayerName(name string) (string, error) {
	if !utf8.ValidString(name) {
		return "", fmt.Errorf("player name contains invalid UTF-8 characters")
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("player name cannot be empty")
	}

	if n := utf8.RuneCountInString(trimmed); n > MaxPlayerNameLen {
		return "", fmt.Errorf("player name too long: %d characters (max %d)", n, MaxPlayerNameLen)
	}

	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("player name contains control characters")
		}
	}

	if !validPlayerNameChars.MatchString(trimmed) {
		return "", fmt.Errorf("player name contains invalid characters (only letters, digits, spaces, hyphens, underscores, dots and parentheses allowed)")
	}

	return trimmed, nil
}
