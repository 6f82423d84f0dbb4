package utils

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxFilenameLength = 100

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	multipleSpaces       = regexp.MustCompile(`\s+`)
)

// SanitizeFilename reduces a client-supplied file name to something safe to
// log and store: the base name only, without control or path characters,
// whitespace collapsed and at most maxFilenameLength runes long. An empty
// result becomes fallback.
func SanitizeFilename(filename, fallback string) string {
	filename = filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	if filename == "." || filename == "/" {
		filename = ""
	}

	filename = invalidFilenameChars.ReplaceAllString(filename, " ")
	filename = strings.TrimSpace(multipleSpaces.ReplaceAllString(filename, " "))

	if utf8.RuneCountInString(filename) > maxFilenameLength {
		filename = strings.TrimSpace(string([]rune(filename)[:maxFilenameLength]))
	}

	if filename == "" {
		return fallback
	}
	return filename
}
