package util

import (
	"errors"
	"path"
	"strings"
	"unicode"
)

const maxFileNameLen = 255

// SanitizeFileName reduces a client-supplied upload name to a safe base name
// for logs and extension sniffing. Traversal patterns are rejected.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	s = path.Base(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	if s == "" || s == "." || s == "/" {
		return "", errors.New("invalid file name")
	}
	if len(s) > maxFileNameLen {
		s = s[len(s)-maxFileNameLen:]
	}
	return s, nil
}
