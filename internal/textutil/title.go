// Package textutil derives human-readable episode titles from source
// names.
package textutil

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DeriveTitle produces a display title from a source path or URL by
// stripping the extension and collapsing separators into spaces.
func DeriveTitle(source string) string {
	if source == "" {
		return "Untitled Episode"
	}
	base := baseName(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Untitled Episode"
	}
	return cases.Title(language.Und).String(title)
}

func baseName(source string) string {
	if parsed, err := url.Parse(source); err == nil && parsed.Scheme != "" && parsed.Path != "" {
		return filepath.Base(parsed.Path)
	}
	return filepath.Base(source)
}
