package textnorm

import (
	"regexp"
	"strings"
)

// Placeholder is the filename stem used when a title has no usable characters.
const Placeholder = "UNTITLED"

var (
	notNameChar   = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s\p{Z}-]`)
	separatorRun  = regexp.MustCompile(`[\s\p{Z}-]+`)
	underscoreRun = regexp.MustCompile(`_+`)
)

// Sanitize turns a title into a filename stem: uppercased, word characters
// only, with whitespace and hyphen runs replaced by single underscores and no
// leading or trailing underscore. It returns Placeholder when nothing is left.
func Sanitize(title string) string {
	s := strings.ToUpper(strings.TrimSpace(title))
	s = notNameChar.ReplaceAllString(s, "")
	s = separatorRun.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	s = underscoreRun.ReplaceAllString(s, "_")
	if s == "" {
		return Placeholder
	}
	return s
}
