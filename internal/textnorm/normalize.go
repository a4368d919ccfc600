package textnorm

import (
	"regexp"
	"strings"
)

var leadingJunk = regexp.MustCompile(`^[^\p{L}\p{N}]+`)

// Normalize cleans raw multi-line body text.
//
// Each line has its whitespace runs collapsed to one space and is trimmed.
// A leading run of characters that are neither letters nor digits is then
// stripped, since icon edges often bleed into the first column as stray
// punctuation. Lines left empty are dropped. Surviving lines keep their
// order and are joined with "\n".
//
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	out := make([]string, 0)
	for _, ln := range strings.Split(raw, "\n") {
		ln = strings.Join(strings.Fields(ln), " ")
		if ln == "" {
			continue
		}
		ln = strings.TrimSpace(leadingJunk.ReplaceAllString(ln, ""))
		if ln == "" {
			continue
		}
		out = append(out, ln)
	}
	return strings.Join(out, "\n")
}
