package mdsite

import (
	"regexp"
	"strings"
)

var titlePattern = regexp.MustCompile(`^#\s+`)

// ExtractTitle returns the text of the first level-1 heading line with
// non-empty text. Lines are scanned in order regardless of block structure.
func ExtractTitle(markdown string) (string, error) {
	for _, line := range strings.Split(markdown, "\n") {
		if !titlePattern.MatchString(line) {
			continue
		}
		if title := strings.TrimSpace(line[1:]); title != "" {
			return title, nil
		}
	}
	return "", ErrMissingTitle
}
