package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Template placeholders, replaced literally (no template engine).
const (
	TitlePlaceholder   = "{{ Title }}"
	ContentPlaceholder = "{{ Content }}"
)

// ErrTemplatePlaceholder indicates a page template lacks a placeholder.
var ErrTemplatePlaceholder = errors.New("template missing placeholder")

// MissingPlaceholders lists the placeholders absent from tmpl, in
// substitution order.
func MissingPlaceholders(tmpl string) []string {
	var missing []string
	for _, p := range []string{TitlePlaceholder, ContentPlaceholder} {
		if !strings.Contains(tmpl, p) {
			missing = append(missing, p)
		}
	}
	return missing
}

// ValidateTemplate returns ErrTemplatePlaceholder if tmpl lacks either
// placeholder. A template without them still assembles, but every page
// would come out identical.
func ValidateTemplate(tmpl string) error {
	if missing := MissingPlaceholders(tmpl); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrTemplatePlaceholder, strings.Join(missing, ", "))
	}
	return nil
}

// AssemblePage substitutes every occurrence of the title placeholder and
// then every occurrence of the content placeholder. The order matters: a
// title that itself contains the content placeholder is expanded by the
// second pass, while content is never scanned for the title placeholder.
func AssemblePage(tmpl, title, content string) string {
	page := strings.ReplaceAll(tmpl, TitlePlaceholder, title)
	return strings.ReplaceAll(page, ContentPlaceholder, content)
}
