package site

import (
	"bytes"
	"fmt"

	"github.com/alnah/go-mdsite/internal/yamlutil"
)

// FrontMatter holds the page fields read from a leading YAML section.
// Other keys are ignored.
type FrontMatter struct {
	Title string `yaml:"title"`
	Draft bool   `yaml:"draft"`
}

// ParseFrontMatter strips a leading YAML section from content and decodes
// it. Content without a section is returned unchanged with a zero
// FrontMatter.
func ParseFrontMatter(content []byte) (FrontMatter, []byte, error) {
	var fm FrontMatter

	meta, body, ok := yamlutil.SplitFrontMatter(content)
	if !ok {
		return fm, content, nil
	}
	if len(bytes.TrimSpace(meta)) == 0 {
		return fm, body, nil
	}
	if err := yamlutil.Unmarshal(meta, &fm); err != nil {
		return fm, nil, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}
	return fm, body, nil
}
