// Package assets provides the page template and stylesheet for generated sites.
// Assets can be loaded from embedded files or custom filesystem paths.
package assets

import (
	"fmt"
	"os"
)

// DefaultTemplateName is the name of the built-in page template.
const DefaultTemplateName = "page"

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"

// LoadTemplateFile reads a page template from an explicit path.
// Unlike the loaders, the path is taken as given: it comes from the user's
// own configuration.
func LoadTemplateFile(path string) (string, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided template path
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}
