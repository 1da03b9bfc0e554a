// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForMissingTitle returns a hint for pages without a level-one heading.
func ForMissingTitle(frontMatter bool) string {
	hint := `start the page with a "# Title" line`
	if !frontMatter {
		hint += " or enable --front-matter and set title:"
	}
	return format(hint)
}

// ForUnbalancedDelimiter returns a hint for unclosed inline spans.
func ForUnbalancedDelimiter() string {
	return format("every **, _ and ` must be closed within the same block")
}

// ForMalformedBlock returns a hint for blocks that look like code, quotes
// or lists but break their shape partway through.
func ForMalformedBlock() string {
	return format("separate blocks with a blank line; every quote line needs '>' and list items need '- ' or 'N. '")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-mdsite/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-mdsite) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-mdsite") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForTemplatePlaceholders returns a hint listing the placeholders a page
// template must carry.
func ForTemplatePlaceholders(missing []string) string {
	if len(missing) == 0 {
		return ""
	}
	return format("add " + strings.Join(missing, " and ") + " to the template")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForEngine returns hints for unknown conversion engines.
func ForEngine(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}

// Combine joins several hint strings produced by this package into one.
func Combine(parts ...string) string {
	var texts []string
	for _, p := range parts {
		if t := strings.TrimPrefix(p, "\n  hint: "); t != "" {
			texts = append(texts, t)
		}
	}
	return formatHints(texts)
}
