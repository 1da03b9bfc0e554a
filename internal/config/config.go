package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Conversion engines.
const (
	EngineNative   = "native"   // built-in block converter
	EngineGoldmark = "goldmark" // CommonMark/GFM via goldmark
)

// Engines lists the accepted values of the engine field.
var Engines = []string{EngineNative, EngineGoldmark}

// MaxWorkers caps the worker pool size accepted from configuration.
const MaxWorkers = 64

// Field length limits.
const (
	MaxPathLength     = 4096 // Linux PATH_MAX
	MaxBasePathLength = 2048 // Browser URL limit
)

// Config holds all configuration for site generation.
type Config struct {
	Content     string `yaml:"content"`     // Markdown source tree
	Static      string `yaml:"static"`      // Files copied verbatim into the output
	Output      string `yaml:"output"`      // Generated site (reset on every build)
	Template    string `yaml:"template"`    // Page template path (empty = embedded default)
	Assets      string `yaml:"assets"`      // Directory with templates/ and styles/ overrides
	BasePath    string `yaml:"basePath"`    // URL prefix the site is served under
	Engine      string `yaml:"engine"`      // "native" or "goldmark" (empty = native)
	Highlight   bool   `yaml:"highlight"`   // Syntax highlighting (goldmark engine only)
	Workers     int    `yaml:"workers"`     // 0 = auto from GOMAXPROCS
	FailFast    bool   `yaml:"failFast"`    // Stop at the first page failure
	CheckLinks  bool   `yaml:"checkLinks"`  // Warn about dangling root-relative links
	FrontMatter bool   `yaml:"frontMatter"` // Strip and read YAML front matter
}

// Validate checks field values and lengths.
// Called automatically by LoadConfig, but available for callers that build a
// Config by hand or layer overrides on top of a loaded one.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
	}{
		{"content", c.Content},
		{"static", c.Static},
		{"output", c.Output},
		{"template", c.Template},
		{"assets", c.Assets},
	} {
		if err := validateFieldLength(f.name, f.value, MaxPathLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("basePath", c.BasePath, MaxBasePathLength); err != nil {
		return err
	}

	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("%w: basePath: must start with '/', got %q", ErrInvalidValue, c.BasePath)
	}

	switch c.Engine {
	case "", EngineNative, EngineGoldmark:
		// valid
	default:
		return fmt.Errorf("%w: engine: %q (must be %s)", ErrInvalidValue, c.Engine, strings.Join(Engines, " or "))
	}

	if c.Highlight && c.Engine != EngineGoldmark {
		return fmt.Errorf("%w: highlight: requires engine %q", ErrInvalidValue, EngineGoldmark)
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}

	if c.Output == "" {
		return fmt.Errorf("%w: output: required", ErrInvalidValue)
	}

	return nil
}

// Normalize fills defaults that depend on other fields: the base path ends
// with a slash and the engine is never empty.
func (c *Config) Normalize() {
	c.BasePath = NormalizeBasePath(c.BasePath)
	if c.Engine == "" {
		c.Engine = EngineNative
	}
}

// NormalizeBasePath returns p with a trailing slash, or "/" when p is empty.
func NormalizeBasePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasSuffix(p, "/") {
		return p + "/"
	}
	return p
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the conventional layout: content/ and static/ are
// read, docs/ is written, and the site is served from the root.
func DefaultConfig() *Config {
	return &Config{
		Content:  "content",
		Static:   "static",
		Output:   "docs",
		BasePath: "/",
		Engine:   EngineNative,
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order.
// Tries extensions .yaml then .yml, in the current directory and then
// under the user config directory (~/.config/go-mdsite/ on Linux).
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-mdsite", name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
