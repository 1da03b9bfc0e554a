package main

import (
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-mdsite/internal/config"
)

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath string // MDSITE_CONFIG: config file name or path
	BasePath   string // MDSITE_BASE_PATH: URL prefix
	ContentDir string // MDSITE_CONTENT_DIR: markdown source directory
	StaticDir  string // MDSITE_STATIC_DIR: static files directory
	OutputDir  string // MDSITE_OUTPUT_DIR: output directory
	AssetsDir  string // MDSITE_ASSETS_DIR: template and style overrides
	Engine     string // MDSITE_ENGINE: native or goldmark
	Workers    int    // MDSITE_WORKERS: parallel workers
}

// knownEnvVars lists valid MDSITE_* environment variables.
var knownEnvVars = map[string]bool{
	"MDSITE_CONFIG":      true,
	"MDSITE_BASE_PATH":   true,
	"MDSITE_CONTENT_DIR": true,
	"MDSITE_STATIC_DIR":  true,
	"MDSITE_OUTPUT_DIR":  true,
	"MDSITE_ASSETS_DIR":  true,
	"MDSITE_ENGINE":      true,
	"MDSITE_WORKERS":     true,
}

// loadEnvConfig reads configuration from environment variables.
// A non-numeric or negative MDSITE_WORKERS is ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDSITE_CONFIG"),
		BasePath:   os.Getenv("MDSITE_BASE_PATH"),
		ContentDir: os.Getenv("MDSITE_CONTENT_DIR"),
		StaticDir:  os.Getenv("MDSITE_STATIC_DIR"),
		OutputDir:  os.Getenv("MDSITE_OUTPUT_DIR"),
		AssetsDir:  os.Getenv("MDSITE_ASSETS_DIR"),
		Engine:     os.Getenv("MDSITE_ENGINE"),
	}

	if workers := os.Getenv("MDSITE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs a warning for each unrecognized MDSITE_* variable.
// Catches typos like MDSITE_OUTPUT instead of MDSITE_OUTPUT_DIR.
func warnUnknownEnvVars(log *zap.SugaredLogger) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, "MDSITE_") {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			log.Warnw("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config. Set
// variables override the config file; flags are merged afterwards.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.ContentDir != "" {
		cfg.Content = env.ContentDir
	}
	if env.StaticDir != "" {
		cfg.Static = env.StaticDir
	}
	if env.OutputDir != "" {
		cfg.Output = env.OutputDir
	}
	if env.AssetsDir != "" {
		cfg.Assets = env.AssetsDir
	}
	if env.BasePath != "" {
		cfg.BasePath = env.BasePath
	}
	if env.Engine != "" {
		cfg.Engine = env.Engine
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}
