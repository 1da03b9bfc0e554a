package main

// Notes:
// - loadEnvConfig: we test every MDSITE_* variable plus invalid and negative
//   worker counts (ignored, not errors).
// - warnUnknownEnvVars: we test typo detection through an observed logger.
// - applyEnvConfig: we test that set variables override the file values and
//   unset ones leave them alone.
// - Tests use t.Setenv() which prevents t.Parallel() at parent level.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alnah/go-mdsite/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		t.Setenv("MDSITE_CONFIG", "/etc/mdsite.yaml")
		t.Setenv("MDSITE_BASE_PATH", "/repo/")
		t.Setenv("MDSITE_CONTENT_DIR", "pages")
		t.Setenv("MDSITE_STATIC_DIR", "public")
		t.Setenv("MDSITE_OUTPUT_DIR", "site")
		t.Setenv("MDSITE_ASSETS_DIR", "theme")
		t.Setenv("MDSITE_ENGINE", "goldmark")
		t.Setenv("MDSITE_WORKERS", "4")

		got := loadEnvConfig()
		want := &envConfig{
			ConfigPath: "/etc/mdsite.yaml",
			BasePath:   "/repo/",
			ContentDir: "pages",
			StaticDir:  "public",
			OutputDir:  "site",
			AssetsDir:  "theme",
			Engine:     "goldmark",
			Workers:    4,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("loadEnvConfig() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unset variables are empty", func(t *testing.T) {
		for name := range knownEnvVars {
			t.Setenv(name, "")
		}

		got := loadEnvConfig()
		if diff := cmp.Diff(&envConfig{}, got); diff != "" {
			t.Errorf("loadEnvConfig() mismatch (-want +got):\n%s", diff)
		}
	})

	for _, value := range []string{"many", "-2", "0"} {
		t.Run("workers "+value+" ignored", func(t *testing.T) {
			t.Setenv("MDSITE_WORKERS", value)

			if got := loadEnvConfig().Workers; got != 0 {
				t.Errorf("Workers = %d, want 0", got)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("MDSITE_OUTPUT", "site")
	t.Setenv("MDSITE_WORKERS", "2")

	core, logs := observer.New(zapcore.WarnLevel)
	warnUnknownEnvVars(zap.New(core).Sugar())

	var names []string
	for _, entry := range logs.FilterMessage("unknown environment variable (typo?)").All() {
		names = append(names, entry.ContextMap()["name"].(string))
	}
	if diff := cmp.Diff([]string{"MDSITE_OUTPUT"}, names); diff != "" {
		t.Errorf("warned variables mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Environment over config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("set variables override", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{Content: "content", Static: "static", Output: "docs", BasePath: "/", Engine: "native", Workers: 2}
		applyEnvConfig(&envConfig{
			BasePath:   "/repo/",
			ContentDir: "pages",
			StaticDir:  "public",
			OutputDir:  "site",
			AssetsDir:  "theme",
			Engine:     "goldmark",
			Workers:    8,
		}, cfg)

		want := &config.Config{Content: "pages", Static: "public", Output: "site", Assets: "theme", BasePath: "/repo/", Engine: "goldmark", Workers: 8}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unset variables keep file values", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{Content: "src", Output: "out", BasePath: "/blog/", Workers: 3}
		want := *cfg
		applyEnvConfig(&envConfig{}, cfg)

		if diff := cmp.Diff(&want, cfg); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})
}
