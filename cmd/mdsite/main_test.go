package main

// Notes:
// - runMain: we test command dispatch, exit codes and the user-facing output
//   of build and render against real temp directories. Output formatting
//   details beyond the key lines are not asserted.
// - newLogger: we test level selection through what reaches stderr.
// - Tests here do not set MDSITE_* variables; env precedence is covered in
//   env_config_test.go and build_test.go.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

// testSite is a temp project with content, static and output paths.
type testSite struct {
	root    string
	content string
	static  string
	output  string
}

// setupTestSite creates a temp project from a map of content files.
// Paths prefixed with "static/" go to the static directory.
func setupTestSite(t *testing.T, files map[string]string) *testSite {
	t.Helper()
	root := t.TempDir()
	s := &testSite{
		root:    root,
		content: filepath.Join(root, "content"),
		static:  filepath.Join(root, "static"),
		output:  filepath.Join(root, "docs"),
	}
	if err := os.MkdirAll(s.content, 0o750); err != nil {
		t.Fatalf("failed to create content dir: %v", err)
	}
	for path, body := range files {
		full := filepath.Join(root, filepath.FromSlash(path))
		if !strings.HasPrefix(path, "static/") {
			full = filepath.Join(s.content, filepath.FromSlash(path))
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(full, []byte(body), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
	return s
}

// args returns the build arguments pointing at the site's directories.
func (s *testSite) args(extra ...string) []string {
	return append([]string{
		"mdsite", "build",
		"--content", s.content,
		"--static", s.static,
		"-o", s.output,
	}, extra...)
}

// newTestEnv returns an Environment writing to buffers.
func newTestEnv(stdin string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &Environment{
		Stdin:  strings.NewReader(stdin),
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

// ---------------------------------------------------------------------------
// TestRunMain_Commands - Dispatch and simple commands
// ---------------------------------------------------------------------------

func TestRunMain_Commands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "version",
			args:         []string{"mdsite", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"go-mdsite " + Version},
		},
		{
			name:         "help without topic",
			args:         []string{"mdsite", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: mdsite", "Commands:"},
		},
		{
			name:         "--help flag",
			args:         []string{"mdsite", "--help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Commands:"},
		},
		{
			name:         "help build",
			args:         []string{"mdsite", "help", "build"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: mdsite build", "--base-path"},
		},
		{
			name:         "help unknown",
			args:         []string{"mdsite", "help", "deploy"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Unknown command: deploy"},
		},
		{
			name:         "build -h",
			args:         []string{"mdsite", "build", "-h"},
			wantCode:     ExitSuccess,
			wantInStderr: []string{"Usage: mdsite build"},
		},
		{
			name:         "completion bash",
			args:         []string{"mdsite", "completion", "bash"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"complete -o filenames"},
		},
		{
			name:         "completion unknown shell",
			args:         []string{"mdsite", "completion", "tcsh"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unsupported shell"},
		},
		{
			name:         "unknown flag",
			args:         []string{"mdsite", "build", "--nope"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"invalid usage"},
		},
		{
			name:         "two positional base paths",
			args:         []string{"mdsite", "build", "/a/", "/b/"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"at most one base path"},
		},
		{
			name:         "render without file",
			args:         []string{"mdsite", "render"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"exactly one file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv("")
			code := runMain(context.Background(), tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Build - Site generation through the CLI
// ---------------------------------------------------------------------------

func TestRunMain_Build(t *testing.T) {
	t.Parallel()

	t.Run("builds pages and prints summary", func(t *testing.T) {
		t.Parallel()

		s := setupTestSite(t, map[string]string{
			"index.md":         "# Home\n\nWelcome",
			"blog/tom.md":      "# Tom\n\n[Home](/)",
			"static/index.css": "body {}",
		})
		env, stdout, stderr := newTestEnv("")

		code := runMain(context.Background(), s.args(), env)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, want %d\nstderr: %s", code, ExitSuccess, stderr.String())
		}

		for _, want := range []string{
			"Created " + filepath.Join(s.output, "index.html"),
			"Created " + filepath.Join(s.output, "blog", "tom.html"),
			"2 succeeded, 0 failed, 1 file(s) copied",
		} {
			if !strings.Contains(stdout.String(), want) {
				t.Errorf("stdout should contain %q, got %q", want, stdout.String())
			}
		}

		page, err := os.ReadFile(filepath.Join(s.output, "index.html"))
		if err != nil {
			t.Fatalf("reading page: %v", err)
		}
		if !strings.Contains(string(page), "<title>Home</title>") {
			t.Errorf("page missing title: %s", page)
		}
	})

	t.Run("positional base path rewrites links", func(t *testing.T) {
		t.Parallel()

		s := setupTestSite(t, map[string]string{
			"index.md": "# Home\n\n[About](/about)",
		})
		env, _, stderr := newTestEnv("")

		code := runMain(context.Background(), s.args("/repo"), env)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, want %d\nstderr: %s", code, ExitSuccess, stderr.String())
		}

		page, err := os.ReadFile(filepath.Join(s.output, "index.html"))
		if err != nil {
			t.Fatalf("reading page: %v", err)
		}
		if !strings.Contains(string(page), `href="/repo/about"`) {
			t.Errorf("link not rewritten: %s", page)
		}
	})

	t.Run("page failure exits with content code and hint", func(t *testing.T) {
		t.Parallel()

		s := setupTestSite(t, map[string]string{
			"index.md":  "# Home",
			"broken.md": "no heading here",
		})
		env, stdout, stderr := newTestEnv("")

		code := runMain(context.Background(), s.args(), env)
		if code != ExitContent {
			t.Fatalf("exit code = %d, want %d\nstderr: %s", code, ExitContent, stderr.String())
		}
		for _, want := range []string{"FAILED", "broken.md", "hint:", "page conversion failed"} {
			if !strings.Contains(stderr.String(), want) {
				t.Errorf("stderr should contain %q, got %q", want, stderr.String())
			}
		}
		if !strings.Contains(stdout.String(), "1 succeeded, 1 failed") {
			t.Errorf("stdout should report counts, got %q", stdout.String())
		}
	})

	t.Run("quiet hides created lines", func(t *testing.T) {
		t.Parallel()

		s := setupTestSite(t, map[string]string{"index.md": "# Home"})
		env, stdout, stderr := newTestEnv("")

		code := runMain(context.Background(), s.args("-q"), env)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d\nstderr: %s", code, stderr.String())
		}
		if stdout.Len() != 0 {
			t.Errorf("stdout should be empty with --quiet, got %q", stdout.String())
		}
	})

	t.Run("verbose shows debug logs and timing", func(t *testing.T) {
		t.Parallel()

		s := setupTestSite(t, map[string]string{"index.md": "# Home"})
		env, stdout, stderr := newTestEnv("")

		code := runMain(context.Background(), s.args("-v"), env)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d\nstderr: %s", code, stderr.String())
		}
		if !strings.Contains(stdout.String(), " -> ") {
			t.Errorf("stdout should show source -> output, got %q", stdout.String())
		}
		if !strings.Contains(stderr.String(), "page built") {
			t.Errorf("stderr should carry debug logs, got %q", stderr.String())
		}
	})

	t.Run("missing static directory is a warning", func(t *testing.T) {
		t.Parallel()

		s := setupTestSite(t, map[string]string{"index.md": "# Home"})
		env, _, stderr := newTestEnv("")

		code := runMain(context.Background(), s.args(), env)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d\nstderr: %s", code, stderr.String())
		}
		if !strings.Contains(stderr.String(), "static directory not found") {
			t.Errorf("stderr should warn about static dir, got %q", stderr.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_ExitCodes - Semantic exit codes for setup failures
// ---------------------------------------------------------------------------

func TestRunMain_ExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     func(s *testSite) []string
		wantCode int
	}{
		{
			name: "missing content directory",
			args: func(s *testSite) []string {
				return []string{"mdsite", "build", "--content", filepath.Join(s.root, "nope"), "-o", s.output}
			},
			wantCode: ExitIO,
		},
		{
			name: "output overlaps content",
			args: func(s *testSite) []string {
				return []string{"mdsite", "build", "--content", s.content, "--static", s.static, "-o", s.root}
			},
			wantCode: ExitUsage,
		},
		{
			name: "unknown engine",
			args: func(s *testSite) []string {
				return s.args("--engine", "pandoc")
			},
			wantCode: ExitUsage,
		},
		{
			name: "highlight without goldmark",
			args: func(s *testSite) []string {
				return s.args("--highlight")
			},
			wantCode: ExitUsage,
		},
		{
			name: "missing config file",
			args: func(s *testSite) []string {
				return s.args("-c", filepath.Join(s.root, "missing.yaml"))
			},
			wantCode: ExitUsage,
		},
		{
			name: "missing template file",
			args: func(s *testSite) []string {
				return s.args("--template", filepath.Join(s.root, "missing.html"))
			},
			wantCode: ExitIO,
		},
		{
			name: "relative base path",
			args: func(s *testSite) []string {
				return s.args("repo")
			},
			wantCode: ExitUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := setupTestSite(t, map[string]string{"index.md": "# Home"})
			env, _, stderr := newTestEnv("")
			args := tt.args(s)

			code := runMain(context.Background(), args, env)
			if code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", args, code, tt.wantCode, stderr.String())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Render - Single file conversion
// ---------------------------------------------------------------------------

func TestRunMain_Render(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "page.md")
	if err := os.WriteFile(file, []byte("---\ntitle: From Meta\n---\n# Heading\n\nSome **bold**"), 0o644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	tests := []struct {
		name       string
		args       []string
		stdin      string
		wantCode   int
		wantStdout string
	}{
		{
			name:       "body html",
			args:       []string{"mdsite", "render", "--front-matter", file},
			wantCode:   ExitSuccess,
			wantStdout: "<div><h1>Heading</h1><p>Some <b>bold</b></p></div>\n",
		},
		{
			name:       "title from heading",
			args:       []string{"mdsite", "render", "--title", "-"},
			stdin:      "# Stdin Title\n\nbody",
			wantCode:   ExitSuccess,
			wantStdout: "Stdin Title\n",
		},
		{
			name:       "title from front matter",
			args:       []string{"mdsite", "render", "--title", "--front-matter", file},
			wantCode:   ExitSuccess,
			wantStdout: "From Meta\n",
		},
		{
			name:     "missing title",
			args:     []string{"mdsite", "render", "--title", "-"},
			stdin:    "no heading",
			wantCode: ExitContent,
		},
		{
			name:     "unbalanced delimiter",
			args:     []string{"mdsite", "render", "-"},
			stdin:    "some `code",
			wantCode: ExitContent,
		},
		{
			name:     "missing file",
			args:     []string{"mdsite", "render", filepath.Join(dir, "nope.md")},
			wantCode: ExitIO,
		},
		{
			name:     "unknown engine",
			args:     []string{"mdsite", "render", "-e", "pandoc", file},
			wantCode: ExitUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv(tt.stdin)
			code := runMain(context.Background(), tt.args, env)

			if code != tt.wantCode {
				t.Fatalf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
			if tt.wantStdout != "" && stdout.String() != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.wantStdout)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsCommand - Command name matching
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg  string
		want bool
	}{
		{"build", true},
		{"render", true},
		{"version", true},
		{"help", true},
		{"completion", true},
		{"/blog/", false},
		{"--verbose", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			t.Parallel()

			if got := isCommand(tt.arg); got != tt.want {
				t.Errorf("isCommand(%q) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNewLogger - Level selection
// ---------------------------------------------------------------------------

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		verbose   bool
		quiet     bool
		wantDebug bool
		wantInfo  bool
	}{
		{"default", false, false, false, true},
		{"verbose", true, false, true, true},
		{"quiet", false, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, stderr := newTestEnv("")
			log := newLogger(env, tt.verbose, tt.quiet)
			log.Debugw("debug line")
			log.Infow("info line")
			log.Warnw("warn line")

			out := stderr.String()
			if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "info line"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
			if !strings.Contains(out, "warn line") {
				t.Error("warnings should always be logged")
			}
		})
	}
}
