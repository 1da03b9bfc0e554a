// Package site generates a static site from a tree of Markdown files.
//
// A build resets the output directory, copies the static tree, converts
// every Markdown file of the content tree into an HTML page through the
// page template, and copies any other content file through unchanged.
// Pages are converted concurrently and independently.
package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// StylesheetName is the stylesheet the default template links to.
const StylesheetName = "index.css"

// Options configures a Generator.
type Options struct {
	ContentDir   string // Markdown source tree (required)
	StaticDir    string // Copied verbatim first; skipped when empty or missing
	OutputDir    string // Removed and recreated on every build (required)
	TemplatePath string // Page template file; empty uses the embedded default
	AssetsDir    string // Holds templates/page.html and styles/default.css overrides
	BasePath     string // URL prefix for root-relative links, e.g. "/blog/"

	Workers     int  // 0 = auto from GOMAXPROCS
	FailFast    bool // Cancel remaining pages at the first failure
	CheckLinks  bool // Warn about root-relative references with no target
	FrontMatter bool // Strip and read a leading YAML section

	// HighlightStyle, when set, appends the chroma stylesheet of that name
	// to the default index.css. Only meaningful with a highlighting converter.
	HighlightStyle string

	Converter pipeline.HTMLConverter // nil = pipeline.NativeConverter
	Logger    *zap.SugaredLogger     // nil = no logging
}

// Generator builds a site from Options.
type Generator struct {
	opts   Options
	log    *zap.SugaredLogger
	conv   pipeline.HTMLConverter
	assets *assets.AssetResolver
}

// New creates a Generator, filling defaults for optional fields.
func New(opts Options) *Generator {
	g := &Generator{
		opts: opts,
		log:  opts.Logger,
		conv: opts.Converter,
	}
	if g.log == nil {
		g.log = zap.NewNop().Sugar()
	}
	if g.conv == nil {
		g.conv = pipeline.NewNativeConverter()
	}
	g.opts.BasePath = config.NormalizeBasePath(opts.BasePath)
	return g
}

// ResolveWorkers returns the worker count for a build.
// Explicit values are used as is; 0 uses GOMAXPROCS (adjusted by
// automaxprocs for containers), capped at config.MaxWorkers.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	if n > config.MaxWorkers {
		return config.MaxWorkers
	}
	return n
}

// Build generates the site. It returns a non-nil error for setup failures,
// for cancellation of ctx, and, with FailFast, for the first page failure.
// Without FailFast, page failures are only recorded in the report; see
// Report.Err.
func (g *Generator) Build(ctx context.Context) (*Report, error) {
	tmpl, err := g.prepare()
	if err != nil {
		return nil, err
	}

	report := &Report{}

	if err := fileutil.ResetDir(g.opts.OutputDir); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutputDir, err)
	}
	g.log.Debugw("output directory reset", "dir", g.opts.OutputDir)

	copied, err := g.copyStatic()
	if err != nil {
		return nil, err
	}
	report.Copied += copied

	pages, passthrough, err := discover(g.opts.ContentDir, g.opts.OutputDir)
	if err != nil {
		return nil, err
	}
	for _, f := range passthrough {
		if err := fileutil.CopyFile(f.Source, f.Output); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCopyFile, f.Source, err)
		}
		g.log.Debugw("content file copied", "source", f.Source, "output", f.Output)
	}
	report.Copied += len(passthrough)

	if g.opts.TemplatePath == "" {
		if err := g.writeStylesheet(); err != nil {
			return nil, err
		}
	}

	buildErr := g.buildPages(ctx, tmpl, pages, report)
	if buildErr != nil && ctx.Err() != nil {
		return report, buildErr
	}

	if g.opts.CheckLinks {
		report.Dangling = g.checkLinks(report.Pages)
	}

	g.log.Infow("build finished",
		"pages", report.Succeeded(),
		"failed", report.Failed(),
		"drafts", len(report.Drafts),
		"copied", report.Copied,
	)
	return report, buildErr
}

// prepare validates the options and loads the page template.
func (g *Generator) prepare() (string, error) {
	if g.opts.ContentDir == "" || !fileutil.DirExists(g.opts.ContentDir) {
		return "", fmt.Errorf("%w: %q", ErrContentDir, g.opts.ContentDir)
	}
	if g.opts.OutputDir == "" {
		return "", fmt.Errorf("%w: empty path", ErrOutputDir)
	}
	for _, src := range []string{g.opts.ContentDir, g.opts.StaticDir} {
		if src == "" {
			continue
		}
		overlap, err := contains(g.opts.OutputDir, src)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrOutputDir, err)
		}
		if overlap {
			return "", fmt.Errorf("%w: %s contains %s", ErrOutputOverlap, g.opts.OutputDir, src)
		}
	}

	resolver, err := assets.NewAssetResolver(g.opts.AssetsDir)
	if err != nil {
		return "", err
	}
	if resolver.HasCustomLoader() {
		g.log.Debugw("custom assets enabled", "dir", g.opts.AssetsDir)
	}
	g.assets = resolver

	var tmpl string
	if g.opts.TemplatePath != "" {
		tmpl, err = assets.LoadTemplateFile(g.opts.TemplatePath)
	} else {
		tmpl, err = resolver.LoadTemplate(assets.DefaultTemplateName)
	}
	if err != nil {
		return "", err
	}
	if err := pipeline.ValidateTemplate(tmpl); err != nil {
		return "", err
	}
	return tmpl, nil
}

// copyStatic copies the static tree into the output directory.
func (g *Generator) copyStatic() (int, error) {
	if g.opts.StaticDir == "" {
		return 0, nil
	}
	if !fileutil.DirExists(g.opts.StaticDir) {
		g.log.Warnw("static directory not found, skipping", "dir", g.opts.StaticDir)
		return 0, nil
	}

	copied, err := fileutil.CopyTree(g.opts.StaticDir, g.opts.OutputDir)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCopyFile, err)
	}
	for _, path := range copied {
		g.log.Debugw("static file copied", "output", path)
	}
	return len(copied), nil
}

// writeStylesheet writes the embedded default style for the default
// template, unless the static or content tree already provided one.
func (g *Generator) writeStylesheet() error {
	target := filepath.Join(g.opts.OutputDir, StylesheetName)
	if fileutil.FileExists(target) {
		g.log.Debugw("keeping provided stylesheet", "path", target)
		return nil
	}

	css, err := g.assets.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return err
	}
	if g.opts.HighlightStyle != "" {
		hl, err := pipeline.HighlightCSS(g.opts.HighlightStyle)
		if err != nil {
			return err
		}
		css += "\n" + hl
	}

	if err := fileutil.WriteFile(target, []byte(css)); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePage, err)
	}
	return nil
}

// contains reports whether dir is parent or equal to path.
func contains(dir, path string) (bool, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	if absDir == absPath {
		return true, nil
	}
	sep := string(os.PathSeparator)
	return strings.HasPrefix(absPath, strings.TrimSuffix(absDir, sep)+sep), nil
}
