package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags holds the directory layout flags.
type siteFlags struct {
	content  string
	static   string
	output   string
	template string
	assets   string
	basePath string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common      commonFlags
	site        siteFlags
	engine      string
	highlight   bool
	workers     int
	failFast    bool
	checkLinks  bool
	frontMatter bool
}

// renderFlags holds flags for the render command.
type renderFlags struct {
	engine      string
	title       bool
	frontMatter bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show warnings and errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-page timing and debug logs")
}

// addSiteFlags adds directory layout flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.content, "content", "", "markdown source directory")
	fs.StringVar(&f.static, "static", "", "static files directory")
	fs.StringVarP(&f.output, "output", "o", "", "output directory (reset on every build)")
	fs.StringVar(&f.template, "template", "", "page template file")
	fs.StringVar(&f.assets, "assets", "", "directory overriding templates/page.html and styles/default.css")
	fs.StringVar(&f.basePath, "base-path", "", "URL prefix the site is served under")
}

// newBuildFlagSet registers the build command flags into f.
func newBuildFlagSet(f *buildFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)

	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	fs.StringVarP(&f.engine, "engine", "e", "", "conversion engine: native, goldmark")
	fs.BoolVar(&f.highlight, "highlight", false, "syntax highlighting (goldmark engine)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.failFast, "fail-fast", false, "stop at the first page failure")
	fs.BoolVar(&f.checkLinks, "check-links", false, "warn about dangling root-relative links")
	fs.BoolVar(&f.frontMatter, "front-matter", false, "read YAML front matter (title, draft)")

	return fs
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, stderr io.Writer) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newBuildFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printBuildUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// newRenderFlagSet registers the render command flags into f.
func newRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)

	fs.StringVarP(&f.engine, "engine", "e", "", "conversion engine: native, goldmark")
	fs.BoolVar(&f.title, "title", false, "print the page title instead of the body")
	fs.BoolVar(&f.frontMatter, "front-matter", false, "strip YAML front matter first")

	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newRenderFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printRenderUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
