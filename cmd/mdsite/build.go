package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/hints"
	"github.com/alnah/go-mdsite/internal/pipeline"
	"github.com/alnah/go-mdsite/internal/site"
)

// runBuild generates the site described by config file, environment and
// flags, in increasing order of precedence.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return usageError(err)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: build takes at most one base path, got %d arguments", ErrUsage, len(positional))
	}

	log := newLogger(env, flags.common.verbose, flags.common.quiet)
	defer func() { _ = log.Sync() }()
	warnUnknownEnvVars(log)

	cfg, err := resolveConfig(flags, positional, loadEnvConfig())
	if err != nil {
		return err
	}
	log.Debugw("configuration resolved",
		"content", cfg.Content,
		"static", cfg.Static,
		"output", cfg.Output,
		"basePath", cfg.BasePath,
		"engine", cfg.Engine,
		"workers", site.ResolveWorkers(cfg.Workers),
	)

	report, err := site.New(siteOptions(cfg, log)).Build(ctx)
	if report != nil {
		summary := printReport(report, flags.common.quiet, flags.common.verbose, cfg.FrontMatter, env)
		if ctx.Err() == nil && summary.Failed > 0 {
			log.Debugw("page failures", "errors", report.Err())
			// Page failures were printed above; with fail-fast err repeats one of them.
			return fmt.Errorf("%w: %d page(s)", ErrPagesFailed, summary.Failed)
		}
	}
	return err
}

// resolveConfig layers defaults, the config file, environment variables,
// flags and the positional base path, then validates the result.
func resolveConfig(flags *buildFlags, positional []string, env *envConfig) (*config.Config, error) {
	name := flags.common.config
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			var hint string
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				hint = hints.ForConfigNotFound(config.SearchPaths(name))
			}
			return nil, fmt.Errorf("loading config: %w%s", err, hint)
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	if err := mergeFlags(flags, positional, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		if cfg.Engine != "" && !slices.Contains(config.Engines, cfg.Engine) {
			return nil, fmt.Errorf("%w%s", err, hints.ForEngine(config.Engines))
		}
		return nil, err
	}
	cfg.Normalize()
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *buildFlags, positional []string, cfg *config.Config) error {
	if flags.site.content != "" {
		cfg.Content = flags.site.content
	}
	if flags.site.static != "" {
		cfg.Static = flags.site.static
	}
	if flags.site.output != "" {
		cfg.Output = flags.site.output
	}
	if flags.site.template != "" {
		cfg.Template = flags.site.template
	}
	if flags.site.assets != "" {
		cfg.Assets = flags.site.assets
	}
	if flags.site.basePath != "" {
		cfg.BasePath = flags.site.basePath
	}
	if len(positional) == 1 {
		if flags.site.basePath != "" && flags.site.basePath != positional[0] {
			return fmt.Errorf("%w: base path given both as argument %q and --base-path %q",
				ErrUsage, positional[0], flags.site.basePath)
		}
		cfg.BasePath = positional[0]
	}

	if flags.engine != "" {
		cfg.Engine = flags.engine
	}
	if flags.highlight {
		cfg.Highlight = true
	}
	if flags.workers != 0 {
		cfg.Workers = flags.workers
	}
	if flags.failFast {
		cfg.FailFast = true
	}
	if flags.checkLinks {
		cfg.CheckLinks = true
	}
	if flags.frontMatter {
		cfg.FrontMatter = true
	}
	return nil
}

// siteOptions maps a validated config onto generator options.
func siteOptions(cfg *config.Config, log *zap.SugaredLogger) site.Options {
	opts := site.Options{
		ContentDir:   cfg.Content,
		StaticDir:    cfg.Static,
		OutputDir:    cfg.Output,
		TemplatePath: cfg.Template,
		AssetsDir:    cfg.Assets,
		BasePath:     cfg.BasePath,
		Workers:      cfg.Workers,
		FailFast:     cfg.FailFast,
		CheckLinks:   cfg.CheckLinks,
		FrontMatter:  cfg.FrontMatter,
		Converter:    newConverter(cfg.Engine, cfg.Highlight),
		Logger:       log,
	}
	if cfg.Highlight {
		opts.HighlightStyle = pipeline.DefaultHighlightStyle
	}
	return opts
}

// newConverter returns the HTML converter for an engine name. Unknown
// names are rejected by config validation before this point.
func newConverter(engine string, highlight bool) pipeline.HTMLConverter {
	if engine != config.EngineGoldmark {
		return pipeline.NewNativeConverter()
	}
	var opts []pipeline.GoldmarkOption
	if highlight {
		opts = append(opts, pipeline.WithHighlighting())
	}
	return pipeline.NewGoldmarkConverter(opts...)
}

// ResultSummary holds the count of built, failed, aborted and draft pages.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Aborted   int
	Drafts    int
}

// countResults tallies page outcomes. Aborted pages are not failures.
func countResults(pages []site.PageResult) ResultSummary {
	var summary ResultSummary
	for _, p := range pages {
		switch {
		case p.Err != nil && errors.Is(p.Err, site.ErrBuildAborted):
			summary.Aborted++
		case p.Err != nil:
			summary.Failed++
		case p.Draft:
			summary.Drafts++
		default:
			summary.Succeeded++
		}
	}
	return summary
}

// printReport outputs build results using the environment's writers.
func printReport(report *site.Report, quiet, verbose, frontMatter bool, env *Environment) ResultSummary {
	summary := countResults(report.Pages)

	for _, p := range report.Pages {
		switch {
		case p.Err != nil && errors.Is(p.Err, site.ErrBuildAborted):
			if verbose {
				fmt.Fprintf(env.Stderr, "SKIPPED %s\n", p.Source)
			}
		case p.Err != nil:
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", p.Source, p.Err, hintFor(p.Err, frontMatter))
		case quiet:
		case p.Draft:
			if verbose {
				fmt.Fprintf(env.Stdout, "Draft %s (skipped)\n", p.Source)
			}
		case verbose:
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", p.Source, p.Output, p.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(env.Stdout, "Created %s\n", p.Output)
		}
	}

	if !quiet {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed", summary.Succeeded, summary.Failed)
		if summary.Aborted > 0 {
			fmt.Fprintf(env.Stdout, ", %d aborted", summary.Aborted)
		}
		if summary.Drafts > 0 {
			fmt.Fprintf(env.Stdout, ", %d draft(s)", summary.Drafts)
		}
		fmt.Fprintf(env.Stdout, ", %d file(s) copied\n", report.Copied)
		if n := len(report.Dangling); n > 0 {
			fmt.Fprintf(env.Stdout, "%d dangling link(s)\n", n)
		}
	}

	return summary
}

// hintFor returns the hints for every well-known failure in err, or "".
func hintFor(err error, frontMatter bool) string {
	if err == nil {
		return ""
	}

	var parts []string
	if errors.Is(err, mdsite.ErrMissingTitle) {
		parts = append(parts, hints.ForMissingTitle(frontMatter))
	}
	if errors.Is(err, mdsite.ErrUnbalancedDelimiter) {
		parts = append(parts, hints.ForUnbalancedDelimiter())
	}
	if errors.Is(err, mdsite.ErrMalformedCodeBlock) ||
		errors.Is(err, mdsite.ErrMalformedQuote) ||
		errors.Is(err, mdsite.ErrMalformedList) ||
		errors.Is(err, mdsite.ErrMalformedHeading) {
		parts = append(parts, hints.ForMalformedBlock())
	}
	if errors.Is(err, pipeline.ErrTemplatePlaceholder) {
		parts = append(parts, hints.ForTemplatePlaceholders([]string{pipeline.TitlePlaceholder, pipeline.ContentPlaceholder}))
	}
	if errors.Is(err, site.ErrOutputDir) {
		parts = append(parts, hints.ForOutputDirectory())
	}
	return hints.Combine(parts...)
}
