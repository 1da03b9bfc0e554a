package site

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// buildPages converts pages concurrently and stores the results, in input
// order, in report. With FailFast the first failure cancels the pages not
// yet started and is returned. Cancellation of ctx is returned as is.
func (g *Generator) buildPages(ctx context.Context, tmpl string, pages []fileJob, report *Report) error {
	results := make([]PageResult, len(pages))
	report.Pages = results
	if len(pages) == 0 {
		return ctx.Err()
	}

	concurrency := min(ResolveWorkers(g.opts.Workers), len(pages))
	g.log.Debugw("building pages", "pages", len(pages), "workers", concurrency)

	buildCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		firstErr error
		once     sync.Once
		wg       sync.WaitGroup
	)
	jobs := make(chan int, len(pages))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if buildCtx.Err() != nil {
					results[idx] = g.aborted(ctx, pages[idx])
					continue
				}

				r := g.buildPage(buildCtx, tmpl, pages[idx])
				if r.Err != nil && ctx.Err() == nil && buildCtx.Err() != nil &&
					errors.Is(r.Err, context.Canceled) {
					// In flight when an earlier page failed.
					r.Err = ErrBuildAborted
				}
				results[idx] = r

				if r.Err == nil || errors.Is(r.Err, ErrBuildAborted) {
					continue
				}
				g.log.Errorw("page failed", "source", r.Source, "err", r.Err)
				if g.opts.FailFast {
					once.Do(func() {
						firstErr = fmt.Errorf("%s: %w", r.Source, r.Err)
						cancel()
					})
				}
			}
		}()
	}

	for i := range pages {
		jobs <- i
	}
	close(jobs)

	wg.Wait()

	for _, r := range results {
		if r.Draft {
			report.Drafts = append(report.Drafts, r.Source)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return firstErr
}

// aborted returns the result for a page that was never started.
func (g *Generator) aborted(ctx context.Context, job fileJob) PageResult {
	err := ErrBuildAborted
	if ctx.Err() != nil {
		err = ctx.Err()
	}
	return PageResult{Source: job.Source, Output: job.Output, Err: err}
}

// buildPage runs one page through read, front matter, conversion, title
// lookup, assembly, base path rewrite and write.
func (g *Generator) buildPage(ctx context.Context, tmpl string, job fileJob) PageResult {
	start := time.Now()
	result := PageResult{
		Source: job.Source,
		Output: job.Output,
	}
	fail := func(err error) PageResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(job.Source) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	var fm FrontMatter
	if g.opts.FrontMatter {
		fm, content, err = ParseFrontMatter(content)
		if err != nil {
			return fail(err)
		}
		if fm.Draft {
			g.log.Debugw("draft skipped", "source", job.Source)
			result.Draft = true
			result.Duration = time.Since(start)
			return result
		}
	}
	markdown := string(content)

	body, err := g.conv.ToHTML(ctx, markdown)
	if err != nil {
		return fail(err)
	}

	result.Title = fm.Title
	if result.Title == "" {
		result.Title, err = mdsite.ExtractTitle(markdown)
		if err != nil {
			return fail(err)
		}
	}

	page := pipeline.AssemblePage(tmpl, result.Title, body)
	page = pipeline.RewriteBasePath(page, g.opts.BasePath)

	if g.opts.CheckLinks {
		refs, err := pipeline.CollectReferences(page)
		if err != nil {
			g.log.Warnw("collecting references failed", "source", job.Source, "err", err)
		}
		result.refs = refs
	}

	if err := fileutil.WriteFile(job.Output, []byte(page)); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWritePage, err))
	}

	result.Duration = time.Since(start)
	g.log.Debugw("page built",
		"source", job.Source,
		"output", job.Output,
		"title", result.Title,
		"duration", result.Duration,
	)
	return result
}
