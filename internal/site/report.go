package site

import (
	"errors"
	"fmt"
	"time"

	"github.com/alnah/go-mdsite/internal/pipeline"
)

// PageResult holds the outcome of a single page.
type PageResult struct {
	Source   string
	Output   string
	Title    string
	Draft    bool // skipped because front matter set draft: true
	Err      error
	Duration time.Duration

	refs []pipeline.Reference // collected for link checking
}

// DanglingRef is a root-relative reference with no matching output file.
type DanglingRef struct {
	Page string // output path of the page holding the reference
	Ref  pipeline.Reference
}

// Report summarizes a build.
type Report struct {
	Pages    []PageResult  // every discovered page, drafts included, in walk order
	Copied   int           // static and non-Markdown content files copied
	Drafts   []string      // sources skipped as drafts
	Dangling []DanglingRef // populated only with CheckLinks
}

// Succeeded returns the number of pages written.
func (r *Report) Succeeded() int {
	n := 0
	for _, p := range r.Pages {
		if p.Err == nil && !p.Draft {
			n++
		}
	}
	return n
}

// Failed returns the number of pages with an error, aborted ones included.
func (r *Report) Failed() int {
	n := 0
	for _, p := range r.Pages {
		if p.Err != nil {
			n++
		}
	}
	return n
}

// Err joins the page failures, each prefixed with its source path.
// Pages aborted by fail-fast are left out. Returns nil if every page
// succeeded.
func (r *Report) Err() error {
	var errs []error
	for _, p := range r.Pages {
		if p.Err == nil || errors.Is(p.Err, ErrBuildAborted) {
			continue
		}
		errs = append(errs, fmt.Errorf("%s: %w", p.Source, p.Err))
	}
	return errors.Join(errs...)
}
