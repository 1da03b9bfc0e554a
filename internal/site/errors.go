package site

import "errors"

// Sentinel errors for site generation.
var (
	ErrContentDir    = errors.New("content directory not found")
	ErrOutputDir     = errors.New("invalid output directory")
	ErrOutputOverlap = errors.New("output directory overlaps a source directory")
	ErrReadMarkdown  = errors.New("failed to read markdown file")
	ErrFrontMatter   = errors.New("invalid front matter")
	ErrWritePage     = errors.New("failed to write page")
	ErrCopyFile      = errors.New("failed to copy file")
	ErrBuildAborted  = errors.New("build aborted after an earlier failure")
)
