package site

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/alnah/go-mdsite/internal/fileutil"
)

// fileJob maps a source file to its place in the output tree.
type fileJob struct {
	Source string
	Output string
}

// discover walks the content tree. Markdown files become pages at the same
// relative path with an .html extension; every other regular file is
// returned for a verbatim copy. Both lists are in lexical walk order.
func discover(contentDir, outputDir string) (pages, passthrough []fileJob, err error) {
	err = filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(contentDir, path)
		if err != nil {
			return err
		}

		if fileutil.IsMarkdown(path) {
			pages = append(pages, fileJob{
				Source: path,
				Output: filepath.Join(outputDir, fileutil.ReplaceExt(rel, ".html")),
			})
			return nil
		}
		passthrough = append(passthrough, fileJob{
			Source: path,
			Output: filepath.Join(outputDir, rel),
		})
		return nil
	})
	return pages, passthrough, err
}
