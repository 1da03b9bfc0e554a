package site

import (
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdsite/internal/fileutil"
)

// checkLinks reports root-relative references of built pages whose target
// is missing from the output tree. External URLs and document-relative
// paths are not checked.
func (g *Generator) checkLinks(pages []PageResult) []DanglingRef {
	var dangling []DanglingRef
	for _, p := range pages {
		for _, ref := range p.refs {
			if !ref.IsRootRelative() || g.targetExists(ref.Path()) {
				continue
			}
			g.log.Warnw("dangling reference", "page", p.Output, "tag", ref.Tag, "target", ref.Value)
			dangling = append(dangling, DanglingRef{Page: p.Output, Ref: ref})
		}
	}
	return dangling
}

// targetExists resolves a URL path under the base path to the output tree.
// A path matches a file, a directory with index.html, or a file with an
// added .html extension.
func (g *Generator) targetExists(urlPath string) bool {
	var rel string
	switch {
	case urlPath+"/" == g.opts.BasePath:
		rel = ""
	case strings.HasPrefix(urlPath, g.opts.BasePath):
		rel = strings.TrimPrefix(urlPath, g.opts.BasePath)
	default:
		return false // outside the site
	}

	target := filepath.Join(g.opts.OutputDir, filepath.FromSlash(rel))
	if fileutil.FileExists(target) {
		return true
	}
	if fileutil.DirExists(target) {
		return fileutil.FileExists(filepath.Join(target, "index.html"))
	}
	return fileutil.FileExists(target + ".html")
}
