package pipeline

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteBasePath prefixes root-relative href and src attributes with
// basePath. It is a literal substitution of `href="/` and `src="/`, so it
// applies to any element and leaves single-quoted or unquoted attributes
// alone. If basePath is empty or "/", the HTML is returned unchanged.
//
// basePath is expected to end with "/" so that href="/a" becomes
// href="/blog/a" for basePath "/blog/".
func RewriteBasePath(htmlContent, basePath string) string {
	if basePath == "" || basePath == "/" {
		return htmlContent
	}
	r := strings.NewReplacer(
		`href="/`, `href="`+basePath,
		`src="/`, `src="`+basePath,
	)
	return r.Replace(htmlContent)
}

// Reference is a link or image target found in generated HTML.
type Reference struct {
	Tag   string // "a" or "img"
	Attr  string // "href" or "src"
	Value string // attribute value as written
}

// IsRootRelative reports whether the reference is a site path such as
// "/blog/post.html", as opposed to a URL, a protocol-relative URL, an
// anchor, or a document-relative path.
func (r Reference) IsRootRelative() bool {
	return strings.HasPrefix(r.Value, "/") && !strings.HasPrefix(r.Value, "//")
}

// Path returns the reference value without query or fragment, unescaped.
func (r Reference) Path() string {
	p := r.Value
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if unescaped, err := url.PathUnescape(p); err == nil {
		return unescaped
	}
	return p
}

// CollectReferences parses a full document or fragment and returns the
// a[href] and img[src] values in document order.
//
// Not collected:
//   - link, script, video, audio and source elements
//   - srcset attributes and CSS url() references
//   - empty attribute values
func CollectReferences(htmlContent string) ([]Reference, error) {
	doc, err := parseHTML(htmlContent)
	if err != nil {
		return nil, err
	}

	var refs []Reference
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.A:
				refs = appendRef(refs, n, "href")
			case atom.Img:
				refs = appendRef(refs, n, "src")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return refs, nil
}

func appendRef(refs []Reference, n *html.Node, attrName string) []Reference {
	for _, attr := range n.Attr {
		if attr.Key == attrName && attr.Val != "" {
			return append(refs, Reference{Tag: n.Data, Attr: attrName, Value: attr.Val})
		}
	}
	return refs
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Fragments are parsed in a body context and collected under a document
// node for uniform traversal.
func parseHTML(content string) (*html.Node, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		return html.Parse(strings.NewReader(content))
	}

	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}
