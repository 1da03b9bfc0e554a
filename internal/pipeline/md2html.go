package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	mdsite "github.com/alnah/go-mdsite"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultHighlightStyle is the chroma style used for highlight CSS.
const DefaultHighlightStyle = "github"

// HTMLConverter abstracts Markdown to HTML body conversion.
// Implementations return a fragment wrapped in a single <div>.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// NativeConverter converts with the built-in block converter.
type NativeConverter struct{}

// NewNativeConverter creates a NativeConverter.
func NewNativeConverter() *NativeConverter {
	return &NativeConverter{}
}

// ToHTML converts content with mdsite.ToHTML. Conversion is synchronous and
// bounded by the input size, so the context is only checked up front.
func (c *NativeConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	out, err := mdsite.ToHTML(content)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHTMLConversion, err)
	}
	return out, nil
}

// GoldmarkOption configures a GoldmarkConverter.
type GoldmarkOption func(*goldmarkOptions)

type goldmarkOptions struct {
	highlight bool
}

// WithHighlighting enables chroma syntax highlighting of fenced code blocks.
// Tokens are emitted as CSS classes; see HighlightCSS.
func WithHighlighting() GoldmarkOption {
	return func(o *goldmarkOptions) { o.highlight = true }
}

// GoldmarkConverter converts Markdown using goldmark (CommonMark + GFM).
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions.
func NewGoldmarkConverter(opts ...GoldmarkOption) *GoldmarkConverter {
	var o goldmarkOptions
	for _, opt := range opts {
		opt(&o)
	}

	extensions := []goldmark.Extender{
		extension.GFM,      // Tables, strikethrough, autolinks, task lists
		extension.Footnote, // [^1] footnotes
	}
	if o.highlight {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithFormatOptions(
				html.WithClasses(true), // styled by HighlightCSS, not inline
			),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // fragment links to headings
		),
		// Raw HTML in sources is not rendered: WithUnsafe() is not set.
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to a <div> wrapped HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		buf.WriteString("<div>")
		if err := c.md.Convert([]byte(normalizeLineEndings(content)), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		buf.WriteString("</div>")
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// HighlightCSS returns the stylesheet for the classes emitted by
// WithHighlighting. Unknown style names fall back to chroma's default.
func HighlightCSS(style string) (string, error) {
	var buf bytes.Buffer
	formatter := html.New(html.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(style)); err != nil {
		return "", fmt.Errorf("writing highlight css: %w", err)
	}
	return buf.String(), nil
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}

// Compile-time interface checks.
var (
	_ HTMLConverter = (*NativeConverter)(nil)
	_ HTMLConverter = (*GoldmarkConverter)(nil)
)
