package mdsite

import "fmt"

// SpanKind identifies the styling of an inline span.
type SpanKind int

// Span kinds.
const (
	Plain SpanKind = iota
	Bold
	Italic
	Code
	Link
	Image
)

// String returns the lowercase kind name.
func (k SpanKind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Code:
		return "code"
	case Link:
		return "link"
	case Image:
		return "image"
	default:
		return fmt.Sprintf("SpanKind(%d)", int(k))
	}
}

// TextSpan is a contiguous run of inline text with one styling kind.
// URL is only meaningful for Link and Image; for Image, Text holds the alt text.
type TextSpan struct {
	Text string
	Kind SpanKind
	URL  string
}

// PlainSpan returns an unstyled span.
func PlainSpan(text string) TextSpan {
	return TextSpan{Text: text, Kind: Plain}
}

// ToNode maps the span to its HTML leaf.
func (s TextSpan) ToNode() *Leaf {
	switch s.Kind {
	case Bold:
		return NewLeaf("b", s.Text)
	case Italic:
		return NewLeaf("i", s.Text)
	case Code:
		return NewLeaf("code", s.Text)
	case Link:
		return NewLeaf("a", s.Text, Attr{Key: "href", Value: s.URL})
	case Image:
		return NewLeaf("img", "",
			Attr{Key: "src", Value: s.URL},
			Attr{Key: "alt", Value: s.Text},
		)
	default:
		return NewText(s.Text)
	}
}

// SpansToNodes maps spans to leaves, preserving order.
func SpansToNodes(spans []TextSpan) []Node {
	nodes := make([]Node, 0, len(spans))
	for _, s := range spans {
		nodes = append(nodes, s.ToNode())
	}
	return nodes
}

// String implements fmt.Stringer for debugging and test output.
func (s TextSpan) String() string {
	if s.Kind == Link || s.Kind == Image {
		return fmt.Sprintf("%s(%q, %q)", s.Kind, s.Text, s.URL)
	}
	return fmt.Sprintf("%s(%q)", s.Kind, s.Text)
}
