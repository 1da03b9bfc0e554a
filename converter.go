package mdsite

import (
	"fmt"
	"strconv"
	"strings"
)

// rootTag wraps the nodes of a whole document.
const rootTag = "div"

// ToHTML converts a Markdown document to an HTML fragment wrapped in a div.
// No partial output is returned on failure. An empty document has no
// blocks and fails with ErrEmptyChildren.
func ToHTML(markdown string) (string, error) {
	root, err := MarkdownToNode(markdown)
	if err != nil {
		return "", err
	}
	html, err := root.Render()
	if err != nil {
		return "", fmt.Errorf("rendering document: %w", err)
	}
	return html, nil
}

// MarkdownToNode converts each block of the document and collects the
// results, in order, under a root div.
func MarkdownToNode(markdown string) (*Parent, error) {
	blocks := SplitBlocks(markdown)
	children := make([]Node, 0, len(blocks))

	for i, block := range blocks {
		typ := DetectBlockType(block)
		node, err := BlockToNode(block, typ)
		if err != nil {
			return nil, fmt.Errorf("block %d (%s): %w", i+1, typ, err)
		}
		children = append(children, node)
	}

	return NewParent(rootTag, children), nil
}

// BlockToNode builds the HTML subtree for a classified block.
func BlockToNode(block string, typ BlockType) (Node, error) {
	switch typ {
	case Paragraph:
		return paragraphNode(block)
	case Heading:
		return headingNode(block)
	case CodeBlock:
		return codeNode(block)
	case Quote:
		return quoteNode(block)
	case UnorderedList:
		return unorderedListNode(block)
	case OrderedList:
		return orderedListNode(block)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBlockType, typ)
	}
}

// inlineNodes tokenizes text and maps the spans to leaves.
func inlineNodes(text string) ([]Node, error) {
	spans, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	return SpansToNodes(spans), nil
}

// inlineParent wraps the inline nodes of text in a tag.
func inlineParent(tag, text string) (Node, error) {
	children, err := inlineNodes(text)
	if err != nil {
		return nil, err
	}
	return NewParent(tag, children), nil
}

func paragraphNode(block string) (Node, error) {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return inlineParent("p", strings.Join(lines, " "))
}

func headingNode(block string) (Node, error) {
	level := HeadingLevel(block)
	if level == 0 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedHeading, firstLine(block))
	}
	text := strings.TrimSpace(block[level:])
	return inlineParent("h"+strconv.Itoa(level), text)
}

// codeNode keeps the interior lines literal: no inline tokenization.
func codeNode(block string) (Node, error) {
	lines := strings.Split(block, "\n")
	if len(lines) < 2 ||
		!strings.HasPrefix(lines[0], codeFence) ||
		strings.TrimSpace(lines[len(lines)-1]) != codeFence {
		return nil, fmt.Errorf("%w: %q", ErrMalformedCodeBlock, firstLine(block))
	}

	content := strings.Join(lines[1:len(lines)-1], "\n")
	code := NewParent("code", []Node{NewText(content)})
	return NewParent("pre", []Node{code}), nil
}

func quoteNode(block string) (Node, error) {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		rest, ok := strings.CutPrefix(line, quoteMarker)
		if !ok {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedQuote, i+1, line)
		}
		lines[i] = strings.TrimPrefix(rest, " ")
	}
	return inlineParent("blockquote", strings.Join(lines, " "))
}

func unorderedListNode(block string) (Node, error) {
	lines := strings.Split(block, "\n")
	items := make([]Node, 0, len(lines))
	for i, line := range lines {
		rest, ok := strings.CutPrefix(line, listMarker)
		if !ok {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedList, i+1, line)
		}
		item, err := inlineParent("li", strings.TrimSpace(rest))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return NewParent("ul", items), nil
}

// orderedListNode re-validates the numbering: line k must carry "k. "
// followed by some text.
func orderedListNode(block string) (Node, error) {
	lines := strings.Split(block, "\n")
	items := make([]Node, 0, len(lines))
	for i, line := range lines {
		rest, ok := strings.CutPrefix(line, orderedMarker(i+1))
		text := strings.TrimSpace(rest)
		if !ok || text == "" {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedList, i+1, line)
		}
		item, err := inlineParent("li", text)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return NewParent("ol", items), nil
}

// firstLine returns the first line of s for error messages.
func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
