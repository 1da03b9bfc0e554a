package mdsite

import (
	"regexp"
	"strconv"
	"strings"
)

// BlockType is the structural type of a block.
type BlockType int

// Block types. Paragraph is the zero value and the classification fallback.
const (
	Paragraph BlockType = iota
	Heading
	CodeBlock
	Quote
	UnorderedList
	OrderedList
)

// String returns the block type name.
func (t BlockType) String() string {
	switch t {
	case Paragraph:
		return "paragraph"
	case Heading:
		return "heading"
	case CodeBlock:
		return "code"
	case Quote:
		return "quote"
	case UnorderedList:
		return "unordered_list"
	case OrderedList:
		return "ordered_list"
	default:
		return "BlockType(" + strconv.Itoa(int(t)) + ")"
	}
}

const (
	codeFence    = "```"
	listMarker   = "- "
	quoteMarker  = ">"
	minCodeBlock = 2 * len(codeFence)
)

var (
	headingPattern    = regexp.MustCompile(`^#{1,6} `)
	blockSeparatorRun = regexp.MustCompile(`\n{2,}`)
)

// SplitBlocks splits a document into blocks on runs of empty lines.
// Each block is trimmed; blocks that are empty after trimming are dropped.
func SplitBlocks(markdown string) []string {
	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")

	var blocks []string
	for _, block := range blockSeparatorRun.Split(markdown, -1) {
		block = strings.TrimSpace(block)
		if block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// blockRule pairs a type with its predicate. Order is priority.
type blockRule struct {
	typ   BlockType
	match func(block string) bool
}

var blockRules = []blockRule{
	{Heading, isHeading},
	{CodeBlock, isCodeBlock},
	{Quote, isQuote},
	{UnorderedList, isUnorderedList},
	{OrderedList, isOrderedList},
}

// DetectBlockType classifies a block. The first matching rule wins;
// anything else, including the empty string, is a Paragraph.
func DetectBlockType(block string) BlockType {
	for _, rule := range blockRules {
		if rule.match(block) {
			return rule.typ
		}
	}
	return Paragraph
}

// HeadingLevel returns the number of leading '#' for a heading block,
// or 0 if the block is not a heading.
func HeadingLevel(block string) int {
	if !isHeading(block) {
		return 0
	}
	return len(block) - len(strings.TrimLeft(block, "#"))
}

// isHeading matches 1 to 6 '#' followed by a space.
func isHeading(block string) bool {
	return headingPattern.MatchString(block)
}

// isCodeBlock matches a block that opens and closes with a fence.
// The length check rejects a lone fence counted as both ends.
func isCodeBlock(block string) bool {
	return len(block) >= minCodeBlock &&
		strings.HasPrefix(block, codeFence) &&
		strings.HasSuffix(block, codeFence)
}

func isQuote(block string) bool {
	return everyLine(block, func(_ int, line string) bool {
		return strings.HasPrefix(line, quoteMarker)
	})
}

func isUnorderedList(block string) bool {
	return everyLine(block, func(_ int, line string) bool {
		return strings.HasPrefix(line, listMarker)
	})
}

// isOrderedList requires numbering to start at 1 and increase by one.
func isOrderedList(block string) bool {
	return everyLine(block, func(i int, line string) bool {
		return strings.HasPrefix(line, orderedMarker(i+1))
	})
}

// orderedMarker returns the list marker expected on item n.
func orderedMarker(n int) string {
	return strconv.Itoa(n) + ". "
}

// everyLine reports whether fn holds for each line of block.
func everyLine(block string, fn func(i int, line string) bool) bool {
	for i, line := range strings.Split(block, "\n") {
		if !fn(i, line) {
			return false
		}
	}
	return true
}
