package mdsite

import (
	"fmt"
	"regexp"
	"strings"
)

// Inline delimiters, in processing order after images and links.
const (
	boldDelimiter   = "**"
	italicDelimiter = "_"
	codeDelimiter   = "`"
)

var (
	// ![alt](url): no brackets inside alt, no parentheses inside url.
	imagePattern = regexp.MustCompile(`!\[([^\[\]]*)\]\(([^\(\)]*)\)`)

	// [text](url). Matches preceded by '!' are images and get skipped.
	linkPattern = regexp.MustCompile(`\[([^\[\]]*)\]\(([^\(\)]*)\)`)
)

// Tokenize turns a text run into an ordered sequence of spans.
//
// Stages run in a fixed order: images, links, bold, italic, code. Each stage
// only reprocesses Plain spans, so styled spans are never split again and
// delimiters do not nest.
func Tokenize(text string) ([]TextSpan, error) {
	spans := []TextSpan{PlainSpan(text)}
	spans = SplitImages(spans)
	spans = SplitLinks(spans)

	var err error
	if spans, err = SplitDelimiter(spans, boldDelimiter, Bold); err != nil {
		return nil, err
	}
	if spans, err = SplitDelimiter(spans, italicDelimiter, Italic); err != nil {
		return nil, err
	}
	if spans, err = SplitDelimiter(spans, codeDelimiter, Code); err != nil {
		return nil, err
	}
	return spans, nil
}

// RenderSpans renders spans to an HTML string.
func RenderSpans(spans []TextSpan) (string, error) {
	var sb strings.Builder
	for _, s := range spans {
		html, err := s.ToNode().Render()
		if err != nil {
			return "", err
		}
		sb.WriteString(html)
	}
	return sb.String(), nil
}

// SplitImages extracts ![alt](url) markup from Plain spans.
func SplitImages(spans []TextSpan) []TextSpan {
	return splitMatches(spans, Image, func(text string) [][]int {
		return imagePattern.FindAllStringSubmatchIndex(text, -1)
	})
}

// SplitLinks extracts [text](url) markup from Plain spans.
func SplitLinks(spans []TextSpan) []TextSpan {
	return splitMatches(spans, Link, func(text string) [][]int {
		all := linkPattern.FindAllStringSubmatchIndex(text, -1)
		matches := all[:0]
		for _, m := range all {
			if m[0] > 0 && text[m[0]-1] == '!' {
				continue
			}
			matches = append(matches, m)
		}
		return matches
	})
}

// splitMatches cuts every Plain span around the matches returned by find.
// Each match carries the text in group 1 and the URL in group 2.
func splitMatches(spans []TextSpan, kind SpanKind, find func(string) [][]int) []TextSpan {
	out := make([]TextSpan, 0, len(spans))
	for _, span := range spans {
		if span.Kind != Plain {
			out = append(out, span)
			continue
		}

		text := span.Text
		pos := 0
		for _, m := range find(text) {
			if before := text[pos:m[0]]; before != "" {
				out = append(out, PlainSpan(before))
			}
			out = append(out, TextSpan{
				Text: text[m[2]:m[3]],
				Kind: kind,
				URL:  text[m[4]:m[5]],
			})
			pos = m[1]
		}
		if rest := text[pos:]; rest != "" {
			out = append(out, PlainSpan(rest))
		}
	}
	return out
}

// SplitDelimiter splits every Plain span on each literal occurrence of delim.
//
// Parts at even indices stay Plain and parts at odd indices get kind. Empty
// parts are dropped, so adjacent delimiters such as "__" produce nothing
// rather than an empty styled span. An even part count means a delimiter
// was left open and fails with ErrUnbalancedDelimiter.
func SplitDelimiter(spans []TextSpan, delim string, kind SpanKind) ([]TextSpan, error) {
	out := make([]TextSpan, 0, len(spans))
	for _, span := range spans {
		if span.Kind != Plain {
			out = append(out, span)
			continue
		}

		parts := strings.Split(span.Text, delim)
		if len(parts)%2 == 0 {
			return nil, fmt.Errorf("%w: %q in %q", ErrUnbalancedDelimiter, delim, span.Text)
		}
		for i, part := range parts {
			if part == "" {
				continue
			}
			if i%2 == 0 {
				out = append(out, PlainSpan(part))
			} else {
				out = append(out, TextSpan{Text: part, Kind: kind})
			}
		}
	}
	return out, nil
}
