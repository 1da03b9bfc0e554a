// Package mdsite converts Markdown documents to HTML fragments.
//
// # Quick Start
//
//	html, err := mdsite.ToHTML("# Hello\n\nSome **bold** text")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// <div><h1>Hello</h1><p>Some <b>bold</b> text</p></div>
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Segmentation: the document is split into blocks on blank lines
//  2. Classification: each block gets a BlockType (heading, code, quote,
//     unordered list, ordered list, paragraph), first matching rule wins
//  3. Conversion: each block becomes an HTML subtree; inline text is
//     tokenized into spans (images, links, bold, italic, code)
//  4. Rendering: the block nodes are wrapped in a root div and serialized
//
// Each stage is also exported (SplitBlocks, DetectBlockType, Tokenize,
// BlockToNode, MarkdownToNode) for callers that need the intermediate form.
//
// # Inline Syntax
//
// Supported spans are **bold**, _italic_, `code`, [text](url) and
// ![alt](url). Styles do not nest: once a span is styled its text is not
// reprocessed. An unclosed delimiter fails with ErrUnbalancedDelimiter.
//
// # Escaping
//
// Nothing is escaped. Text, attribute keys and attribute values are written
// exactly as they appear in the source, so the output is only as safe as
// the input.
//
// # Errors
//
// All failures are returned as wrapped sentinel errors and abort the
// conversion of the document:
//
//	html, err := mdsite.ToHTML(doc)
//	if errors.Is(err, mdsite.ErrUnbalancedDelimiter) {
//	    // an inline delimiter was not closed
//	}
//
// # Titles
//
// ExtractTitle finds the first "# " heading line, for use as a page title.
// It fails with ErrMissingTitle when the document has none.
//
// Conversion is synchronous and has no shared state; documents can be
// converted concurrently by the caller.
package mdsite
