package mdsite

import "errors"

// Sentinel errors for conversion operations.
var (
	// Inline tokenizer errors.
	ErrUnbalancedDelimiter = errors.New("invalid markdown, formatted section not closed")

	// Block conversion errors: content violates its classified shape.
	ErrMalformedCodeBlock = errors.New("invalid code block format")
	ErrMalformedQuote     = errors.New("invalid quote block format")
	ErrMalformedList      = errors.New("invalid list item format")
	ErrMalformedHeading   = errors.New("invalid heading format")
	ErrUnknownBlockType   = errors.New("unsupported block type")

	// Node render errors. These indicate a conversion bug, not bad input.
	ErrMissingValue  = errors.New("leaf node must have a value")
	ErrMissingTag    = errors.New("parent node must have a tag")
	ErrEmptyChildren = errors.New("parent node must have children")

	// Title finder errors.
	ErrMissingTitle = errors.New("no h1 header found in markdown content")
)
