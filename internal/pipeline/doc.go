// Package pipeline implements the per-page stages of site generation.
//
// A page goes through these stages, each a plain function or a small
// interface so the site generator can compose them:
//   - Markdown to HTML body conversion (HTMLConverter): the built-in block
//     converter from the root package, or goldmark with optional chroma
//     highlighting
//   - Page assembly: placeholder substitution into the page template
//   - Base path rewriting of root-relative href and src attributes
//   - Reference collection for dangling link checks
//
// File system work (discovery, copying, writing) belongs to the site
// package. This package only transforms strings.
package pipeline
