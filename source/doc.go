// Package source builds documents from positioned-text interchange
// formats.
//
// The engine requires a text layer that already exists — recognition is
// someone else's job — so this package only adapts what external tools
// emit: a word-box JSON format ([DecodeJSON]) and hOCR markup
// ([DecodeHOCR]). [Detect] sniffs the format from content and [Load]
// reads a file end to end.
package source
