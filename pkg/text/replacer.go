package text

import (
	"context"
)

// Pattern is a compiled find expression with its replacement template
type Pattern interface {
	// Count returns the number of non-overlapping matches in source
	Count(source string) int

	// ReplaceAll substitutes every match in source
	ReplaceAll(source string) string
}

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the number of matches replaced
	ReplacementCount int

	// OriginalContent is the content before replacements
	OriginalContent string

	// ModifiedContent is the content after replacements
	ModifiedContent string
}

// TextReplacer rewrites a whole document with a find/replace pattern
type TextReplacer interface {
	// Rewrite applies the pattern across the whole document
	Rewrite(ctx context.Context, document string, pat Pattern) (*ReplacementResult, error)
}
