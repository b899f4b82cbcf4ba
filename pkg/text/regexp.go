package text

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// RegexpReplacer implements TextReplacer with a single global substitution
type RegexpReplacer struct{}

// NewRegexpReplacer creates a new RegexpReplacer
func NewRegexpReplacer() *RegexpReplacer {
	return &RegexpReplacer{}
}

// Rewrite implements TextReplacer.Rewrite
func (r *RegexpReplacer) Rewrite(ctx context.Context, document string, pat Pattern) (*ReplacementResult, error) {
	if pat == nil {
		return nil, errors.New("pattern is required")
	}

	result := &ReplacementResult{
		OriginalContent: document,
		ModifiedContent: document,
	}

	// Nothing to do without a match
	count := pat.Count(document)
	if count == 0 {
		zerolog.Ctx(ctx).Debug().Msg("plain rewrite skipped, no matches")
		return result, nil
	}

	modified := pat.ReplaceAll(document)

	result.ReplacementCount = count
	result.ModifiedContent = modified
	result.WasModified = modified != document

	zerolog.Ctx(ctx).Debug().
		Int("replacements", count).
		Bool("modified", result.WasModified).
		Msg("plain rewrite complete")

	return result, nil
}
