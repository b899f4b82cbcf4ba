// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serialized

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Matcher is the part of a find/replace pattern the planner needs
type Matcher interface {
	MatchString(source string) bool
	ReplaceAll(source string) string
}

// 📋 Analysis splits scanned tokens by what the pattern does to them
type Analysis struct {
	// Planned carries a rewrite value and byte length, ready for Patch
	Planned []Token
	// Emptied matched but would be rewritten to an empty value, so they are left alone
	Emptied []Token
}

// 📋 Plan returns the tokens whose source span is changed by m, each carrying
// its rewrite value and byte length. The match is tested against the whole
// span, delimiters and length prefix included, not only the value.
func Plan(ctx context.Context, tokens []Token, m Matcher) ([]Token, error) {
	a, err := Analyze(ctx, tokens, m)
	if err != nil {
		return nil, err
	}
	return a.Planned, nil
}

// 🔍 Analyze is Plan that also reports the matched tokens left untouched
// because their rewrite is empty.
func Analyze(ctx context.Context, tokens []Token, m Matcher) (*Analysis, error) {
	logger := zerolog.Ctx(ctx)

	a := &Analysis{Planned: make([]Token, 0, len(tokens))}
	for _, tok := range tokens {
		if !m.MatchString(tok.Source) {
			continue
		}

		substituted := m.ReplaceAll(tok.Source)
		value, err := quoted(substituted)
		if err != nil {
			return nil, errors.Errorf("planning token at offset %d: %w", tok.Offset, err)
		}

		// An emptied value is left as the original token.
		if len(value) == 0 {
			logger.Debug().Int("offset", tok.Offset).Str("source", tok.Source).Msg("skipping token rewritten to empty value")
			a.Emptied = append(a.Emptied, tok)
			continue
		}

		if value == tok.Value && len(value) == tok.DeclaredLength {
			continue
		}

		tok.RewriteValue = value
		tok.RewriteLength = len(value)
		a.Planned = append(a.Planned, tok)
	}

	logger.Debug().
		Int("scanned", len(tokens)).
		Int("planned", len(a.Planned)).
		Int("emptied", len(a.Emptied)).
		Msg("planned serialized rewrites")

	return a, nil
}

// 🔍 Unbounded returns the tokens a loose scan finds in document that the
// delimited scan skips and m matches. Their text is still replaced by a plain
// pass, which leaves their length prefix stale.
func Unbounded(document string, m Matcher) ([]Token, error) {
	strict, err := NewScanner().Scan(document)
	if err != nil {
		return nil, err
	}
	loose, err := NewScanner(WithLooseBoundary(true)).Scan(document)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{}, len(strict))
	for _, tok := range strict {
		seen[tok.Offset] = struct{}{}
	}

	var missed []Token
	for _, tok := range loose {
		if _, ok := seen[tok.Offset]; ok {
			continue
		}
		if m.MatchString(tok.Source) {
			missed = append(missed, tok)
		}
	}
	return missed, nil
}

// quoted returns the text between the first and last double quote of span.
func quoted(span string) (string, error) {
	first := strings.IndexByte(span, '"')
	last := strings.LastIndexByte(span, '"')
	if first < 0 || last <= first {
		return "", errors.Errorf("%w: no quoted value in %q", ErrMalformedToken, span)
	}
	return span[first+1 : last], nil
}
