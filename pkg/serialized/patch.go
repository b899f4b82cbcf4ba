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

// ⏳ ProgressFunc is called after each planned token is applied
type ProgressFunc func(current, total int)

// 🔧 Patch applies the planned rewrites to document in order. Each token
// replaces the first remaining occurrence of its length+value key.
func Patch(ctx context.Context, document string, plan []Token, progress ProgressFunc) (string, error) {
	logger := zerolog.Ctx(ctx)

	for i, tok := range plan {
		if err := ctx.Err(); err != nil {
			return "", errors.Errorf("patching token %d of %d: %w", i+1, len(plan), err)
		}

		if !tok.Planned() {
			return "", errors.Errorf("patching token at offset %d: %w: no rewrite planned", tok.Offset, ErrMalformedToken)
		}

		key := tok.Key()
		idx := strings.Index(document, key)
		if idx < 0 {
			return "", errors.Errorf("%w: %q", ErrTokenNotFound, key)
		}

		document = document[:idx] + tok.Rewritten() + document[idx+len(key):]

		logger.Debug().
			Int("offset", idx).
			Int("old_length", tok.DeclaredLength).
			Int("new_length", tok.RewriteLength).
			Msg("patched serialized token")

		if progress != nil {
			progress(i+1, len(plan))
		}
	}

	return document, nil
}
