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
	"regexp"
	"strconv"

	"gitlab.com/tozd/go/errors"
)

var (
	// token preceded by a statement, array or object delimiter
	delimitedToken = regexp.MustCompile(`[;{}]s:(\d+):"([^"]+)";`)
	// bare token, the boundary before it is checked without consuming it
	bareToken = regexp.MustCompile(`s:(\d+):"([^"]+)";`)
)

// 🔧 ScanOption configures a Scanner
type ScanOption func(*Scanner)

// 🌊 WithLooseBoundary also accepts tokens at the start of the document or
// after whitespace, and lets the closing ; of one token open the next one.
func WithLooseBoundary(loose bool) ScanOption {
	return func(s *Scanner) {
		s.loose = loose
	}
}

// 🔍 Scanner extracts serialized string tokens from a document
type Scanner struct {
	loose bool
}

// 🏭 NewScanner creates a scanner using the delimiter boundary unless overridden
func NewScanner(opts ...ScanOption) *Scanner {
	s := &Scanner{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan is shorthand for NewScanner().Scan.
func Scan(document string) ([]Token, error) {
	return NewScanner().Scan(document)
}

// 🔍 Scan returns every token in document order
func (s *Scanner) Scan(document string) ([]Token, error) {
	re := delimitedToken
	if s.loose {
		re = bareToken
	}

	matches := re.FindAllStringSubmatchIndex(document, -1)
	if len(matches) == 0 {
		return nil, nil
	}

	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		if len(m) < 6 || m[2] < 0 || m[4] < 0 {
			return nil, errors.Errorf("%w: at offset %d", ErrMalformedToken, m[0])
		}

		start := m[0]
		if s.loose && start > 0 {
			if !isBoundary(document[start-1]) {
				continue
			}
			// keep the boundary byte in Source like the delimited form does
			start--
		}

		digits := document[m[2]:m[3]]
		length, err := strconv.Atoi(digits)
		if err != nil {
			return nil, errors.Errorf("%w: length %q at offset %d", ErrMalformedToken, digits, start)
		}

		tokens = append(tokens, Token{
			Source:         document[start:m[1]],
			Offset:         start,
			DeclaredLength: length,
			Value:          document[m[4]:m[5]],
		})
	}

	if len(tokens) == 0 {
		return nil, nil
	}
	return tokens, nil
}

func isBoundary(c byte) bool {
	switch c {
	case ';', '{', '}', ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
