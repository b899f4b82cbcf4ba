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
	"strconv"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrMalformedToken is returned when a matched token cannot be split into length and value.
	ErrMalformedToken = errors.Base("malformed serialized token")
	// ErrTokenNotFound is returned when a planned token no longer occurs in the document.
	ErrTokenNotFound = errors.Base("serialized token not found")
)

// 📦 Token is one s:<len>:"<value>"; occurrence found by the scanner
type Token struct {
	Source         string // Verbatim matched span, including the leading delimiter and trailing ;
	Offset         int    // Byte offset of Source in the scanned document
	DeclaredLength int    // Length prefix as written, not recomputed
	Value          string // Contents between the quotes

	RewriteValue  string // Value after substitution, set by Plan
	RewriteLength int    // Byte length of RewriteValue, set by Plan
}

// 🔑 Key is the length+value text used to find the token again while patching
func (t Token) Key() string {
	return encode(t.DeclaredLength, t.Value)
}

// Rewritten is the text that replaces Key.
func (t Token) Rewritten() string {
	return encode(t.RewriteLength, t.RewriteValue)
}

// Planned reports whether Plan attached a rewrite to the token.
func (t Token) Planned() bool {
	return t.RewriteLength != 0
}

func encode(length int, value string) string {
	return "s:" + strconv.Itoa(length) + `:"` + value + `"`
}
