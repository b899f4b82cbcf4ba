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

package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestPattern_Count(t *testing.T) {
	tests := []struct {
		name       string
		find       string
		source     string
		ignoreCase bool
		want       int
	}{
		{
			name:   "no_match",
			find:   "hello",
			source: "goodbye world",
			want:   0,
		},
		{
			name:   "multiple_matches",
			find:   "hello",
			source: "hello hello, hello",
			want:   3,
		},
		{
			name:   "non_overlapping",
			find:   "aa",
			source: "aaaa a",
			want:   2,
		},
		{
			name:   "case_sensitive_by_default",
			find:   "hello",
			source: "Hello HELLO hello",
			want:   1,
		},
		{
			name:       "ignore_case",
			find:       "hello",
			source:     "Hello HELLO hello",
			ignoreCase: true,
			want:       3,
		},
		{
			name:   "anchors_match_line_boundaries",
			find:   "^INSERT",
			source: "INSERT INTO a;\nINSERT INTO b;\n  INSERT INTO c;",
			want:   2,
		},
		{
			name:   "end_anchor_per_line",
			find:   ";$",
			source: "a;\nb;\nc",
			want:   2,
		},
		{
			name:   "empty_source",
			find:   "x",
			source: "",
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.find, "", WithIgnoreCase(tt.ignoreCase))
			require.NoError(t, err, "compiling pattern")
			assert.Equal(t, tt.want, p.Count(tt.source))
		})
	}
}

func TestPattern_ReplaceAll(t *testing.T) {
	tests := []struct {
		name    string
		find    string
		replace string
		source  string
		want    string
	}{
		{
			name:    "literal",
			find:    "http://old.example",
			replace: "https://new.example",
			source:  "a http://old.example b http://old.example",
			want:    "a https://new.example b https://new.example",
		},
		{
			name:    "numbered_backreference",
			find:    `(\w+)@old\.com`,
			replace: "$1@new.com",
			source:  "bob@old.com alice@old.com",
			want:    "bob@new.com alice@new.com",
		},
		{
			name:    "backreference_followed_by_letters",
			find:    `(foo)`,
			replace: "$1bar",
			source:  "foo",
			want:    "foobar",
		},
		{
			name:    "whole_match",
			find:    `\d+`,
			replace: "<$&>",
			source:  "a1b22",
			want:    "a<1>b<22>",
		},
		{
			name:    "escaped_dollar",
			find:    "price",
			replace: "$$5",
			source:  "price",
			want:    "$5",
		},
		{
			name:    "braced_group_untouched",
			find:    `(?P<host>old)\.example`,
			replace: "${host}er.example",
			source:  "old.example",
			want:    "older.example",
		},
		{
			name:    "literal_dollar_word",
			find:    "price",
			replace: "$price",
			source:  "price: 5",
			want:    "$price: 5",
		},
		{
			name:    "two_digit_ref_single_group",
			find:    "(a)",
			replace: "$10",
			source:  "a",
			want:    "a0",
		},
		{
			name:    "two_digit_ref_existing_group",
			find:    "(a)(b)(c)(d)(e)(f)(g)(h)(i)(j)(k)",
			replace: "$11-$10",
			source:  "abcdefghijk",
			want:    "k-j",
		},
		{
			name:    "reference_to_missing_group",
			find:    "(a)",
			replace: "$2x",
			source:  "a",
			want:    "$2x",
		},
		{
			name:    "dollar_zero_is_literal",
			find:    "a",
			replace: "$0",
			source:  "a",
			want:    "$0",
		},
		{
			name:    "trailing_dollar",
			find:    "x",
			replace: "y$",
			source:  "x",
			want:    "y$",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.find, tt.replace)
			require.NoError(t, err, "compiling pattern")
			assert.Equal(t, tt.want, p.ReplaceAll(tt.source))
		})
	}
}

func TestCompile_InvalidPattern(t *testing.T) {
	_, err := Compile("(unclosed", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPattern), "error should wrap ErrInvalidPattern")
	assert.Contains(t, err.Error(), "(unclosed")
}

func TestPattern_Accessors(t *testing.T) {
	p := MustCompile("a+", "b", WithIgnoreCase(true))
	assert.Equal(t, "a+", p.Find())
	assert.Equal(t, "b", p.Replace())
	assert.True(t, p.MatchString("xAAy"))
	assert.False(t, p.MatchString("xyz"))
}

func TestMustCompile_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCompile("[", "") })
}
