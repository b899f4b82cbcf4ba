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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/reserialize/pkg/pattern"
	"gitlab.com/tozd/go/errors"
)

func TestPlan(t *testing.T) {
	hello := Token{Source: `;s:5:"hello";`, Offset: 8, DeclaredLength: 5, Value: "hello"}

	tests := []struct {
		name    string
		tokens  []Token
		find    string
		replace string
		want    []Token
	}{
		{
			name:    "same_length_rewrite",
			tokens:  []Token{hello},
			find:    "hello",
			replace: "world",
			want: []Token{
				{Source: hello.Source, Offset: 8, DeclaredLength: 5, Value: "hello", RewriteValue: "world", RewriteLength: 5},
			},
		},
		{
			name:    "shorter_rewrite",
			tokens:  []Token{hello},
			find:    "hello",
			replace: "hi",
			want: []Token{
				{Source: hello.Source, Offset: 8, DeclaredLength: 5, Value: "hello", RewriteValue: "hi", RewriteLength: 2},
			},
		},
		{
			name:    "length_counts_bytes",
			tokens:  []Token{hello},
			find:    "e",
			replace: "é",
			want: []Token{
				{Source: hello.Source, Offset: 8, DeclaredLength: 5, Value: "hello", RewriteValue: "héllo", RewriteLength: 6},
			},
		},
		{
			name:    "empty_rewrite_dropped",
			tokens:  []Token{hello},
			find:    "hello",
			replace: "",
			want:    []Token{},
		},
		{
			name:    "unmatched_token_dropped",
			tokens:  []Token{hello},
			find:    "bonjour",
			replace: "hi",
			want:    []Token{},
		},
		{
			name:    "match_against_delimiter_context",
			tokens:  []Token{hello},
			find:    `;s:5:"hel`,
			replace: `;s:5:"HEL`,
			want: []Token{
				{Source: hello.Source, Offset: 8, DeclaredLength: 5, Value: "hello", RewriteValue: "HELlo", RewriteLength: 5},
			},
		},
		{
			name:    "unchanged_value_dropped",
			tokens:  []Token{hello},
			find:    `s:5:`,
			replace: `s:9:`,
			want:    []Token{},
		},
		{
			name:    "backreference_in_value",
			tokens:  []Token{{Source: `;s:15:"http://old.test";`, DeclaredLength: 15, Value: "http://old.test"}},
			find:    `http://(\w+)\.test`,
			replace: "https://$1.example.com",
			want: []Token{
				{Source: `;s:15:"http://old.test";`, DeclaredLength: 15, Value: "http://old.test", RewriteValue: "https://old.example.com", RewriteLength: 23},
			},
		},
		{
			name: "order_preserved",
			tokens: []Token{
				{Source: `;s:3:"foo";`, Offset: 0, DeclaredLength: 3, Value: "foo"},
				{Source: `;s:3:"bar";`, Offset: 11, DeclaredLength: 3, Value: "bar"},
				{Source: `;s:6:"foobar";`, Offset: 22, DeclaredLength: 6, Value: "foobar"},
			},
			find:    "foo",
			replace: "x",
			want: []Token{
				{Source: `;s:3:"foo";`, Offset: 0, DeclaredLength: 3, Value: "foo", RewriteValue: "x", RewriteLength: 1},
				{Source: `;s:6:"foobar";`, Offset: 22, DeclaredLength: 6, Value: "foobar", RewriteValue: "xbar", RewriteLength: 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planned, err := Plan(context.Background(), tt.tokens, pattern.MustCompile(tt.find, tt.replace))
			require.NoError(t, err)
			assert.Equal(t, tt.want, planned)
		})
	}
}

func TestPlan_QuotesRemoved(t *testing.T) {
	tokens := []Token{{Source: `;s:5:"hello";`, DeclaredLength: 5, Value: "hello"}}

	_, err := Plan(context.Background(), tokens, pattern.MustCompile(`"`, ""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedToken), "error should wrap ErrMalformedToken")
}

func TestAnalyze_ReportsEmptied(t *testing.T) {
	tokens := []Token{
		{Source: `;s:5:"hello";`, Offset: 0, DeclaredLength: 5, Value: "hello"},
		{Source: `;s:9:"hello you";`, Offset: 13, DeclaredLength: 9, Value: "hello you"},
	}

	a, err := Analyze(context.Background(), tokens, pattern.MustCompile("hello ?", ""))
	require.NoError(t, err)

	require.Len(t, a.Emptied, 1, "emptied tokens")
	assert.Equal(t, 0, a.Emptied[0].Offset)
	require.Len(t, a.Planned, 1, "planned tokens")
	assert.Equal(t, "you", a.Planned[0].RewriteValue)
	assert.Equal(t, 3, a.Planned[0].RewriteLength)
}

func TestUnbounded(t *testing.T) {
	tests := []struct {
		name        string
		document    string
		find        string
		wantOffsets []int
	}{
		{
			name:        "document_start",
			document:    `s:5:"hello";`,
			find:        "hello",
			wantOffsets: []int{0},
		},
		{
			name:        "after_whitespace",
			document:    `x = s:5:"hello";`,
			find:        "hello",
			wantOffsets: []int{3},
		},
		{
			name:        "value_after_key",
			document:    `a:1:{s:3:"key";s:5:"hello";}`,
			find:        "hello",
			wantOffsets: []int{14},
		},
		{
			name:     "delimited_token_not_reported",
			document: `{i:0;s:5:"hello";}`,
			find:     "hello",
		},
		{
			name:     "unmatched_token_not_reported",
			document: `s:5:"world";`,
			find:     "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			missed, err := Unbounded(tt.document, pattern.MustCompile(tt.find, "x"))
			require.NoError(t, err)

			var offsets []int
			for _, tok := range missed {
				offsets = append(offsets, tok.Offset)
			}
			assert.Equal(t, tt.wantOffsets, offsets)
		})
	}
}
