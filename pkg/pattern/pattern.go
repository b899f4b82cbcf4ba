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

// Package pattern compiles the find/replace pair shared by every rewrite stage.
package pattern

import (
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrInvalidPattern is returned when the find expression does not compile.
var ErrInvalidPattern = errors.Base("invalid find pattern")

// 🔧 Option configures how a Pattern is compiled
type Option func(*options)

type options struct {
	ignoreCase bool
}

// 🔠 WithIgnoreCase makes the find expression case-insensitive
func WithIgnoreCase(ignore bool) Option {
	return func(o *options) {
		o.ignoreCase = ignore
	}
}

// 🎯 Pattern is a compiled find expression paired with its replacement template
type Pattern struct {
	find     string
	replace  string
	template string
	re       *regexp.Regexp
}

// 🏭 Compile builds a multiline Pattern from a find expression and a replace template.
// The template accepts $1 through $99, $&, and $$ in addition to Go's ${name}
// form. A $ that does not start a reference is copied as is.
func Compile(find, replace string, opts ...Option) (*Pattern, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	flags := "(?m)"
	if o.ignoreCase {
		flags = "(?mi)"
	}

	re, err := regexp.Compile(flags + find)
	if err != nil {
		return nil, errors.Errorf("%w: %q: %s", ErrInvalidPattern, find, err.Error())
	}

	return &Pattern{
		find:     find,
		replace:  replace,
		template: normalizeTemplate(replace, re.NumSubexp()),
		re:       re,
	}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(find, replace string, opts ...Option) *Pattern {
	p, err := Compile(find, replace, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Find returns the find expression as written by the caller.
func (p *Pattern) Find() string { return p.find }

// Replace returns the replace template as written by the caller.
func (p *Pattern) Replace() string { return p.replace }

// 🔢 Count returns the number of non-overlapping matches in source
func (p *Pattern) Count(source string) int {
	return len(p.re.FindAllStringIndex(source, -1))
}

// 🔍 MatchString reports whether the find expression matches anywhere in source
func (p *Pattern) MatchString(source string) bool {
	return p.re.MatchString(source)
}

// 🔄 ReplaceAll substitutes every match in source with the expanded template
func (p *Pattern) ReplaceAll(source string) string {
	return p.re.ReplaceAllString(source, p.template)
}

// normalizeTemplate rewrites $N, $NN, $& and $$ into the unambiguous forms
// understood by regexp.Expand. A $NN reference uses both digits only when
// that group exists, otherwise the first digit is the group and the second is
// text. A $ that starts no valid reference is kept as a literal $. Anything
// already braced is left alone.
func normalizeTemplate(replace string, groups int) string {
	if !strings.Contains(replace, "$") {
		return replace
	}

	var b strings.Builder
	b.Grow(len(replace) + 8)

	for i := 0; i < len(replace); i++ {
		c := replace[i]
		if c != '$' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(replace) {
			b.WriteString("$$")
			continue
		}

		next := replace[i+1]
		switch {
		case next == '$':
			b.WriteString("$$")
			i++
		case next == '&':
			b.WriteString("${0}")
			i++
		case next == '{':
			b.WriteByte(c)
		case isDigit(next):
			if i+2 < len(replace) && isDigit(replace[i+2]) {
				if n := int(next-'0')*10 + int(replace[i+2]-'0'); n >= 1 && n <= groups {
					b.WriteString("${" + replace[i+1:i+3] + "}")
					i += 2
					continue
				}
			}
			if n := int(next - '0'); n >= 1 && n <= groups {
				b.WriteString("${" + replace[i+1:i+2] + "}")
				i++
				continue
			}
			b.WriteString("$$")
		default:
			b.WriteString("$$")
		}
	}

	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
