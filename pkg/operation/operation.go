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

package operation

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/reserialize/pkg/dump"
	"github.com/walteh/reserialize/pkg/pattern"
	"github.com/walteh/reserialize/pkg/serialized"
	"github.com/walteh/reserialize/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains configuration for a pipeline
type Options struct {
	// Input is the dump to read
	Input string
	// Output is where the rewritten dump is written
	Output string
	// Find is the regular expression to search for
	Find string
	// Replace is the replacement template, $1 style back-references allowed
	Replace string
	// IgnoreCase makes Find case-insensitive
	IgnoreCase bool
	// Loose also treats tokens at line start or after whitespace as serialized strings
	Loose bool

	// Files handles dump I/O, the local file system when nil
	Files dump.FileManager
	// Replacer runs the plain rewrite pass, a RegexpReplacer when nil
	Replacer text.TextReplacer
	// Progress is told about every patched serialized token
	Progress serialized.ProgressFunc
}

// 📊 Report summarizes a finished run
type Report struct {
	Input   string
	Output  string
	Find    string
	Replace string

	MatchesBefore     int // matches of Find in the input
	SerializedStrings int // serialized tokens found by the scanner
	SerializedMatches int // serialized tokens rewritten
	Replacements      int // matches replaced by the plain pass
	MatchesAfter      int // matches of Find left in the output
	EmptiedStrings    int // matched serialized tokens kept because their rewrite is empty
	UnboundedMatches  int // matched tokens without a ; { or } before them, left with a stale length
	BytesWritten      int

	Duration time.Duration
}

// 🏭 Pipeline runs the reserialize stages for one input/output pair
type Pipeline struct {
	opts    Options
	pat     *pattern.Pattern
	scanner *serialized.Scanner
}

// 🏭 New creates a pipeline with the given options
func New(opts Options) (*Pipeline, error) {
	if opts.Input == "" {
		return nil, errors.Errorf("input is required")
	}
	if opts.Output == "" {
		return nil, errors.Errorf("output is required")
	}
	if opts.Find == "" {
		return nil, errors.Errorf("find is required")
	}

	pat, err := pattern.Compile(opts.Find, opts.Replace, pattern.WithIgnoreCase(opts.IgnoreCase))
	if err != nil {
		return nil, errors.Errorf("compiling pattern: %w", err)
	}

	if opts.Files == nil {
		opts.Files = dump.New()
	}
	if opts.Replacer == nil {
		opts.Replacer = text.NewRegexpReplacer()
	}

	return &Pipeline{
		opts:    opts,
		pat:     pat,
		scanner: serialized.NewScanner(serialized.WithLooseBoundary(opts.Loose)),
	}, nil
}

// run carries the document between stages of a single Run.
type run struct {
	document string
	report   Report
}

// 🏃 Run executes Init, Reserialize, Rewrite, and Finish in order
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	logger := zerolog.Ctx(ctx)
	start := time.Now()

	r := &run{
		report: Report{
			Input:   p.opts.Input,
			Output:  p.opts.Output,
			Find:    p.opts.Find,
			Replace: p.opts.Replace,
		},
	}

	runner := NewRunner(logger)
	err := runner.Run(ctx,
		Step{StageInit, OperationFunc(func(ctx context.Context) error { return p.init(ctx, r) })},
		Step{StageReserialize, OperationFunc(func(ctx context.Context) error { return p.reserialize(ctx, r) })},
		Step{StageRewrite, OperationFunc(func(ctx context.Context) error { return p.rewrite(ctx, r) })},
		Step{StageFinish, OperationFunc(func(ctx context.Context) error { return p.finish(ctx, r) })},
	)
	if err != nil {
		return nil, err
	}

	r.report.Duration = time.Since(start)

	logger.Info().
		Str("input", r.report.Input).
		Str("output", r.report.Output).
		Int("matches_before", r.report.MatchesBefore).
		Int("serialized_strings", r.report.SerializedStrings).
		Int("serialized_matches", r.report.SerializedMatches).
		Int("matches_after", r.report.MatchesAfter).
		Int("emptied_strings", r.report.EmptiedStrings).
		Int("unbounded_matches", r.report.UnboundedMatches).
		Dur("duration", r.report.Duration).
		Msg("reserialize complete")

	return &r.report, nil
}

// 📥 init reads the input and counts matches
func (p *Pipeline) init(ctx context.Context, r *run) error {
	document, err := p.opts.Files.ReadInput(ctx, p.opts.Input)
	if err != nil {
		return errors.Errorf("reading input: %w", err)
	}

	r.document = document
	r.report.MatchesBefore = p.pat.Count(document)
	return nil
}

// 🔧 reserialize fixes the serialized string tokens touched by the pattern
func (p *Pipeline) reserialize(ctx context.Context, r *run) error {
	if r.report.MatchesBefore == 0 {
		zerolog.Ctx(ctx).Debug().Msg("no matches, skipping serialized tokens")
		return nil
	}

	tokens, err := p.scanner.Scan(r.document)
	if err != nil {
		return errors.Errorf("scanning serialized strings: %w", err)
	}
	r.report.SerializedStrings = len(tokens)

	analysis, err := serialized.Analyze(ctx, tokens, p.pat)
	if err != nil {
		return errors.Errorf("planning serialized rewrites: %w", err)
	}
	r.report.SerializedMatches = len(analysis.Planned)
	r.report.EmptiedStrings = len(analysis.Emptied)

	if !p.opts.Loose {
		missed, err := serialized.Unbounded(r.document, p.pat)
		if err != nil {
			return errors.Errorf("scanning unbounded serialized strings: %w", err)
		}
		r.report.UnboundedMatches = len(missed)
	}

	document, err := serialized.Patch(ctx, r.document, analysis.Planned, p.opts.Progress)
	if err != nil {
		return errors.Errorf("patching serialized strings: %w", err)
	}

	r.document = document
	return nil
}

// 🔄 rewrite runs the plain substitution over the whole document
func (p *Pipeline) rewrite(ctx context.Context, r *run) error {
	result, err := p.opts.Replacer.Rewrite(ctx, r.document, p.pat)
	if err != nil {
		return errors.Errorf("rewriting document: %w", err)
	}

	r.document = result.ModifiedContent
	r.report.Replacements = result.ReplacementCount
	return nil
}

// 📤 finish counts what is left and writes the output
func (p *Pipeline) finish(ctx context.Context, r *run) error {
	r.report.MatchesAfter = p.pat.Count(r.document)

	n, err := p.opts.Files.WriteOutput(ctx, p.opts.Output, r.document)
	if err != nil {
		return errors.Errorf("writing output: %w", err)
	}

	r.report.BytesWritten = n
	return nil
}
