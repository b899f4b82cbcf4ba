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

package main

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/reserialize/cmd/reserialize/opts"
	"github.com/walteh/reserialize/pkg/config"
	"github.com/walteh/reserialize/pkg/log"
	"github.com/walteh/reserialize/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// rootFlags holds the raw flag values of one invocation
type rootFlags struct {
	configFile string
	input      string
	output     string
	find       string
	replace    string
	verbose    config.Boolish
	ignoreCase bool
	loose      bool
	debug      bool
}

// newRootCmd creates the reserialize command writing to stdout and stderr
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "reserialize",
		Short: "Find and replace in SQL dumps without breaking PHP-serialized strings",
		Long: `reserialize runs a regular-expression find/replace over a SQL dump and
fixes the byte length of every PHP-serialized string (s:<len>:"<value>";) it changes.
It will:
1. Read the input dump and count matches
2. Rewrite serialized strings touched by the pattern with corrected lengths
3. Replace the remaining matches across the whole dump
4. Write the output dump once`,
		Example: `  reserialize -i prod.sql -o staging.sql -f 'https://www\.example\.com' -r 'https://staging.example.com'
  reserialize -i in.sql -o out.sql -f '(\w+)@old\.test' -r '$1@new.test' --verbose 1
  reserialize --config migrate.hcl`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), stderr, flags)

			cfg, err := resolveConfig(ctx, cmd, flags)
			if err != nil {
				return err
			}

			// Incomplete options print help and touch no dump
			if !cfg.Complete() {
				return cmd.Help()
			}

			return run(ctx, &opts.RunOpts{
				Config: cfg,
				Logger: log.New(stdout, *zerolog.Ctx(ctx)),
				Stdout: stdout,
			})
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	addRootFlags(cmd, flags)

	return cmd
}

// addRootFlags adds the run flags to the root command
func addRootFlags(cmd *cobra.Command, f *rootFlags) {
	fs := cmd.Flags()
	fs.StringVarP(&f.configFile, "config", "c", "", "config file path (.yaml, .yml, .json, .hcl)")
	fs.StringVarP(&f.input, "input", "i", "", "input SQL dump")
	fs.StringVarP(&f.output, "output", "o", "", "output SQL dump")
	fs.StringVarP(&f.find, "find", "f", "", "regular expression to find")
	fs.StringVarP(&f.replace, "replace", "r", "", "replacement, $1 style back-references allowed")
	fs.VarP(&f.verbose, "verbose", "v", "print a run summary and progress (1 or true)")
	fs.BoolVar(&f.ignoreCase, "ignore-case", false, "match the find pattern case-insensitively")
	fs.BoolVar(&f.loose, "loose", false, "also fix serialized strings at line start, after whitespace or right after another token (default needs ; { or } before s:)")
	fs.BoolVarP(&f.debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags and stores it on the context
func setupLogging(ctx context.Context, stderr io.Writer, f *rootFlags) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	level := zerolog.WarnLevel
	switch {
	case f.debug:
		level = zerolog.DebugLevel
	case bool(f.verbose):
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

// resolveConfig loads the config file, if any, and lays explicitly set flags over it
func resolveConfig(ctx context.Context, cmd *cobra.Command, f *rootFlags) (*config.Config, error) {
	cfg := &config.Config{}
	if f.configFile != "" {
		loaded, err := config.Load(ctx, f.configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	fs := cmd.Flags()
	if fs.Changed("input") {
		cfg.Input = f.input
	}
	if fs.Changed("output") {
		cfg.Output = f.output
	}
	if fs.Changed("find") {
		cfg.Find = f.find
	}
	if fs.Changed("replace") {
		replace := f.replace
		cfg.Replace = &replace
	}
	if fs.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if fs.Changed("ignore-case") {
		cfg.IgnoreCase = f.ignoreCase
	}
	if fs.Changed("loose") {
		cfg.Loose = f.loose
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating options: %w", err)
	}

	return cfg, nil
}

// run executes one pipeline pass and prints the verbose summary
func run(ctx context.Context, o *opts.RunOpts) error {
	cfg := o.Config

	popts := operation.Options{
		Input:      cfg.Input,
		Output:     cfg.Output,
		Find:       cfg.Find,
		Replace:    cfg.ReplaceText(),
		IgnoreCase: cfg.IgnoreCase,
		Loose:      cfg.Loose,
	}

	var bar *progressBar
	if cfg.Verbose {
		bar = newProgressBar(o.Stdout, o.Logger)
		popts.Progress = bar.Update

		o.Logger.Header("rewriting " + cfg.Input)
		o.Logger.Stats(ctx,
			log.Stat{Label: "input", Value: cfg.Input},
			log.Stat{Label: "find", Value: cfg.Find},
			log.Stat{Label: "replace", Value: cfg.ReplaceText()},
		)
	}

	pipeline, err := operation.New(popts)
	if err != nil {
		return errors.Errorf("creating pipeline: %w", err)
	}

	report, err := pipeline.Run(ctx)
	if bar != nil {
		bar.Stop()
	}
	if err != nil {
		return err
	}

	if !cfg.Verbose {
		return nil
	}

	if report.MatchesBefore == 0 {
		o.Logger.Infof("no matches for %q in %s", cfg.Find, cfg.Input)
	}

	o.Logger.LogNewline()
	o.Logger.Stats(ctx,
		log.Stat{Label: "matches before rewrite", Value: report.MatchesBefore},
		log.Stat{Label: "serialized strings", Value: report.SerializedStrings},
		log.Stat{Label: "serialized matches", Value: report.SerializedMatches},
		log.Stat{Label: "matches after rewrite", Value: report.MatchesAfter},
		log.Stat{Label: "output", Value: report.Output},
	)

	if report.EmptiedStrings > 0 {
		o.Logger.Warningf("%d serialized strings would become empty and keep their old length", report.EmptiedStrings)
	}
	if report.UnboundedMatches > 0 {
		o.Logger.Warningf("%d serialized strings have no ; { or } before them and keep a stale length, rerun with --loose", report.UnboundedMatches)
	}

	o.Logger.Successf("wrote %d bytes in %s", report.BytesWritten, report.Duration.Round(time.Microsecond))

	return nil
}
