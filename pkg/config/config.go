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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrUnsupportedFormat is returned when no parser handles the config file.
var ErrUnsupportedFormat = errors.Base("unsupported config format")

// ErrInvalidConfig is returned when a config file decodes but holds a value the run cannot use.
var ErrInvalidConfig = errors.Base("invalid config")

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the options of one run
type Config struct {
	Input      string  `json:"input,omitempty" yaml:"input,omitempty"`
	Output     string  `json:"output,omitempty" yaml:"output,omitempty"`
	Find       string  `json:"find,omitempty" yaml:"find,omitempty"`
	Replace    *string `json:"replace,omitempty" yaml:"replace,omitempty"` // nil when not given, empty is a valid replacement
	Verbose    Boolish `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	IgnoreCase bool    `json:"ignore_case,omitempty" yaml:"ignore_case,omitempty"`
	Loose      bool    `json:"loose,omitempty" yaml:"loose,omitempty"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	// Clean up paths
	if cfg.Input != "" {
		cfg.Input = filepath.Clean(cfg.Input)
	}
	if cfg.Output != "" {
		cfg.Output = filepath.Clean(cfg.Output)
	}

	return nil
}

// ✅ Complete reports whether input, output, find, and replace are all set
func (cfg *Config) Complete() bool {
	return cfg.Input != "" && cfg.Output != "" && cfg.Find != "" && cfg.Replace != nil
}

// ReplaceText returns the replacement, empty when unset.
func (cfg *Config) ReplaceText() string {
	if cfg.Replace == nil {
		return ""
	}
	return *cfg.Replace
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s -> %s (%q => %q)", cfg.Input, cfg.Output, cfg.Find, cfg.ReplaceText())
}
