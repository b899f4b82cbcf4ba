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
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// hclConfig mirrors Config as HCL attributes. Verbose stays an expression so
// true, 1 and "TRUE" follow the same rules as the flag.
type hclConfig struct {
	Input      string         `hcl:"input,optional"`
	Output     string         `hcl:"output,optional"`
	Find       string         `hcl:"find,optional"`
	Replace    *string        `hcl:"replace,optional"`
	Verbose    hcl.Expression `hcl:"verbose,optional"`
	IgnoreCase bool           `hcl:"ignore_case,optional"`
	Loose      bool           `hcl:"loose,optional"`
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envObject(os.Environ()),
		},
	}

	var raw hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &raw)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	verbose, err := boolishExpr(raw.Verbose, evalCtx)
	if err != nil {
		return nil, errors.Errorf("decoding HCL verbose: %w", err)
	}

	return &Config{
		Input:      raw.Input,
		Output:     raw.Output,
		Find:       raw.Find,
		Replace:    raw.Replace,
		Verbose:    verbose,
		IgnoreCase: raw.IgnoreCase,
		Loose:      raw.Loose,
	}, nil
}

// boolishExpr evaluates expr and applies ParseBoolish to its string form.
// A missing or null value is false.
func boolishExpr(expr hcl.Expression, evalCtx *hcl.EvalContext) (Boolish, error) {
	if expr == nil {
		return false, nil
	}

	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return false, errors.Errorf("%s", diags.Error())
	}
	if val.IsNull() || !val.IsKnown() {
		return false, nil
	}

	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return false, errors.Errorf("want a bool, number or string: %s", err.Error())
	}
	return Boolish(ParseBoolish(str.AsString())), nil
}

// envObject exposes KEY=VALUE pairs as a cty object for ${env.KEY}.
func envObject(environ []string) cty.Value {
	vals := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vals[k] = cty.StringVal(v)
	}
	if len(vals) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vals)
}
