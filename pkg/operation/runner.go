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
	"gitlab.com/tozd/go/errors"
)

// 🚦 Stage identifies a step of the pipeline
type Stage int

const (
	StageInit Stage = iota
	StageReserialize
	StageRewrite
	StageFinish
)

// String returns a string representation of Stage
func (s Stage) String() string {
	switch s {
	case StageInit:
		return "init"
	case StageReserialize:
		return "reserialize"
	case StageRewrite:
		return "rewrite"
	case StageFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// 🎯 Operation is a unit of work run by the runner
type Operation interface {
	Execute(ctx context.Context) error
}

// OperationFunc adapts a function to Operation.
type OperationFunc func(ctx context.Context) error

// Execute implements Operation.
func (f OperationFunc) Execute(ctx context.Context) error {
	return f(ctx)
}

// 📋 Step pairs a stage with the operation that implements it
type Step struct {
	Stage Stage
	Op    Operation
}

// 🏃 OperationRunner executes steps one after another
type OperationRunner struct {
	logger *zerolog.Logger
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger) *OperationRunner {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &OperationRunner{
		logger: logger,
	}
}

// 🏃 Run executes steps in order and stops at the first error
func (r *OperationRunner) Run(ctx context.Context, steps ...Step) error {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("operation cancelled before %s: %w", step.Stage, err)
		}

		start := time.Now()
		r.logger.Debug().Str("stage", step.Stage.String()).Msg("entering stage")

		if err := step.Op.Execute(ctx); err != nil {
			r.logger.Debug().Str("stage", step.Stage.String()).Err(err).Msg("stage failed")
			return errors.Errorf("running %s stage: %w", step.Stage, err)
		}

		r.logger.Debug().
			Str("stage", step.Stage.String()).
			Dur("elapsed", time.Since(start)).
			Msg("stage complete")
	}
	return nil
}
