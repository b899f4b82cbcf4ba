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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	statIndent = 2  // spaces to indent stat lines
	labelWidth = 24 // width for stat labels
)

// 📊 Stat is one labelled value of a run summary
type Stat struct {
	Label string
	Value any
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger printing to console and mirroring to zlog
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 📝 formatStat formats a stat line for display
func (l *Logger) formatStat(s Stat) string {
	valueColor := color.FgCyan
	switch s.Value.(type) {
	case int, int64:
		valueColor = color.FgYellow
	}

	return fmt.Sprintf("%s%s %s",
		fmt.Sprintf("%*s", statIndent, ""),
		color.New(color.Faint).Sprint(fmt.Sprintf("%-*s", labelWidth, s.Label+":")),
		color.New(valueColor).Sprint(s.Value))
}

// 📝 Stats prints each stat on its own line
func (l *Logger) Stats(ctx context.Context, stats ...Stat) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ev := l.zlog.Debug()
	for _, s := range stats {
		fmt.Fprintln(l.console, l.formatStat(s))
		ev = ev.Interface(s.Label, s.Value)
	}
	ev.Msg("stats")
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("reserialize")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}

// ⏳ Progress records patch progress in the structured log only
func (l *Logger) Progress(current, total int) {
	l.zlog.Debug().
		Int("processed", current).
		Int("total", total).
		Msg(FormatProgress(current, total))
}

// FormatProgress formats a progress message with percentage
func FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}
