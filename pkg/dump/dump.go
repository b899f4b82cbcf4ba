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

// Package dump reads and writes whole SQL dump files.
package dump

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrMissingInput is returned when the input is absent, not a regular file, or empty.
var ErrMissingInput = errors.Base("missing input")

// 💾 FileManager handles the dump file I/O of a run
type FileManager interface {
	// ReadInput reads the whole input dump
	ReadInput(ctx context.Context, path string) (string, error)

	// WriteOutput writes the whole output dump in one step and returns the bytes written
	WriteOutput(ctx context.Context, path string, content string) (int, error)
}

// 🔧 Manager implements FileManager on the local file system
type Manager struct {
	mode os.FileMode
}

// 🏭 New creates a new dump manager
func New() *Manager {
	return &Manager{mode: 0644}
}

// 📥 ReadInput implements FileManager.ReadInput
func (m *Manager) ReadInput(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Errorf("%w: %s does not exist", ErrMissingInput, path)
		}
		return "", errors.Errorf("checking input: %w", err)
	}

	if !info.Mode().IsRegular() {
		return "", errors.Errorf("%w: %s is not a regular file", ErrMissingInput, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Errorf("reading input: %w", err)
	}

	if len(content) == 0 {
		return "", errors.Errorf("%w: %s is empty", ErrMissingInput, path)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(content)).Msg("read input dump")

	return string(content), nil
}

// 📤 WriteOutput implements FileManager.WriteOutput
func (m *Manager) WriteOutput(ctx context.Context, path string, content string) (int, error) {
	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, errors.Errorf("creating parent directories: %w", err)
	}

	if err := m.WriteFileAtomic(ctx, path, []byte(content)); err != nil {
		return 0, err
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(content)).Msg("wrote output dump")

	return len(content), nil
}

// WriteFileAtomic writes content to a temp file in the directory of path and
// renames it into place. The temp file is removed on any failure.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tempPath)
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Chmod(m.mode); err != nil {
		return errors.Errorf("setting temp file mode: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return errors.Errorf("closing temp file: %w", err)
	}

	if err = os.Rename(tempPath, path); err != nil {
		return errors.Errorf("renaming temp file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("temp", tempPath).Str("path", path).Msg("renamed temp file into place")

	return nil
}
