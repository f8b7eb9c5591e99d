// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Source is an input document. Name is the base name used to pick a
// decoder from its extension.
type Source interface {
	Description() string
	Name() string
	Bytes() ([]byte, error)
}

var (
	_ Source = BytesSource{}
	_ Source = &LocalSource{}
	_ Source = StdinSource{}
)

// StdinPath is the command line path standing for standard input.
const StdinPath = "-"

// NewSource maps a command line path onto a Source. Local files must exist
// and are read at most once.
func NewSource(path string) (Source, error) {
	if path == StdinPath {
		return StdinSource{}, nil
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("Checking file '%s': %w", path, err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("Expected file '%s' to not be a directory", path)
	}

	return &LocalSource{path: path}, nil
}

type BytesSource struct {
	name string
	data []byte
}

func NewBytesSource(name string, data []byte) BytesSource { return BytesSource{name, data} }

func (s BytesSource) Description() string    { return s.name }
func (s BytesSource) Name() string           { return filepath.Base(s.name) }
func (s BytesSource) Bytes() ([]byte, error) { return s.data, nil }

type LocalSource struct {
	path string

	once sync.Once
	data []byte
	err  error
}

func (s *LocalSource) Description() string { return fmt.Sprintf("file '%s'", s.path) }
func (s *LocalSource) Name() string        { return filepath.Base(s.path) }

func (s *LocalSource) Bytes() ([]byte, error) {
	s.once.Do(func() {
		s.data, s.err = os.ReadFile(s.path)
		if s.err != nil {
			s.err = fmt.Errorf("Reading file '%s': %w", s.path, s.err)
		}
	})
	return s.data, s.err
}

// ErrStdinConsumed is returned when more than one source reads standard input.
var ErrStdinConsumed = errors.New("Standard input has already been read, has the '-' argument been used in more than one flag?")

var (
	stdin     io.Reader = os.Stdin
	stdinLock sync.Mutex
	stdinRead bool
)

// StdinSource reads standard input, which is always decoded as YAML.
type StdinSource struct{}

func (StdinSource) Description() string { return "standard input" }
func (StdinSource) Name() string        { return "stdin.yml" }

func (StdinSource) Bytes() ([]byte, error) {
	stdinLock.Lock()
	defer stdinLock.Unlock()

	if stdinRead {
		return nil, ErrStdinConsumed
	}
	stdinRead = true

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("Reading standard input: %w", err)
	}
	return data, nil
}
