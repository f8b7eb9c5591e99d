// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// Output is the destination of one generated artifact.
type Output struct {
	path   string
	stdout io.Writer
}

// NewOutput writes to path, or to stdout when path is empty.
func NewOutput(path string, stdout io.Writer) Output {
	if stdout == nil {
		stdout = os.Stdout
	}
	return Output{path, stdout}
}

func (o Output) IsStdout() bool { return o.path == "" }
func (o Output) Path() string   { return o.path }

func (o Output) Description() string {
	if o.IsStdout() {
		return "standard output"
	}
	return fmt.Sprintf("file '%s'", o.path)
}

// Write replaces the destination with data in one step.
func (o Output) Write(data []byte) error {
	if o.IsStdout() {
		_, err := o.stdout.Write(data)
		return err
	}

	err := os.MkdirAll(filepath.Dir(o.path), 0755)
	if err != nil {
		return fmt.Errorf("Creating directory for '%s': %w", o.path, err)
	}

	err = atomic.WriteFile(o.path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("Writing file '%s': %w", o.path, err)
	}
	return nil
}
