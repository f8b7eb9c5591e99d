// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package external

import (
	"errors"
	"fmt"
)

// ToolError is returned when an external tool cannot be started or exits
// with a non-zero status.
type ToolError struct {
	Command string
	Stderr  string
	Err     error

	exitCode int
}

func NewToolError(command string, exitCode int, err error) *ToolError {
	return &ToolError{Command: command, Err: err, exitCode: exitCode}
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("Running '%s': %s", e.Command, e.Err)
	if e.Stderr != "" {
		msg += "\nstderr:\n" + e.Stderr
	}
	return msg
}

func (e *ToolError) Unwrap() error { return e.Err }

// ExitCode is the process exit status, or 1 when the process did not run.
func (e *ToolError) ExitCode() int {
	if e.exitCode <= 0 {
		return 1
	}
	return e.exitCode
}

// ExitCode finds the exit status to propagate for err.
func ExitCode(err error) int {
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		return toolErr.ExitCode()
	}
	return 1
}
