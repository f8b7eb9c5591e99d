// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package external

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
)

type Command struct {
	Executable string
	Args       []string
	Dir        string

	// Stdout receives the output as it is produced in addition to it being
	// returned by Run.
	Stdout io.Writer
}

// String renders the command as it would be typed in a shell.
func (c Command) String() string {
	return shellquote.Join(append([]string{c.Executable}, c.Args...)...)
}

type Runner interface {
	Run(ctx context.Context, cmd Command) ([]byte, error)
}

// ExecRunner starts real processes with the current environment.
type ExecRunner struct {
	env []string
}

var _ Runner = ExecRunner{}

func NewExecRunner() ExecRunner {
	return ExecRunner{env: os.Environ()}
}

func (r ExecRunner) Run(ctx context.Context, cmd Command) ([]byte, error) {
	execCmd := exec.CommandContext(ctx, cmd.Executable, cmd.Args...)
	execCmd.Dir = cmd.Dir
	execCmd.Env = r.env

	var stdout, stderr bytes.Buffer

	execCmd.Stdout = &stdout
	if cmd.Stdout != nil {
		execCmd.Stdout = io.MultiWriter(&stdout, cmd.Stdout)
	}
	execCmd.Stderr = &stderr

	err := execCmd.Run()
	if err != nil {
		toolErr := &ToolError{
			Command:  cmd.String(),
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
			exitCode: 1,
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			toolErr.exitCode = exitErr.ExitCode()
		}
		return stdout.Bytes(), toolErr
	}

	return stdout.Bytes(), nil
}
