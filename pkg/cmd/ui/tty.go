// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/cppforlife/go-cli-ui/ui"
	"github.com/fatih/color"
	"golang.org/x/term"
)

type TTY struct {
	debug   bool
	stdout  io.Writer
	stderr  io.Writer
	confirm func() bool
}

var _ UI = TTY{}

func NewTTY(debug bool) TTY {
	return TTY{debug, os.Stdout, os.Stderr, askTerminal}
}

func (t TTY) Printf(str string, args ...interface{}) {
	fmt.Fprintf(t.stdout, str, args...)
}

func (t TTY) Successf(str string, args ...interface{}) {
	fmt.Fprint(t.stdout, color.New(color.FgGreen).Sprintf(str, args...))
}

func (t TTY) Warnf(str string, args ...interface{}) {
	fmt.Fprint(t.stderr, color.New(color.FgYellow).Sprintf(str, args...))
}

func (t TTY) Debugf(str string, args ...interface{}) {
	if t.debug {
		fmt.Fprintf(t.stderr, str, args...)
	}
}

func (t TTY) DebugWriter() io.Writer {
	if t.debug {
		return t.stderr
	}
	return noopWriter{}
}

func (t TTY) Stdout() io.Writer { return t.stdout }

func (t TTY) AskForConfirmation(question string) bool {
	fmt.Fprintf(t.stderr, "%s\n", question)
	return t.confirm()
}

// askTerminal prompts on the terminal. Without a terminal nothing is confirmed.
func askTerminal() bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintf(os.Stderr, "Standard input is not a terminal, answering no (use --yes to confirm)\n")
		return false
	}
	return ui.NewConfUI(ui.NewNoopLogger()).AskForConfirmation() == nil
}

type noopWriter struct{}

var _ io.Writer = noopWriter{}

func (w noopWriter) Write(data []byte) (int, error) { return len(data), nil }

// Used for testing whether TTY writes correct output to stdout/stderr.
// Every confirmation gets the answer given by answer.
func NewCustomWriterTTY(debug bool, stdout, stderr io.Writer, answer bool) TTY {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return TTY{debug, stdout, stderr, func() bool { return answer }}
}
