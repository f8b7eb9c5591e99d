// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"io"
)

type UI interface {
	Printf(string, ...interface{})
	Successf(string, ...interface{})
	Debugf(string, ...interface{})
	Warnf(str string, args ...interface{})
	DebugWriter() io.Writer

	// Stdout receives generated artifacts that are not written to a file.
	Stdout() io.Writer

	// AskForConfirmation prints question and reports whether the user accepted.
	AskForConfirmation(question string) bool
}
