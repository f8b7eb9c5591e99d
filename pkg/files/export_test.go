// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import "io"

// SetStdinForTesting replaces standard input until the returned func is called.
func SetStdinForTesting(r io.Reader) func() {
	stdinLock.Lock()
	prev := stdin
	stdin, stdinRead = r, false
	stdinLock.Unlock()

	return func() {
		stdinLock.Lock()
		stdin, stdinRead = prev, false
		stdinLock.Unlock()
	}
}
