// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package files provides primitives for loading data from file or file-like
Source's (local paths, standard input, in-memory bytes) and for writing
generated artifacts either to standard output or to filesystem files.

Artifacts are always fully rendered before being written and files are
replaced atomically, so a failed command never leaves a truncated artifact
behind.
*/
package files
