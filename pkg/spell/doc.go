// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package spell provides the ability to suggest an exact spelling of a word.

In the context of punchbox, this is useful for errors that involve misspelled
names, such as an unknown profile.
*/
package spell
