// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package filetests houses a test harness for evaluating golden test files and
asserting the expected output.
*/
package filetests

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/k14s/difflib"
)

// Separator divides the sections of a test file.
const Separator = "\n+++\n\n"

// EvaluateFunc is the processing desired from the input sections of a test
// file to the final result.
type EvaluateFunc func(inputs []string) ([]byte, error)

// FileTests contain a suite of test cases, each described in a separate file.
//
// Test cases:
// - are found within the directory at "PathToTests" and have the extension "Ext"
// - are made of sections divided by `+++` and a blank line; the last section is the expected output
// - expected output starting with `ERR:` indicates that expected output is an error message
//
// For example:
//
//	platform: {a: 1}
//	+++
//
//	servers: {}
//	+++
//
//	platform:
//	  a: 1
type FileTests struct {
	PathToTests string
	Ext         string
	// Inputs is the number of sections preceding the expected output.
	Inputs   int
	EvalFunc EvaluateFunc
}

// Run enumerates each test file within FileTests.PathToTests and evaluates it
// using FileTests.EvalFunc.
func (f FileTests) Run(t *testing.T) {
	var paths []string

	err := filepath.Walk(f.PathToTests, func(walkedPath string, fi os.FileInfo, err error) error {
		if err != nil || fi.IsDir() {
			return err
		}
		if f.Ext == "" || filepath.Ext(walkedPath) == f.Ext {
			paths = append(paths, walkedPath)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to enumerate filetests: %s", err)
	}
	if len(paths) == 0 {
		t.Fatalf("Expected to find filetests in %s", f.PathToTests)
	}
	sort.Strings(paths)

	inputs := f.Inputs
	if inputs < 1 {
		inputs = 1
	}

	for _, filePath := range paths {
		filePath := filePath
		t.Run(filepath.Base(filePath), func(t *testing.T) {
			contents, err := os.ReadFile(filePath)
			if err != nil {
				t.Fatal(err)
			}

			pieces := strings.SplitN(string(contents), Separator, inputs+1)
			if len(pieces) != inputs+1 {
				t.Fatalf("Expected file %s to include %d +++ separator(s)", filePath, inputs)
			}
			expectedStr := pieces[inputs]

			result, evalErr := f.EvalFunc(pieces[:inputs])

			if strings.HasPrefix(expectedStr, "ERR:") {
				if evalErr == nil {
					t.Fatalf("Expected eval error, but did not receive it; output:\n%s", result)
				}
				expectedStr = strings.TrimPrefix(expectedStr, "ERR:")
				expectedStr = strings.TrimPrefix(expectedStr, " ")
				err = expectEquals(TrimTrailingMultilineWhitespace(evalErr.Error()), TrimTrailingMultilineWhitespace(expectedStr))
			} else {
				if evalErr != nil {
					t.Fatalf("Expected eval to succeed, but was: %s", evalErr)
				}
				err = expectEquals(string(result), expectedStr)
			}

			if err != nil {
				t.Fatalf("%s", err)
			}
		})
	}
}

func expectEquals(resultStr, expectedStr string) error {
	if resultStr != expectedStr {
		diff := difflib.PPDiff(strings.Split(expectedStr, "\n"), strings.Split(resultStr, "\n"))
		return fmt.Errorf("Not equal; diff expected...actual:\n%v\n### result %d chars:\n>>>%s<<<", diff, len(resultStr), resultStr)
	}
	return nil
}

// TrimTrailingMultilineWhitespace returns a string with trailing whitespace trimmed from every line as well
// as trimmed trailing empty lines
func TrimTrailingMultilineWhitespace(s string) string {
	var trimmedLines []string
	for _, line := range strings.Split(s, "\n") {
		trimmedLine := strings.TrimRight(line, "\t ")
		trimmedLines = append(trimmedLines, trimmedLine)
	}
	multiline := strings.Join(trimmedLines, "\n")
	return strings.TrimRight(multiline, "\n")
}
