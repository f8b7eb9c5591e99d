// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

// Package core holds flag types shared by commands.
package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cppforlife/cobrautil"
	"github.com/spf13/pflag"
)

// PathFlag is a path flag whose leading ~ is expanded to the user home
// directory once flags are parsed.
type PathFlag struct {
	path *string
}

var _ pflag.Value = &PathFlag{}
var _ cobrautil.ResolvableFlag = &PathFlag{}

func NewPathFlag(path *string) *PathFlag { return &PathFlag{path} }

func (f *PathFlag) Set(val string) error {
	*f.path = val
	return nil
}

func (f *PathFlag) Type() string { return "path" }

func (f *PathFlag) String() string {
	if f.path == nil {
		return ""
	}
	return *f.path
}

func (f *PathFlag) Resolve() error {
	path := *f.path
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("Expanding path '%s': %w", path, err)
	}

	*f.path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	return nil
}
