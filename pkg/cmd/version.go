// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/punchplatform/punch-punchbox-app/pkg/version"
	"github.com/spf13/cobra"
)

type VersionOptions struct {
	out io.Writer
}

func NewVersionOptions() *VersionOptions {
	return &VersionOptions{out: os.Stdout}
}

func NewVersionCmd(o *VersionOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	return cmd
}

func (o *VersionOptions) Run() error {
	fmt.Fprintf(o.out, "punchbox version %s\n", version.Version)

	return nil
}
