// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/cppforlife/cobrautil"
	"github.com/punchplatform/punch-punchbox-app/pkg/cmd/deploy"
	"github.com/punchplatform/punch-punchbox-app/pkg/cmd/generate"
	"github.com/punchplatform/punch-punchbox-app/pkg/cmd/workspace"
	"github.com/punchplatform/punch-punchbox-app/pkg/version"
	"github.com/spf13/cobra"
)

type PunchboxOptions struct{}

func NewDefaultPunchboxOptions() *PunchboxOptions {
	return &PunchboxOptions{}
}

func NewDefaultPunchboxCmd() *cobra.Command {
	return NewPunchboxCmd(NewDefaultPunchboxOptions())
}

func NewPunchboxCmd(_ *PunchboxOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "punchbox",
		Version: version.Version,
		Short:   "punchbox generates the configuration of a punch platform",
		Long: `punchbox generates the configuration of a punch platform.

It merges your settings and topology into a blueprint, renders the deployment
settings, the resolver and the Vagrantfile from it, and keeps all of them in a
workspace.`,
	}

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	// Disable docs header
	cmd.DisableAutoGenTag = true

	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))
	cmd.AddCommand(generate.NewCmd())
	cmd.AddCommand(workspace.NewCmd())
	cmd.AddCommand(deploy.NewCmd())

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.DisallowExtraArgs, cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}
