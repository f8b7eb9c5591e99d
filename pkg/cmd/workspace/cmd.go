// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

// Package workspace implements the "workspace" command group.
package workspace

import (
	"github.com/punchplatform/punch-punchbox-app/pkg/workspace"
	"github.com/spf13/cobra"
)

func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Set up your workspace",
		Long: `Set up your workspace.

The workspace is a folder separate from the punchbox and the deployer holding
your configuration files. From there you start your VMs and deploy your punch.

The default workspace is ~/` + workspace.DefaultDirName + `.`,
	}
	cmd.AddCommand(NewCreateCmd(NewCreateOptions()))
	cmd.AddCommand(NewBuildCmd(NewBuildOptions()))
	return cmd
}
