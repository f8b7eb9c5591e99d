// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"errors"

	cmdcore "github.com/punchplatform/punch-punchbox-app/pkg/cmd/core"
	"github.com/punchplatform/punch-punchbox-app/pkg/cmd/ui"
	"github.com/punchplatform/punch-punchbox-app/pkg/workspace"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type CreateOptions struct {
	Deployer  string
	Workspace string
	Profile   string
	Debug     bool

	// SourceDir is the punchbox install directory. Defaults to workspace.InstallDir().
	SourceDir string
}

func NewCreateOptions() *CreateOptions {
	return &CreateOptions{
		Workspace: workspace.DefaultRoot(),
		Profile:   workspace.DefaultProfile,
	}
}

func NewCreateCmd(o *CreateOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a punchbox workspace",
		Long: `Create a punchbox workspace.

The workspace receives the settings and topology of the selected profile and
the deployment templates. Keep it under version control if it lives long.`,
		RunE: func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().Var(cmdcore.NewPathFlag(&o.Deployer), "deployer", "Path to the punch deployer folder")
	cmd.Flags().Var(cmdcore.NewPathFlag(&o.Workspace), "workspace", "Workspace folder")
	cmd.Flags().StringVar(&o.Profile, "profile", o.Profile, "Platform profile (standalone, sample, ...)")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	cmd.MarkFlagRequired("deployer")
	return cmd
}

func (o *CreateOptions) Run() error {
	return o.RunWithUI(ui.NewTTY(o.Debug))
}

func (o *CreateOptions) RunWithUI(ui ui.UI) error {
	sourceDir := o.SourceDir
	if sourceDir == "" {
		var err error
		sourceDir, err = workspace.InstallDir()
		if err != nil {
			return err
		}
	}
	ui.Debugf("workspace: using punchbox install directory %s\n", sourceDir)

	conf, err := workspace.Create(afero.NewOsFs(), workspace.CreateOptions{
		Deployer: o.Deployer,
		Root:     o.Workspace,
		Source:   workspace.NewSourceHierarchy(sourceDir, o.Profile),
		Confirm:  ui.AskForConfirmation,
	})
	if err != nil {
		if errors.Is(err, workspace.ErrDeclined) {
			ui.Warnf("Workspace %s left unchanged\n", o.Workspace)
			return nil
		}
		return err
	}

	ui.Successf("Workspace created\n")
	ui.Printf("Run 'source %s' to use the deployer of this workspace\n",
		workspace.NewHierarchy(conf.Env.Workspace).ActivateFile)
	return nil
}
