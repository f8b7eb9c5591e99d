// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

// Package deploy implements the "deploy" command group.
package deploy

import (
	"context"

	"github.com/punchplatform/punch-punchbox-app/pkg/audit"
	cmdcore "github.com/punchplatform/punch-punchbox-app/pkg/cmd/core"
	"github.com/punchplatform/punch-punchbox-app/pkg/cmd/ui"
	"github.com/punchplatform/punch-punchbox-app/pkg/external"
	"github.com/punchplatform/punch-punchbox-app/pkg/workspace"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Commands required to deploy your punch",
	}
	cmd.AddCommand(NewAuditCmd(NewAuditOptions()))
	return cmd
}

type AuditOptions struct {
	Workspace string
	Verbose   bool
	Debug     bool

	Runner external.Runner
}

func NewAuditOptions() *AuditOptions {
	return &AuditOptions{Workspace: workspace.DefaultRoot()}
}

func NewAuditCmd(o *AuditOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit your configuration before going any further",
		RunE:  func(cmd *cobra.Command, _ []string) error { return o.Run(cmd.Context()) },
	}
	cmd.Flags().Var(cmdcore.NewPathFlag(&o.Workspace), "workspace", "Workspace folder")
	cmd.Flags().BoolVarP(&o.Verbose, "verbose", "v", false, "Print the audit command")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	return cmd
}

func (o *AuditOptions) Run(ctx context.Context) error {
	return o.RunWithUI(ctx, ui.NewTTY(o.Debug))
}

func (o *AuditOptions) RunWithUI(ctx context.Context, ui ui.UI) error {
	conf, err := workspace.LoadConfig(afero.NewOsFs(), workspace.NewHierarchy(o.Workspace).ConfigFile)
	if err != nil {
		return err
	}

	runner := o.Runner
	if runner == nil {
		runner = external.NewExecRunner()
	}

	auditor := audit.NewScriptRunner(conf.Env.Deployer, runner, ui.Stdout())
	settings := conf.Punch.DeploymentSettings

	if o.Verbose {
		ui.Printf("audit command:\n %s\n", auditor.Command(settings))
	}

	err = auditor.Audit(ctx, settings)
	if err != nil {
		ui.Warnf("Your generated settings %s are incorrect\n", settings)
		return err
	}

	ui.Successf("Your generated settings %s are correct\n", settings)
	return nil
}
