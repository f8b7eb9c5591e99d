// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package generate

import (
	"github.com/punchplatform/punch-punchbox-app/pkg/cmd/ui"
	"github.com/spf13/cobra"
)

type DeploymentSettingsOptions struct {
	Blueprint string
	Template  string
	Output    string
	Debug     bool
}

func NewDeploymentSettingsOptions() *DeploymentSettingsOptions {
	return &DeploymentSettingsOptions{}
}

func NewDeploymentSettingsCmd(o *DeploymentSettingsOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deployment-settings",
		Short: "Generate the deployment settings",
		Long: `Generate the punch deployment settings file.

That file is the input of the punch deployer. It holds the complete settings of
every component and is rendered from a template and the blueprint generated
with "generate blueprint".`,
		RunE: func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVar(&o.Blueprint, "blueprint", "", "Blueprint generated by 'generate blueprint'")
	cmd.Flags().StringVar(&o.Template, "template", "",
		"Deployment settings template (defaults to $"+PunchboxDirEnv+"/templates/deployment.settings.tpl)")
	cmd.Flags().StringVarP(&o.Output, "output", "o", "", "Output file (stdout if not provided)")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	cmd.MarkFlagRequired("blueprint")
	return cmd
}

func (o *DeploymentSettingsOptions) Run() error {
	return o.RunWithUI(ui.NewTTY(o.Debug))
}

func (o *DeploymentSettingsOptions) RunWithUI(ui ui.UI) error {
	template := o.Template
	if template == "" {
		var err error
		template, err = defaultTemplate("deployment settings", "templates/deployment.settings.tpl")
		if err != nil {
			return err
		}
		ui.Warnf("Using default deployment settings template %s\n", template)
	}

	return renderBlueprint(o.Blueprint, template, o.Output, ui)
}
