// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"context"
	"fmt"

	"github.com/punchplatform/punch-punchbox-app/pkg/blueprint"
	cmdcore "github.com/punchplatform/punch-punchbox-app/pkg/cmd/core"
	"github.com/punchplatform/punch-punchbox-app/pkg/cmd/generate"
	"github.com/punchplatform/punch-punchbox-app/pkg/cmd/ui"
	"github.com/punchplatform/punch-punchbox-app/pkg/documents"
	"github.com/punchplatform/punch-punchbox-app/pkg/external"
	"github.com/punchplatform/punch-punchbox-app/pkg/files"
	"github.com/punchplatform/punch-punchbox-app/pkg/workspace"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type BuildOptions struct {
	Workspace string
	Yes       bool
	Debug     bool

	Runner   external.Runner
	Identity *blueprint.Identity
}

func NewBuildOptions() *BuildOptions {
	return &BuildOptions{Workspace: workspace.DefaultRoot()}
}

func NewBuildCmd(o *BuildOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build your workspace",
		Long: `Build your workspace.

Generates the Vagrantfile (when the settings have a vagrant section), the
blueprint, the deployment settings and the resolver from the workspace
configuration. Every step asks for confirmation unless --yes is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error { return o.Run(cmd.Context()) },
	}
	cmd.Flags().Var(cmdcore.NewPathFlag(&o.Workspace), "workspace", "Workspace folder")
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false, "Generate every file without asking")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	return cmd
}

func (o *BuildOptions) Run(ctx context.Context) error {
	return o.RunWithUI(ctx, ui.NewTTY(o.Debug))
}

func (o *BuildOptions) RunWithUI(ctx context.Context, ui ui.UI) error {
	fs := afero.NewOsFs()

	conf, err := workspace.LoadConfig(fs, workspace.NewHierarchy(o.Workspace).ConfigFile)
	if err != nil {
		return err
	}

	confirm := func(question string) bool {
		return o.Yes || ui.AskForConfirmation(question)
	}

	hasVagrant, err := o.hasVagrantSection(conf)
	if err != nil {
		return err
	}

	if hasVagrant && confirm(fmt.Sprintf("Generate vagrantfile %s ?", conf.Vagrant.Vagrantfile)) {
		vagrantOpts := &generate.VagrantfileOptions{
			Settings: conf.Punch.UserSettings,
			Topology: conf.Punch.UserTopology,
			Template: conf.Vagrant.Template,
			Output:   conf.Vagrant.Vagrantfile,
		}
		o.echo(ui, "vagrantfile", "--settings", vagrantOpts.Settings, "--topology", vagrantOpts.Topology,
			"--template", vagrantOpts.Template, "--output", vagrantOpts.Output)

		err := vagrantOpts.RunWithUI(ui)
		if err != nil {
			return err
		}
	}

	if confirm(fmt.Sprintf("Generate platform blueprint %s ?", conf.Punch.Blueprint)) {
		blueprintOpts := generate.NewBlueprintOptions()
		blueprintOpts.Deployer = conf.Env.Deployer
		blueprintOpts.Topology = conf.Punch.UserTopology
		blueprintOpts.Settings = conf.Punch.UserSettings
		blueprintOpts.Output = conf.Punch.Blueprint
		blueprintOpts.Runner = o.Runner
		blueprintOpts.Identity = o.Identity

		o.echo(ui, "blueprint", "--deployer", blueprintOpts.Deployer, "--topology", blueprintOpts.Topology,
			"--settings", blueprintOpts.Settings, "--output", blueprintOpts.Output)

		err := blueprintOpts.RunWithUI(ctx, ui)
		if err != nil {
			return err
		}
	}

	if confirm(fmt.Sprintf("Generate deployment settings %s ?", conf.Punch.DeploymentSettings)) {
		settingsOpts := &generate.DeploymentSettingsOptions{
			Blueprint: conf.Punch.Blueprint,
			Template:  conf.Punch.DeploymentSettingsTemplate,
			Output:    conf.Punch.DeploymentSettings,
		}
		o.echo(ui, "deployment-settings", "--blueprint", settingsOpts.Blueprint,
			"--template", settingsOpts.Template, "--output", settingsOpts.Output)

		err := settingsOpts.RunWithUI(ui)
		if err != nil {
			return err
		}

		err = o.convertLegacySettings(ui, fs, conf)
		if err != nil {
			return err
		}
	}

	hasResolver, err := afero.Exists(fs, conf.Punch.ResolvConfTemplate)
	if err != nil {
		return fmt.Errorf("Checking resolver template: %w", err)
	}

	if hasResolver && confirm(fmt.Sprintf("Generate resolver %s ?", conf.Punch.ResolvConf)) {
		resolverOpts := &generate.ResolverOptions{
			Blueprint: conf.Punch.Blueprint,
			Template:  conf.Punch.ResolvConfTemplate,
			Output:    conf.Punch.ResolvConf,
		}
		o.echo(ui, "resolver", "--blueprint", resolverOpts.Blueprint,
			"--template", resolverOpts.Template, "--output", resolverOpts.Output)

		err := resolverOpts.RunWithUI(ui)
		if err != nil {
			return err
		}
	}

	ui.Successf("Workspace built\n")
	return nil
}

func (o *BuildOptions) hasVagrantSection(conf *workspace.Config) (bool, error) {
	src, err := files.NewSource(conf.Punch.UserSettings)
	if err != nil {
		return false, err
	}
	settings, err := documents.LoadTree(src)
	if err != nil {
		return false, err
	}
	_, found := settings["vagrant"]
	return found, nil
}

func (o *BuildOptions) convertLegacySettings(ui ui.UI, fs afero.Fs, conf *workspace.Config) error {
	ui.Successf("  backward compatibility generation: convert %s into %s\n",
		conf.Punch.DeploymentSettings, conf.Punch.PunchplatformDeploymentSettings)

	data, err := afero.ReadFile(fs, conf.Punch.DeploymentSettings)
	if err != nil {
		return fmt.Errorf("Reading deployment settings: %w", err)
	}

	legacy, err := workspace.ConvertLegacySettings(data)
	if err != nil {
		return err
	}

	return files.NewOutput(conf.Punch.PunchplatformDeploymentSettings, nil).Write(legacy)
}

// echo prints the generate command equivalent to the next step.
func (o *BuildOptions) echo(ui ui.UI, subcmd string, args ...string) {
	cmd := external.Command{Executable: "punchbox", Args: append([]string{"generate", subcmd}, args...)}
	ui.Successf("  %s\n", cmd)
}
