// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package generate

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/punchplatform/punch-punchbox-app/pkg/blueprint"
	cmdcore "github.com/punchplatform/punch-punchbox-app/pkg/cmd/core"
	"github.com/punchplatform/punch-punchbox-app/pkg/cmd/ui"
	"github.com/punchplatform/punch-punchbox-app/pkg/documents"
	"github.com/punchplatform/punch-punchbox-app/pkg/experiments"
	"github.com/punchplatform/punch-punchbox-app/pkg/external"
	"github.com/punchplatform/punch-punchbox-app/pkg/files"
	"github.com/punchplatform/punch-punchbox-app/pkg/versions"
	"github.com/spf13/cobra"
)

const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

type BlueprintOptions struct {
	Deployer string
	Topology string
	Settings string
	Output   string
	Format   string
	Debug    bool

	// Runner starts the deployer scripts. Defaults to real processes.
	Runner external.Runner
	// Identity replaces the user placeholders. Defaults to the current user.
	Identity *blueprint.Identity
}

func NewBlueprintOptions() *BlueprintOptions {
	return &BlueprintOptions{Format: FormatYAML}
}

func NewBlueprintCmd(o *BlueprintOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blueprint",
		Short: "Generate the platform blueprint",
		Long: `Generate the punch blueprint configuration file.

The blueprint merges the settings and the topology into one document: the
settings of every service, per cluster and per server, plus the users to
create. Deployment and resolver files are rendered from it.`,
		RunE: func(cmd *cobra.Command, _ []string) error { return o.Run(cmd.Context()) },
	}
	cmd.Flags().Var(cmdcore.NewPathFlag(&o.Deployer), "deployer", "Path to the punch deployer folder")
	cmd.Flags().StringVar(&o.Topology, "topology", "", "Punch topology file (- for stdin)")
	cmd.Flags().StringVar(&o.Settings, "settings", "", "Punch settings file (- for stdin)")
	cmd.Flags().StringVarP(&o.Output, "output", "o", "", "Blueprint destination (stdout if not provided)")
	cmd.Flags().StringVar(&o.Format, "format", o.Format, "Blueprint format (yaml, json)")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	cmd.MarkFlagRequired("deployer")
	cmd.MarkFlagRequired("topology")
	cmd.MarkFlagRequired("settings")
	return cmd
}

func (o *BlueprintOptions) Run(ctx context.Context) error {
	return o.RunWithUI(ctx, ui.NewTTY(o.Debug))
}

func (o *BlueprintOptions) RunWithUI(ctx context.Context, ui ui.UI) error {
	t1 := time.Now()

	defer func() {
		ui.Debugf("blueprint: %s\n", time.Now().Sub(t1))
	}()

	if o.Format != FormatYAML && o.Format != FormatJSON {
		return fmt.Errorf("Unknown blueprint format '%s' (expected %s or %s)", o.Format, FormatYAML, FormatJSON)
	}

	for _, e := range experiments.Enabled() {
		ui.Debugf("blueprint: experiment '%s' enabled (%s)\n", e.Name, e.Description)
	}
	for _, name := range experiments.Unknown() {
		ui.Warnf("Ignoring unknown experiment '%s' set in %s\n", name, experiments.Env)
	}

	info, err := os.Stat(o.Deployer)
	if err != nil {
		return fmt.Errorf("Checking deployer directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("Expected deployer '%s' to be a directory", o.Deployer)
	}

	settingsSrc, err := files.NewSource(o.Settings)
	if err != nil {
		return err
	}
	topologySrc, err := files.NewSource(o.Topology)
	if err != nil {
		return err
	}

	settings, err := documents.LoadSettings(settingsSrc)
	if err != nil {
		return err
	}
	topology, err := documents.LoadTopology(topologySrc)
	if err != nil {
		return err
	}

	runner := o.Runner
	if runner == nil {
		runner = external.NewExecRunner()
	}

	bp, err := blueprint.Compute(ctx, settings, topology, blueprint.Options{
		Resolver: versions.NewScriptResolver(o.Deployer, runner),
	})
	if err != nil {
		return err
	}

	var data []byte

	switch o.Format {
	case FormatJSON:
		data, err = bp.AsJSON()
	default:
		data, err = bp.AsYAML()
	}
	if err != nil {
		return fmt.Errorf("Serializing blueprint: %w", err)
	}

	identity := o.Identity
	if identity == nil {
		current, err := blueprint.CurrentIdentity()
		if err != nil {
			return err
		}
		identity = &current
	}
	ui.Debugf("blueprint: substituting user '%s' and group '%s'\n", identity.User, identity.Group)

	out := files.NewOutput(o.Output, ui.Stdout())

	err = out.Write(identity.Substitute(data))
	if err != nil {
		return err
	}

	ui.Debugf("blueprint: written to %s\n", out.Description())
	return nil
}
