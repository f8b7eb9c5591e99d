// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package generate

import (
	"fmt"

	"github.com/punchplatform/punch-punchbox-app/pkg/cmd/ui"
	"github.com/punchplatform/punch-punchbox-app/pkg/documents"
	"github.com/punchplatform/punch-punchbox-app/pkg/files"
	"github.com/spf13/cobra"
)

type VagrantfileOptions struct {
	Settings string
	Topology string
	Template string
	Output   string
	Debug    bool
}

func NewVagrantfileOptions() *VagrantfileOptions {
	return &VagrantfileOptions{}
}

func NewVagrantfileCmd(o *VagrantfileOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vagrantfile",
		Short: "Generate a Vagrantfile",
		Long: `Generate a Vagrantfile from the vagrant section of the settings and the topology.

The default template is vagrant/Vagrantfile.tpl in the punchbox pointed at by
$` + PunchboxDirEnv + `.`,
		RunE: func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVar(&o.Settings, "settings", "", "Punch settings file holding a vagrant section")
	cmd.Flags().StringVar(&o.Topology, "topology", "", "Punch topology file")
	cmd.Flags().StringVar(&o.Template, "template", "", "Vagrant template file")
	cmd.Flags().StringVarP(&o.Output, "output", "o", "", "Output file (stdout if not provided)")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	cmd.MarkFlagRequired("settings")
	cmd.MarkFlagRequired("topology")
	return cmd
}

func (o *VagrantfileOptions) Run() error {
	return o.RunWithUI(ui.NewTTY(o.Debug))
}

// RunWithUI renders the template with the keys of the vagrant settings and
// of the topology side by side. Topology keys win on collision.
func (o *VagrantfileOptions) RunWithUI(ui ui.UI) error {
	template := o.Template
	if template == "" {
		var err error
		template, err = defaultTemplate("vagrant", "vagrant/Vagrantfile.tpl")
		if err != nil {
			return err
		}
		ui.Warnf("Using default vagrant template %s\n", template)
	}

	settingsSrc, err := files.NewSource(o.Settings)
	if err != nil {
		return err
	}
	topologySrc, err := files.NewSource(o.Topology)
	if err != nil {
		return err
	}

	settings, err := documents.LoadTree(settingsSrc)
	if err != nil {
		return err
	}
	topology, err := documents.LoadTree(topologySrc)
	if err != nil {
		return err
	}

	vagrant, ok := settings["vagrant"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("Expected %s to have a 'vagrant' mapping section", settingsSrc.Description())
	}

	values := map[string]interface{}{}
	for k, v := range vagrant {
		values[k] = v
	}
	for k, v := range topology {
		values[k] = v
	}

	return renderValues(values, template, o.Output, ui)
}
