// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package generate

import (
	"github.com/punchplatform/punch-punchbox-app/pkg/cmd/ui"
	"github.com/spf13/cobra"
)

type ResolverOptions struct {
	Blueprint string
	Template  string
	Output    string
	Debug     bool
}

func NewResolverOptions() *ResolverOptions {
	return &ResolverOptions{}
}

func NewResolverCmd(o *ResolverOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolver",
		Short: "Generate the deployment resolver",
		Long:  `Generate the punch resolver file. The deployer needs it but it may be empty.`,
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVar(&o.Blueprint, "blueprint", "", "Blueprint generated by 'generate blueprint'")
	cmd.Flags().StringVar(&o.Template, "template", "", "Resolver template (for example templates/resolv.hjson.tpl)")
	cmd.Flags().StringVarP(&o.Output, "output", "o", "", "Output file (stdout if not provided)")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	cmd.MarkFlagRequired("blueprint")
	cmd.MarkFlagRequired("template")
	return cmd
}

func (o *ResolverOptions) Run() error {
	return o.RunWithUI(ui.NewTTY(o.Debug))
}

func (o *ResolverOptions) RunWithUI(ui ui.UI) error {
	return renderBlueprint(o.Blueprint, o.Template, o.Output, ui)
}
