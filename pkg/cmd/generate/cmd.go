// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package generate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// PunchboxDirEnv points at the punchbox checkout providing default templates.
const PunchboxDirEnv = "PUNCHBOX_DIR"

func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate deployment files",
		Long: `Generate deployment files.

Each command generates one of the intermediate configuration files needed to
deploy a punch. "workspace build" runs them all for you.`,
	}
	cmd.AddCommand(NewBlueprintCmd(NewBlueprintOptions()))
	cmd.AddCommand(NewDeploymentSettingsCmd(NewDeploymentSettingsOptions()))
	cmd.AddCommand(NewResolverCmd(NewResolverOptions()))
	cmd.AddCommand(NewVagrantfileCmd(NewVagrantfileOptions()))
	return cmd
}

// defaultTemplate locates relPath under $PUNCHBOX_DIR.
func defaultTemplate(kind, relPath string) (string, error) {
	dir := os.Getenv(PunchboxDirEnv)
	if dir == "" {
		return "", fmt.Errorf("Expected --template to be provided or %s environment variable to be set to locate the default %s template",
			PunchboxDirEnv, kind)
	}
	return filepath.Join(dir, relPath), nil
}
