// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

// Package audit checks generated deployment settings with the deployer's
// configuration audit tool.
package audit

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/punchplatform/punch-punchbox-app/pkg/external"
)

type Runner interface {
	Audit(ctx context.Context, deploymentSettings string) error
}

// ScriptRunner runs bin/configuration_audit/audit3.py from the deployer
// against its dependency rules.
type ScriptRunner struct {
	DeployerPath string
	Runner       external.Runner

	// Output receives the audit tool report.
	Output io.Writer
}

var _ Runner = ScriptRunner{}

func NewScriptRunner(deployerPath string, runner external.Runner, output io.Writer) ScriptRunner {
	return ScriptRunner{DeployerPath: deployerPath, Runner: runner, Output: output}
}

func (r ScriptRunner) Command(deploymentSettings string) external.Command {
	auditDir := filepath.Join(r.DeployerPath, "bin", "configuration_audit")

	return external.Command{
		Executable: filepath.Join(auditDir, "audit3.py"),
		Args:       []string{filepath.Join(auditDir, "punchplatform_dependencies.yml"), deploymentSettings},
		Stdout:     r.Output,
	}
}

// Audit fails with an *external.ToolError carrying the tool exit status
// when the settings are rejected.
func (r ScriptRunner) Audit(ctx context.Context, deploymentSettings string) error {
	_, err := r.Runner.Run(ctx, r.Command(deploymentSettings))
	if err != nil {
		return fmt.Errorf("Auditing deployment settings '%s': %w", deploymentSettings, err)
	}
	return nil
}
