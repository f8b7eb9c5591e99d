// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-version"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	ConfigVersion = "1.0"

	TypeStandalone = "standalone"
	TypeDeployed   = "deployed"
)

var supportedConfigVersions = version.MustConstraints(version.NewConstraint(">= 1.0, < 2.0"))

// Config is the content of punchbox.yml. Every path is absolute.
type Config struct {
	Env     EnvConfig     `yaml:"env"`
	Punch   PunchConfig   `yaml:"punch"`
	Vagrant VagrantConfig `yaml:"vagrant"`
	Version string        `yaml:"version"`
}

type EnvConfig struct {
	Deployer    string `yaml:"deployer"`
	Type        string `yaml:"type"`
	Vagrantfile string `yaml:"vagrantfile"`
	Workspace   string `yaml:"workspace"`
}

type PunchConfig struct {
	Blueprint                       string `yaml:"blueprint"`
	DeploymentSettings              string `yaml:"deployment_settings"`
	DeploymentSettingsTemplate      string `yaml:"deployment_settings_template"`
	PunchplatformDeploymentSettings string `yaml:"punchplatform_deployment_settings"`
	ResolvConf                      string `yaml:"resolv_conf"`
	ResolvConfTemplate              string `yaml:"resolv_conf_template"`
	UserResolver                    string `yaml:"user_resolver"`
	UserSettings                    string `yaml:"user_settings"`
	UserTopology                    string `yaml:"user_topology"`
}

type VagrantConfig struct {
	Template    string `yaml:"template"`
	Vagrantfile string `yaml:"vagrantfile"`
}

// TypeForProfile maps a profile name onto a workspace type.
func TypeForProfile(profile string) string {
	if profile == DefaultProfile {
		return TypeStandalone
	}
	return TypeDeployed
}

// NewConfig describes the workspace laid out by h. h must be rooted at an
// absolute path.
func NewConfig(h Hierarchy, workspaceType, deployer string) Config {
	return Config{
		Version: ConfigVersion,
		Env: EnvConfig{
			Deployer:    deployer,
			Type:        workspaceType,
			Workspace:   h.Root,
			Vagrantfile: h.VagrantFile,
		},
		Punch: PunchConfig{
			Blueprint:                       h.BlueprintFile,
			UserTopology:                    h.TopologyFile,
			UserSettings:                    h.SettingsFile,
			UserResolver:                    h.ResolvFile,
			DeploymentSettingsTemplate:      h.DeploymentSettingsTemplateFile,
			DeploymentSettings:              h.DeploymentSettingsFile,
			PunchplatformDeploymentSettings: h.LegacyDeploymentSettingsFile,
			ResolvConf:                      h.ResolvConfFile,
			ResolvConfTemplate:              h.ResolvConfTemplateFile,
		},
		Vagrant: VagrantConfig{
			Template:    h.VagrantTemplateFile,
			Vagrantfile: h.VagrantFile,
		},
	}
}

func (c Config) AsYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks that the configuration was written by a compatible punchbox.
func (c Config) Validate() error {
	if c.Version == "" {
		return errors.New("Missing version in punchbox configuration")
	}
	ver, err := version.NewVersion(c.Version)
	if err != nil {
		return fmt.Errorf("Parsing punchbox configuration version '%s': %w", c.Version, err)
	}
	if !supportedConfigVersions.Check(ver) {
		return fmt.Errorf("Unsupported punchbox configuration version '%s' (expected %s)",
			c.Version, supportedConfigVersions)
	}
	return nil
}

func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("Reading punchbox configuration: %w", err)
	}

	var conf Config

	err = yaml.Unmarshal(data, &conf)
	if err != nil {
		return nil, fmt.Errorf("Unmarshaling punchbox configuration '%s': %w", path, err)
	}

	err = conf.Validate()
	if err != nil {
		return nil, fmt.Errorf("Validating punchbox configuration '%s': %w", path, err)
	}

	return &conf, nil
}
