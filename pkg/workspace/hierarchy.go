// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	InstallDirEnv  = "PUNCHPLATFORM_PUNCHBOX_INSTALL_DIR"
	DefaultProfile = "standalone"
	DefaultDirName = "punchbox-workspace"
)

// Hierarchy is the layout of a workspace rooted at Root.
type Hierarchy struct {
	Root string

	ConfDir         string
	PunchboxConfDir string
	GeneratedDir    string
	PPConfDir       string
	VagrantDir      string
	TemplateDir     string

	VagrantTemplateFile string
	SettingsFile        string
	TopologyFile        string
	ResolvFile          string

	VagrantFile                    string
	BlueprintFile                  string
	ConfigFile                     string
	DeploymentSettingsFile         string
	DeploymentSettingsTemplateFile string
	LegacyDeploymentSettingsFile   string
	ResolvConfFile                 string
	ResolvConfTemplateFile         string
	ActivateFile                   string
}

func NewHierarchy(root string) Hierarchy {
	h := Hierarchy{Root: root}

	h.ConfDir = filepath.Join(root, "conf")
	h.PunchboxConfDir = filepath.Join(h.ConfDir, "punchbox")
	h.GeneratedDir = filepath.Join(h.PunchboxConfDir, "generated")
	h.PPConfDir = filepath.Join(root, "pp-conf")
	h.VagrantDir = filepath.Join(root, "vagrant")
	h.TemplateDir = filepath.Join(h.GeneratedDir, "conf", "deployment_templates")

	h.VagrantTemplateFile = filepath.Join(h.VagrantDir, "Vagrantfile.tpl")
	h.SettingsFile = filepath.Join(h.PunchboxConfDir, "settings.yml")
	h.TopologyFile = filepath.Join(h.PunchboxConfDir, "topology.yml")
	h.ResolvFile = filepath.Join(h.PunchboxConfDir, "resolv.yml")

	h.VagrantFile = filepath.Join(h.VagrantDir, "Vagrantfile")
	h.BlueprintFile = filepath.Join(h.GeneratedDir, "blueprint.yml")
	h.ConfigFile = filepath.Join(h.PunchboxConfDir, "punchbox.yml")
	h.DeploymentSettingsFile = filepath.Join(h.PPConfDir, "deployment-settings.yml")
	h.DeploymentSettingsTemplateFile = filepath.Join(h.TemplateDir, "deployment.settings.tpl")
	h.LegacyDeploymentSettingsFile = filepath.Join(h.PPConfDir, "punchplatform-deployment.settings")
	h.ResolvConfFile = filepath.Join(h.PPConfDir, "resolv.hjson")
	h.ResolvConfTemplateFile = filepath.Join(h.TemplateDir, "resolv.hjson.tpl")
	h.ActivateFile = filepath.Join(root, "activate.sh")

	return h
}

// Dirs lists the directories Create makes.
func (h Hierarchy) Dirs() []string {
	return []string{h.TemplateDir, h.PunchboxConfDir, h.PPConfDir, h.VagrantDir, h.GeneratedDir}
}

// SourceHierarchy is the layout of a punchbox install directory providing
// the profiles and templates a workspace starts from.
type SourceHierarchy struct {
	Dir     string
	Profile string

	SettingsFile        string
	TopologyFile        string
	ResolvFile          string
	VagrantTemplateFile string
	TemplateDir         string
}

func NewSourceHierarchy(dir, profile string) SourceHierarchy {
	s := SourceHierarchy{Dir: dir, Profile: profile}
	profileDir := s.ProfileDir()

	s.SettingsFile = filepath.Join(profileDir, "settings.yml")
	s.TopologyFile = filepath.Join(profileDir, "topology.yml")
	s.ResolvFile = filepath.Join(profileDir, "resolv.yml")
	s.VagrantTemplateFile = filepath.Join(dir, "conf", "vagrant", "Vagrantfile.tpl")
	s.TemplateDir = filepath.Join(dir, "conf", "deployment_templates")

	return s
}

func (s SourceHierarchy) ProfilesDir() string {
	return filepath.Join(s.Dir, "conf", "profiles")
}

func (s SourceHierarchy) ProfileDir() string {
	return filepath.Join(s.ProfilesDir(), s.Profile)
}

// InstallDir is the punchbox install directory, taken from the environment
// and falling back to the current directory.
func InstallDir() (string, error) {
	if dir := os.Getenv(InstallDirEnv); dir != "" {
		return dir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("Determining punchbox install directory: %w", err)
	}
	return dir, nil
}

// DefaultRoot is ~/punchbox-workspace.
func DefaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDirName
	}
	return filepath.Join(home, DefaultDirName)
}
