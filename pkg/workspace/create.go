// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/punchplatform/punch-punchbox-app/pkg/spell"
	"github.com/spf13/afero"
)

// ErrDeclined is returned when the user refuses to overwrite an existing workspace.
var ErrDeclined = errors.New("Workspace creation declined")

type CreateOptions struct {
	Deployer string
	Root     string
	Source   SourceHierarchy

	// Confirm is asked before overwriting an existing workspace.
	// A nil Confirm declines.
	Confirm func(question string) bool
}

// Create lays out a workspace, copies the profile files and templates into
// it and writes activate.sh and punchbox.yml.
func Create(fs afero.Fs, opts CreateOptions) (*Config, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("Resolving workspace path: %w", err)
	}
	deployer, err := filepath.Abs(opts.Deployer)
	if err != nil {
		return nil, fmt.Errorf("Resolving deployer path: %w", err)
	}

	_, err = fs.Stat(deployer)
	if err != nil {
		return nil, fmt.Errorf("Checking deployer directory '%s': %w", deployer, err)
	}

	h := NewHierarchy(root)

	exists, err := afero.Exists(fs, h.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("Checking workspace configuration: %w", err)
	}
	if exists && (opts.Confirm == nil || !opts.Confirm("Overwrite your configurations ?")) {
		return nil, ErrDeclined
	}

	err = checkProfile(fs, opts.Source)
	if err != nil {
		return nil, err
	}

	for _, dir := range h.Dirs() {
		err := fs.MkdirAll(dir, 0755)
		if err != nil {
			return nil, fmt.Errorf("Creating directory '%s': %w", dir, err)
		}
	}

	copies := [][2]string{
		{opts.Source.TopologyFile, h.TopologyFile},
		{opts.Source.SettingsFile, h.SettingsFile},
		{opts.Source.ResolvFile, h.ResolvFile},
		{opts.Source.VagrantTemplateFile, h.VagrantTemplateFile},
	}
	for _, pair := range copies {
		err := copyFile(fs, pair[0], pair[1])
		if err != nil {
			return nil, err
		}
	}

	err = copyTemplates(fs, opts.Source.TemplateDir, h.TemplateDir)
	if err != nil {
		return nil, err
	}

	err = writeActivate(fs, h, deployer)
	if err != nil {
		return nil, err
	}

	conf := NewConfig(h, TypeForProfile(opts.Source.Profile), deployer)

	confBytes, err := conf.AsYAML()
	if err != nil {
		return nil, fmt.Errorf("Marshaling punchbox configuration: %w", err)
	}

	err = afero.WriteFile(fs, h.ConfigFile, confBytes, 0644)
	if err != nil {
		return nil, fmt.Errorf("Writing punchbox configuration: %w", err)
	}

	return &conf, nil
}

// checkProfile fails when the profile directory is missing, suggesting the
// closest existing profile.
func checkProfile(fs afero.Fs, src SourceHierarchy) error {
	exists, err := afero.DirExists(fs, src.ProfileDir())
	if err != nil {
		return fmt.Errorf("Checking profile '%s': %w", src.Profile, err)
	}
	if exists {
		return nil
	}

	var profiles []string

	infos, _ := afero.ReadDir(fs, src.ProfilesDir())
	for _, info := range infos {
		if info.IsDir() {
			profiles = append(profiles, info.Name())
		}
	}

	msg := fmt.Sprintf("Unknown profile '%s' in '%s'", src.Profile, src.ProfilesDir())
	if suggestion := spell.Suggest(src.Profile, profiles); suggestion != "" {
		msg += fmt.Sprintf(" (did you mean '%s'?)", suggestion)
	}
	return errors.New(msg)
}

func writeActivate(fs afero.Fs, h Hierarchy, deployer string) error {
	err := fs.Remove(h.ActivateFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("Removing '%s': %w", h.ActivateFile, err)
	}

	content := fmt.Sprintf("export PATH=%s/bin:$PATH \nexport PUNCHPLATFORM_CONF_DIR=%s \n",
		deployer, h.PPConfDir)

	err = afero.WriteFile(fs, h.ActivateFile, []byte(content), 0644)
	if err != nil {
		return fmt.Errorf("Writing '%s': %w", h.ActivateFile, err)
	}
	return nil
}

// copyTemplates copies the regular files of srcDir; subdirectories are skipped.
func copyTemplates(fs afero.Fs, srcDir, dstDir string) error {
	infos, err := afero.ReadDir(fs, srcDir)
	if err != nil {
		return fmt.Errorf("Listing templates in '%s': %w", srcDir, err)
	}

	for _, info := range infos {
		if !info.Mode().IsRegular() {
			continue
		}
		err := copyFile(fs, filepath.Join(srcDir, info.Name()), filepath.Join(dstDir, info.Name()))
		if err != nil {
			return err
		}
	}
	return nil
}

func copyFile(fs afero.Fs, src, dst string) error {
	data, err := afero.ReadFile(fs, src)
	if err != nil {
		return fmt.Errorf("Copying '%s' to '%s': %w", src, dst, err)
	}

	err = afero.WriteFile(fs, dst, data, 0644)
	if err != nil {
		return fmt.Errorf("Copying '%s' to '%s': %w", src, dst, err)
	}
	return nil
}
