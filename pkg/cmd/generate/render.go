// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package generate

import (
	"github.com/punchplatform/punch-punchbox-app/pkg/cmd/ui"
	"github.com/punchplatform/punch-punchbox-app/pkg/documents"
	"github.com/punchplatform/punch-punchbox-app/pkg/files"
	"github.com/punchplatform/punch-punchbox-app/pkg/render"
)

// renderBlueprint renders templatePath with the blueprint sections as top
// level variables.
func renderBlueprint(blueprintPath, templatePath, output string, ui ui.UI) error {
	src, err := files.NewSource(blueprintPath)
	if err != nil {
		return err
	}

	values, err := documents.LoadTree(src)
	if err != nil {
		return err
	}

	return renderValues(values, templatePath, output, ui)
}

func renderValues(values map[string]interface{}, templatePath, output string, ui ui.UI) error {
	tpl, err := render.NewTemplateFromFile(templatePath)
	if err != nil {
		return err
	}

	data, err := tpl.Render(values)
	if err != nil {
		return err
	}

	out := files.NewOutput(output, ui.Stdout())

	err = out.Write(data)
	if err != nil {
		return err
	}

	ui.Debugf("rendered %s into %s\n", tpl.Name(), out.Description())
	return nil
}
