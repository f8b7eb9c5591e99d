// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

// HelpersGlob matches helper templates parsed along with a template file.
const HelpersGlob = "_*.tpl"

type Template struct {
	name string
	tpl  *template.Template
}

func newTemplateSet(name string) *template.Template {
	return template.New(name).Funcs(FuncMap()).Option("missingkey=error")
}

// NewTemplate parses src. Parse failures are reported as TemplateRenderError.
func NewTemplate(name, src string) (*Template, error) {
	tpl, err := newTemplateSet(name).Parse(src)
	if err != nil {
		return nil, &TemplateRenderError{Template: name, Err: err}
	}
	return &Template{name, tpl}, nil
}

// NewTemplateFromFile parses the template at path and the helpers next to it.
func NewTemplateFromFile(path string) (*Template, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Reading template '%s': %w", path, err)
	}

	name := filepath.Base(path)

	tpl, err := newTemplateSet(name).Parse(string(src))
	if err != nil {
		return nil, &TemplateRenderError{Template: path, Err: err}
	}

	helpers, err := filepath.Glob(filepath.Join(filepath.Dir(path), HelpersGlob))
	if err != nil {
		return nil, fmt.Errorf("Listing template helpers: %w", err)
	}

	for _, helper := range helpers {
		if filepath.Base(helper) == name {
			continue
		}
		helperSrc, err := os.ReadFile(helper)
		if err != nil {
			return nil, fmt.Errorf("Reading template helper '%s': %w", helper, err)
		}
		_, err = tpl.New(filepath.Base(helper)).Parse(string(helperSrc))
		if err != nil {
			return nil, &TemplateRenderError{Template: helper, Err: err}
		}
	}

	return &Template{path, tpl}, nil
}

func (t *Template) Name() string { return t.name }

// Render executes the template against data. Nothing is returned unless the
// whole template rendered.
func (t *Template) Render(data map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer

	err := t.tpl.Execute(&buf, data)
	if err != nil {
		return nil, newTemplateRenderError(t.name, err)
	}
	return buf.Bytes(), nil
}
