// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"regexp"
)

var missingKeyRegexp = regexp.MustCompile(`map has no entry for key "([^"]*)"`)

type TemplateRenderError struct {
	Template string
	// MissingKey is set when rendering referenced an undefined variable.
	MissingKey string
	Err        error
}

func newTemplateRenderError(name string, err error) *TemplateRenderError {
	renderErr := &TemplateRenderError{Template: name, Err: err}
	if match := missingKeyRegexp.FindStringSubmatch(err.Error()); match != nil {
		renderErr.MissingKey = match[1]
	}
	return renderErr
}

func (e *TemplateRenderError) Error() string {
	if e.MissingKey != "" {
		return fmt.Sprintf("Rendering template '%s': variable '%s' is not defined, the template is likely malformed: %s",
			e.Template, e.MissingKey, e.Err)
	}
	return fmt.Sprintf("Rendering template '%s': the template is likely malformed: %s", e.Template, e.Err)
}

func (e *TemplateRenderError) Unwrap() error { return e.Err }
