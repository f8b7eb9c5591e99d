// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package render renders a blueprint (or any other settings tree) through a Go
text/template into a final artifact: deployment settings, resolver
configuration or Vagrantfile.

Top level keys of the data are the template's root fields ({{ .platform }},
{{ .services.kafka.settings }}). Referencing a key that does not exist is an
error. Templates may include helpers defined in files named _*.tpl located
next to them.
*/
package render
