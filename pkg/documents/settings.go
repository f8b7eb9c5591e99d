// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package documents

import (
	"github.com/mitchellh/copystructure"
)

// Settings is a key/value tree attached to the platform, a service, a cluster,
// a server or a user.
type Settings map[string]interface{}

func (s Settings) Lookup(key string) (interface{}, bool) {
	val, found := s[key]
	return val, found
}

func (s Settings) Has(key string) bool {
	_, found := s[key]
	return found
}

// DeepCopy never returns nil so that copies can always be written to.
func (s Settings) DeepCopy() Settings {
	if s == nil {
		return Settings{}
	}
	return Settings(copystructure.Must(copystructure.Copy(map[string]interface{}(s))).(map[string]interface{}))
}

// Overlay writes every key of other onto s. Same-named keys are replaced.
func (s Settings) Overlay(other Settings) {
	for key, val := range other {
		s[key] = val
	}
}
