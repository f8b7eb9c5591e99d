// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

// Package version holds the punchbox version, set at build time with
// -ldflags "-X github.com/punchplatform/punch-punchbox-app/pkg/version.Version=...".
package version

var Version = "develop"
