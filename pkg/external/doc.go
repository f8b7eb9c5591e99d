// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package external runs the deployer's helper scripts (component version
lookup, configuration audit) and reports their failures as ToolError's
carrying the process exit status.
*/
package external
