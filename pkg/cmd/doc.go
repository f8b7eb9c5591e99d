// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package cmd is home to the punchbox command tree -- instances of cobra.Command
(not to be confused with ./cmd which contains the bootstrapping for executing punchbox).

Command groups live in their own packages: generate, workspace and deploy.
Each command is an XOptions struct filled by Cobra whose Run method is the
command itself.

For a list of commands run:

	$ punchbox help
*/
package cmd
