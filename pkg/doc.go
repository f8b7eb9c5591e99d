// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package pkg is the collection of packages that make up the implementation of punchbox.

# Overview

punchbox prepares the configuration of a punch platform. From a user written
settings file and a topology file it computes a "blueprint" (the fully
resolved description of every service, cluster and server), then renders
deployment files from that blueprint with Go templates.

Packages are listed top-down. The number in parentheses before a package is
the count of packages in this module that import it; the one after is the
count it imports from this module.

punchbox is built as a single command-line tool:

	./cmd/punchbox             // a command-line tool

# Commands

The command tree lives in pkg/cmd. Each group has its own package:

	(1) => pkg/cmd => (4)
	(2) => pkg/cmd/generate => (8)    // blueprint, deployment-settings, resolver, vagrantfile
	(1) => pkg/cmd/workspace => (8)   // create, build
	(1) => pkg/cmd/deploy => (5)      // audit

Flags and terminal output are shared through:

	(3) => pkg/cmd/core => (0)
	(3) => pkg/cmd/ui => (0)

# Core

The heart of punchbox is computing a blueprint. Settings and topology
documents are decoded while keeping the order of their keys, so that
generated files follow what the user wrote:

	(4) => pkg/documents => (2)
	(2) => pkg/blueprint => (2)

Component versions are asked to the deployer, possibly in parallel:

	(2) => pkg/versions => (2)

Blueprints (or any values) are turned into deployment files by:

	(1) => pkg/render => (0)

# Workspace

A workspace is a directory holding a copy of a profile together with every
file generated from it. Its layout and its punchbox.yml configuration are
owned by:

	(2) => pkg/workspace => (2)

Once generated, deployment settings are checked by the deployer's audit:

	(1) => pkg/audit => (1)

# Utilities

The remainder are domain-agnostic utilities that provide either an
application-level capability or a specialized piece of logic.

	(6) => pkg/external => (0)
	(3) => pkg/files => (0)
	(1) => pkg/orderedmap => (0)
	(1) => pkg/experiments => (0)
	(1) => pkg/version => (0)
	(1) => pkg/spell => (0)

pkg/filetests is a golden file harness used by tests only.

# Dependencies

Each package's dependencies on other packages within this module are as follows
(if a package is not listed, it has no dependencies on other packages within
this module):

	pkg/cmd:
	- pkg/cmd/deploy
	- pkg/cmd/generate
	- pkg/cmd/workspace
	- pkg/version
	pkg/cmd/generate:
	- pkg/blueprint
	- pkg/cmd/core
	- pkg/cmd/ui
	- pkg/documents
	- pkg/external
	- pkg/files
	- pkg/render
	- pkg/versions
	pkg/cmd/workspace:
	- pkg/blueprint
	- pkg/cmd/core
	- pkg/cmd/generate
	- pkg/cmd/ui
	- pkg/documents
	- pkg/external
	- pkg/files
	- pkg/workspace
	pkg/cmd/deploy:
	- pkg/audit
	- pkg/cmd/core
	- pkg/cmd/ui
	- pkg/external
	- pkg/workspace
	pkg/blueprint:
	- pkg/documents
	- pkg/versions
	pkg/documents:
	- pkg/files
	- pkg/orderedmap
	pkg/versions:
	- pkg/experiments
	- pkg/external
	pkg/workspace:
	- pkg/documents
	- pkg/spell
	pkg/audit:
	- pkg/external
*/
package pkg
