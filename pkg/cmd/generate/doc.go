// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package generate implements the "generate" command group: one command per
intermediate artifact (blueprint, deployment settings, resolver, Vagrantfile).

Each command is an XOptions struct holding the flags parsed by Cobra. Its
RunWithUI method is the command itself so that "workspace build" can chain
the same steps.
*/
package generate
