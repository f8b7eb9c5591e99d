// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package experiments switches optional behaviors on from the environment.

	PUNCHBOXEXPERIMENTS=parallel-versions punchbox generate blueprint ...

Names are read once, on first use, so an executable keeps the same flavor
for its whole run. A new experiment is declared as an Experiment value,
added to the registry, and checked where the behavior branches:

	if experiments.ParallelVersions.Enabled() {
		...
	}
*/
package experiments
