// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package workspace scaffolds and describes a punchbox workspace: the folder
holding the user's settings and topology, the generated blueprint, the
rendered deployment settings and the Vagrantfile.

A workspace is created from a profile shipped in the punchbox install
directory (see SourceHierarchy) and is described by conf/punchbox/punchbox.yml
(see Config), which the build steps read back.
*/
package workspace
