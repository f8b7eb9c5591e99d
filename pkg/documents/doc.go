// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package documents loads the two user-authored inputs of punchbox: the settings
document (platform-wide and per-service options) and the topology document
(servers, the services placed on them and their users).

Documents may be written in YAML, JSON (comments and trailing commas allowed)
or TOML. Whatever the format, decoded values are normalized into plain trees
made only of strings, numbers, booleans, nulls, sequences and string-keyed
mappings, and mapping order is kept where it matters (servers, services, user
records).
*/
package documents
