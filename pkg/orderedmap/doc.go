// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package orderedmap provides a map implementation where the order of keys is
maintained (unlike the native Go map).

This flavor of map is crucial in keeping the blueprint deterministic: servers
and user records are walked in the order they were declared in the topology.
*/
package orderedmap
