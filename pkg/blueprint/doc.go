// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package blueprint merges a settings document and a topology document into a
Blueprint: the fully expanded platform, service, cluster and server settings
plus the users to create.

A Blueprint is computed in three passes over a fresh accumulator:

 1. service settings (ComputeSettings): for each service declared in the
    settings document, its service level settings and, for every server of the
    topology, the cluster and server level settings.
 2. users (ComputeUsers): the users declared on the servers, last one wins.
 3. versions (ComputeVersions): a version is added to the settings of known
    components that do not declare one.

Settings precedence for a server is, lowest first: the service settings, the
cluster settings, the server settings declared in the topology. At the
service level the platform settings win over the service settings; cluster
settings start from the service settings alone.
*/
package blueprint
