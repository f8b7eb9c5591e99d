// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package blueprint

import (
	"bytes"
	"fmt"
	"os/user"
)

// Placeholders replaced in serialized blueprints by the deploying user.
const (
	UserPlaceholder  = "localusername"
	GroupPlaceholder = "localusergroup"
)

type Identity struct {
	User  string
	Group string
}

// CurrentIdentity is the login name and primary group name of the user
// running the command.
func CurrentIdentity() (Identity, error) {
	current, err := user.Current()
	if err != nil {
		return Identity{}, fmt.Errorf("Looking up current user: %w", err)
	}

	group, err := user.LookupGroupId(current.Gid)
	if err != nil {
		return Identity{}, fmt.Errorf("Looking up primary group of user '%s': %w", current.Username, err)
	}

	return Identity{User: current.Username, Group: group.Name}, nil
}

// Substitute replaces the placeholders anywhere in data, keys included.
func (i Identity) Substitute(data []byte) []byte {
	data = bytes.ReplaceAll(data, []byte(UserPlaceholder), []byte(i.User))
	return bytes.ReplaceAll(data, []byte(GroupPlaceholder), []byte(i.Group))
}
