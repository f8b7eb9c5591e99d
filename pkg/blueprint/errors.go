// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package blueprint

import (
	"errors"
	"fmt"
)

// ErrInputValidation matches (errors.Is) every error caused by a settings or
// topology document that cannot be merged.
var ErrInputValidation = errors.New("Invalid input")

type MissingPlatformSectionError struct {
	Service string
}

func (e *MissingPlatformSectionError) Error() string {
	if e.Service == "" {
		return "Missing mandatory 'platform' section in settings"
	}
	return fmt.Sprintf("Missing mandatory 'platform' section in settings (computing service '%s')", e.Service)
}

func (e *MissingPlatformSectionError) Is(target error) bool { return target == ErrInputValidation }

type DuplicateServiceError struct {
	Service string
}

func (e *DuplicateServiceError) Error() string {
	return fmt.Sprintf("Duplicated service '%s' in settings", e.Service)
}

func (e *DuplicateServiceError) Is(target error) bool { return target == ErrInputValidation }

type InvalidUserRecordError struct {
	Server string
	Key    string
	Reason string
}

func (e *InvalidUserRecordError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "only 'user' and 'settings' keys are allowed"
	}
	return fmt.Sprintf("Invalid key '%s' in users of server '%s': %s", e.Key, e.Server, reason)
}

func (e *InvalidUserRecordError) Is(target error) bool { return target == ErrInputValidation }
