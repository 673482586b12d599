// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package envname

import (
	"fmt"
	"regexp"
	"strings"
)

var validNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateName validates that name is a portable environment variable name:
// letters, digits and underscores, not starting with a digit. It also
// disallows null bytes and whitespace explicitly so the failure message
// names the actual problem.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("environment variable name cannot be empty")
	}

	// Check for null bytes explicitly
	if strings.Contains(name, "\x00") {
		return fmt.Errorf("environment variable name cannot contain null bytes")
	}

	if strings.ContainsAny(name, " \t\n\r") {
		return fmt.Errorf("environment variable name cannot contain whitespace: %q", name)
	}

	if strings.Contains(name, "=") {
		return fmt.Errorf("environment variable name cannot contain '=': %q", name)
	}

	if !validNameRegex.MatchString(name) {
		return fmt.Errorf(
			"environment variable name can only contain letters, digits, and underscores, and cannot start with a digit: %q",
			name)
	}

	return nil
}
