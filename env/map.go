// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package env

import "strings"

// Map holds environment variables as name/value pairs. Iteration order is
// unspecified. A key that is missing from the map is "absent"; a key mapped
// to "" is present with an empty value, and the two are never conflated.
type Map map[string]string

// FromEnviron builds a Map from os.Environ() format ([]string{"KEY=value"}).
// Entries without an "=" are ignored. Empty values are preserved.
func FromEnviron(environ []string) Map {
	m := make(Map, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		m[key] = value
	}
	return m
}

// Clone returns a deep copy of the map. Clone of nil returns an empty,
// non-nil Map.
func (m Map) Clone() Map {
	cp := make(Map, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

// Public returns a new Map holding only the entries whose keys the rule
// allows. The receiver is never mutated. Callers must invoke Public freshly
// at serialization time rather than caching the result: the underlying table
// may gain entries (promotion, host runtime writes) between calls.
func (m Map) Public(rule Rule) Map {
	public := make(Map)
	for k, v := range m {
		if rule.Allows(k) {
			public[k] = v
		}
	}
	return public
}
