// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package env

import "sync"

// MapSource implements Mutable over an in-memory Map. It exists so tests and
// embedding hosts can construct isolated environment tables instead of
// mutating the shared process environment. Safe for concurrent use.
type MapSource struct {
	mu   sync.RWMutex
	vars Map
}

// NewMapSource returns a MapSource seeded with a copy of vars. A nil vars
// yields an empty table.
func NewMapSource(vars Map) *MapSource {
	return &MapSource{vars: vars.Clone()}
}

// Lookup retrieves the value stored under key.
func (s *MapSource) Lookup(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vars[key]
	return v, ok
}

// Snapshot returns a copy of the table.
func (s *MapSource) Snapshot() Map {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vars.Clone()
}

// Set stores value under key. It never fails.
func (s *MapSource) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vars[key] = value
	return nil
}
