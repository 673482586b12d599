// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package clientenv

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/stacklok/pageenv-core/env"
)

// GlobalVar is the page global the injected artifact assigns the frozen
// variable object to. The resolver and the injector must agree on this
// name, so it is defined once here.
const GlobalVar = "__ENV"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store holds the public variables visible to client-side code. It is
// constructed once per page load and never mutated afterwards; the entries
// live in an unexported map behind read-only accessors.
type Store struct {
	vars env.Map
}

// New builds a Store from a deep copy of vars. Later mutation of the
// argument does not affect the store.
func New(vars env.Map) *Store {
	return &Store{vars: vars.Clone()}
}

// FromJSON builds a Store from the artifact's serialized payload: a JSON
// object literal mapping variable names to string values. The numeric
// escapes produced by the escape package are plain JSON string escapes and
// decode transparently.
func FromJSON(payload []byte) (*Store, error) {
	var vars env.Map
	if err := json.Unmarshal(payload, &vars); err != nil {
		return nil, fmt.Errorf("invalid client store payload: %w", err)
	}
	return &Store{vars: vars}, nil
}

// Lookup retrieves the value stored under key and reports whether it is
// present. A nil store reports every key absent.
func (s *Store) Lookup(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.vars[key]
	return v, ok
}

// Len returns the number of variables in the store.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.vars)
}

// Snapshot returns a copy of the store's contents. Callers own the result;
// mutating it does not affect the store.
func (s *Store) Snapshot() env.Map {
	if s == nil {
		return env.Map{}
	}
	return s.vars.Clone()
}
