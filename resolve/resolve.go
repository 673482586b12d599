// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package resolve

import "github.com/stacklok/pageenv-core/enverr"

// Resolver reads environment variables through an injected Boundary,
// applying the accessor semantics shared by server and client code. It is
// stateless apart from the boundary and safe for concurrent use.
type Resolver struct {
	boundary Boundary
}

// New returns a Resolver over the given boundary.
func New(boundary Boundary) *Resolver {
	return &Resolver{boundary: boundary}
}

// Boundary returns the boundary this resolver reads through.
func (r *Resolver) Boundary() Boundary {
	return r.boundary
}

// Lookup resolves key and reports whether it is present. An empty string
// is a present value, not absence. On the client, a non-public key fails
// with enverr.KindAccessDenied.
func (r *Resolver) Lookup(key string) (string, bool, error) {
	return r.boundary.Lookup(key)
}

// Get resolves key, substituting fallback only when the key is absent. A
// present empty string is returned as-is, never replaced by the fallback.
func (r *Resolver) Get(key, fallback string) (string, error) {
	v, ok, err := r.boundary.Lookup(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return fallback, nil
	}
	return v, nil
}

// Require resolves key and fails with enverr.KindMissingRequired when it
// is absent. A present empty string satisfies Require.
func (r *Resolver) Require(key string) (string, error) {
	v, ok, err := r.boundary.Lookup(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", enverr.MissingRequired(key)
	}
	return v, nil
}

// ServerOnly resolves key on the server without any visibility gate, and
// unconditionally reports absent on the client without touching the store.
// It never fails, so shared code can call it from either boundary without
// branching; values read through it are guaranteed never to come from the
// injected store.
func (r *Resolver) ServerOnly(key string) (string, bool) {
	if r.boundary.Consumer() {
		return "", false
	}
	v, ok, _ := r.boundary.Lookup(key)
	return v, ok
}

// ServerOnlyOr is ServerOnly with a fallback substituted when the key is
// absent, which on the client is always.
func (r *Resolver) ServerOnlyOr(key, fallback string) string {
	v, ok := r.ServerOnly(key)
	if !ok {
		return fallback
	}
	return v
}
