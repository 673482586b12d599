// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"github.com/stacklok/pageenv-core/clientenv"
	"github.com/stacklok/pageenv-core/env"
	"github.com/stacklok/pageenv-core/enverr"
)

// Boundary is the execution-context capability: it knows which side of the
// server/client divide the current code runs on and how to read a variable
// there. Implementations must be safe for concurrent use.
type Boundary interface {
	// Consumer reports whether this is the client side, where only
	// injected public variables are visible.
	Consumer() bool

	// Lookup resolves key on this boundary. On the client, a key the
	// visibility rule does not allow fails with an AccessDenied error;
	// on the server every key is readable. Absence is reported via the
	// bool, never as an error.
	Lookup(key string) (string, bool, error)
}

// ServerBoundary is the producing side: reads go straight to the full
// environment table with no visibility gate.
type ServerBoundary struct {
	source env.Source
}

// NewServerBoundary returns a Boundary over the given environment table.
func NewServerBoundary(source env.Source) *ServerBoundary {
	return &ServerBoundary{source: source}
}

// Consumer reports false: this is the server side.
func (*ServerBoundary) Consumer() bool {
	return false
}

// Lookup reads key from the environment table. It never fails.
func (b *ServerBoundary) Lookup(key string) (string, bool, error) {
	v, ok := b.source.Lookup(key)
	return v, ok, nil
}

// ConsumerBoundary is the client side: reads are gated by the visibility
// rule and served from the injected store. A nil store models a page where
// the artifact has not executed; every allowed key is then absent.
type ConsumerBoundary struct {
	store *clientenv.Store
	rule  env.Rule
}

// NewConsumerBoundary returns a Boundary over the injected store, gated by
// rule. The rule must be the same value the server-side filter used.
func NewConsumerBoundary(store *clientenv.Store, rule env.Rule) *ConsumerBoundary {
	return &ConsumerBoundary{store: store, rule: rule}
}

// Consumer reports true: this is the client side.
func (*ConsumerBoundary) Consumer() bool {
	return true
}

// Lookup reads key from the injected store. A key the rule does not allow
// fails with enverr.KindAccessDenied before the store is consulted.
func (b *ConsumerBoundary) Lookup(key string) (string, bool, error) {
	if !b.rule.Allows(key) {
		return "", false, enverr.AccessDenied(key, b.rule.Prefix())
	}
	v, ok := b.store.Lookup(key)
	return v, ok, nil
}
