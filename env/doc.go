// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package env models the process environment table and the public-visibility
rule that gates which variables may cross to the client.

# Data model

A [Map] is a plain name/value table in which an absent key is distinct from a
key present with an empty value. The [Source] interface abstracts read access
to such a table, and [Mutable] adds writes; [OSSource] implements both over
the real process environment, while [MapSource] provides an isolated
in-memory table for tests and embedding hosts.

# Visibility

A [Rule] is the predicate deciding which variables are public. The zero value
matches keys prefixed with [DefaultPrefix]:

	rule := env.Rule{}
	public := source.Snapshot().Public(rule)

Public must be called freshly at serialization time, never cached: the
underlying table may gain entries between calls.

# Testing

Production code accepts an env.Source (or env.Mutable), so tests can inject
either a MapSource or the generated mock from the mocks sub-package:

	ctrl := gomock.NewController(t)
	mock := mocks.NewMockSource(ctrl)
	mock.EXPECT().Lookup("MY_VAR").Return("test-value", true)

	result := myFunc(mock)
*/
package env
