// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package env

import "strings"

// DefaultPrefix is the public-visibility naming convention applied when a
// Rule is not given an explicit prefix. It matches the convention popularized
// by Next.js, so variables already named for that ecosystem work unchanged.
const DefaultPrefix = "NEXT_PUBLIC_"

// Rule is the public-visibility predicate: a key is public when it starts
// with the rule's prefix (case-sensitive). The zero value uses DefaultPrefix.
//
// The same Rule value must gate both sides of the transport: the filter that
// decides what is serialized into the page, and the resolver that decides
// what client-side code may read. Handing each side a different Rule breaks
// the model — a variable could be injected yet unreadable, or readable yet
// never injected.
type Rule struct {
	prefix string
}

// NewRule returns a Rule matching keys with the given prefix. An empty
// prefix yields the default rule.
func NewRule(prefix string) Rule {
	return Rule{prefix: prefix}
}

// Prefix returns the prefix this rule matches on.
func (r Rule) Prefix() string {
	if r.prefix == "" {
		return DefaultPrefix
	}
	return r.prefix
}

// Allows reports whether key satisfies the rule.
func (r Rule) Allows(key string) bool {
	return strings.HasPrefix(key, r.Prefix())
}
