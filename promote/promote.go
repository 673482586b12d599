// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package promote

import (
	"fmt"

	"github.com/stacklok/pageenv-core/audit"
	"github.com/stacklok/pageenv-core/env"
	"github.com/stacklok/pageenv-core/logger"
	"github.com/stacklok/pageenv-core/validation/envname"
)

type config struct {
	rule    env.Rule
	silent  bool
	auditor *audit.Auditor
}

// Option configures MakePublic.
type Option func(*config)

// WithRule sets the visibility rule whose prefix promoted copies adopt.
// The default rule uses env.DefaultPrefix.
func WithRule(rule env.Rule) Option {
	return func(c *config) {
		c.rule = rule
	}
}

// Silent suppresses all promotion diagnostics so production logs stay
// quiet. Failures still surface as returned errors.
func Silent() Option {
	return func(c *config) {
		c.silent = true
	}
}

// WithAuditor enables a warning when a promoted variable matches one of
// the auditor's exposure rules. The promotion still happens: the operator
// asked for it, the auditor only flags it.
func WithAuditor(a *audit.Auditor) Option {
	return func(c *config) {
		c.auditor = a
	}
}

// MakePublic copies each named variable under its public-prefixed name in
// table, so client-side code can read it after the next serialization.
// Per key: an invalid name, an absent key or an already-public key is a
// logged skip, never a failure; a key whose public copy already carries
// the same value is an idempotent no-op. The original entries are left
// untouched.
//
// Call MakePublic during startup, before the first request is served.
// Later calls race with request-time serialization and the behavior is
// undefined.
func MakePublic(table env.Mutable, keys []string, opts ...Option) error {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	for _, key := range keys {
		if err := promoteOne(table, key, cfg); err != nil {
			return err
		}
	}
	return nil
}

func promoteOne(table env.Mutable, key string, cfg *config) error {
	if err := envname.ValidateName(key); err != nil {
		cfg.warnw("skipping promotion of invalid variable name", "key", key, "reason", err.Error())
		return nil
	}

	if cfg.rule.Allows(key) {
		cfg.warnw("variable is already public, skipping promotion", "key", key)
		return nil
	}

	value, ok := table.Lookup(key)
	if !ok {
		cfg.warnw("variable is not set, skipping promotion", "key", key)
		return nil
	}

	target := cfg.rule.Prefix() + key
	if existing, ok := table.Lookup(target); ok && existing == value {
		cfg.warnw("variable is already promoted, skipping", "key", key, "public_key", target)
		return nil
	}

	if cfg.auditor != nil {
		matched, err := cfg.auditor.Check(key, value)
		if err != nil {
			return fmt.Errorf("auditing %q before promotion: %w", key, err)
		}
		for _, rule := range matched {
			cfg.warnw("promoting a variable that looks like a secret", "key", key, "rule", rule)
		}
	}

	if err := table.Set(target, value); err != nil {
		return fmt.Errorf("promoting %q to %q: %w", key, target, err)
	}
	cfg.infow("promoted variable to public", "key", key, "public_key", target)
	return nil
}

func (c *config) infow(msg string, keysAndValues ...any) {
	if c.silent {
		return
	}
	logger.Infow(msg, keysAndValues...)
}

func (c *config) warnw(msg string, keysAndValues ...any) {
	if c.silent {
		return
	}
	logger.Warnw(msg, keysAndValues...)
}
