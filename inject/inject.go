// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package inject

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/stacklok/pageenv-core/audit"
	"github.com/stacklok/pageenv-core/clientenv"
	"github.com/stacklok/pageenv-core/env"
	"github.com/stacklok/pageenv-core/escape"
	"github.com/stacklok/pageenv-core/logging"
)

// Attr is one extra attribute to carry on the emitted script tag,
// passed through to the page unchanged (an id for instrumentation,
// a data- marker, and so on).
type Attr struct {
	Name  string
	Value string
}

type config struct {
	rule      env.Rule
	nonce     NonceSource
	auditor   *audit.Auditor
	log       *slog.Logger
	unmanaged bool
	attrs     []Attr
}

// Option configures an Injector.
type Option func(*config)

// WithRule sets the visibility rule used to filter the environment before
// serialization. It must be the same rule value the client-side resolver
// gates with. The default rule uses env.DefaultPrefix.
func WithRule(rule env.Rule) Option {
	return func(c *config) {
		c.rule = rule
	}
}

// WithNonce sets the source of the per-request CSP nonce. Without one,
// the script tag carries no nonce attribute.
func WithNonce(source NonceSource) Option {
	return func(c *config) {
		c.nonce = source
	}
}

// WithAuditor enables exposure auditing: before each serialization, the
// public map is checked against the auditor's rules and matches are
// logged as warnings. Findings never change what is serialized.
func WithAuditor(a *audit.Auditor) Option {
	return func(c *config) {
		c.auditor = a
	}
}

// WithLogger sets the logger for per-request diagnostics. The default is
// a logging.New JSON logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

// Unmanaged selects the plain emission strategy: the middleware places
// the script at the start of <head> so it executes before any
// third-party instrumentation loaded later in the document. The default,
// managed strategy appends it at the end of <head>.
func Unmanaged() Option {
	return func(c *config) {
		c.unmanaged = true
	}
}

// WithAttr adds an extra attribute to the emitted script tag.
func WithAttr(name, value string) Option {
	return func(c *config) {
		c.attrs = append(c.attrs, Attr{Name: name, Value: value})
	}
}

// Injector serializes the public subset of an environment table into the
// artifact that creates the client-side store. It is stateless between
// calls (every payload re-snapshots and re-filters the table) and safe
// for concurrent use.
type Injector struct {
	source env.Source
	cfg    config
}

// New returns an Injector over the given environment table.
func New(source env.Source, opts ...Option) *Injector {
	cfg := config{log: logging.New()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Injector{source: source, cfg: cfg}
}

// Rule returns the visibility rule this injector filters with, so the
// composition root can hand the identical value to the client resolver.
func (i *Injector) Rule() env.Rule {
	return i.cfg.rule
}

// publicMap snapshots the table and filters it, freshly on every call.
// Promotion or host-runtime writes between requests are picked up here.
func (i *Injector) publicMap() env.Map {
	public := i.source.Snapshot().Public(i.cfg.rule)

	if i.cfg.auditor != nil {
		findings, err := i.cfg.auditor.Findings(public)
		if err != nil {
			i.cfg.log.Error("exposure audit failed", "error", err)
		}
		for _, f := range findings {
			i.cfg.log.Warn("public variable looks like a secret",
				"key", f.Key, "rule", f.Rule)
		}
	}
	return public
}

// Payload returns the artifact's JavaScript: one statement assigning the
// frozen public variable object to the page global. The embedded JSON is
// script-safe (see the escape package) and the statement is a single
// line. Payload cannot fail.
func (i *Injector) Payload() string {
	return fmt.Sprintf("window.%s = Object.freeze(%s);",
		clientenv.GlobalVar, escape.JSON(i.publicMap()))
}

// Store materializes the client-side store exactly as the artifact would:
// a frozen deep copy of the current public map. Server-side rendering
// uses it to run client-destined code in the same process.
func (i *Injector) Store() *clientenv.Store {
	return clientenv.New(i.publicMap())
}

// ScriptTag builds the inline script element carrying the artifact,
// resolving the nonce against ctx. If the nonce lookup fails because no
// request is in scope, the tag is emitted without a nonce; any other
// nonce failure propagates. The result is template.HTML so html/template
// layouts can embed it directly — the unmanaged emission path for hosts
// that do their own templating.
func (i *Injector) ScriptTag(ctx context.Context) (template.HTML, error) {
	var b strings.Builder
	b.WriteString("<script")

	if i.cfg.nonce != nil {
		nonce, err := i.cfg.nonce.Nonce(ctx)
		switch {
		case errors.Is(err, ErrNoRequestScope):
			i.cfg.log.Debug("nonce lookup outside request scope, emitting without nonce")
		case err != nil:
			return "", err
		case nonce != "":
			fmt.Fprintf(&b, " nonce=%q", nonce)
		}
	}

	for _, attr := range i.cfg.attrs {
		fmt.Fprintf(&b, ` %s="%s"`, attr.Name, template.HTMLEscapeString(attr.Value))
	}

	b.WriteString(">")
	b.WriteString(i.Payload())
	b.WriteString("</script>")

	//nolint:gosec // the payload is script-safe by construction
	return template.HTML(b.String()), nil
}
