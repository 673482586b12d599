// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package inject produces the artifact that publishes public environment
variables to the browser.

An [Injector] snapshots its environment table, filters it through the
visibility rule, and serializes the result as one JavaScript statement:

	window.__ENV = Object.freeze({"NEXT_PUBLIC_FOO":"bar"});

The embedded JSON is script-safe (escape package) and the assignment
freezes the object, so the client-side store is immutable from the moment
it exists. Filtering happens freshly on every request; variables promoted
at startup or written by the host runtime are picked up without restarts.

Three consumption shapes cover the hosting spectrum:

  - [Injector.Payload] returns the bare statement, for hosts that place
    scripts themselves.
  - [Injector.ScriptTag] returns a ready inline <script> element as
    template.HTML for html/template layouts, with the CSP nonce resolved
    against the request context.
  - [Injector.Middleware] wraps an http.Handler and rewrites every HTML
    response it produces, parsing the document and inserting the element
    into <head>. Rewritten responses are marked Cache-Control: no-store,
    since their content is now request-time state.

Emission strategy: by default the element is appended at the end of
<head>; the [Unmanaged] option moves it to the start, guaranteeing it
executes before third-party instrumentation that must observe the store
during its own initialization.

Nonce resolution accepts a literal ([StaticNonce]) or a request header
lookup ([HeaderNonce]). One failure mode is deliberately non-fatal: a
header lookup outside any request scope ([ErrNoRequestScope]) degrades to
emitting without a nonce. Everything else — a malformed header name in
configuration, a malformed nonce value — propagates.
*/
package inject
