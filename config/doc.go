// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package config loads the file configuration surface of this module.

A pageenv.yaml describes everything an embedding server can tune: the
visibility prefix, the nonce source (a literal or a request header), the
emission strategy, extra script attributes, diagnostics verbosity, the
startup promotion list, and operator audit rules:

	prefix: NEXT_PUBLIC_
	nonce:
	  header: X-CSP-Nonce
	disable_managed_emission: false
	log_level: info
	promote:
	  - API_URL
	audit:
	  rules:
	    - name: internal-hostname
	      expr: value.contains(".corp.internal")

Documents are YAML-parsed and then validated against an embedded JSON
Schema, so a typo fails at startup with a numbered list of violations
instead of being silently ignored. [Discover] finds the file in the
working directory first, then under the XDG config home; [Load] combines
discovery, parsing and validation and falls back to defaults when no file
exists.

The Options methods translate a validated document into the functional
options of the inject and promote packages, so a composition root is:

	cfg, err := config.Load()
	auditor, err := cfg.Auditor()
	injector := inject.New(source, cfg.InjectOptions(auditor)...)
	err = promote.MakePublic(source, cfg.Promote, cfg.PromoteOptions(auditor)...)
*/
package config
