// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package audit flags public environment variables that look like secrets.

The visibility rule is purely syntactic: any NEXT_PUBLIC_-prefixed variable
crosses to the browser, including one an operator prefixed by mistake.
This package evaluates CEL predicates over each candidate entry before it
is serialized into a page and reports matches as findings:

	auditor, err := audit.New(audit.DefaultRules()...)
	findings, err := auditor.Findings(publicMap)

Each rule is a CEL expression over two string variables, key and value,
that returns a bool. [DefaultRules] covers the common accidents (secret-ish
key names, PEM blocks, AWS access key IDs, high-entropy token shapes);
operators append their own rules through configuration.

Findings are advisory. They are logged as warnings by the injector and the
promoter but never alter what is exposed: whether a variable is public is
decided by the visibility rule alone, and silently dropping an entry would
break the symmetry between the filter and the client-side gate.

Expressions are compiled once at construction and reused across requests;
compilation enforces length and evaluation-cost limits so a hostile or
runaway rule cannot stall request handling.
*/
package audit
