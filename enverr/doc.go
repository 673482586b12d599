// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package enverr defines the error kinds surfaced by pageenv accessors and parsers.

Every failure that the resolve and parse packages hand back to application
code is an *Error carrying one of a small set of kinds, so callers can branch
on the class of failure without matching message text:

	val, err := parse.Number(r, "PORT")
	if enverr.IsKind(err, enverr.KindNotANumber) {
		// deployment misconfiguration: a value is present but malformed
	}

# Kinds

  - KindAccessDenied: client-side code read a variable that is not public.
    The message names the key and the remediation options.
  - KindMissingRequired: a required variable resolved to no value. An empty
    string is a defined value and never produces this kind.
  - KindNotANumber, KindInvalidJSON, KindInvalidURL, KindInvalidEnumValue:
    a "hard" parser received a defined but invalid value. The message embeds
    the offending raw value, and for enums the allowed set.

# Wrapping

Error implements Unwrap, so errors.Is and errors.As work through any
additional wrapping layers the application adds:

	var ee *enverr.Error
	if errors.As(err, &ee) {
		log.Printf("env failure on %s: %s", ee.Key(), ee.Kind())
	}

These failures are never retried and never partially recovered by this
module; they surface to the immediate caller, which decides whether an
aborted render is acceptable (it usually is: each kind indicates a
misconfiguration that should fail fast, not be papered over).
*/
package enverr
