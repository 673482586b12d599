// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package parse provides typed accessors over the raw string environment.

Each function resolves its key through a resolve.Resolver on every call
(no caching: two call sites with different defaults legitimately observe
different results for the same absent key) and then applies one parsing
strategy. The strategies split into two families:

Soft parsers — [Bool] and [Array] — always have a sensible zero default
(false, empty list) and never reject a present value: a string outside the
truthy token set is simply false, a string of commas is simply an empty
list.

Hard parsers — [Number], [JSON], [URL] and [Enum] — treat a present but
invalid value as a deployment misconfiguration and fail with a kind-tagged
error embedding the offending raw value (enverr.KindNotANumber and
friends). Absent keys fail too ([Number] excepted, which yields 0), unless
the ...Or variant supplies a default.

All parsers propagate the resolver's own failures unchanged, so on the
client boundary a non-public key fails with AccessDenied before any
parsing happens.
*/
package parse
