// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package escape

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/stacklok/pageenv-core/env"
)

// JSON serializes vars as a JSON object literal in which the characters
// '<', '>', '&' and '\'' never appear raw: the first three are emitted as
// \u003c, \u003e and \u0026 by the encoder's HTML escaping,
// and single quotes are rewritten to \u0027 over the whole serialized
// text afterwards.
//
// The result is safe to embed verbatim inside a <script> element: no value
// can close the element early, open a new tag, or break out of surrounding
// single- or double-quoted context. Decoding the result as JSON reproduces
// every value exactly.
//
// Serialization of a string map cannot fail, so JSON is total: it returns a
// valid object literal for every input, including nil ("{}").
func JSON(vars env.Map) string {
	if vars == nil {
		vars = env.Map{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// SetEscapeHTML is the default, set explicitly because the security
	// contract of this package depends on it.
	enc.SetEscapeHTML(true)
	if err := enc.Encode(vars); err != nil {
		// unreachable for a string-to-string map
		panic("escape: encoding a string map failed: " + err.Error())
	}

	out := strings.TrimSuffix(buf.String(), "\n")
	return strings.ReplaceAll(out, "'", `\u0027`)
}
