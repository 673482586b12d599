// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package escape

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/pageenv-core/env"
)

// assertScriptSafe fails if the serialized form contains any character that
// could break out of an inline <script> element.
func assertScriptSafe(t *testing.T, serialized string) {
	t.Helper()
	assert.NotContains(t, serialized, "<")
	assert.NotContains(t, serialized, ">")
	assert.NotContains(t, serialized, "&")
	assert.NotContains(t, serialized, "'")
}

// decode parses the escaped output back into a plain map. The numeric
// escapes are valid JSON string escapes, so a standard decoder reverses
// them exactly.
func decode(t *testing.T, serialized string) map[string]string {
	t.Helper()
	var m map[string]string
	require.NoError(t, json.Unmarshal([]byte(serialized), &m))
	return m
}

func TestJSON_EscapesHostileValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{"script close tag", "</script><script>alert(1)</script>"},
		{"open angle bracket", "a < b"},
		{"close angle bracket", "a > b"},
		{"ampersand", "a && b"},
		{"single quote", "it's a value"},
		{"quote breakout attempt", "'-alert(1)-'"},
		{"all four characters", "<>&'"},
		{"html entity lookalike", "&lt;script&gt;"},
		{"control characters", "line1\nline2\ttabbed"},
		{"unicode", "héllo wörld 日本語"},
		{"empty string", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := JSON(env.Map{"NEXT_PUBLIC_VALUE": tt.value})

			assertScriptSafe(t, out)
			assert.Equal(t, tt.value, decode(t, out)["NEXT_PUBLIC_VALUE"], "round trip must be exact")
		})
	}
}

func TestJSON_EscapesHostileKeys(t *testing.T) {
	t.Parallel()

	out := JSON(env.Map{"NEXT_PUBLIC_<BAD>&'": "v"})

	assertScriptSafe(t, out)
	assert.Equal(t, "v", decode(t, out)["NEXT_PUBLIC_<BAD>&'"])
}

func TestJSON_UsesNumericEscapes(t *testing.T) {
	t.Parallel()

	out := JSON(env.Map{"K": "<>&'"})

	assert.Contains(t, out, `\u003c`)
	assert.Contains(t, out, `\u003e`)
	assert.Contains(t, out, `\u0026`)
	assert.Contains(t, out, `\u0027`)
}

func TestJSON_TotalOverDegenerateInputs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{}", JSON(nil))
	assert.Equal(t, "{}", JSON(env.Map{}))
}

func TestJSON_IsSingleLineObjectLiteral(t *testing.T) {
	t.Parallel()

	out := JSON(env.Map{"A": "1", "B": "line\nbreak"})

	assert.True(t, strings.HasPrefix(out, "{"))
	assert.True(t, strings.HasSuffix(out, "}"))
	assert.NotContains(t, out, "\n", "newlines must be escaped, the artifact is a one-line statement")
}

func TestJSON_ManyEntriesRoundTrip(t *testing.T) {
	t.Parallel()

	vars := env.Map{
		"NEXT_PUBLIC_API_URL":  "https://api.example.com?a=1&b=2",
		"NEXT_PUBLIC_FLAGS":    "a,b,c",
		"NEXT_PUBLIC_MOTD":     "<b>it's launch day & we're live</b>",
		"NEXT_PUBLIC_EMPTY":    "",
		"NEXT_PUBLIC_JSON_ISH": `{"nested": "</script>"}`,
	}

	out := JSON(vars)

	assertScriptSafe(t, out)
	assert.Equal(t, map[string]string(vars), decode(t, out))
}
