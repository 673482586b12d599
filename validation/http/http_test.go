// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateHeaderName(t *testing.T) {
	t.Parallel()

	valid := []string{
		"X-Nonce",
		"Content-Security-Policy",
		"x-csp-nonce",
		"X_Header",
	}
	for _, name := range valid {
		name := name
		t.Run("valid "+name, func(t *testing.T) {
			t.Parallel()
			assert.NoError(t, ValidateHeaderName(name))
		})
	}

	invalid := []struct {
		name    string
		value   string
		message string
	}{
		{"empty", "", "cannot be empty"},
		{"crlf injection", "X-Nonce\r\nSet-Cookie: pwned", "invalid characters"},
		{"space", "X Nonce", "invalid characters"},
		{"colon", "X-Nonce:", "invalid characters"},
		{"control character", "X-Nonce\x00", "invalid characters"},
		{"too long", strings.Repeat("a", 257), "maximum length"},
	}
	for _, tt := range invalid {
		tt := tt
		t.Run("invalid "+tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateHeaderName(tt.value)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestValidateHeaderValue(t *testing.T) {
	t.Parallel()

	t.Run("plain value", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, ValidateHeaderValue("abc123=="))
	})

	invalid := []struct {
		name    string
		value   string
		message string
	}{
		{"empty", "", "cannot be empty"},
		{"crlf injection", "value\r\nSet-Cookie: pwned", "control characters"},
		{"null byte", "value\x00", "control characters"},
		{"too long", strings.Repeat("a", 8193), "maximum length"},
	}
	for _, tt := range invalid {
		tt := tt
		t.Run("invalid "+tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateHeaderValue(tt.value)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestValidateNonce(t *testing.T) {
	t.Parallel()

	valid := []string{
		"r4nd0mN0nc3",
		"YWJjZGVmZ2hpamtsbW5vcA==",
		"a-b_c",
		"x",
	}
	for _, nonce := range valid {
		nonce := nonce
		t.Run("valid "+nonce, func(t *testing.T) {
			t.Parallel()
			assert.NoError(t, ValidateNonce(nonce))
		})
	}

	invalid := []struct {
		name    string
		value   string
		message string
	}{
		{"empty", "", "cannot be empty"},
		{"double quote breakout", `abc"def`, "base64 characters"},
		{"angle bracket", "abc<script>", "base64 characters"},
		{"space", "abc def", "base64 characters"},
		{"misplaced padding", "=abc", "base64 characters"},
		{"too long", strings.Repeat("a", 257), "maximum length"},
	}
	for _, tt := range invalid {
		tt := tt
		t.Run("invalid "+tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateNonce(tt.value)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
