// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"fmt"
	"regexp"

	"golang.org/x/net/http/httpguts"
)

// ValidateHeaderName validates that a string is a valid HTTP header name per RFC 7230.
// It checks for CRLF injection, control characters, and ensures RFC token compliance.
func ValidateHeaderName(name string) error {
	if name == "" {
		return fmt.Errorf("header name cannot be empty")
	}

	// Length limit to prevent DoS
	if len(name) > 256 {
		return fmt.Errorf("header name exceeds maximum length of 256 bytes")
	}

	// Use httpguts validation (same as Go's HTTP/2 implementation)
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("invalid HTTP header name: contains invalid characters")
	}

	return nil
}

// ValidateHeaderValue validates that a string is a valid HTTP header value per RFC 7230.
// It checks for CRLF injection and control characters.
func ValidateHeaderValue(value string) error {
	if value == "" {
		return fmt.Errorf("header value cannot be empty")
	}

	// Length limit to prevent DoS (common HTTP server limit)
	if len(value) > 8192 {
		return fmt.Errorf("header value exceeds maximum length of 8192 bytes")
	}

	// Use httpguts validation
	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("invalid HTTP header value: contains control characters")
	}

	return nil
}

// nonceRegex is the CSP2 base64-value grammar. The script tag embeds the
// nonce inside a double-quoted attribute, so anything outside this
// alphabet is rejected rather than escaped.
var nonceRegex = regexp.MustCompile(`^[A-Za-z0-9+/\-_]+={0,2}$`)

// ValidateNonce validates that a string is usable as a CSP nonce attribute
// value: non-empty, bounded, and base64 alphabet only.
func ValidateNonce(nonce string) error {
	if nonce == "" {
		return fmt.Errorf("nonce cannot be empty")
	}

	if len(nonce) > 256 {
		return fmt.Errorf("nonce exceeds maximum length of 256 bytes")
	}

	if !nonceRegex.MatchString(nonce) {
		return fmt.Errorf("invalid nonce: must be base64 characters only")
	}

	return nil
}
