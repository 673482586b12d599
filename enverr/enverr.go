// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package enverr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an environment access or parse failure.
type Kind string

const (
	// KindAccessDenied marks a client-side read of a variable that is not public.
	KindAccessDenied Kind = "access_denied"
	// KindMissingRequired marks a required variable that resolved to no value.
	KindMissingRequired Kind = "missing_required"
	// KindNotANumber marks a value that could not be parsed as a finite number.
	KindNotANumber Kind = "not_a_number"
	// KindInvalidJSON marks a value that could not be decoded as JSON.
	KindInvalidJSON Kind = "invalid_json"
	// KindInvalidURL marks a value that is not a structurally valid URL.
	KindInvalidURL Kind = "invalid_url"
	// KindInvalidEnumValue marks a value outside the allowed enum set.
	KindInvalidEnumValue Kind = "invalid_enum_value"
	// KindUnknown is returned by KindOf for errors that carry no kind.
	KindUnknown Kind = ""
)

// Error tags a failure with a Kind and the environment variable key involved.
// It supports errors.Is and errors.As through Unwrap.
type Error struct {
	kind Kind
	key  string
	msg  string
	err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.err
}

// Kind returns the error's classification.
func (e *Error) Kind() Kind {
	return e.kind
}

// Key returns the environment variable key the error refers to.
func (e *Error) Key() string {
	return e.key
}

// KindOf extracts the Kind from an error chain.
// It returns KindUnknown when the chain contains no *Error.
func KindOf(err error) Kind {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.kind
	}
	return KindUnknown
}

// IsKind reports whether the error chain contains an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// AccessDenied builds the client-side gate failure for a non-public key.
// The message names the key and the remediation options required by the
// access model: adopt the public prefix, promote the variable, or move the
// read to the server.
func AccessDenied(key, prefix string) error {
	return &Error{
		kind: KindAccessDenied,
		key:  key,
		msg: fmt.Sprintf(
			"environment variable %q is not available on the client: rename it with the %q prefix, promote it with promote.MakePublic during server startup, or read it on the server instead",
			key, prefix),
	}
}

// MissingRequired builds the failure for a required variable with no value.
func MissingRequired(key string) error {
	return &Error{
		kind: KindMissingRequired,
		key:  key,
		msg:  fmt.Sprintf("required environment variable %q is not set", key),
	}
}

// MissingEnum builds the missing-required failure for an enum variable,
// listing the allowed values.
func MissingEnum(key string, allowed []string) error {
	return &Error{
		kind: KindMissingRequired,
		key:  key,
		msg: fmt.Sprintf("required environment variable %q is not set (allowed values: %s)",
			key, strings.Join(allowed, ", ")),
	}
}

// NotANumber builds the failure for a value that is not a finite number.
// The raw value is embedded in the message.
func NotANumber(key, raw string) error {
	return &Error{
		kind: KindNotANumber,
		key:  key,
		msg:  fmt.Sprintf("environment variable %q is not a number: %q", key, raw),
	}
}

// InvalidJSON builds the failure for a value that does not decode as JSON.
// The raw value is embedded in the message; cause carries the decoder error.
func InvalidJSON(key, raw string, cause error) error {
	return &Error{
		kind: KindInvalidJSON,
		key:  key,
		msg:  fmt.Sprintf("environment variable %q is not valid JSON: %q", key, raw),
		err:  cause,
	}
}

// InvalidURL builds the failure for a value that is not a structurally valid
// absolute URL. The raw value is embedded in the message.
func InvalidURL(key, raw string, cause error) error {
	return &Error{
		kind: KindInvalidURL,
		key:  key,
		msg:  fmt.Sprintf("environment variable %q is not a valid URL: %q", key, raw),
		err:  cause,
	}
}

// InvalidEnumValue builds the failure for a value outside the allowed set.
// Both the raw value and the full allowed set appear in the message.
func InvalidEnumValue(key, raw string, allowed []string) error {
	return &Error{
		kind: KindInvalidEnumValue,
		key:  key,
		msg: fmt.Sprintf("environment variable %q has value %q, expected one of: %s",
			key, raw, strings.Join(allowed, ", ")),
	}
}
