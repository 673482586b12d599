// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package inject

import (
	"context"
	"errors"
	"fmt"

	validhttp "github.com/stacklok/pageenv-core/validation/http"
)

// ErrNoRequestScope reports that a request-scoped nonce lookup ran outside
// any request. The injector treats this one condition as "no nonce
// available" and emits the script without a nonce attribute; every other
// nonce failure propagates.
var ErrNoRequestScope = errors.New("no request in scope")

// NonceSource resolves the per-request CSP nonce the script tag should
// carry. Implementations must be safe for concurrent use.
type NonceSource interface {
	// Nonce returns the nonce for the current request. An empty string
	// with a nil error means "no nonce"; ErrNoRequestScope means the
	// lookup needed a request and none was in scope.
	Nonce(ctx context.Context) (string, error)
}

type staticNonce string

// StaticNonce returns a NonceSource that always yields the given literal
// token. The token is validated on every resolution, so a malformed
// literal surfaces as an error rather than a broken script attribute.
func StaticNonce(token string) NonceSource {
	return staticNonce(token)
}

func (s staticNonce) Nonce(context.Context) (string, error) {
	if err := validhttp.ValidateNonce(string(s)); err != nil {
		return "", fmt.Errorf("static nonce: %w", err)
	}
	return string(s), nil
}

type headerNonce string

// HeaderNonce returns a NonceSource that reads the nonce from the named
// request header, the shape security middlewares use to hand a
// per-request CSP nonce downstream.
//
// A malformed header name is a configuration mistake and always fails. An
// out-of-scope lookup fails with ErrNoRequestScope, which the injector
// degrades to "no nonce". An absent header simply means no nonce; a
// present but malformed value fails.
func HeaderNonce(headerKey string) NonceSource {
	return headerNonce(headerKey)
}

func (h headerNonce) Nonce(ctx context.Context) (string, error) {
	if err := validhttp.ValidateHeaderName(string(h)); err != nil {
		return "", fmt.Errorf("nonce header %q: %w", string(h), err)
	}

	req := requestFrom(ctx)
	if req == nil {
		return "", fmt.Errorf("nonce header %q: %w", string(h), ErrNoRequestScope)
	}

	value := req.Header.Get(string(h))
	if value == "" {
		return "", nil
	}
	if err := validhttp.ValidateNonce(value); err != nil {
		return "", fmt.Errorf("nonce header %q: %w", string(h), err)
	}
	return value, nil
}
