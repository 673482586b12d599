// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package inject

import (
	"context"
	"net/http"
)

type requestKey struct{}

// WithRequest returns a context carrying the current request, making
// header-based nonce resolution possible. The middleware does this for
// every request it handles; handlers composing the injector manually must
// do it themselves.
func WithRequest(ctx context.Context, req *http.Request) context.Context {
	return context.WithValue(ctx, requestKey{}, req)
}

// requestFrom extracts the carried request, or nil when the context is
// outside any request scope.
func requestFrom(ctx context.Context) *http.Request {
	req, _ := ctx.Value(requestKey{}).(*http.Request)
	return req
}
