// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package recovery

import (
	"net/http"
	"runtime/debug"

	"github.com/stacklok/pageenv-core/logger"
)

// Middleware is an HTTP middleware that recovers from panics.
// When a panic occurs, it logs the panic value with a stack trace and
// returns a 500 Internal Server Error response to the client, preventing
// the panic from crashing the server.
//
// An accessor failure that a handler chose not to catch (a missing
// required variable, a denied client read) surfaces as an error return,
// not a panic; this guard is for genuine programming errors in handlers
// composing the injector.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Errorw("panic while serving request",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
