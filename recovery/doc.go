// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package recovery provides an HTTP middleware that recovers from panics in
handlers, logs them through the logger package, and converts them to 500
responses so a single bad request cannot take the server down.

Compose it outside the injector middleware:

	handler := recovery.Middleware(injector.Middleware(mux))
*/
package recovery
