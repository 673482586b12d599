// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package http provides validation for the HTTP surface of the injector.

The nonce configuration names a request header to read, and the value read
from it ends up inside a script tag attribute. Both are injection vectors
if left unchecked: a malformed header name is a misconfiguration that must
fail loudly (it is never the "no request in scope" degrade case), and a
nonce value containing quotes or angle brackets could break out of the
attribute it is embedded in.

Header checks delegate to golang.org/x/net/http/httpguts, the same
validation Go's own HTTP/2 implementation uses. Nonce values are held to
the CSP2 grammar: base64 characters only.
*/
package http
