// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package resolve provides the isomorphic environment accessor.

The same application code runs on two boundaries with very different views
of the environment: the server sees the full process table, the client sees
only the frozen store the injected artifact created. A [Boundary] is the
explicit capability describing which side the code is running on and how to
read a variable there; [ServerBoundary] wraps an env.Source, and
[ConsumerBoundary] wraps a clientenv.Store plus the visibility rule it
enforces.

A [Resolver] layers the accessor semantics on top:

	r := resolve.New(resolve.NewServerBoundary(&env.OSSource{}))

	v, ok, err := r.Lookup("NEXT_PUBLIC_API_URL") // absent vs empty
	v, err = r.Get("NEXT_PUBLIC_API_URL", "https://fallback") // default on absent only
	v, err = r.Require("DATABASE_URL")            // MissingRequired on absent
	v, ok = r.ServerOnly("DATABASE_URL")          // never fails, absent on the client

On a consumer boundary, reading a key the rule does not allow fails with
enverr.KindAccessDenied; the same rule value must be shared with the filter
that produced the injected map, otherwise a variable could be injected yet
unreadable or readable yet never injected.

Because the boundary is an injected capability rather than a check against
an ambient global, both sides are exercised directly in unit tests.
*/
package resolve
