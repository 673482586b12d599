// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package clientenv models the client-side variable store.

On the browser side, the injected artifact assigns a frozen object of
public variables to the page global named [GlobalVar]. A [Store] is the Go
representation of that object: built exactly once from a snapshot of the
public map (or decoded from the artifact's JSON payload with [FromJSON]),
and immutable afterwards. The store exposes read accessors only; there is
no way to add, remove or change an entry after construction, mirroring the
Object.freeze semantics of the artifact.

A nil *Store is valid and behaves as "the artifact has not executed yet":
every lookup reports absent. The resolve package relies on this to model a
page where dependent code runs before injection.
*/
package clientenv
