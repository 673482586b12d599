// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package promote widens the public variable set at startup.

[MakePublic] copies selected variables under their public-prefixed names
so the filter picks them up on later serializations, without renaming
anything in the deployment:

	source := &env.OSSource{}
	if err := promote.MakePublic(source, []string{"API_URL", "FEATURE_FLAGS"}); err != nil {
		log.Fatal(err)
	}

Promotion is non-destructive (the original key keeps its entry), tolerant
(an absent key or an already-public key is a logged skip, not a failure)
and idempotent (re-promoting a key is a no-op). Diagnostics go through the
logger package at info level for successful copies and warn level for
skips; [Silent] suppresses them entirely for quiet production logs.

MakePublic must finish before the process starts serving requests. That
ordering is the caller's responsibility: the environment table is shared
state, and nothing here locks request handling out of it.
*/
package promote
