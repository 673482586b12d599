// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package escape serializes environment maps into script-safe JSON.

The injected artifact embeds a JSON object literal inside an inline
<script> element. Markup rules make that position hostile: a value
containing "</script>" would close the element and hand the rest of the
page to the attacker. [JSON] therefore guarantees that its output never
contains a raw '<', '>', '&' or '\'' character, while remaining a valid
JSON document that decodes back to the exact input values.

The encoder is the standard library's encoding/json with HTML escaping on.
That choice is deliberate: the escaping behavior is documented as part of
encoding/json's contract, which this package's security guarantee leans on.
Decoding elsewhere in the module goes through jsoniter; encoding here does
not.
*/
package escape
