// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package enverr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	t.Run("extracts kind from a tagged error", func(t *testing.T) {
		t.Parallel()

		err := MissingRequired("API_URL")
		require.Equal(t, KindMissingRequired, KindOf(err))
	})

	t.Run("extracts kind through wrapping", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("rendering page: %w", AccessDenied("SECRET", "NEXT_PUBLIC_"))
		require.Equal(t, KindAccessDenied, KindOf(err))
	})

	t.Run("returns KindUnknown for plain errors", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	})

	t.Run("returns KindUnknown for nil", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, KindUnknown, KindOf(nil))
	})
}

func TestIsKind(t *testing.T) {
	t.Parallel()

	err := NotANumber("PORT", "abc")
	assert.True(t, IsKind(err, KindNotANumber))
	assert.False(t, IsKind(err, KindInvalidJSON))
	assert.False(t, IsKind(errors.New("plain"), KindNotANumber))
}

func TestMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		kind     Kind
		key      string
		contains []string
	}{
		{
			name:     "access denied names key and remediations",
			err:      AccessDenied("SECRET", "NEXT_PUBLIC_"),
			kind:     KindAccessDenied,
			key:      "SECRET",
			contains: []string{`"SECRET"`, "NEXT_PUBLIC_", "MakePublic", "server"},
		},
		{
			name:     "missing required names key",
			err:      MissingRequired("API_URL"),
			kind:     KindMissingRequired,
			key:      "API_URL",
			contains: []string{`"API_URL"`, "not set"},
		},
		{
			name:     "missing enum lists allowed values",
			err:      MissingEnum("STAGE", []string{"dev", "staging", "prod"}),
			kind:     KindMissingRequired,
			key:      "STAGE",
			contains: []string{`"STAGE"`, "dev", "staging", "prod"},
		},
		{
			name:     "not a number embeds raw value",
			err:      NotANumber("PORT", "abc"),
			kind:     KindNotANumber,
			key:      "PORT",
			contains: []string{`"PORT"`, `"abc"`},
		},
		{
			name:     "invalid json embeds raw value",
			err:      InvalidJSON("FLAGS", "{oops", errors.New("unexpected end")),
			kind:     KindInvalidJSON,
			key:      "FLAGS",
			contains: []string{`"FLAGS"`, `"{oops"`, "unexpected end"},
		},
		{
			name:     "invalid url embeds raw value",
			err:      InvalidURL("ENDPOINT", "not a url", nil),
			kind:     KindInvalidURL,
			key:      "ENDPOINT",
			contains: []string{`"ENDPOINT"`, `"not a url"`},
		},
		{
			name:     "invalid enum lists raw value and allowed set",
			err:      InvalidEnumValue("STAGE", "qa", []string{"dev", "staging", "prod"}),
			kind:     KindInvalidEnumValue,
			key:      "STAGE",
			contains: []string{`"qa"`, "dev", "staging", "prod"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Error(t, tt.err)

			var ee *Error
			require.ErrorAs(t, tt.err, &ee)
			assert.Equal(t, tt.kind, ee.Kind())
			assert.Equal(t, tt.key, ee.Key())

			for _, want := range tt.contains {
				assert.Contains(t, tt.err.Error(), want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("unexpected EOF")
	err := InvalidJSON("FLAGS", "{", cause)
	require.ErrorIs(t, err, cause)
}
