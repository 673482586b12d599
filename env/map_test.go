// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnviron(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		environ []string
		want    Map
	}{
		{
			name:    "plain entries",
			environ: []string{"FOO=bar", "BAZ=qux"},
			want:    Map{"FOO": "bar", "BAZ": "qux"},
		},
		{
			name:    "value containing equals sign",
			environ: []string{"DSN=postgres://u:p@host?sslmode=disable"},
			want:    Map{"DSN": "postgres://u:p@host?sslmode=disable"},
		},
		{
			name:    "empty value preserved",
			environ: []string{"EMPTY="},
			want:    Map{"EMPTY": ""},
		},
		{
			name:    "malformed entries ignored",
			environ: []string{"NO_EQUALS", "=no_key", "OK=1"},
			want:    Map{"OK": "1"},
		},
		{
			name:    "nil environ",
			environ: nil,
			want:    Map{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FromEnviron(tt.environ))
		})
	}
}

func TestMap_Clone(t *testing.T) {
	t.Parallel()

	t.Run("deep copy", func(t *testing.T) {
		t.Parallel()
		original := Map{"A": "1"}
		cp := original.Clone()
		cp["A"] = "2"
		cp["B"] = "3"

		assert.Equal(t, Map{"A": "1"}, original)
	})

	t.Run("nil clones to empty non-nil", func(t *testing.T) {
		t.Parallel()
		var m Map
		cp := m.Clone()
		assert.NotNil(t, cp)
		assert.Empty(t, cp)
	})
}

func TestMap_Public(t *testing.T) {
	t.Parallel()

	full := Map{
		"NEXT_PUBLIC_FOO": "bar",
		"NEXT_PUBLIC_API": "https://api.example.com",
		"SECRET":          "x",
		"DATABASE_URL":    "postgres://localhost",
	}

	t.Run("default rule keeps only prefixed keys", func(t *testing.T) {
		t.Parallel()
		public := full.Public(Rule{})
		assert.Equal(t, Map{
			"NEXT_PUBLIC_FOO": "bar",
			"NEXT_PUBLIC_API": "https://api.example.com",
		}, public)
	})

	t.Run("receiver is not mutated", func(t *testing.T) {
		t.Parallel()
		public := full.Public(Rule{})
		public["NEXT_PUBLIC_FOO"] = "mutated"
		assert.Equal(t, "bar", full["NEXT_PUBLIC_FOO"])
	})

	t.Run("custom prefix", func(t *testing.T) {
		t.Parallel()
		m := Map{"APP_PUBLIC_A": "1", "NEXT_PUBLIC_FOO": "2"}
		public := m.Public(NewRule("APP_PUBLIC_"))
		assert.Equal(t, Map{"APP_PUBLIC_A": "1"}, public)
	})

	t.Run("fresh computation sees later mutation", func(t *testing.T) {
		t.Parallel()
		m := Map{"SECRET": "x"}
		assert.Empty(t, m.Public(Rule{}))

		m["NEXT_PUBLIC_PROMOTED"] = "x"
		assert.Equal(t, Map{"NEXT_PUBLIC_PROMOTED": "x"}, m.Public(Rule{}))
	})
}
