// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/pageenv-core/audit"
	"github.com/stacklok/pageenv-core/env"
)

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir which is unavailable before Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, env.DefaultPrefix, cfg.Prefix)
	assert.Equal(t, LogInfo, cfg.LogLevel)
	assert.Nil(t, cfg.Nonce)
	assert.False(t, cfg.DisableManagedEmission)
	require.NoError(t, cfg.Validate())
}

func TestFromFile(t *testing.T) {
	t.Parallel()

	t.Run("full document", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, `
prefix: APP_PUBLIC_
nonce:
  header: X-CSP-Nonce
disable_managed_emission: true
script_attributes:
  id: pageenv
log_level: silent
promote:
  - API_URL
  - FEATURE_FLAGS
audit:
  rules:
    - name: internal-hostname
      expr: value.contains(".corp.internal")
`)

		cfg, err := FromFile(path)
		require.NoError(t, err)

		assert.Equal(t, "APP_PUBLIC_", cfg.Prefix)
		assert.Equal(t, "X-CSP-Nonce", cfg.Nonce.Header)
		assert.True(t, cfg.DisableManagedEmission)
		assert.Equal(t, "pageenv", cfg.ScriptAttributes["id"])
		assert.Equal(t, LogSilent, cfg.LogLevel)
		assert.Equal(t, []string{"API_URL", "FEATURE_FLAGS"}, cfg.Promote)
		require.NotNil(t, cfg.Audit)
		assert.Len(t, cfg.Audit.Rules, 1)
	})

	t.Run("partial document keeps defaults", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "promote:\n  - API_URL\n")

		cfg, err := FromFile(path)
		require.NoError(t, err)

		assert.Equal(t, env.DefaultPrefix, cfg.Prefix)
		assert.Equal(t, LogInfo, cfg.LogLevel)
		assert.Equal(t, []string{"API_URL"}, cfg.Promote)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := FromFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading config file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "prefix: [unclosed\n")
		_, err := FromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing config file")
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("unknown field is rejected", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "prefiks: OOPS_\n")
		_, err := FromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema validation failed")
	})

	t.Run("bad log level is rejected", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "log_level: verbose\n")
		_, err := FromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema validation failed")
	})

	t.Run("audit rule without expr is rejected", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "audit:\n  rules:\n    - name: incomplete\n")
		_, err := FromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema validation failed")
	})

	t.Run("nonce value and header are mutually exclusive", func(t *testing.T) {
		t.Parallel()
		cfg := Default()
		cfg.Nonce = &Nonce{Value: "abc", Header: "X-Nonce"}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mutually exclusive")
	})

	t.Run("several violations come back numbered", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "log_level: verbose\nbogus_field: 1\n")
		_, err := FromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1.")
		assert.Contains(t, err.Error(), "2.")
	})
}

func TestDiscover(t *testing.T) { //nolint:paralleltest // Changes the working directory
	t.Run("working directory wins", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{}\n"), 0o600))
		chdir(t, dir)

		path, err := Discover()
		require.NoError(t, err)
		assert.Equal(t, FileName, path)
	})

	t.Run("no file anywhere yields empty path", func(t *testing.T) {
		chdir(t, t.TempDir())

		path, err := Discover()
		require.NoError(t, err)
		assert.Empty(t, path)
	})
}

func TestLoad(t *testing.T) { //nolint:paralleltest // Changes the working directory
	t.Run("falls back to defaults without a file", func(t *testing.T) {
		chdir(t, t.TempDir())

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, env.DefaultPrefix, cfg.Prefix)
	})

	t.Run("loads the discovered file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, FileName), []byte("prefix: APP_PUBLIC_\n"), 0o600))
		chdir(t, dir)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "APP_PUBLIC_", cfg.Prefix)
	})
}

func TestOptionTranslation(t *testing.T) {
	t.Parallel()

	t.Run("rule carries the prefix", func(t *testing.T) {
		t.Parallel()
		cfg := Default()
		cfg.Prefix = "APP_PUBLIC_"
		assert.True(t, cfg.Rule().Allows("APP_PUBLIC_X"))
		assert.False(t, cfg.Rule().Allows("NEXT_PUBLIC_X"))
	})

	t.Run("auditor compiles defaults plus operator rules", func(t *testing.T) {
		t.Parallel()
		cfg := Default()
		cfg.Audit = &Audit{Rules: []audit.Rule{
			{Name: "internal-hostname", Expr: `value.contains(".corp.internal")`},
		}}

		auditor, err := cfg.Auditor()
		require.NoError(t, err)

		// a default rule still fires
		matched, err := auditor.Check("NEXT_PUBLIC_API_TOKEN", "x")
		require.NoError(t, err)
		assert.Contains(t, matched, "secret-looking-key")

		// and so does the operator rule
		matched, err = auditor.Check("NEXT_PUBLIC_API_URL", "https://db.corp.internal")
		require.NoError(t, err)
		assert.Contains(t, matched, "internal-hostname")
	})

	t.Run("disabling defaults leaves only operator rules", func(t *testing.T) {
		t.Parallel()
		cfg := Default()
		cfg.Audit = &Audit{
			DisableDefaultRules: true,
			Rules: []audit.Rule{
				{Name: "internal-hostname", Expr: `value.contains(".corp.internal")`},
			},
		}

		auditor, err := cfg.Auditor()
		require.NoError(t, err)

		matched, err := auditor.Check("NEXT_PUBLIC_API_TOKEN", "x")
		require.NoError(t, err)
		assert.Empty(t, matched)
	})

	t.Run("inject options cover the configured surface", func(t *testing.T) {
		t.Parallel()
		cfg := Default()
		cfg.Nonce = &Nonce{Value: "abc123"}
		cfg.DisableManagedEmission = true
		cfg.ScriptAttributes = map[string]string{"id": "pageenv"}

		auditor, err := cfg.Auditor()
		require.NoError(t, err)

		opts := cfg.InjectOptions(auditor)
		// rule + nonce + unmanaged + auditor + one attribute
		assert.Len(t, opts, 5)
	})

	t.Run("promote options honor silent", func(t *testing.T) {
		t.Parallel()
		cfg := Default()
		cfg.LogLevel = LogSilent

		opts := cfg.PromoteOptions(nil)
		// rule + silent
		assert.Len(t, opts, 2)
	})

	t.Run("invalid operator audit rule surfaces at compile", func(t *testing.T) {
		t.Parallel()
		cfg := Default()
		cfg.Audit = &Audit{Rules: []audit.Rule{
			{Name: "broken", Expr: "value +++ key"},
		}}

		_, err := cfg.Auditor()
		require.Error(t, err)
	})
}
