// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/pageenv-core/audit"
	"github.com/stacklok/pageenv-core/env"
	"github.com/stacklok/pageenv-core/inject"
	"github.com/stacklok/pageenv-core/promote"
)

//go:embed schema/pageenv.schema.json
var embeddedSchemaFS embed.FS

const (
	// FileName is the configuration file this package discovers.
	FileName = "pageenv.yaml"

	// appDir is the directory under the XDG config home.
	appDir = "pageenv"
)

// Log levels for the log_level field.
const (
	LogInfo   = "info"
	LogSilent = "silent"
)

// Nonce selects the CSP nonce source: a literal token or a request
// header to read per request. Setting both is a validation error.
type Nonce struct {
	Value  string `json:"value,omitempty" yaml:"value,omitempty"`
	Header string `json:"header,omitempty" yaml:"header,omitempty"`
}

// Audit holds the exposure-guard rule configuration.
type Audit struct {
	// DisableDefaultRules drops the built-in heuristics, leaving only
	// the operator rules below.
	DisableDefaultRules bool `json:"disable_default_rules,omitempty" yaml:"disable_default_rules,omitempty"`

	// Rules are operator-defined CEL predicates over {key, value}.
	Rules []audit.Rule `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// Config is the file configuration surface. The zero value is usable;
// Default fills the conventional defaults.
type Config struct {
	// Prefix is the public-visibility prefix. Empty means env.DefaultPrefix.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`

	// Nonce selects the CSP nonce source. Nil means no nonce.
	Nonce *Nonce `json:"nonce,omitempty" yaml:"nonce,omitempty"`

	// DisableManagedEmission selects the plain emission strategy:
	// the script leads <head> instead of trailing it.
	DisableManagedEmission bool `json:"disable_managed_emission,omitempty" yaml:"disable_managed_emission,omitempty"`

	// ScriptAttributes are extra attributes carried on the script tag.
	ScriptAttributes map[string]string `json:"script_attributes,omitempty" yaml:"script_attributes,omitempty"`

	// LogLevel is LogInfo or LogSilent.
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`

	// Promote lists variables to copy under the public prefix at startup.
	Promote []string `json:"promote,omitempty" yaml:"promote,omitempty"`

	// Audit configures the exposure guard.
	Audit *Audit `json:"audit,omitempty" yaml:"audit,omitempty"`
}

// Default returns the conventional configuration: default prefix, no
// nonce, managed emission, info-level diagnostics, default audit rules.
func Default() *Config {
	return &Config{
		Prefix:   env.DefaultPrefix,
		LogLevel: LogInfo,
	}
}

// FromFile reads, parses and validates a configuration document. The raw
// document is schema-checked before decoding, so unknown fields are caught
// rather than silently dropped by the struct mapping.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // the path comes from discovery or the operator
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if raw != nil {
		if err := validateDocument(raw); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Discover returns the path of the configuration file: FileName in the
// working directory first, then under the XDG config home. An empty path
// with a nil error means no file exists and defaults apply.
func Discover() (string, error) {
	if _, err := os.Stat(FileName); err == nil {
		return FileName, nil
	}

	xdgPath := filepath.Join(xdg.ConfigHome, appDir, FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath, nil
	}

	return "", nil
}

// Load discovers and loads the configuration, falling back to Default
// when no file exists.
func Load() (*Config, error) {
	path, err := Discover()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return FromFile(path)
}

// Validate checks the configuration against the embedded JSON Schema, then
// applies the cross-field rules the schema cannot express. For file-loaded
// configurations, FromFile has already schema-checked the raw document;
// this pass additionally covers programmatically built values.
func (c *Config) Validate() error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return err
	}

	if c.Nonce != nil && c.Nonce.Value != "" && c.Nonce.Header != "" {
		return errors.New("config schema validation failed: nonce.value and nonce.header are mutually exclusive")
	}
	return nil
}

// validateDocument checks a decoded configuration document against the
// embedded JSON Schema.
func validateDocument(doc map[string]any) error {
	schemaData, err := embeddedSchemaFS.ReadFile("schema/pageenv.schema.json")
	if err != nil {
		return fmt.Errorf("failed to read embedded schema: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaData),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("config schema validation failed: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return formatNumberedErrors("config schema validation failed", msgs)
	}
	return nil
}

// formatNumberedErrors formats a list of messages as a single error with a numbered list.
func formatNumberedErrors(prefix string, msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	if len(msgs) == 1 {
		return fmt.Errorf("%s: %s", prefix, msgs[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s with %d errors:\n", prefix, len(msgs))
	for i, msg := range msgs {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, msg)
	}
	return errors.New(strings.TrimSuffix(b.String(), "\n"))
}

// Rule returns the visibility rule this configuration describes.
func (c *Config) Rule() env.Rule {
	return env.NewRule(c.Prefix)
}

// Auditor compiles the configured audit rule set: the defaults unless
// disabled, plus any operator rules. A nil Audit section still gets the
// defaults.
func (c *Config) Auditor() (*audit.Auditor, error) {
	var rules []audit.Rule
	if c.Audit == nil || !c.Audit.DisableDefaultRules {
		rules = audit.DefaultRules()
	}
	if c.Audit != nil {
		rules = append(rules, c.Audit.Rules...)
	}
	return audit.New(rules...)
}

// InjectOptions translates the document into injector options. The
// auditor may be nil to skip exposure auditing.
func (c *Config) InjectOptions(auditor *audit.Auditor) []inject.Option {
	opts := []inject.Option{inject.WithRule(c.Rule())}

	if c.Nonce != nil {
		switch {
		case c.Nonce.Value != "":
			opts = append(opts, inject.WithNonce(inject.StaticNonce(c.Nonce.Value)))
		case c.Nonce.Header != "":
			opts = append(opts, inject.WithNonce(inject.HeaderNonce(c.Nonce.Header)))
		}
	}
	if c.DisableManagedEmission {
		opts = append(opts, inject.Unmanaged())
	}
	if auditor != nil {
		opts = append(opts, inject.WithAuditor(auditor))
	}

	// deterministic attribute order on the emitted tag
	names := make([]string, 0, len(c.ScriptAttributes))
	for name := range c.ScriptAttributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		opts = append(opts, inject.WithAttr(name, c.ScriptAttributes[name]))
	}
	return opts
}

// PromoteOptions translates the document into promotion options. The
// auditor may be nil to skip the secret-promotion warning.
func (c *Config) PromoteOptions(auditor *audit.Auditor) []promote.Option {
	opts := []promote.Option{promote.WithRule(c.Rule())}
	if c.LogLevel == LogSilent {
		opts = append(opts, promote.Silent())
	}
	if auditor != nil {
		opts = append(opts, promote.WithAuditor(auditor))
	}
	return opts
}
