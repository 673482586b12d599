// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"sort"

	"github.com/google/cel-go/cel"

	"github.com/stacklok/pageenv-core/env"
)

// Rule is one named CEL predicate over the entry variables key and value.
type Rule struct {
	// Name identifies the rule in findings and logs.
	Name string `json:"name" yaml:"name"`

	// Expr is the CEL source. It must evaluate to a bool.
	Expr string `json:"expr" yaml:"expr"`
}

// Finding reports one entry matched by one rule. The value is deliberately
// not carried: findings end up in logs, and the whole point is that the
// value may be a secret.
type Finding struct {
	Key  string
	Rule string
}

// DefaultRules returns the built-in exposure heuristics: key names that
// suggest a credential, and value shapes that are recognizably secret
// material.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "secret-looking-key",
			Expr: `key.contains("SECRET") || key.contains("TOKEN") || ` +
				`key.contains("PASSWORD") || key.contains("PRIVATE") || ` +
				`key.contains("CREDENTIAL") || key.endsWith("_KEY")`,
		},
		{
			Name: "pem-block-value",
			Expr: `value.startsWith("-----BEGIN")`,
		},
		{
			Name: "aws-access-key-value",
			Expr: `value.matches("(A3T[A-Z0-9]|AKIA|ASIA)[A-Z0-9]{16}")`,
		},
		{
			Name: "bearer-token-value",
			Expr: `value.startsWith("Bearer ") || value.startsWith("eyJ")`,
		},
	}
}

type compiledRule struct {
	name    string
	program cel.Program
}

// Auditor evaluates a fixed rule set against environment entries. Compile
// once at startup, share across requests; the auditor is safe for
// concurrent use.
type Auditor struct {
	rules []compiledRule
}

// New compiles the given rules into an Auditor. A rule that fails to
// compile makes construction fail; a misconfigured guard should surface at
// startup, not be skipped silently.
func New(rules ...Rule) (*Auditor, error) {
	eng := &engine{}
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		program, err := eng.compile(r.Expr)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledRule{name: r.Name, program: program})
	}
	return &Auditor{rules: compiled}, nil
}

// Check evaluates every rule against a single entry and returns the names
// of the rules that matched.
func (a *Auditor) Check(key, value string) ([]string, error) {
	var matched []string
	for _, r := range a.rules {
		hit, err := match(r.program, key, value)
		if err != nil {
			return nil, err
		}
		if hit {
			matched = append(matched, r.name)
		}
	}
	return matched, nil
}

// Findings evaluates every rule against every entry of vars. Results are
// ordered by key, then by rule declaration order, so logs are stable
// across runs.
func (a *Auditor) Findings(vars env.Map) ([]Finding, error) {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var findings []Finding
	for _, k := range keys {
		matched, err := a.Check(k, vars[k])
		if err != nil {
			return nil, err
		}
		for _, name := range matched {
			findings = append(findings, Finding{Key: k, Rule: name})
		}
	}
	return findings, nil
}
