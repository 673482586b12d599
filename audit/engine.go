// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

const (
	// maxExpressionLength bounds rule source size. Rules come from
	// configuration files, so an oversized one is a mistake, not a use
	// case.
	maxExpressionLength = 2048

	// costLimit bounds the runtime cost of evaluating one rule against
	// one entry. Evaluation happens on the request path.
	costLimit = 100000
)

// Sentinel errors for rule compilation and evaluation.
var (
	// ErrRuleCompile is returned when a rule expression fails to parse
	// or type-check.
	ErrRuleCompile = errors.New("audit rule compilation failed")

	// ErrRuleEval is returned when evaluating a compiled rule fails.
	ErrRuleEval = errors.New("audit rule evaluation failed")

	// ErrRuleNotBool is returned when a rule evaluates to a non-boolean.
	ErrRuleNotBool = errors.New("audit rule must evaluate to a bool")
)

// engine compiles CEL predicates over the {key, value} entry variables.
// The CEL environment is built lazily once and shared; the engine is safe
// for concurrent use.
type engine struct {
	once sync.Once
	env  *cel.Env
	err  error
}

func (e *engine) celEnv() (*cel.Env, error) {
	e.once.Do(func() {
		e.env, e.err = cel.NewEnv(
			cel.Variable("key", cel.StringType),
			cel.Variable("value", cel.StringType),
		)
	})
	return e.env, e.err
}

// compile parses, type-checks and programs one rule expression.
func (e *engine) compile(expr string) (cel.Program, error) {
	if len(expr) > maxExpressionLength {
		return nil, fmt.Errorf("%w: expression length %d exceeds maximum of %d",
			ErrRuleCompile, len(expr), maxExpressionLength)
	}

	celEnv, err := e.celEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to build CEL environment: %w", err)
	}

	ast, issues := celEnv.Compile(expr)
	if issues.Err() != nil {
		return nil, fmt.Errorf("%w: %q: %s", ErrRuleCompile, expr, issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("%w: %q evaluates to %s", ErrRuleNotBool, expr, ast.OutputType())
	}

	program, err := celEnv.Program(ast, cel.CostLimit(costLimit))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %s", ErrRuleCompile, expr, err)
	}
	return program, nil
}

// match evaluates a compiled rule against one entry.
func match(program cel.Program, key, value string) (bool, error) {
	out, _, err := program.Eval(map[string]any{
		"key":   key,
		"value": value,
	})
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrRuleEval, err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: got %T", ErrRuleNotBool, out.Value())
	}
	return b, nil
}
