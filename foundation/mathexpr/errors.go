// File: errors.go
// Title: Math Expression Errors
// Description: Error types for compile-time and evaluation-time failures.
//              Both convert to the structured foundation error on request.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial error types

package mathexpr

import (
	"fmt"

	mdwerror "github.com/msto63/puntofijo/foundation/core/error"
)

// SyntaxError reports malformed input, an unknown identifier or function,
// or a wrong number of arguments
type SyntaxError struct {
	Message  string
	Position int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Position+1, e.Message)
}

// Structured converts the error into a foundation error with code EXPR_SYNTAX
func (e *SyntaxError) Structured() *mdwerror.Error {
	return mdwerror.Wrap(e, "invalid expression").
		WithCode(mdwerror.CodeExprSyntax).
		WithDetail("position", e.Position+1)
}

// EvalError reports a failure while evaluating a compiled program
type EvalError struct {
	Message string
	Name    string // Function or variable involved, if any
}

func (e *EvalError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("evaluation error in %s: %s", e.Name, e.Message)
	}
	return "evaluation error: " + e.Message
}

// Structured converts the error into a foundation error with code EXPR_EVALUATION
func (e *EvalError) Structured() *mdwerror.Error {
	err := mdwerror.Wrap(e, "expression evaluation failed").
		WithCode(mdwerror.CodeExprEvaluation)
	if e.Name != "" {
		err = err.WithDetail("name", e.Name)
	}
	return err
}
