// File: parser_test.go
// Title: Math Expression Parser Unit Tests
// Description: Precedence, associativity, implicit multiplication and
//              syntax error reporting.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial test suite

package mathexpr

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_Structure(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"a - b - c", "((a - b) - c)"},
		{"2^3^2", "(2 ^ (3 ^ 2))"},
		{"2**3", "(2 ^ 3)"},
		{"-x^2", "(-(x ^ 2))"},
		{"2^-1", "(2 ^ (-1))"},
		{"2x", "(2 * x)"},
		{"3(x+1)", "(3 * (x + 1))"},
		{"2 pi x", "((2 * pi) * x)"},
		{"2x^2", "(2 * (x ^ 2))"},
		{"x/2 + 1/x", "((x / 2) + (1 / x))"},
		{"cos(x)", "cos(x)"},
		{"log(x, 2)", "log(x, 2)"},
		{"2 sin(x)", "(2 * sin(x))"},
		{"x(x+1)", "(x * (x + 1))"},
		{"+x % 3", "((+x) % 3)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got := node.String(); got != tt.expected {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"empty", "", "empty expression"},
		{"blank", "   ", "empty expression"},
		{"unclosed paren", "cos(x", "expected ',' or ')'"},
		{"unclosed group", "(x + 1", "expected ')'"},
		{"stray paren", "x)", "unexpected ')'"},
		{"dangling operator", "x +", "end of expression"},
		{"double operator", "x * / 2", "unexpected '/'"},
		{"adjacent numbers", "1 2", "unexpected \"2\""},
		{"illegal character", "x # 2", "illegal character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.input)
			}
			var syn *SyntaxError
			if !errors.As(err, &syn) {
				t.Fatalf("error type = %T, want *SyntaxError", err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.contains)
			}
		})
	}
}

func TestParse_DeepNesting(t *testing.T) {
	input := strings.Repeat("(", 1000) + "x" + strings.Repeat(")", 1000)
	if _, err := Parse(input); err == nil {
		t.Error("expected nesting limit error")
	}
}

func TestWalk(t *testing.T) {
	node, err := Parse("sin(x) + cos(2*x)")
	if err != nil {
		t.Fatal(err)
	}

	var calls []string
	Walk(node, func(n Node) bool {
		if c, ok := n.(*Call); ok {
			calls = append(calls, c.Name)
		}
		return true
	})

	if strings.Join(calls, ",") != "sin,cos" {
		t.Errorf("calls = %v, want [sin cos]", calls)
	}
}
