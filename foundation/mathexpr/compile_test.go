// File: compile_test.go
// Title: Math Expression Compiler Unit Tests
// Description: Evaluation results, identifier resolution, argument count
//              checks and runtime errors.
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
	"math"
	"strings"
	"testing"

	mdwerror "github.com/msto63/puntofijo/foundation/core/error"
)

func TestCompile_Eval(t *testing.T) {
	tests := []struct {
		expr     string
		x        float64
		expected float64
	}{
		{"cos(x)", 0.5, math.Cos(0.5)},
		{"(x + 2/x) / 2", 1, 1.5},
		{"x^2 - 2", 3, 7},
		{"-x^2", 3, -9},
		{"2^-1", 0, 0.5},
		{"2x + 1", 4, 9},
		{"exp(-x)", 1, math.Exp(-1)},
		{"sqrt(x) + cbrt(27)", 16, 7},
		{"log(8, 2)", 0, 3},
		{"log(e)", 0, 1},
		{"ln(x)", math.E, 1},
		{"log10(1000) + log2(8)", 0, 6},
		{"pi", 0, math.Pi},
		{"tau / 2", 0, math.Pi},
		{"min(3, x, 5) + max(x, 1)", 2, 4},
		{"abs(x) + sign(x)", -2, 1},
		{"floor(x) + ceil(x) + round(x)", 1.4, 4},
		{"pow(x, 3)", 2, 8},
		{"atan2(1, 1)", 0, math.Pi / 4},
		{"sec(0) + csc(pi/2) + cot(pi/4)", 0, 3},
		{"cos((x) * pi / 180)", 60, 0.5},
		{"7 % 3", 0, 1},
		{"1e-3 * 1000", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			prog, err := Compile(tt.expr, WithVariables("x"))
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.expr, err)
			}
			got, err := prog.Eval(map[string]float64{"x": tt.x})
			if err != nil {
				t.Fatalf("Eval error: %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("%s at x=%v = %v, want %v", tt.expr, tt.x, got, tt.expected)
			}
		})
	}
}

func TestCompile_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		contains string
	}{
		{"undefined symbol", "y + 1", `undefined symbol "y"`},
		{"unknown function call", "foo(x)", `undefined symbol "foo"`},
		{"function without call", "sin + 1", `function "sin" used without arguments`},
		{"too few arguments", "pow(x)", `expects 2 argument(s), got 1`},
		{"too many arguments", "cos(x, 1)", `expects 1 argument(s), got 2`},
		{"no arguments", "max()", `at least 1 argument(s)`},
		{"unbalanced", "cos(x", "expected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.expr, WithVariables("x"))
			var syn *SyntaxError
			if !errors.As(err, &syn) {
				t.Fatalf("Compile(%q) error = %v, want *SyntaxError", tt.expr, err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.contains)
			}
		})
	}
}

func TestCompile_VariableShadowsConstant(t *testing.T) {
	prog := MustCompile("e * 2", WithVariables("e"))
	got, err := prog.Eval(map[string]float64{"e": 3})
	if err != nil || got != 6 {
		t.Errorf("Eval = %v, %v; want 6", got, err)
	}
}

func TestEval_Errors(t *testing.T) {
	prog := MustCompile("x + 1", WithVariables("x"))
	_, err := prog.Eval(nil)
	var evalErr *EvalError
	if !errors.As(err, &evalErr) {
		t.Fatalf("error = %v, want *EvalError", err)
	}
	if evalErr.Name != "x" {
		t.Errorf("EvalError.Name = %q, want x", evalErr.Name)
	}

	_, err = MustCompile("log(x, 1)", WithVariables("x")).Eval(map[string]float64{"x": 2})
	if !errors.As(err, &evalErr) {
		t.Fatalf("log base 1 error = %v, want *EvalError", err)
	}
	if !mdwerror.HasCode(evalErr.Structured(), mdwerror.CodeExprEvaluation) {
		t.Error("structured eval error should carry EXPR_EVALUATION")
	}
}

func TestEval_NonFiniteIsAValue(t *testing.T) {
	prog := MustCompile("1/x", WithVariables("x"))
	got, err := prog.Eval(map[string]float64{"x": 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsInf(got, 1) {
		t.Errorf("1/0 = %v, want +Inf", got)
	}
}

func TestProgram_Func(t *testing.T) {
	prog := MustCompile("a*x + b", WithVariables("x", "a", "b"))
	f := prog.Func("x", map[string]float64{"a": 2, "b": 1})

	for x, want := range map[float64]float64{0: 1, 1: 3, -2: -3} {
		got, err := f(x)
		if err != nil || got != want {
			t.Errorf("f(%v) = %v, %v; want %v", x, got, err, want)
		}
	}

	if vars := prog.Variables(); strings.Join(vars, ",") != "x,a,b" {
		t.Errorf("Variables() = %v", vars)
	}
	if prog.Source() != "a*x + b" {
		t.Errorf("Source() = %q", prog.Source())
	}
}

func TestSyntaxError_Structured(t *testing.T) {
	_, err := Compile("x +", WithVariables("x"))
	var syn *SyntaxError
	if !errors.As(err, &syn) {
		t.Fatal("expected *SyntaxError")
	}
	structured := syn.Structured()
	if structured.Code() != mdwerror.CodeExprSyntax {
		t.Errorf("code = %s, want %s", structured.Code(), mdwerror.CodeExprSyntax)
	}
	if structured.Details()["position"] != 4 {
		t.Errorf("position detail = %v, want 4", structured.Details()["position"])
	}
}
