// File: error_test.go
// Title: Error Module Tests
// Description: Tests for error creation, wrapping, codes, severity and
//              serialisation.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive test coverage
// - 2026-10-19 v0.2.0: Adjusted to the reduced error type

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	msg := "test error message"
	err := New(msg)

	if err == nil {
		t.Fatal("New() returned nil")
	}

	if err.Error() != msg {
		t.Errorf("Error() = %q, want %q", err.Error(), msg)
	}

	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}

	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}

	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should not be zero")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		message  string
		wantNil  bool
		wantMsg  string
		wantCode Code
	}{
		{
			name:    "wrap nil error",
			err:     nil,
			message: "context",
			wantNil: true,
		},
		{
			name:     "wrap standard error",
			err:      errors.New("disk full"),
			message:  "writing plot",
			wantMsg:  "writing plot: disk full",
			wantCode: CodeUnknown,
		},
		{
			name:     "wrap structured error keeps code",
			err:      New("bad token").WithCode(CodeExprSyntax),
			message:  "compiling g(x)",
			wantMsg:  "compiling g(x): bad token",
			wantCode: CodeExprSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, tt.message)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("Wrap() = %v, want nil", got)
				}
				return
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got.Error(), tt.wantMsg)
			}
			if got.Code() != tt.wantCode {
				t.Errorf("Code() = %v, want %v", got.Code(), tt.wantCode)
			}
			if !errors.Is(got, tt.err) {
				t.Error("errors.Is should find the wrapped cause")
			}
		})
	}
}

func TestWithCodeSetsSeverity(t *testing.T) {
	err := New("tolerance must be positive").WithCode(CodeValidationFailed)
	if err.Severity() != SeverityLow {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityLow)
	}

	explicit := New("boom").WithSeverity(SeverityHigh).WithCode(CodeValidationFailed)
	if explicit.Severity() != SeverityHigh {
		t.Errorf("explicit severity overwritten: got %v", explicit.Severity())
	}
}

func TestDetailsAreCopied(t *testing.T) {
	err := New("x").WithDetail("path", "a.toml").WithDetails(map[string]interface{}{"line": 3})

	details := err.Details()
	details["path"] = "changed"

	if err.Details()["path"] != "a.toml" {
		t.Error("Details() must return a copy")
	}
	if err.Details()["line"] != 3 {
		t.Errorf("line detail = %v, want 3", err.Details()["line"])
	}
}

func TestHasCodeAndGetCode(t *testing.T) {
	base := New("unknown function foo").WithCode(CodeExprSyntax)
	wrapped := fmt.Errorf("transform: %w", base)

	if !HasCode(wrapped, CodeExprSyntax) {
		t.Error("HasCode() should see through fmt wrapping")
	}
	if HasCode(wrapped, CodeExprEvaluation) {
		t.Error("HasCode() reported a code that is not in the chain")
	}
	if got := GetCode(wrapped); got != CodeExprSyntax {
		t.Errorf("GetCode() = %v, want %v", got, CodeExprSyntax)
	}
	if got := GetCode(errors.New("plain")); got != CodeUnknown {
		t.Errorf("GetCode(plain) = %v, want %v", got, CodeUnknown)
	}
}

func TestMarshalJSON(t *testing.T) {
	err := Wrap(errors.New("eof"), "reading problems").
		WithCode(CodeInvalidFormat).
		WithOperation("batch.Load").
		WithDetail("file", "p.yaml")

	data, marshalErr := json.Marshal(err)
	if marshalErr != nil {
		t.Fatalf("Marshal failed: %v", marshalErr)
	}

	var decoded map[string]interface{}
	if unmarshalErr := json.Unmarshal(data, &decoded); unmarshalErr != nil {
		t.Fatalf("Unmarshal failed: %v", unmarshalErr)
	}

	if decoded["code"] != string(CodeInvalidFormat) {
		t.Errorf("code = %v", decoded["code"])
	}
	if decoded["operation"] != "batch.Load" {
		t.Errorf("operation = %v", decoded["operation"])
	}
	if decoded["cause"] != "eof" {
		t.Errorf("cause = %v", decoded["cause"])
	}
}

func TestString(t *testing.T) {
	err := New("bad unit").WithCode(CodeInvalidConfig).WithOperation("config.Validate").
		WithDetail("unit", "grads")

	s := err.String()
	for _, want := range []string{"Error: bad unit", "Code: INVALID_CONFIG", "Operation: config.Validate", "unit=grads"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
}

func TestCodeCategory(t *testing.T) {
	tests := map[Code]string{
		CodeExprSyntax:       "expression",
		CodeInvalidConfig:    "configuration",
		CodeValidationFailed: "validation",
		CodeRenderFailed:     "output",
		CodeUnknown:          "generic",
	}
	for code, want := range tests {
		if got := code.Category(); got != want {
			t.Errorf("%s.Category() = %q, want %q", code, got, want)
		}
	}
}
