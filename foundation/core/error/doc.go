// File: doc.go
// Title: Structured Error Package Documentation
// Description: Package documentation for the structured error type shared by
//              all puntofijo packages.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-19 v0.2.0: Reduced to the codes used by the fixed-point tooling

// Package error provides a structured error type carrying a code, a severity,
// the failing operation and free-form details.
//
// Errors are built fluently:
//
//	err := mdwerror.New("tolerance must be positive").
//		WithCode(mdwerror.CodeValidationFailed).
//		WithOperation("config.Validate").
//		WithDetail("tolerance", cfg.Defaults.Tolerance)
//
// Wrapped errors keep the code and severity of their cause unless they are
// overridden, and Unwrap makes them usable with errors.Is and errors.As.
package error
