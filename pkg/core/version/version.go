// ============================================================================
// puntofijo - Iteración de punto fijo
// ============================================================================
//
// Package:     version
// Description: Central version management for the application and its
//              components
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants
const (
	// Application version
	Application = "1.0.0"

	// Component versions
	Engine     = "1.0.0"
	MathExpr   = "0.1.0"
	Report     = "1.0.0"
	Cobweb     = "1.0.0"
	Stepper    = "1.0.0"
	ConfigFile = "1"
)

// Set at build time via -ldflags "-X .../version.Commit=..."
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "engine", "iteration":
		return Engine
	case "mathexpr":
		return MathExpr
	case "report":
		return Report
	case "cobweb":
		return Cobweb
	case "stepper":
		return Stepper
	default:
		return Application
	}
}

// String returns the one-line version banner
func String() string {
	return fmt.Sprintf("puntofijo %s (commit %s, built %s, %s %s/%s)",
		Application, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
