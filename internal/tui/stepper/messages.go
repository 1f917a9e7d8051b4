// ============================================================================
// puntofijo - Iteración de punto fijo
// ============================================================================
//
// Package:     stepper
// Description: Message types for async operations in the stepper
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package stepper

import (
	"github.com/msto63/puntofijo/internal/explain"
	"github.com/msto63/puntofijo/internal/iteration"
)

// outcomeMsg is sent when the engine has finished the run
type outcomeMsg struct {
	outcome     iteration.Outcome
	explanation explain.Explanation
}
