// File: doc.go
// Title: Logging Package Documentation
// Description: Package documentation for the structured logger.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial documentation
// - 2026-10-19 v0.2.0: Run ids and the discard logger

// Package log implements a small structured logger.
//
// Loggers are immutable from the caller's point of view: every With* method
// returns a copy, so a configured logger can be handed to any number of
// components.
//
//	logger := mdwlog.NewWithConfig(mdwlog.Config{
//		Level:  mdwlog.LevelDebug,
//		Format: mdwlog.FormatText,
//		Name:   "iteration",
//	})
//	logger.WithRunID(id).Debug("run started", mdwlog.Fields{"g": "cos(x)"})
//
// Three output formats exist: JSON (default), plain text and colored
// console text. The JSON formatter writes NaN and infinite floats as
// strings, since encoding/json rejects them.
package log
