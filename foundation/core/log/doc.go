// Package log provides structured logging for the Khamseena toolchain.
//
// Package: log
// Title: Structured Logging
// Description: Leveled, field-based logging with text, JSON and logfmt output.
//              Every front end component derives its own logger through
//              WithField("component", ...) so log lines can be filtered by stage.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2025-10-19 v0.2.0: Trimmed to what the compiler front end needs
//
// Usage:
//
//	import mdwlog "github.com/msto63/khamseena/foundation/core/log"
//
//	logger := mdwlog.New().
//		WithLevel(mdwlog.LevelDebug).
//		WithFormat(mdwlog.FormatJSON).
//		WithField("component", "khamseena-lexer")
//
//	logger.Debug("tokenized", mdwlog.Fields{"tokens": 42})
//
//	timer := logger.StartTimer("parse")
//	// ... parse
//	timer.Stop()
package log
