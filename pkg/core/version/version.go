// ============================================================================
// Khamseena - Front end toolchain
// ============================================================================
//
// Package:     version
// Description: Central version management for the toolchain components
// Author:      Mike Stoffels
// Created:     2025-10-19
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for all Khamseena components
const (
	// Toolchain version
	Toolchain = "0.1.0"

	// Component versions
	Lexer    = "0.1.0"
	Parser   = "0.1.0"
	Semantic = "0.1.0"
	CLI      = "0.1.0"

	// Language revision accepted by the front end
	Language = "1.0.0"
)

// Set at build time via -ldflags "-X .../version.Commit=..."
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "lexer":
		return Lexer
	case "parser":
		return Parser
	case "semantic":
		return Semantic
	case "cli", "khc":
		return CLI
	case "language":
		return Language
	default:
		return Toolchain
	}
}

// Info returns a one-line description of the build
func Info() string {
	return fmt.Sprintf("khc %s (language %s, commit %s, built %s, %s/%s)",
		Toolchain, Language, Commit, BuildDate, runtime.GOOS, runtime.GOARCH)
}
