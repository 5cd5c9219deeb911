// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across the Khamseena toolchain so
//              that drivers can tell lexical, syntactic and semantic failures
//              apart without inspecting message text.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2025-10-19 v0.2.0: Replaced platform codes with front end codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Front end stages
	CodeLexical        Code = "KH_LEXICAL"
	CodeSyntax         Code = "KH_SYNTAX"
	CodeSemantic       Code = "KH_SEMANTIC"
	CodeSemanticFatal  Code = "KH_SEMANTIC_FATAL"
	CodeSourceTooLarge Code = "KH_SOURCE_TOO_LARGE"

	// Configuration and storage
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
	CodeDatabaseError Code = "DATABASE_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeLexical, CodeSyntax, CodeSemantic, CodeSemanticFatal, CodeSourceTooLarge,
		CodeConfigError, CodeInvalidConfig, CodeDatabaseError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeLexical, CodeSyntax, CodeSemantic, CodeSemanticFatal, CodeSourceTooLarge:
		return "compile"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	case CodeDatabaseError:
		return "storage"
	default:
		return "generic"
	}
}

// IsCompileStage reports whether the code was raised by one of the front end stages
func (c Code) IsCompileStage() bool {
	return c.Category() == "compile"
}
