// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors so that loggers and drivers
//              can decide how loudly to report a failure.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2025-10-19 v0.2.0: Mapped front end codes to severities

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow covers user input problems such as malformed source text
	SeverityLow Severity = iota

	// SeverityMedium is the default for errors without a more specific code
	SeverityMedium

	// SeverityHigh indicates broken internal invariants or storage failures
	SeverityHigh

	// SeverityCritical indicates the tool cannot continue at all
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should be surfaced prominently
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeLexical, CodeSyntax, CodeSemantic, CodeSourceTooLarge, CodeInvalidInput, CodeNotFound:
		return SeverityLow
	case CodeSemanticFatal, CodeDatabaseError, CodeInternal:
		return SeverityHigh
	case CodeConfigError, CodeInvalidConfig:
		return SeverityMedium
	default:
		return SeverityMedium
	}
}
