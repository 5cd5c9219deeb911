// File: diagnostics.go
// Title: Semantic Diagnostics
// Description: Errors and warnings found during analysis, collected in
//              order of discovery.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial diagnostics collector

package semantic

import (
	"fmt"

	"github.com/msto63/khamseena/foundation/khamseena/ast"
)

// Severity of a diagnostic
type Severity string

// Diagnostic severities
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is a single semantic error or warning
type Diagnostic struct {
	Severity Severity     `json:"severity" yaml:"severity"`
	Message  string       `json:"message" yaml:"message"`
	Pos      ast.Position `json:"position" yaml:"position"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Message)
}

// Diagnostics accumulates the findings of one analysis
type Diagnostics struct {
	errors   []Diagnostic
	warnings []Diagnostic
}

// Errorf records an error at pos
func (d *Diagnostics) Errorf(pos ast.Position, format string, args ...interface{}) {
	d.errors = append(d.errors, Diagnostic{
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
	})
}

// Warnf records a warning at pos
func (d *Diagnostics) Warnf(pos ast.Position, format string, args ...interface{}) {
	d.warnings = append(d.warnings, Diagnostic{
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
	})
}

// Errors returns the recorded errors
func (d *Diagnostics) Errors() []Diagnostic {
	return append([]Diagnostic(nil), d.errors...)
}

// Warnings returns the recorded warnings
func (d *Diagnostics) Warnings() []Diagnostic {
	return append([]Diagnostic(nil), d.warnings...)
}

// HasErrors reports whether any error was recorded
func (d *Diagnostics) HasErrors() bool {
	return len(d.errors) > 0
}
