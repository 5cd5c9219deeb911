// Package error provides structured errors for the Khamseena toolchain.
//
// Package: error
// Title: Structured Error Handling
// Description: Errors carry a Code, a Severity and details. The front end uses
//              the KH_* codes to tag which stage failed; drivers use HasCode and
//              GetSeverity to decide how to report.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-19
//
// Usage:
//
//	err := mdwerror.Wrap(lexErr, "tokenize failed").
//		WithCode(mdwerror.CodeLexical).
//		WithDetail("line", 3)
//
//	if mdwerror.HasCode(err, mdwerror.CodeLexical) {
//		// report and stop the pipeline
//	}
package error
