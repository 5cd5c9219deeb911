// File: errors.go
// Title: Parse Errors
// Description: ParseError carries the message, the reporting position and
//              the token the parser was looking at.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial parse error type

package parser

import (
	"fmt"
)

// ParseError represents a parsing error with position information
type ParseError struct {
	Message string
	Line    int
	Column  int
	Token   Token // Token found where the error was detected
	Fatal   bool  // Recovery could not resynchronize before end of input
}

func (pe *ParseError) Error() string {
	near := fmt.Sprintf("near '%s'", pe.Token.Value)
	if pe.Token.Type == TokenEOF {
		near = "at end of input"
	}
	return fmt.Sprintf("parse error at line %d, column %d: %s (%s)",
		pe.Line, pe.Column, pe.Message, near)
}

func describe(tok Token) string {
	if tok.Type == TokenEOF {
		return "end of input"
	}
	return "'" + tok.Value + "'"
}
