// File: token.go
// Title: Khamseena Token Definitions
// Description: Defines the closed set of token types produced by the lexer,
//              the Token value type and the keyword table.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial token definitions

package parser

import (
	"fmt"
)

// TokenType represents the type of a lexical token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenComment

	// Identifiers and literals
	TokenIdentifier // flour, main
	TokenInteger    // 42
	TokenFloat      // 3.14
	TokenString     // "text"

	// Keywords
	TokenBrew
	TokenRecipe
	TokenCount
	TokenMeasure
	TokenNote
	TokenFlavor
	TokenSweet
	TokenSour
	TokenServe
	TokenPour
	TokenTaste
	TokenRetaste
	TokenStir
	TokenMix
	TokenStop
	TokenSkip
	TokenDeliver
	TokenFetch

	// Operators
	TokenPlus         // +
	TokenMinus        // -
	TokenMultiply     // *
	TokenDivide       // /
	TokenModulo       // %
	TokenAssign       // =
	TokenEqual        // ==
	TokenNotEqual     // !=
	TokenGreater      // >
	TokenLess         // <
	TokenGreaterEqual // >=
	TokenLessEqual    // <=
	TokenAnd          // &&
	TokenOr           // ||
	TokenNot          // !

	// Delimiters
	TokenLParen    // (
	TokenRParen    // )
	TokenLBrace    // {
	TokenRBrace    // }
	TokenSemicolon // ;
	TokenComma     // ,
)

var tokenNames = map[TokenType]string{
	TokenEOF:          "EOF",
	TokenComment:      "COMMENT",
	TokenIdentifier:   "IDENTIFIER",
	TokenInteger:      "INTEGER",
	TokenFloat:        "FLOAT",
	TokenString:       "STRING",
	TokenBrew:         "BREW",
	TokenRecipe:       "RECIPE",
	TokenCount:        "COUNT",
	TokenMeasure:      "MEASURE",
	TokenNote:         "NOTE",
	TokenFlavor:       "FLAVOR",
	TokenSweet:        "SWEET",
	TokenSour:         "SOUR",
	TokenServe:        "SERVE",
	TokenPour:         "POUR",
	TokenTaste:        "TASTE",
	TokenRetaste:      "RETASTE",
	TokenStir:         "STIR",
	TokenMix:          "MIX",
	TokenStop:         "STOP",
	TokenSkip:         "SKIP",
	TokenDeliver:      "DELIVER",
	TokenFetch:        "FETCH",
	TokenPlus:         "PLUS",
	TokenMinus:        "MINUS",
	TokenMultiply:     "MULTIPLY",
	TokenDivide:       "DIVIDE",
	TokenModulo:       "MODULO",
	TokenAssign:       "ASSIGN",
	TokenEqual:        "EQUAL",
	TokenNotEqual:     "NOT_EQUAL",
	TokenGreater:      "GREATER",
	TokenLess:         "LESS",
	TokenGreaterEqual: "GREATER_EQUAL",
	TokenLessEqual:    "LESS_EQUAL",
	TokenAnd:          "AND",
	TokenOr:           "OR",
	TokenNot:          "NOT",
	TokenLParen:       "LPAREN",
	TokenRParen:       "RPAREN",
	TokenLBrace:       "LBRACE",
	TokenRBrace:       "RBRACE",
	TokenSemicolon:    "SEMICOLON",
	TokenComma:        "COMMA",
}

// String returns the canonical upper-case name of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsKeyword reports whether the token type is one of the reserved words
func (tt TokenType) IsKeyword() bool {
	return tt >= TokenBrew && tt <= TokenFetch
}

// IsTypeKeyword reports whether the token type names a declared type
func (tt TokenType) IsTypeKeyword() bool {
	switch tt {
	case TokenCount, TokenMeasure, TokenNote, TokenFlavor:
		return true
	default:
		return false
	}
}

// keywords maps reserved words to their token types
var keywords = map[string]TokenType{
	"brew":    TokenBrew,
	"recipe":  TokenRecipe,
	"count":   TokenCount,
	"measure": TokenMeasure,
	"note":    TokenNote,
	"flavor":  TokenFlavor,
	"sweet":   TokenSweet,
	"sour":    TokenSour,
	"serve":   TokenServe,
	"pour":    TokenPour,
	"taste":   TokenTaste,
	"retaste": TokenRetaste,
	"stir":    TokenStir,
	"mix":     TokenMix,
	"stop":    TokenStop,
	"skip":    TokenSkip,
	"deliver": TokenDeliver,
	"fetch":   TokenFetch,
}

// Token represents a lexical token with position information
type Token struct {
	Type   TokenType // Token type
	Value  string    // Source text of the token
	Line   int       // Line number (1-based)
	Column int       // Column number (1-based)
}

// String returns a string representation of the token
func (t Token) String() string {
	if t.Type == TokenEOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%s)", t.Type.String(), t.Value)
}

// Equal compares type and value; positions are ignored
func (t Token) Equal(other Token) bool {
	return t.Type == other.Type && t.Value == other.Value
}

// LookupIdent returns the keyword token type for ident, or TokenIdentifier
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdentifier
}

// IsKeyword checks if a word is a reserved keyword (case-sensitive)
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

// IsValidIdentifier checks if a string matches [A-Za-z_][A-Za-z0-9_]* and is not a keyword
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if !isLetter(ch) && !(i > 0 && isDigit(ch)) {
			return false
		}
	}
	return !IsKeyword(s)
}

// Keywords returns the reserved words in declaration order
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for tt := TokenBrew; tt <= TokenFetch; tt++ {
		for word, kw := range keywords {
			if kw == tt {
				words = append(words, word)
				break
			}
		}
	}
	return words
}
