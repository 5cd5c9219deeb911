// File: lexer.go
// Title: Khamseena Lexical Analyzer
// Description: Converts Khamseena source text into a slice of tokens in a
//              single left-to-right pass with one character of lookahead.
//              Tracks 1-based line and column numbers for every token.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial lexer implementation

package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// LexerOptions configures lexer behavior
type LexerOptions struct {
	// KeepComments emits COMMENT tokens instead of discarding comments
	KeepComments bool
}

// LexicalError is returned when the source contains text that cannot be tokenized
type LexicalError struct {
	Message string
	Line    int
	Column  int
}

func (le *LexicalError) Error() string {
	return fmt.Sprintf("lexical error at line %d, column %d: %s", le.Line, le.Column, le.Message)
}

// Lexer performs lexical analysis of Khamseena source
type Lexer struct {
	input    string // Source text
	position int    // Index of the current character
	ch       byte   // Current character, 0 at end of input
	line     int    // Line of the current character (1-based)
	column   int    // Column of the current character (1-based)
	options  LexerOptions
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string, opts LexerOptions) *Lexer {
	l := &Lexer{
		input:   input,
		line:    1,
		column:  1,
		options: opts,
	}
	if len(input) > 0 {
		l.ch = input[0]
	}
	return l
}

// TokenizeInput tokenizes source text and discards comments
func TokenizeInput(input string) ([]Token, error) {
	return NewLexer(input, LexerOptions{}).Tokenize()
}

// Tokenize returns all tokens of the input, terminated by exactly one EOF token.
// On a lexical error the tokens read so far are returned together with the error.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token

	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() (Token, error) {
	for {
		l.skipWhitespace()

		if l.atEnd() {
			return Token{Type: TokenEOF, Line: l.line, Column: l.column}, nil
		}

		line, column := l.line, l.column

		if l.ch == '#' {
			text := l.readComment()
			if !l.options.KeepComments {
				continue
			}
			return Token{Type: TokenComment, Value: text, Line: line, Column: column}, nil
		}

		switch {
		case l.ch == '"':
			value, err := l.readString()
			if err != nil {
				return Token{}, err
			}
			return Token{Type: TokenString, Value: value, Line: line, Column: column}, nil
		case isDigit(l.ch):
			tt, value := l.readNumber()
			return Token{Type: tt, Value: value, Line: line, Column: column}, nil
		case isLetter(l.ch):
			value := l.readIdentifier()
			return Token{Type: LookupIdent(value), Value: value, Line: line, Column: column}, nil
		}

		if tt, value, ok := l.readOperator(); ok {
			return Token{Type: tt, Value: value, Line: line, Column: column}, nil
		}

		r, _ := utf8.DecodeRuneInString(l.input[l.position:])
		return Token{}, &LexicalError{
			Message: fmt.Sprintf("invalid character '%c'", r),
			Line:    line,
			Column:  column,
		}
	}
}

// readOperator matches two-character operators before their prefixes
func (l *Lexer) readOperator() (TokenType, string, bool) {
	next := l.peekChar()

	var tt TokenType
	switch {
	case l.ch == '=' && next == '=':
		tt = TokenEqual
	case l.ch == '!' && next == '=':
		tt = TokenNotEqual
	case l.ch == '>' && next == '=':
		tt = TokenGreaterEqual
	case l.ch == '<' && next == '=':
		tt = TokenLessEqual
	case l.ch == '&' && next == '&':
		tt = TokenAnd
	case l.ch == '|' && next == '|':
		tt = TokenOr
	default:
		single, ok := singleCharTokens[l.ch]
		if !ok {
			return 0, "", false
		}
		value := string(l.ch)
		l.readChar()
		return single, value, true
	}

	value := l.input[l.position : l.position+2]
	l.readChar()
	l.readChar()
	return tt, value, true
}

var singleCharTokens = map[byte]TokenType{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenMultiply,
	'/': TokenDivide,
	'%': TokenModulo,
	'=': TokenAssign,
	'>': TokenGreater,
	'<': TokenLess,
	'!': TokenNot,
	'(': TokenLParen,
	')': TokenRParen,
	'{': TokenLBrace,
	'}': TokenRBrace,
	';': TokenSemicolon,
	',': TokenComma,
}

// readChar advances to the next character, updating line and column
func (l *Lexer) readChar() {
	if l.atEnd() {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.position++
	if l.position < len(l.input) {
		l.ch = l.input[l.position]
	} else {
		l.ch = 0
	}
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() byte {
	if l.position+1 >= len(l.input) {
		return 0
	}
	return l.input[l.position+1]
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && (l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r') {
		l.readChar()
	}
}

// readComment reads from '#' up to, not including, the next newline
func (l *Lexer) readComment() string {
	start := l.position
	for !l.atEnd() && l.ch != '\n' {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for !l.atEnd() && (isLetter(l.ch) || isDigit(l.ch)) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber reads an integer or, when a digit follows the dot, a float
func (l *Lexer) readNumber() (TokenType, string) {
	start := l.position
	tt := TokenInteger

	for !l.atEnd() && isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		tt = TokenFloat
		l.readChar()
		for !l.atEnd() && isDigit(l.ch) {
			l.readChar()
		}
	}

	return tt, l.input[start:l.position]
}

// readString reads a double-quoted literal and returns it as written,
// quotes and escape sequences included.
func (l *Lexer) readString() (string, error) {
	start := l.position
	unterminated := &LexicalError{
		Message: "unterminated string literal",
		Line:    l.line,
		Column:  l.column,
	}

	l.readChar() // opening quote
	for {
		if l.atEnd() || l.ch == '\n' {
			return "", unterminated
		}
		if l.ch == '"' {
			l.readChar()
			return l.input[start:l.position], nil
		}
		if l.ch == '\\' {
			l.readChar()
			if l.atEnd() {
				return "", unterminated
			}
		}
		l.readChar()
	}
}

// Unquote decodes a STRING token value into the text it denotes.
// Recognized escapes are \n \t \r \\ and \"; any other escaped
// character stands for itself.
func Unquote(lexeme string) string {
	if len(lexeme) >= 2 && lexeme[0] == '"' && lexeme[len(lexeme)-1] == '"' {
		lexeme = lexeme[1 : len(lexeme)-1]
	}
	if !strings.Contains(lexeme, "\\") {
		return lexeme
	}

	var b strings.Builder
	b.Grow(len(lexeme))
	for i := 0; i < len(lexeme); i++ {
		ch := lexeme[i]
		if ch != '\\' || i+1 >= len(lexeme) {
			b.WriteByte(ch)
			continue
		}
		i++
		switch lexeme[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(lexeme[i])
		}
	}
	return b.String()
}

// JoinTokens rebuilds source text from token values. Tokens are separated
// by single spaces and every comment is placed on a line of its own, so
// re-tokenizing the result yields the same token types.
func JoinTokens(tokens []Token) string {
	var b strings.Builder
	lineStart := true

	for _, tok := range tokens {
		switch tok.Type {
		case TokenEOF:
			continue
		case TokenComment:
			if !lineStart {
				b.WriteByte('\n')
			}
			b.WriteString(tok.Value)
			b.WriteByte('\n')
			lineStart = true
			continue
		}

		if !lineStart {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Value)
		lineStart = false
	}

	return b.String()
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
