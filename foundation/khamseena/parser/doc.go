// Package parser implements the Khamseena lexer and recursive descent parser.
//
// Package: parser
// Title: Khamseena Lexer and Parser
// Description: The lexer turns source text into tokens and fails on the first
//              invalid character or unterminated string. The parser turns the
//              tokens into an ast.Program, recovering from malformed statements
//              by skipping to the next ';' or declaration keyword.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Grammar (lowest precedence first):
//
//	or         = and { "||" and }
//	and        = equality { "&&" equality }
//	equality   = comparison { ( "==" | "!=" ) comparison }
//	comparison = term { ( ">" | "<" | ">=" | "<=" ) term }
//	term       = factor { ( "+" | "-" ) factor }
//	factor     = unary { ( "*" | "/" | "%" ) unary }
//	unary      = ( "!" | "-" ) unary | call
//	call       = primary [ "(" [ expression { "," expression } ] ")" ]
//	primary    = INTEGER | FLOAT | STRING | "sweet" | "sour" | IDENTIFIER | "(" expression ")"
//
// Usage:
//
//	tokens, err := parser.TokenizeInput(source)
//	if err != nil {
//		return err // *parser.LexicalError
//	}
//	p := parser.New(parser.Options{})
//	program, err := p.Parse(tokens)
//	for _, perr := range p.Errors() {
//		fmt.Println(perr)
//	}
package parser
