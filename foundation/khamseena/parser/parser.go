// File: parser.go
// Title: Khamseena Recursive Descent Parser
// Description: Builds an AST from a token slice. Statements are dispatched on
//              their first token and expressions are parsed with one function
//              per precedence level. A malformed statement is reported, skipped
//              by synchronizing to the next statement boundary, and parsing
//              continues.
// Author: msto63
// Version: v0.1.1
// Created: 2025-10-19
// Modified: 2025-11-03
//
// Change History:
// - 2025-10-19 v0.1.0: Initial parser implementation
// - 2025-11-03 v0.1.1: Recovery stops at '}' inside blocks; fatal errors are
//                      no longer also listed as recovered

package parser

import (
	"errors"

	mdwlog "github.com/msto63/khamseena/foundation/core/log"
	"github.com/msto63/khamseena/foundation/khamseena/ast"
)

// Parser implements recursive descent parsing for Khamseena
type Parser struct {
	tokens  []Token
	current int   // Index of the next unconsumed token
	prev    Token // Last consumed non-comment token
	hasPrev bool
	depth   int // Open blocks around the current statement
	errors  []*ParseError
	logger  *mdwlog.Logger
	options Options
}

// Options configures parser behavior
type Options struct {
	Logger *mdwlog.Logger
}

// New creates a new parser with the given options
func New(opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	return &Parser{
		logger:  opts.Logger.WithField("component", "khamseena-parser"),
		options: opts,
	}
}

// Parse builds a Program from tokens. Recoverable statement errors are
// collected (see Errors) and the offending statements are dropped. A
// non-nil error is returned only when recovery reached end of input
// without finding a statement boundary; it is a *ParseError with Fatal set.
func (p *Parser) Parse(tokens []Token) (*ast.Program, error) {
	p.reset(tokens)

	p.logger.Debug("Starting parse", mdwlog.Fields{"tokens": len(p.tokens)})

	program := &ast.Program{Pos: p.position(p.peek())}
	for p.peek().Type != TokenEOF {
		stmt, err := p.statement()
		if err != nil {
			p.logger.Warn("Parse aborted", mdwlog.Fields{"error": err.Error()})
			return nil, err
		}
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}

	p.logger.Debug("Parse completed", mdwlog.Fields{
		"statements": len(program.Statements),
		"errors":     len(p.errors),
	})

	return program, nil
}

// Errors returns the errors recorded by the last Parse call
func (p *Parser) Errors() []*ParseError {
	out := make([]*ParseError, len(p.errors))
	copy(out, p.errors)
	return out
}

func (p *Parser) reset(tokens []Token) {
	p.tokens = tokens
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != TokenEOF {
		eof := Token{Type: TokenEOF, Line: 1, Column: 1}
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			eof.Line, eof.Column = last.Line, last.Column+len(last.Value)
		}
		p.tokens = append(append([]Token(nil), tokens...), eof)
	}
	p.current = 0
	p.prev = Token{}
	p.hasPrev = false
	p.depth = 0
	p.errors = nil
}

// Statements

// statement parses one statement and recovers from errors inside it.
// Only a fatal error is returned.
func (p *Parser) statement() (ast.Statement, error) {
	start := p.current
	stmt, err := p.parseStatement()
	if err == nil {
		return stmt, nil
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		perr = p.errorAt(p.peek(), err.Error())
	}
	if perr.Fatal {
		return nil, perr
	}

	if !p.synchronize(start) {
		perr.Fatal = true
		return nil, perr
	}

	p.errors = append(p.errors, perr)
	p.logger.Warn("Recovered from parse error", mdwlog.Fields{
		"line":    perr.Line,
		"column":  perr.Column,
		"message": perr.Message,
	})
	return nil, nil
}

// parseStatement dispatches on the first token. Tokens that cannot start a
// statement are skipped and yield a nil statement.
func (p *Parser) parseStatement() (ast.Statement, error) {
	tok := p.peek()

	switch {
	case tok.Type == TokenFetch:
		return p.fetchStatement()
	case tok.Type == TokenRecipe:
		return p.functionDef()
	case tok.Type.IsTypeKeyword():
		return p.varDeclaration()
	case tok.Type == TokenServe:
		return p.printStatement()
	case tok.Type == TokenPour:
		return p.inputStatement()
	case tok.Type == TokenTaste:
		return p.ifStatement()
	case tok.Type == TokenStir:
		return p.whileStatement()
	case tok.Type == TokenDeliver:
		return p.returnStatement()
	case tok.Type == TokenComment:
		p.advance()
		return &ast.CommentStatement{Text: tok.Value, Pos: p.position(tok)}, nil
	case tok.Type == TokenLBrace:
		block, err := p.block()
		if err != nil {
			return nil, err
		}
		return block, nil
	case tok.Type == TokenIdentifier:
		if p.peekNext().Type == TokenAssign {
			return p.assignment()
		}
		return p.expressionStatement()
	default:
		p.logger.Trace("Skipping token", mdwlog.Fields{"token": tok.String()})
		p.advance()
		return nil, nil
	}
}

func startsStatement(tt TokenType) bool {
	switch tt {
	case TokenFetch, TokenRecipe, TokenServe, TokenPour, TokenTaste, TokenStir,
		TokenDeliver, TokenLBrace, TokenIdentifier, TokenComment:
		return true
	default:
		return tt.IsTypeKeyword()
	}
}

// fetchStatement parses: fetch name;
func (p *Parser) fetchStatement() (ast.Statement, error) {
	lead := p.advance()

	name := p.peek()
	if name.Type != TokenIdentifier && name.Type != TokenString {
		return nil, p.errorAt(name, "expected module name after 'fetch'")
	}
	p.advance()

	if err := p.terminator(lead, "'fetch' statement"); err != nil {
		return nil, err
	}
	return &ast.FetchStatement{Module: name.Value, Pos: p.position(lead)}, nil
}

// functionDef parses: recipe name([type] param, ...) { body }
func (p *Parser) functionDef() (ast.Statement, error) {
	lead := p.advance()

	name, err := p.consume(TokenIdentifier, "expected function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(TokenLParen, "expected '(' after function name"); err != nil {
		return nil, err
	}

	var params []*ast.Parameter
	if p.peek().Type != TokenRParen {
		for {
			param, err := p.parameter()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(TokenComma) {
				break
			}
		}
	}

	if _, err := p.consume(TokenRParen, "expected ')' after parameters"); err != nil {
		return nil, err
	}
	if p.peek().Type != TokenLBrace {
		return nil, p.errorAt(p.peek(), "expected '{' before function body")
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDef{
		Name:   name.Value,
		Params: params,
		Body:   body,
		Pos:    p.position(lead),
	}, nil
}

// parameter parses an optionally typed parameter name
func (p *Parser) parameter() (*ast.Parameter, error) {
	start := p.peek()
	paramType := ""
	if start.Type.IsTypeKeyword() {
		paramType = p.advance().Value
	}

	name, err := p.consume(TokenIdentifier, "expected parameter name")
	if err != nil {
		return nil, err
	}
	return &ast.Parameter{Type: paramType, Name: name.Value, Pos: p.position(start)}, nil
}

// varDeclaration parses: type name [= expr];
func (p *Parser) varDeclaration() (ast.Statement, error) {
	lead := p.advance()

	name, err := p.consume(TokenIdentifier, "expected variable name")
	if err != nil {
		return nil, err
	}

	var init ast.Expression
	if p.match(TokenAssign) {
		if init, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if err := p.terminator(lead, "variable declaration"); err != nil {
		return nil, err
	}
	return &ast.VarDeclaration{
		Type:        lead.Value,
		Name:        name.Value,
		Initializer: init,
		Pos:         p.position(lead),
	}, nil
}

// assignment parses: name = expr;
func (p *Parser) assignment() (ast.Statement, error) {
	lead := p.advance()
	p.advance() // '='

	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.terminator(lead, "assignment"); err != nil {
		return nil, err
	}
	return &ast.Assignment{Name: lead.Value, Value: value, Pos: p.position(lead)}, nil
}

// expressionStatement parses a bare expression with an optional ';'
func (p *Parser) expressionStatement() (ast.Statement, error) {
	lead := p.peek()
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	p.match(TokenSemicolon)
	return &ast.ExpressionStatement{Expr: expr, Pos: p.position(lead)}, nil
}

// printStatement parses: serve expr;
func (p *Parser) printStatement() (ast.Statement, error) {
	lead := p.advance()
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.terminator(lead, "'serve' statement"); err != nil {
		return nil, err
	}
	return &ast.PrintStatement{Value: value, Pos: p.position(lead)}, nil
}

// inputStatement parses: pour expr;
func (p *Parser) inputStatement() (ast.Statement, error) {
	lead := p.advance()
	target, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.terminator(lead, "'pour' statement"); err != nil {
		return nil, err
	}
	return &ast.InputStatement{Target: target, Pos: p.position(lead)}, nil
}

// ifStatement parses: taste (cond) stmt [retaste stmt]
func (p *Parser) ifStatement() (ast.Statement, error) {
	lead := p.advance()

	cond, err := p.condition("taste")
	if err != nil {
		return nil, err
	}
	then, err := p.branch("expected statement after 'taste' condition")
	if err != nil {
		return nil, err
	}

	var elseStmt ast.Statement
	if p.skipCommentsBefore(TokenRetaste) {
		p.advance()
		if elseStmt, err = p.branch("expected statement after 'retaste'"); err != nil {
			return nil, err
		}
	}

	return &ast.IfStatement{
		Condition: cond,
		Then:      then,
		Else:      elseStmt,
		Pos:       p.position(lead),
	}, nil
}

// whileStatement parses: stir (cond) stmt
func (p *Parser) whileStatement() (ast.Statement, error) {
	lead := p.advance()

	cond, err := p.condition("stir")
	if err != nil {
		return nil, err
	}
	body, err := p.branch("expected statement after 'stir' condition")
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Condition: cond, Body: body, Pos: p.position(lead)}, nil
}

// condition parses the parenthesized condition following keyword
func (p *Parser) condition(keyword string) (ast.Expression, error) {
	if _, err := p.consume(TokenLParen, "expected '(' after '"+keyword+"'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(TokenRParen, "expected ')' after condition"); err != nil {
		return nil, err
	}
	return cond, nil
}

// branch parses the single statement governed by taste, retaste or stir.
// Errors propagate to the enclosing statement so the whole construct is
// dropped on failure.
func (p *Parser) branch(message string) (ast.Statement, error) {
	tok := p.peek()
	if !startsStatement(tok.Type) {
		return nil, p.errorAt(tok, message+", found "+describe(tok))
	}
	return p.parseStatement()
}

// returnStatement parses: deliver [expr];
func (p *Parser) returnStatement() (ast.Statement, error) {
	lead := p.advance()

	var value ast.Expression
	if p.peek().Type != TokenSemicolon {
		var err error
		if value, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if err := p.terminator(lead, "'deliver' statement"); err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Value: value, Pos: p.position(lead)}, nil
}

// block parses: { statement* }
func (p *Parser) block() (*ast.Block, error) {
	lead, err := p.consume(TokenLBrace, "expected '{'")
	if err != nil {
		return nil, err
	}

	p.depth++
	defer func() { p.depth-- }()

	block := &ast.Block{Pos: p.position(lead)}
	for p.peek().Type != TokenRBrace && p.peek().Type != TokenEOF {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}

	if _, err := p.consume(TokenRBrace, "expected '}' after block"); err != nil {
		return nil, err
	}
	return block, nil
}

// terminator consumes the ';' ending a statement. A missing ';' is reported
// at the statement's leading token.
func (p *Parser) terminator(lead Token, what string) error {
	if p.match(TokenSemicolon) {
		return nil
	}
	err := p.errorAt(p.peek(), "expected ';' after "+what)
	err.Line, err.Column = lead.Line, lead.Column
	return err
}

// Expressions, lowest precedence first

func (p *Parser) expression() (ast.Expression, error) {
	return p.or()
}

// binary parses a left-associative chain of operators of one precedence level
func (p *Parser) binary(next func() (ast.Expression, error), ops ...TokenType) (ast.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for p.check(ops...) {
		op := p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Left: left, Operator: op.Value, Right: right, Pos: left.Position()}
	}
	return left, nil
}

func (p *Parser) or() (ast.Expression, error) {
	return p.binary(p.and, TokenOr)
}

func (p *Parser) and() (ast.Expression, error) {
	return p.binary(p.equality, TokenAnd)
}

func (p *Parser) equality() (ast.Expression, error) {
	return p.binary(p.comparison, TokenEqual, TokenNotEqual)
}

func (p *Parser) comparison() (ast.Expression, error) {
	return p.binary(p.term, TokenGreater, TokenLess, TokenGreaterEqual, TokenLessEqual)
}

func (p *Parser) term() (ast.Expression, error) {
	return p.binary(p.factor, TokenPlus, TokenMinus)
}

func (p *Parser) factor() (ast.Expression, error) {
	return p.binary(p.unary, TokenMultiply, TokenDivide, TokenModulo)
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.check(TokenNot, TokenMinus) {
		op := p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Operator: op.Value, Operand: operand, Pos: p.position(op)}, nil
	}
	return p.call()
}

// call parses a primary optionally followed by an argument list. Only a
// bare name can be called.
func (p *Parser) call() (ast.Expression, error) {
	start := p.peek()
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	if !p.match(TokenLParen) {
		return expr, nil
	}

	var args []ast.Expression
	if p.peek().Type != TokenRParen {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(TokenComma) {
				break
			}
		}
	}
	if _, err := p.consume(TokenRParen, "expected ')' after arguments"); err != nil {
		return nil, err
	}

	callee, ok := expr.(*ast.Variable)
	if !ok {
		return nil, p.errorAt(start, "can only call functions")
	}
	return &ast.FunctionCall{Name: callee.Name, Arguments: args, Pos: callee.Pos}, nil
}

func (p *Parser) primary() (ast.Expression, error) {
	tok := p.peek()
	pos := p.position(tok)

	switch tok.Type {
	case TokenInteger:
		p.advance()
		return &ast.Literal{Value: tok.Value, Type: ast.LiteralInteger, Pos: pos}, nil
	case TokenFloat:
		p.advance()
		return &ast.Literal{Value: tok.Value, Type: ast.LiteralFloat, Pos: pos}, nil
	case TokenString:
		p.advance()
		return &ast.Literal{Value: tok.Value, Type: ast.LiteralString, Pos: pos}, nil
	case TokenSweet:
		p.advance()
		return &ast.Literal{Value: ast.True, Type: ast.LiteralBoolean, Pos: pos}, nil
	case TokenSour:
		p.advance()
		return &ast.Literal{Value: ast.False, Type: ast.LiteralBoolean, Pos: pos}, nil
	case TokenIdentifier:
		p.advance()
		return &ast.Variable{Name: tok.Value, Pos: pos}, nil
	case TokenLParen:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(TokenRParen, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return expr, nil
	}

	return nil, p.errorAt(tok, "expected expression")
}

// Recovery

// synchronize discards tokens until just after a ';' or just before a token
// that starts a declaration or print statement. Inside a block it also stops
// before a '}' so the block can close. start is the index where the failed
// statement began; at least one token past it is consumed. It reports false
// when end of input is reached without such a boundary.
func (p *Parser) synchronize(start int) bool {
	if p.current > start && p.atSyncPoint() {
		return true
	}

	p.advance()
	for p.peek().Type != TokenEOF {
		if p.prev.Type == TokenSemicolon || p.atSyncPoint() {
			return true
		}
		p.advance()
	}
	return p.hasPrev && p.prev.Type == TokenSemicolon
}

func (p *Parser) atSyncPoint() bool {
	tt := p.peek().Type
	return isSyncPoint(tt) || (p.depth > 0 && tt == TokenRBrace)
}

func isSyncPoint(tt TokenType) bool {
	switch tt {
	case TokenRecipe, TokenCount, TokenMeasure, TokenNote, TokenFlavor, TokenServe:
		return true
	default:
		return false
	}
}

// Token access

// atBoundary reports whether the parser stands where a statement may begin,
// which is where comments turn into comment statements.
func (p *Parser) atBoundary() bool {
	if !p.hasPrev {
		return true
	}
	switch p.prev.Type {
	case TokenSemicolon, TokenLBrace, TokenRBrace:
		return true
	default:
		return false
	}
}

// peek returns the current token. Comments inside a statement are skipped.
func (p *Parser) peek() Token {
	if !p.atBoundary() {
		for p.tokens[p.current].Type == TokenComment {
			p.current++
		}
	}
	return p.tokens[p.current]
}

// peekNext returns the token after the current one, ignoring comments
func (p *Parser) peekNext() Token {
	p.peek()
	for i := p.current + 1; i < len(p.tokens); i++ {
		if p.tokens[i].Type != TokenComment {
			return p.tokens[i]
		}
	}
	return p.tokens[len(p.tokens)-1]
}

// skipCommentsBefore drops comments when the first non-comment token has
// type tt, so that comments between '}' and 'retaste' do not split an if.
func (p *Parser) skipCommentsBefore(tt TokenType) bool {
	i := p.current
	for p.tokens[i].Type == TokenComment {
		i++
	}
	if p.tokens[i].Type != tt {
		return false
	}
	p.current = i
	return true
}

// advance consumes and returns the current token; EOF is never consumed
func (p *Parser) advance() Token {
	tok := p.peek()
	if tok.Type != TokenEOF {
		p.current++
	}
	if tok.Type != TokenComment {
		p.prev = tok
		p.hasPrev = true
	}
	return tok
}

func (p *Parser) check(types ...TokenType) bool {
	current := p.peek().Type
	for _, tt := range types {
		if current == tt {
			return true
		}
	}
	return false
}

func (p *Parser) match(tt TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(tt TokenType, message string) (Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return Token{}, p.errorAt(p.peek(), message)
}

func (p *Parser) errorAt(tok Token, message string) *ParseError {
	return &ParseError{Message: message, Line: tok.Line, Column: tok.Column, Token: tok}
}

func (p *Parser) position(tok Token) ast.Position {
	return ast.Position{Line: tok.Line, Column: tok.Column}
}
