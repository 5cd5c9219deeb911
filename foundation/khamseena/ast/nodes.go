// File: nodes.go
// Title: Khamseena AST Node Definitions
// Description: Defines the closed set of AST node types for Khamseena
//              programs: the program root, statements and expressions.
//              Nodes are plain data; String returns a one-line summary.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial AST node definitions

package ast

import (
	"fmt"
)

// Node represents the base interface for all AST nodes
type Node interface {
	// String returns a one-line summary of the node
	String() string

	// Accept implements the visitor pattern
	Accept(visitor Visitor) interface{}

	// Position returns the position of the node's leading token
	Position() Position
}

// Statement is implemented by every node that may appear in a statement list
type Statement interface {
	Node
	stmtNode()
}

// Expression is implemented by every expression node
type Expression interface {
	Node
	exprNode()
}

// Position represents a position in the source code
type Position struct {
	Line   int `json:"line" yaml:"line"`     // Line number (1-based)
	Column int `json:"column" yaml:"column"` // Column number (1-based)
}

// String returns "line:column"
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Literal type tags
const (
	LiteralInteger = "INTEGER"
	LiteralFloat   = "FLOAT"
	LiteralString  = "STRING"
	LiteralBoolean = "BOOLEAN"
)

// Boolean literal spellings
const (
	True  = "sweet"
	False = "sour"
)

// Program is the root of every parsed source file
type Program struct {
	Statements []Statement
	Pos        Position
}

// FunctionDef represents: recipe name(params) { body }
type FunctionDef struct {
	Name   string
	Params []*Parameter
	Body   *Block
	Pos    Position
}

// Parameter is a function parameter; Type is the keyword text or empty
type Parameter struct {
	Type string
	Name string
	Pos  Position
}

// VarDeclaration represents: type name [= initializer];
type VarDeclaration struct {
	Type        string
	Name        string
	Initializer Expression // nil when absent
	Pos         Position
}

// Assignment represents: name = value;
type Assignment struct {
	Name  string
	Value Expression
	Pos   Position
}

// PrintStatement represents: serve value;
type PrintStatement struct {
	Value Expression
	Pos   Position
}

// InputStatement represents: pour target;
type InputStatement struct {
	Target Expression
	Pos    Position
}

// IfStatement represents: taste (cond) then [retaste else]
type IfStatement struct {
	Condition Expression
	Then      Statement
	Else      Statement // nil, or another IfStatement for chains
	Pos       Position
}

// WhileStatement represents: stir (cond) body
type WhileStatement struct {
	Condition Expression
	Body      Statement
	Pos       Position
}

// ReturnStatement represents: deliver [value];
type ReturnStatement struct {
	Value Expression // nil for a bare deliver
	Pos   Position
}

// Block represents: { statements }
type Block struct {
	Statements []Statement
	Pos        Position
}

// ExpressionStatement is an expression used as a statement
type ExpressionStatement struct {
	Expr Expression
	Pos  Position
}

// CommentStatement keeps a source comment, including its '#'
type CommentStatement struct {
	Text string
	Pos  Position
}

// FetchStatement represents: fetch module;
type FetchStatement struct {
	Module string
	Pos    Position
}

// BinaryOp represents: left op right
type BinaryOp struct {
	Left     Expression
	Operator string
	Right    Expression
	Pos      Position
}

// UnaryOp represents: op operand
type UnaryOp struct {
	Operator string
	Operand  Expression
	Pos      Position
}

// FunctionCall represents: name(args)
type FunctionCall struct {
	Name      string
	Arguments []Expression
	Pos       Position
}

// Variable is a reference to a named symbol
type Variable struct {
	Name string
	Pos  Position
}

// Literal is a constant. Value holds the source text; string literals
// keep their quotes.
type Literal struct {
	Value string
	Type  string
	Pos   Position
}

// String methods

func (p *Program) String() string {
	return fmt.Sprintf("Program(%d statements)", len(p.Statements))
}

func (f *FunctionDef) String() string {
	return fmt.Sprintf("Function(%s, %d params)", f.Name, len(f.Params))
}

func (p *Parameter) String() string {
	if p.Type == "" {
		return fmt.Sprintf("Param(%s)", p.Name)
	}
	return fmt.Sprintf("Param(%s %s)", p.Type, p.Name)
}

func (v *VarDeclaration) String() string {
	return fmt.Sprintf("VarDecl(%s %s)", v.Type, v.Name)
}

func (a *Assignment) String() string {
	return fmt.Sprintf("Assign(%s)", a.Name)
}

func (p *PrintStatement) String() string { return "Print" }

func (i *InputStatement) String() string { return "Input" }

func (i *IfStatement) String() string {
	return fmt.Sprintf("If(has_else=%t)", i.Else != nil)
}

func (w *WhileStatement) String() string { return "While" }

func (r *ReturnStatement) String() string {
	return fmt.Sprintf("Return(has_value=%t)", r.Value != nil)
}

func (b *Block) String() string {
	return fmt.Sprintf("Block(%d stmts)", len(b.Statements))
}

func (e *ExpressionStatement) String() string { return "ExprStmt" }

func (c *CommentStatement) String() string {
	return fmt.Sprintf("Comment(%s)", c.Text)
}

func (f *FetchStatement) String() string {
	return fmt.Sprintf("Fetch(%s)", f.Module)
}

func (b *BinaryOp) String() string {
	return fmt.Sprintf("BinaryOp(%s)", b.Operator)
}

func (u *UnaryOp) String() string {
	return fmt.Sprintf("UnaryOp(%s)", u.Operator)
}

func (f *FunctionCall) String() string {
	return fmt.Sprintf("Call(%s, %d args)", f.Name, len(f.Arguments))
}

func (v *Variable) String() string {
	return fmt.Sprintf("Var(%s)", v.Name)
}

func (l *Literal) String() string {
	return fmt.Sprintf("Literal(%s: %s)", l.Type, l.Value)
}

// Accept methods

func (p *Program) Accept(v Visitor) interface{}             { return v.VisitProgram(p) }
func (f *FunctionDef) Accept(v Visitor) interface{}         { return v.VisitFunctionDef(f) }
func (p *Parameter) Accept(v Visitor) interface{}           { return v.VisitParameter(p) }
func (d *VarDeclaration) Accept(v Visitor) interface{}      { return v.VisitVarDeclaration(d) }
func (a *Assignment) Accept(v Visitor) interface{}          { return v.VisitAssignment(a) }
func (p *PrintStatement) Accept(v Visitor) interface{}      { return v.VisitPrintStatement(p) }
func (i *InputStatement) Accept(v Visitor) interface{}      { return v.VisitInputStatement(i) }
func (i *IfStatement) Accept(v Visitor) interface{}         { return v.VisitIfStatement(i) }
func (w *WhileStatement) Accept(v Visitor) interface{}      { return v.VisitWhileStatement(w) }
func (r *ReturnStatement) Accept(v Visitor) interface{}     { return v.VisitReturnStatement(r) }
func (b *Block) Accept(v Visitor) interface{}               { return v.VisitBlock(b) }
func (e *ExpressionStatement) Accept(v Visitor) interface{} { return v.VisitExpressionStatement(e) }
func (c *CommentStatement) Accept(v Visitor) interface{}    { return v.VisitCommentStatement(c) }
func (f *FetchStatement) Accept(v Visitor) interface{}      { return v.VisitFetchStatement(f) }
func (b *BinaryOp) Accept(v Visitor) interface{}            { return v.VisitBinaryOp(b) }
func (u *UnaryOp) Accept(v Visitor) interface{}             { return v.VisitUnaryOp(u) }
func (f *FunctionCall) Accept(v Visitor) interface{}        { return v.VisitFunctionCall(f) }
func (x *Variable) Accept(v Visitor) interface{}            { return v.VisitVariable(x) }
func (l *Literal) Accept(v Visitor) interface{}             { return v.VisitLiteral(l) }

// Position methods

func (p *Program) Position() Position             { return p.Pos }
func (f *FunctionDef) Position() Position         { return f.Pos }
func (p *Parameter) Position() Position           { return p.Pos }
func (d *VarDeclaration) Position() Position      { return d.Pos }
func (a *Assignment) Position() Position          { return a.Pos }
func (p *PrintStatement) Position() Position      { return p.Pos }
func (i *InputStatement) Position() Position      { return i.Pos }
func (i *IfStatement) Position() Position         { return i.Pos }
func (w *WhileStatement) Position() Position      { return w.Pos }
func (r *ReturnStatement) Position() Position     { return r.Pos }
func (b *Block) Position() Position               { return b.Pos }
func (e *ExpressionStatement) Position() Position { return e.Pos }
func (c *CommentStatement) Position() Position    { return c.Pos }
func (f *FetchStatement) Position() Position      { return f.Pos }
func (b *BinaryOp) Position() Position            { return b.Pos }
func (u *UnaryOp) Position() Position             { return u.Pos }
func (f *FunctionCall) Position() Position        { return f.Pos }
func (x *Variable) Position() Position            { return x.Pos }
func (l *Literal) Position() Position             { return l.Pos }

// Marker methods closing the statement and expression sets

func (*FunctionDef) stmtNode()         {}
func (*VarDeclaration) stmtNode()      {}
func (*Assignment) stmtNode()          {}
func (*PrintStatement) stmtNode()      {}
func (*InputStatement) stmtNode()      {}
func (*IfStatement) stmtNode()         {}
func (*WhileStatement) stmtNode()      {}
func (*ReturnStatement) stmtNode()     {}
func (*Block) stmtNode()               {}
func (*ExpressionStatement) stmtNode() {}
func (*CommentStatement) stmtNode()    {}
func (*FetchStatement) stmtNode()      {}

func (*BinaryOp) exprNode()     {}
func (*UnaryOp) exprNode()      {}
func (*FunctionCall) exprNode() {}
func (*Variable) exprNode()     {}
func (*Literal) exprNode()      {}
