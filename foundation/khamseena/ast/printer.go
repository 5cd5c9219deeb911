// File: printer.go
// Title: AST Renderers
// Description: Two renderers built on the Visitor interface: Tree draws an
//              indented debug view of the node hierarchy, Format prints a
//              program back as canonical Khamseena source.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial tree and source renderers

package ast

import (
	"strings"
)

// Tree returns an indented, multi-line rendering of the node hierarchy
func Tree(node Node) string {
	if node == nil {
		return ""
	}
	tp := &treePrinter{}
	node.Accept(tp)
	return tp.buf.String()
}

type treePrinter struct {
	buf    strings.Builder
	indent int
}

func (tp *treePrinter) line(text string) {
	tp.buf.WriteString(strings.Repeat("  ", tp.indent))
	tp.buf.WriteString(text)
	tp.buf.WriteByte('\n')
}

// labeled prints a label line and the node one level below it
func (tp *treePrinter) labeled(label string, node Node) {
	if node == nil {
		return
	}
	tp.indent++
	tp.line(label + ":")
	tp.indent++
	node.Accept(tp)
	tp.indent -= 2
}

func (tp *treePrinter) children(node Node) interface{} {
	tp.line(node.String())
	tp.indent++
	for _, child := range Children(node) {
		child.Accept(tp)
	}
	tp.indent--
	return nil
}

func (tp *treePrinter) VisitProgram(n *Program) interface{}         { return tp.children(n) }
func (tp *treePrinter) VisitFunctionDef(n *FunctionDef) interface{} { return tp.children(n) }
func (tp *treePrinter) VisitParameter(n *Parameter) interface{}     { return tp.children(n) }
func (tp *treePrinter) VisitBlock(n *Block) interface{}             { return tp.children(n) }
func (tp *treePrinter) VisitCommentStatement(n *CommentStatement) interface{} {
	return tp.children(n)
}
func (tp *treePrinter) VisitFetchStatement(n *FetchStatement) interface{} { return tp.children(n) }
func (tp *treePrinter) VisitVariable(n *Variable) interface{}             { return tp.children(n) }
func (tp *treePrinter) VisitLiteral(n *Literal) interface{}               { return tp.children(n) }
func (tp *treePrinter) VisitFunctionCall(n *FunctionCall) interface{}     { return tp.children(n) }
func (tp *treePrinter) VisitUnaryOp(n *UnaryOp) interface{}               { return tp.children(n) }

func (tp *treePrinter) VisitVarDeclaration(n *VarDeclaration) interface{} {
	tp.line(n.String())
	tp.labeled("value", n.Initializer)
	return nil
}

func (tp *treePrinter) VisitAssignment(n *Assignment) interface{} {
	tp.line(n.String())
	tp.labeled("value", n.Value)
	return nil
}

func (tp *treePrinter) VisitPrintStatement(n *PrintStatement) interface{} {
	return tp.children(n)
}

func (tp *treePrinter) VisitInputStatement(n *InputStatement) interface{} {
	return tp.children(n)
}

func (tp *treePrinter) VisitIfStatement(n *IfStatement) interface{} {
	tp.line(n.String())
	tp.labeled("condition", n.Condition)
	tp.labeled("then", n.Then)
	tp.labeled("else", n.Else)
	return nil
}

func (tp *treePrinter) VisitWhileStatement(n *WhileStatement) interface{} {
	tp.line(n.String())
	tp.labeled("condition", n.Condition)
	tp.labeled("body", n.Body)
	return nil
}

func (tp *treePrinter) VisitReturnStatement(n *ReturnStatement) interface{} {
	return tp.children(n)
}

func (tp *treePrinter) VisitExpressionStatement(n *ExpressionStatement) interface{} {
	return tp.children(n)
}

func (tp *treePrinter) VisitBinaryOp(n *BinaryOp) interface{} {
	tp.line(n.String())
	tp.labeled("left", n.Left)
	tp.labeled("right", n.Right)
	return nil
}

// Operator precedence levels, lowest first
const (
	precOr = iota + 1
	precAnd
	precEquality
	precComparison
	precTerm
	precFactor
	precUnary
	precPrimary
)

// Precedence returns the binding strength of a binary operator, 0 if unknown
func Precedence(operator string) int {
	switch operator {
	case "||":
		return precOr
	case "&&":
		return precAnd
	case "==", "!=":
		return precEquality
	case ">", "<", ">=", "<=":
		return precComparison
	case "+", "-":
		return precTerm
	case "*", "/", "%":
		return precFactor
	default:
		return 0
	}
}

// Format prints a program as canonical source: four-space indentation,
// one statement per line and only the parentheses precedence requires.
// Formatting the parse of Format's output yields the same text.
func Format(program *Program) string {
	if program == nil {
		return ""
	}
	sp := &sourcePrinter{}
	program.Accept(sp)
	return sp.buf.String()
}

// FormatExpression prints a single expression as source
func FormatExpression(expr Expression) string {
	if expr == nil {
		return ""
	}
	sp := &sourcePrinter{}
	return sp.expr(expr)
}

type sourcePrinter struct {
	buf    strings.Builder
	indent int
}

func (sp *sourcePrinter) line(text string) {
	sp.buf.WriteString(strings.Repeat("    ", sp.indent))
	sp.buf.WriteString(text)
	sp.buf.WriteByte('\n')
}

func (sp *sourcePrinter) expr(e Expression) string {
	return e.Accept(sp).(string)
}

// operand renders a child expression, parenthesized when it binds looser
// than its parent. Equal precedence on the right also needs parentheses
// since all binary operators are left-associative.
func (sp *sourcePrinter) operand(child Expression, parent int, right bool) string {
	text := sp.expr(child)
	prec := precPrimary
	switch c := child.(type) {
	case *BinaryOp:
		prec = Precedence(c.Operator)
	case *UnaryOp:
		prec = precUnary
	}
	if prec < parent || (right && prec == parent) {
		return "(" + text + ")"
	}
	return text
}

// header prints a statement that owns a nested branch, e.g. "taste (c)".
// Blocks open on the header line, any other branch goes one level deeper.
func (sp *sourcePrinter) header(head string, branch Statement) {
	if block, ok := branch.(*Block); ok {
		sp.line(head + " {")
		sp.blockBody(block)
		sp.line("}")
		return
	}
	sp.line(head)
	sp.indent++
	branch.Accept(sp)
	sp.indent--
}

func (sp *sourcePrinter) blockBody(b *Block) {
	sp.indent++
	for _, s := range b.Statements {
		s.Accept(sp)
	}
	sp.indent--
}

func (sp *sourcePrinter) VisitProgram(n *Program) interface{} {
	for _, s := range n.Statements {
		s.Accept(sp)
	}
	return nil
}

func (sp *sourcePrinter) VisitFunctionDef(n *FunctionDef) interface{} {
	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		params[i] = p.Accept(sp).(string)
	}
	sp.line("recipe " + n.Name + "(" + strings.Join(params, ", ") + ") {")
	if n.Body != nil {
		sp.blockBody(n.Body)
	}
	sp.line("}")
	return nil
}

func (sp *sourcePrinter) VisitParameter(n *Parameter) interface{} {
	if n.Type == "" {
		return n.Name
	}
	return n.Type + " " + n.Name
}

func (sp *sourcePrinter) VisitVarDeclaration(n *VarDeclaration) interface{} {
	if n.Initializer == nil {
		sp.line(n.Type + " " + n.Name + ";")
	} else {
		sp.line(n.Type + " " + n.Name + " = " + sp.expr(n.Initializer) + ";")
	}
	return nil
}

func (sp *sourcePrinter) VisitAssignment(n *Assignment) interface{} {
	sp.line(n.Name + " = " + sp.expr(n.Value) + ";")
	return nil
}

func (sp *sourcePrinter) VisitPrintStatement(n *PrintStatement) interface{} {
	sp.line("serve " + sp.expr(n.Value) + ";")
	return nil
}

func (sp *sourcePrinter) VisitInputStatement(n *InputStatement) interface{} {
	sp.line("pour " + sp.expr(n.Target) + ";")
	return nil
}

func (sp *sourcePrinter) VisitIfStatement(n *IfStatement) interface{} {
	sp.ifChain("taste ("+sp.expr(n.Condition)+")", n)
	return nil
}

// ifChain keeps "retaste taste" chains at the same indentation level
func (sp *sourcePrinter) ifChain(head string, n *IfStatement) {
	sp.header(head, n.Then)
	switch e := n.Else.(type) {
	case nil:
	case *IfStatement:
		sp.ifChain("retaste taste ("+sp.expr(e.Condition)+")", e)
	default:
		sp.header("retaste", e)
	}
}

func (sp *sourcePrinter) VisitWhileStatement(n *WhileStatement) interface{} {
	sp.header("stir ("+sp.expr(n.Condition)+")", n.Body)
	return nil
}

func (sp *sourcePrinter) VisitReturnStatement(n *ReturnStatement) interface{} {
	if n.Value == nil {
		sp.line("deliver;")
	} else {
		sp.line("deliver " + sp.expr(n.Value) + ";")
	}
	return nil
}

func (sp *sourcePrinter) VisitBlock(n *Block) interface{} {
	sp.line("{")
	sp.blockBody(n)
	sp.line("}")
	return nil
}

func (sp *sourcePrinter) VisitExpressionStatement(n *ExpressionStatement) interface{} {
	sp.line(sp.expr(n.Expr) + ";")
	return nil
}

func (sp *sourcePrinter) VisitCommentStatement(n *CommentStatement) interface{} {
	sp.line(n.Text)
	return nil
}

func (sp *sourcePrinter) VisitFetchStatement(n *FetchStatement) interface{} {
	sp.line("fetch " + n.Module + ";")
	return nil
}

func (sp *sourcePrinter) VisitBinaryOp(n *BinaryOp) interface{} {
	prec := Precedence(n.Operator)
	return sp.operand(n.Left, prec, false) + " " + n.Operator + " " + sp.operand(n.Right, prec, true)
}

func (sp *sourcePrinter) VisitUnaryOp(n *UnaryOp) interface{} {
	return n.Operator + sp.operand(n.Operand, precUnary, false)
}

func (sp *sourcePrinter) VisitFunctionCall(n *FunctionCall) interface{} {
	args := make([]string, len(n.Arguments))
	for i, a := range n.Arguments {
		args[i] = sp.expr(a)
	}
	return n.Name + "(" + strings.Join(args, ", ") + ")"
}

func (sp *sourcePrinter) VisitVariable(n *Variable) interface{} {
	return n.Name
}

func (sp *sourcePrinter) VisitLiteral(n *Literal) interface{} {
	return n.Value
}
