// File: visitor.go
// Title: Khamseena AST Visitor Pattern Implementation
// Description: Declares the Visitor interface with one method per node type
//              and generic traversal helpers built on top of it.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial visitor implementation

package ast

// Visitor interface for traversing AST nodes. Adding a node type adds a
// method here, so every implementation must handle it.
type Visitor interface {
	VisitProgram(node *Program) interface{}

	// Statements
	VisitFunctionDef(node *FunctionDef) interface{}
	VisitParameter(node *Parameter) interface{}
	VisitVarDeclaration(node *VarDeclaration) interface{}
	VisitAssignment(node *Assignment) interface{}
	VisitPrintStatement(node *PrintStatement) interface{}
	VisitInputStatement(node *InputStatement) interface{}
	VisitIfStatement(node *IfStatement) interface{}
	VisitWhileStatement(node *WhileStatement) interface{}
	VisitReturnStatement(node *ReturnStatement) interface{}
	VisitBlock(node *Block) interface{}
	VisitExpressionStatement(node *ExpressionStatement) interface{}
	VisitCommentStatement(node *CommentStatement) interface{}
	VisitFetchStatement(node *FetchStatement) interface{}

	// Expressions
	VisitBinaryOp(node *BinaryOp) interface{}
	VisitUnaryOp(node *UnaryOp) interface{}
	VisitFunctionCall(node *FunctionCall) interface{}
	VisitVariable(node *Variable) interface{}
	VisitLiteral(node *Literal) interface{}
}

// Children returns the direct children of a node in source order.
// Absent optional children are omitted.
func Children(node Node) []Node {
	var out []Node
	add := func(n Node) {
		if n != nil {
			out = append(out, n)
		}
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Statements {
			add(s)
		}
	case *FunctionDef:
		for _, p := range n.Params {
			add(p)
		}
		if n.Body != nil {
			add(n.Body)
		}
	case *VarDeclaration:
		add(n.Initializer)
	case *Assignment:
		add(n.Value)
	case *PrintStatement:
		add(n.Value)
	case *InputStatement:
		add(n.Target)
	case *IfStatement:
		add(n.Condition)
		add(n.Then)
		add(n.Else)
	case *WhileStatement:
		add(n.Condition)
		add(n.Body)
	case *ReturnStatement:
		add(n.Value)
	case *Block:
		for _, s := range n.Statements {
			add(s)
		}
	case *ExpressionStatement:
		add(n.Expr)
	case *BinaryOp:
		add(n.Left)
		add(n.Right)
	case *UnaryOp:
		add(n.Operand)
	case *FunctionCall:
		for _, a := range n.Arguments {
			add(a)
		}
	}

	return out
}

// Inspect traverses the tree depth-first in source order, calling fn for
// each node. Children are skipped when fn returns false.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	for _, child := range Children(node) {
		Inspect(child, fn)
	}
}

// CollectorVisitor collects declarations and references from a tree
type CollectorVisitor struct {
	Functions []*FunctionDef
	Variables []*VarDeclaration
	Calls     []*FunctionCall
	Refs      []*Variable
	Literals  []*Literal
}

// NewCollectorVisitor creates an empty collector
func NewCollectorVisitor() *CollectorVisitor {
	return &CollectorVisitor{}
}

// Collect walks node and records every node of interest
func (cv *CollectorVisitor) Collect(node Node) *CollectorVisitor {
	Inspect(node, func(n Node) bool {
		switch x := n.(type) {
		case *FunctionDef:
			cv.Functions = append(cv.Functions, x)
		case *VarDeclaration:
			cv.Variables = append(cv.Variables, x)
		case *FunctionCall:
			cv.Calls = append(cv.Calls, x)
		case *Variable:
			cv.Refs = append(cv.Refs, x)
		case *Literal:
			cv.Literals = append(cv.Literals, x)
		}
		return true
	})
	return cv
}

// CountNodes returns the number of nodes in the tree rooted at node
func CountNodes(node Node) int {
	count := 0
	Inspect(node, func(Node) bool {
		count++
		return true
	})
	return count
}
