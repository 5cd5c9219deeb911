// Package ast defines the abstract syntax tree for Khamseena programs.
//
// Package: ast
// Title: Khamseena Abstract Syntax Tree
// Description: The node set is closed: Statement and Expression carry
//              unexported marker methods, and Visitor has one method per
//              node type. Nodes are built once by the parser and are not
//              modified afterwards.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Usage:
//
//	fmt.Print(ast.Tree(program))   // debug tree
//	fmt.Print(ast.Format(program)) // canonical source
//
//	calls := ast.NewCollectorVisitor().Collect(program).Calls
package ast
