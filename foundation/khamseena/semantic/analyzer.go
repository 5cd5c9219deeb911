// File: analyzer.go
// Title: Semantic Analyzer
// Description: Walks a Program once, building the scope tree, resolving
//              names and inferring expression types. Problems are recorded
//              as diagnostics and the walk continues; only a malformed tree
//              stops it.
// Author: msto63
// Version: v0.1.1
// Created: 2025-10-19
// Modified: 2025-11-03
//
// Change History:
// - 2025-10-19 v0.1.0: Initial analyzer implementation
// - 2025-11-03 v0.1.1: All definitions go through declare

package semantic

import (
	"fmt"

	mdwerror "github.com/msto63/khamseena/foundation/core/error"
	mdwlog "github.com/msto63/khamseena/foundation/core/log"
	"github.com/msto63/khamseena/foundation/khamseena/ast"
)

// Options configures the analyzer
type Options struct {
	Logger *mdwlog.Logger
}

// Result is the outcome of one analysis
type Result struct {
	Success  bool
	Errors   []Diagnostic
	Warnings []Diagnostic
	Scopes   *ScopeTree
}

// Analyzer performs scope-aware name resolution and type checking.
// An Analyzer may be reused but not shared between goroutines.
type Analyzer struct {
	logger *mdwlog.Logger

	scopes   *ScopeTree
	current  ScopeID
	blocks   int
	function string // Function whose parameters are being defined
	diags    *Diagnostics
}

// fatal aborts the walk; it is raised by panic and recovered in Analyze
type fatal struct {
	message string
	pos     ast.Position
}

// NewAnalyzer creates a new analyzer
func NewAnalyzer(opts Options) *Analyzer {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	return &Analyzer{
		logger: opts.Logger.WithField("component", "khamseena-semantic"),
	}
}

// Analyze checks program and returns the collected diagnostics together
// with the populated scope tree. The error is non-nil only when the tree
// itself is malformed; the result then holds that problem as its single
// error.
func (a *Analyzer) Analyze(program *ast.Program) (result *Result, err error) {
	a.scopes = NewScopeTree()
	a.current = GlobalScope
	a.blocks = 0
	a.function = ""
	a.diags = &Diagnostics{}

	a.logger.Debug("Starting semantic analysis")

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		f, ok := r.(fatal)
		if !ok {
			panic(r)
		}

		d := Diagnostic{Severity: SeverityError, Message: f.message, Pos: f.pos}
		result = &Result{Errors: []Diagnostic{d}, Scopes: a.scopes}
		err = mdwerror.New("fatal semantic error: " + f.message).
			WithCode(mdwerror.CodeSemanticFatal).
			WithOperation("semantic.Analyze").
			WithDetail("line", f.pos.Line).
			WithDetail("column", f.pos.Column)

		a.logger.ErrorWithErr("Semantic analysis aborted", err)
	}()

	if program == nil {
		a.fail(ast.Position{}, "program is nil")
	}
	program.Accept(a)

	result = &Result{
		Success:  !a.diags.HasErrors(),
		Errors:   a.diags.Errors(),
		Warnings: a.diags.Warnings(),
		Scopes:   a.scopes,
	}

	a.logger.Debug("Semantic analysis completed", mdwlog.Fields{
		"errors":   len(result.Errors),
		"warnings": len(result.Warnings),
		"scopes":   a.scopes.Len(),
	})

	return result, nil
}

func (a *Analyzer) fail(pos ast.Position, format string, args ...interface{}) {
	panic(fatal{message: fmt.Sprintf(format, args...), pos: pos})
}

// Scope handling

func (a *Analyzer) enterScope(name string) {
	a.current = a.scopes.NewScope(a.current, name)
}

func (a *Analyzer) enterBlock() {
	a.blocks++
	a.enterScope(fmt.Sprintf("block_%d", a.blocks))
}

func (a *Analyzer) exitScope() {
	if parent := a.scopes.Scope(a.current).Parent; parent != NoScope {
		a.current = parent
	}
}

// declare defines sym in the current scope. A clash is recorded as an
// error at sym.Pos using format, which receives the *AlreadyDefinedError.
func (a *Analyzer) declare(sym Symbol, format string) bool {
	if err := a.scopes.Define(a.current, sym); err != nil {
		a.diags.Errorf(sym.Pos, format, err)
		return false
	}
	return true
}

func (a *Analyzer) scopeName() string {
	return a.scopes.Scope(a.current).Name
}

// Walking helpers

func (a *Analyzer) statement(parent ast.Node, stmt ast.Statement, role string) {
	if stmt == nil {
		a.fail(parent.Position(), "%s has no %s", parent, role)
	}
	stmt.Accept(a)
}

// typeOf infers the type of a required expression
func (a *Analyzer) typeOf(parent ast.Node, expr ast.Expression, role string) Type {
	if expr == nil {
		a.fail(parent.Position(), "%s has no %s", parent, role)
	}
	return expr.Accept(a).(Type)
}

func (a *Analyzer) checkCondition(n ast.Node, cond ast.Expression, format string) {
	if t := a.typeOf(n, cond, "condition"); !t.IsBooleanLike() {
		a.diags.Warnf(cond.Position(), format, t)
	}
}

// Statements

func (a *Analyzer) VisitProgram(n *ast.Program) interface{} {
	for _, stmt := range n.Statements {
		a.statement(n, stmt, "statement")
	}
	return nil
}

func (a *Analyzer) VisitFunctionDef(n *ast.FunctionDef) interface{} {
	sym := Symbol{Name: n.Name, Type: TypeFunction, Kind: KindFunction, Pos: n.Pos}
	if !a.declare(sym, "function %s") {
		return nil
	}
	if n.Body == nil {
		a.fail(n.Pos, "%s has no body", n)
	}

	a.enterScope("function_" + n.Name)
	a.function = n.Name
	for _, param := range n.Params {
		if param == nil {
			a.fail(n.Pos, "%s has a nil parameter", n)
		}
		param.Accept(a)
	}
	a.function = ""

	n.Body.Accept(a)
	a.exitScope()
	return nil
}

func (a *Analyzer) VisitParameter(n *ast.Parameter) interface{} {
	sym := Symbol{Name: n.Name, Type: TypeFromKeyword(n.Type), Kind: KindParameter, Pos: n.Pos}
	a.declare(sym, "in function '"+a.function+"': parameter %s")
	return nil
}

func (a *Analyzer) VisitVarDeclaration(n *ast.VarDeclaration) interface{} {
	declared := TypeFromKeyword(n.Type)

	if _, exists := a.scopes.Scope(a.current).LookupLocal(n.Name); exists {
		a.diags.Errorf(n.Pos, "variable '%s' already declared in %s scope", n.Name, a.scopeName())
		return nil
	}

	if n.Initializer != nil {
		init := n.Initializer.Accept(a).(Type)
		if !IsCompatible(declared, init) {
			a.diags.Errorf(n.Pos, "type mismatch in variable '%s': cannot assign %s to %s",
				n.Name, init, declared)
		}
	}

	// Defined after the initializer so "count x = x;" does not see itself
	a.declare(Symbol{Name: n.Name, Type: declared, Kind: KindVariable, Pos: n.Pos}, "variable %s")
	return nil
}

func (a *Analyzer) VisitAssignment(n *ast.Assignment) interface{} {
	target, _, ok := a.scopes.Lookup(a.current, n.Name)
	if !ok {
		a.diags.Errorf(n.Pos, "undefined variable '%s'", n.Name)
		a.typeOf(n, n.Value, "value")
		return nil
	}

	value := a.typeOf(n, n.Value, "value")
	if target.Kind == KindFunction {
		a.diags.Errorf(n.Pos, "cannot assign to function '%s'", n.Name)
		return nil
	}
	if !IsCompatible(target.Type, value) {
		a.diags.Errorf(n.Pos, "type mismatch in assignment to '%s': cannot assign %s to %s",
			n.Name, value, target.Type)
	}
	return nil
}

func (a *Analyzer) VisitPrintStatement(n *ast.PrintStatement) interface{} {
	a.typeOf(n, n.Value, "value")
	return nil
}

func (a *Analyzer) VisitInputStatement(n *ast.InputStatement) interface{} {
	a.typeOf(n, n.Target, "target")
	return nil
}

func (a *Analyzer) VisitIfStatement(n *ast.IfStatement) interface{} {
	a.checkCondition(n, n.Condition, "condition in 'taste' statement should be BOOLEAN, got %s")
	a.statement(n, n.Then, "then branch")
	if n.Else != nil {
		n.Else.Accept(a)
	}
	return nil
}

func (a *Analyzer) VisitWhileStatement(n *ast.WhileStatement) interface{} {
	a.checkCondition(n, n.Condition, "loop condition in 'stir' statement should be BOOLEAN, got %s")
	a.statement(n, n.Body, "body")
	return nil
}

func (a *Analyzer) VisitReturnStatement(n *ast.ReturnStatement) interface{} {
	if n.Value != nil {
		n.Value.Accept(a)
	}
	return nil
}

func (a *Analyzer) VisitBlock(n *ast.Block) interface{} {
	a.enterBlock()
	for _, stmt := range n.Statements {
		a.statement(n, stmt, "statement")
	}
	a.exitScope()
	return nil
}

func (a *Analyzer) VisitExpressionStatement(n *ast.ExpressionStatement) interface{} {
	a.typeOf(n, n.Expr, "expression")
	return nil
}

func (a *Analyzer) VisitCommentStatement(n *ast.CommentStatement) interface{} {
	return nil
}

func (a *Analyzer) VisitFetchStatement(n *ast.FetchStatement) interface{} {
	a.logger.Trace("Module fetch not resolved", mdwlog.Fields{"module": n.Module})
	return nil
}

// Expressions

func (a *Analyzer) VisitLiteral(n *ast.Literal) interface{} {
	return Type(n.Type)
}

func (a *Analyzer) VisitVariable(n *ast.Variable) interface{} {
	sym, _, ok := a.scopes.Lookup(a.current, n.Name)
	if !ok {
		a.diags.Errorf(n.Pos, "undefined variable '%s'", n.Name)
		return TypeAny
	}
	return sym.Type
}

func (a *Analyzer) VisitBinaryOp(n *ast.BinaryOp) interface{} {
	left := a.typeOf(n, n.Left, "left operand")
	right := a.typeOf(n, n.Right, "right operand")
	op := n.Operator

	switch {
	case isArithmetic(op):
		result, ok := ArithmeticResult(left, right)
		if !ok {
			a.diags.Errorf(n.Pos, "invalid operands for '%s': %s and %s (expected numeric types)",
				op, left, right)
		}
		return result

	case isComparison(op):
		if left != right && left != TypeAny && right != TypeAny {
			a.diags.Warnf(n.Pos, "comparing different types: %s %s %s", left, op, right)
		}
		return TypeBoolean

	case isLogical(op):
		if !left.IsBooleanLike() {
			a.diags.Warnf(n.Left.Position(), "left operand of '%s' should be BOOLEAN, got %s", op, left)
		}
		if !right.IsBooleanLike() {
			a.diags.Warnf(n.Right.Position(), "right operand of '%s' should be BOOLEAN, got %s", op, right)
		}
		return TypeBoolean
	}

	return TypeAny
}

func (a *Analyzer) VisitUnaryOp(n *ast.UnaryOp) interface{} {
	operand := a.typeOf(n, n.Operand, "operand")

	switch n.Operator {
	case "-":
		if !operand.IsNumeric() {
			a.diags.Errorf(n.Pos, "cannot apply unary '-' to %s (expected numeric type)", operand)
			return TypeAny
		}
		return operand
	case "!":
		if !operand.IsBooleanLike() {
			a.diags.Warnf(n.Pos, "logical NOT '!' should operate on BOOLEAN, got %s", operand)
		}
		return TypeBoolean
	}

	return TypeAny
}

// VisitFunctionCall checks that the callee exists and is a function.
// Arguments are resolved but neither counted nor type-matched.
func (a *Analyzer) VisitFunctionCall(n *ast.FunctionCall) interface{} {
	sym, _, ok := a.scopes.Lookup(a.current, n.Name)
	switch {
	case !ok:
		a.diags.Errorf(n.Pos, "undefined function '%s'", n.Name)
	case sym.Kind != KindFunction:
		a.diags.Errorf(n.Pos, "'%s' is not a function", n.Name)
	}

	for _, arg := range n.Arguments {
		a.typeOf(n, arg, "argument")
	}
	return TypeAny
}
