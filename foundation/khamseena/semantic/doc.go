// Package semantic implements scope-aware name resolution and static type
// checking for Khamseena programs.
//
// Package: semantic
// Title: Khamseena Semantic Analyzer
// Description: The analyzer walks an ast.Program once. Function bodies and
//              blocks open nested scopes in a ScopeTree; every declaration,
//              assignment and expression is checked against the symbols in
//              scope. Errors and warnings are accumulated, never raised.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Types:
//
//	count   INTEGER
//	measure FLOAT
//	note    STRING
//	flavor  BOOLEAN
//
// ANY marks values whose type is not known (untyped parameters, call
// results, undefined names) and is compatible with everything. INTEGER
// widens implicitly to FLOAT.
//
// Usage:
//
//	result, err := semantic.NewAnalyzer(semantic.Options{}).Analyze(program)
//	if err != nil {
//		return err // malformed tree
//	}
//	for _, d := range result.Errors {
//		fmt.Println(d)
//	}
//	result.Scopes.WriteReport(os.Stdout)
package semantic
