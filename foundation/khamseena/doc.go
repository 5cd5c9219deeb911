// File: doc.go
// Title: Khamseena Package Documentation
// Description: Front end for the Khamseena teaching language: lexer, parser,
//              AST and semantic analyzer behind a single Engine.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial front end

/*
Package khamseena implements the front end of the Khamseena teaching language.

Package: khamseena
Title: Khamseena Front End
Description: Source text is scanned into tokens, parsed into an abstract
             syntax tree and checked by a scope-aware semantic analyzer.
             There is no code generation or execution.
Author: msto63
Version: v0.1.0
Created: 2025-10-19
Modified: 2025-10-19

Key Features:
  • Kitchen-themed keywords (recipe, count, serve, taste, stir, deliver)
  • Line and column tracking for every token and node
  • Statement-level error recovery in the parser
  • Nested lexical scopes with shadowing
  • Static types with implicit INTEGER to FLOAT widening

Language Overview:

	recipe main() {
	    count x = 5;
	    measure ratio = x / 2.0;
	    taste (ratio > 1.5) {
	        serve "big";
	    } retaste {
	        serve "small";
	    }
	    deliver 0;
	}

Keywords: brew recipe count measure note flavor sweet sour serve pour taste
retaste stir mix stop skip deliver fetch. Comments start with '#' and run to
the end of the line.

Usage:

	engine := khamseena.NewEngine(khamseena.Options{})
	result, err := engine.Compile(source)
	if err != nil {
		// lexical error, unrecoverable parse error or malformed tree;
		// result.Stage names the failing stage
		return err
	}
	if !result.Success() {
		for _, perr := range result.ParseErrors {
			fmt.Println(perr)
		}
		for _, d := range result.Analysis.Errors {
			fmt.Println(d)
		}
	}

Subpackages:
  • parser   - lexer, tokens and recursive descent parser
  • ast      - node types, visitors, tree and source printers
  • semantic - scope tree, type checking and symbol table report
*/
package khamseena
