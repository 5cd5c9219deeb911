// File: integration_test.go
// Title: Front End Integration Tests
// Description: Runs complete programs from testdata through the whole
//              pipeline and checks the stage reached, the diagnostics and
//              the resulting scope tree.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial integration test suite

package khamseena

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	mdwerror "github.com/msto63/khamseena/foundation/core/error"
	mdwast "github.com/msto63/khamseena/foundation/khamseena/ast"
	mdwparser "github.com/msto63/khamseena/foundation/khamseena/parser"
)

func readTestdata(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}

func TestIntegration_Programs(t *testing.T) {
	tests := []struct {
		file        string
		stage       Stage
		code        mdwerror.Code // expected error code, empty for none
		parseErrors int
		errors      []string
		warnings    int
	}{
		{
			file:  "kitchen.kh",
			stage: StageComplete,
		},
		{
			file:  "semantic_errors.kh",
			stage: StageComplete,
			errors: []string{
				"variable 'x' already declared in global scope",
				"type mismatch in variable 'y': cannot assign FLOAT to INTEGER",
				"in function 'cook': parameter 'a' already declared in function_cook scope",
				"undefined function 'undefined_recipe'",
				"'x' is not a function",
				"invalid operands for '+': STRING and INTEGER (expected numeric types)",
			},
			warnings: 1,
		},
		{
			file:        "syntax_errors.kh",
			stage:       StageComplete,
			parseErrors: 2,
			errors:      []string{"undefined variable 'a'", "undefined variable 'b'"},
		},
		{
			file:  "lexical_error.kh",
			stage: StageLexical,
			code:  mdwerror.CodeLexical,
		},
		{
			file:  "fatal_parse.kh",
			stage: StageSyntax,
			code:  mdwerror.CodeSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			result, err := newTestEngine(Options{}).Compile(readTestdata(t, tt.file))

			if tt.code == "" && err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			if tt.code != "" && !mdwerror.HasCode(err, tt.code) {
				t.Fatalf("Compile() error = %v, want code %s", err, tt.code)
			}
			if result.Stage != tt.stage {
				t.Errorf("Stage = %s, want %s", result.Stage, tt.stage)
			}
			if len(result.ParseErrors) != tt.parseErrors {
				t.Errorf("parse errors = %v, want %d", result.ParseErrors, tt.parseErrors)
			}
			if result.Analysis == nil {
				if len(tt.errors) > 0 {
					t.Fatal("analysis did not run")
				}
				return
			}

			if len(result.Analysis.Errors) != len(tt.errors) {
				t.Fatalf("errors = %v, want %q", result.Analysis.Errors, tt.errors)
			}
			for i, want := range tt.errors {
				if got := result.Analysis.Errors[i].Message; got != want {
					t.Errorf("error %d = %q, want %q", i, got, want)
				}
			}
			if len(result.Analysis.Warnings) != tt.warnings {
				t.Errorf("warnings = %v, want %d", result.Analysis.Warnings, tt.warnings)
			}
		})
	}
}

func TestIntegration_KitchenStructure(t *testing.T) {
	result, err := newTestEngine(Options{}).Compile(readTestdata(t, "kitchen.kh"))
	if err != nil {
		t.Fatal(err)
	}

	program := result.Program
	if _, ok := program.Statements[0].(*mdwast.CommentStatement); !ok {
		t.Errorf("first statement = %v, want the header comment", program.Statements[0])
	}

	collected := mdwast.NewCollectorVisitor().Collect(program)
	if len(collected.Functions) != 2 {
		t.Errorf("functions = %v", collected.Functions)
	}
	if len(collected.Calls) != 1 || collected.Calls[0].Name != "scale" {
		t.Errorf("calls = %v", collected.Calls)
	}

	scopes := result.Analysis.Scopes
	for _, name := range []string{"global", "function_scale", "function_main"} {
		if _, ok := scopes.Find(name); !ok {
			t.Errorf("scope %s missing", name)
		}
	}

	report := scopes.String()
	for _, want := range []string{"servings", "FUNCTION", "parameter", "Scope: function_main"} {
		if !strings.Contains(report, want) {
			t.Errorf("scope report missing %q", want)
		}
	}
}

func TestIntegration_FormatRoundTrip(t *testing.T) {
	e := newTestEngine(Options{})
	first, err := e.Compile(readTestdata(t, "kitchen.kh"))
	if err != nil {
		t.Fatal(err)
	}

	formatted := mdwast.Format(first.Program)
	second, err := e.Compile(formatted)
	if err != nil {
		t.Fatalf("formatted source does not compile: %v\n%s", err, formatted)
	}
	if !second.Success() {
		t.Errorf("formatted source has errors: %v %v", second.ParseErrors, second.Analysis.Errors)
	}
	if mdwast.Format(second.Program) != formatted {
		t.Error("Format() is not stable across a compile round trip")
	}

	// Token kinds survive a JoinTokens round trip once comments are ignored
	kinds := func(tokens []mdwparser.Token) []mdwparser.TokenType {
		var out []mdwparser.TokenType
		for _, tok := range tokens {
			if tok.Type != mdwparser.TokenComment {
				out = append(out, tok.Type)
			}
		}
		return out
	}
	joined, err := e.Tokenize(mdwparser.JoinTokens(first.Tokens))
	if err != nil {
		t.Fatal(err)
	}
	a, b := kinds(first.Tokens), kinds(joined)
	if len(a) != len(b) {
		t.Fatalf("token counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("token %d: %s vs %s", i, a[i], b[i])
		}
	}
}
