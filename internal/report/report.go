// ============================================================================
// Khamseena - Front end toolchain
// ============================================================================
//
// Package:     report
// Description: Report model built from a compile result
// Author:      Mike Stoffels
// Created:     2025-10-19
// License:     MIT
// ============================================================================

// Package report renders the outcome of a compilation as text, YAML or JSON.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/msto63/khamseena/foundation/khamseena"
	"github.com/msto63/khamseena/foundation/khamseena/ast"
	"github.com/msto63/khamseena/foundation/khamseena/parser"
	"github.com/msto63/khamseena/foundation/khamseena/semantic"
)

// Format selects the output encoding
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text, yaml or json)", s)
	}
}

// Options selects the optional sections of a report
type Options struct {
	ShowTokens bool
	ShowAST    bool
	ShowScopes bool
}

// Report is the serializable view of one compilation
type Report struct {
	File        string       `json:"file" yaml:"file"`
	RunID       string       `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Stage       string       `json:"stage" yaml:"stage"`
	Success     bool         `json:"success" yaml:"success"`
	Fatal       string       `json:"fatal,omitempty" yaml:"fatal,omitempty"`
	DurationMS  float64      `json:"duration_ms" yaml:"duration_ms"`
	Tokens      []Token      `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	AST         string       `json:"ast,omitempty" yaml:"ast,omitempty"`
	ParseErrors []Diagnostic `json:"parse_errors,omitempty" yaml:"parse_errors,omitempty"`
	Errors      []Diagnostic `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings    []Diagnostic `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Scopes      []Scope      `json:"scopes,omitempty" yaml:"scopes,omitempty"`

	scopeText string
}

// Token is one row of the token table
type Token struct {
	Type     string `json:"type" yaml:"type"`
	Value    string `json:"value" yaml:"value"`
	Position string `json:"position" yaml:"position"`
}

// Diagnostic is a positioned message from any stage
type Diagnostic struct {
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	Message string `json:"message" yaml:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
}

// Scope is one scope of the symbol table
type Scope struct {
	Name    string   `json:"name" yaml:"name"`
	Parent  string   `json:"parent,omitempty" yaml:"parent,omitempty"`
	Depth   int      `json:"depth" yaml:"depth"`
	Symbols []Symbol `json:"symbols,omitempty" yaml:"symbols,omitempty"`
}

// Symbol is one row of a scope table
type Symbol struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	Kind string `json:"kind" yaml:"kind"`
}

// Build converts an engine result into a Report. compileErr is the error
// returned by Compile, if any.
func Build(file string, result *khamseena.Result, compileErr error, opts Options) *Report {
	rep := &Report{
		File:    file,
		Stage:   string(result.Stage),
		Success: succeeded(result, compileErr),
	}
	rep.DurationMS = float64(result.Duration.Microseconds()) / 1000
	if compileErr != nil {
		rep.Fatal = compileErr.Error()
	}

	if opts.ShowTokens {
		rep.Tokens = tokenRows(result.Tokens)
	}
	if opts.ShowAST && result.Program != nil {
		rep.AST = ast.Tree(result.Program)
	}

	for _, perr := range result.ParseErrors {
		rep.ParseErrors = append(rep.ParseErrors, Diagnostic{Line: perr.Line, Column: perr.Column, Message: perr.Message})
	}

	if result.Analysis != nil {
		rep.Errors = diagnostics(result.Analysis.Errors)
		rep.Warnings = diagnostics(result.Analysis.Warnings)
		if opts.ShowScopes && result.Analysis.Scopes != nil {
			rep.Scopes = scopes(result.Analysis.Scopes)
			rep.scopeText = result.Analysis.Scopes.String()
		}
	}

	return rep
}

// succeeded also accepts results of the partial pipelines run by the
// tokenize and parse commands, which carry no analysis.
func succeeded(result *khamseena.Result, compileErr error) bool {
	if compileErr != nil || len(result.ParseErrors) > 0 {
		return false
	}
	return result.Analysis == nil || result.Analysis.Success
}

func tokenRows(tokens []parser.Token) []Token {
	rows := make([]Token, len(tokens))
	for i, tok := range tokens {
		rows[i] = Token{
			Type:     tok.Type.String(),
			Value:    tok.Value,
			Position: fmt.Sprintf("%d:%d", tok.Line, tok.Column),
		}
	}
	return rows
}

func diagnostics(in []semantic.Diagnostic) []Diagnostic {
	var out []Diagnostic
	for _, d := range in {
		out = append(out, Diagnostic{Line: d.Pos.Line, Column: d.Pos.Column, Message: d.Message})
	}
	return out
}

func scopes(tree *semantic.ScopeTree) []Scope {
	var out []Scope
	tree.Walk(func(s *semantic.Scope, depth int) {
		view := Scope{Name: s.Name, Depth: depth}
		if parent := tree.Scope(s.Parent); parent != nil {
			view.Parent = parent.Name
		}
		for _, sym := range s.Symbols() {
			view.Symbols = append(view.Symbols, Symbol{
				Name: sym.Name,
				Type: sym.Type.String(),
				Kind: string(sym.Kind),
			})
		}
		out = append(out, view)
	})
	return out
}

// Write encodes rep in the given format
func Write(w io.Writer, rep *Report, format Format) error {
	switch format {
	case FormatYAML:
		return writeYAML(w, rep)
	case FormatJSON:
		return writeJSON(w, rep)
	case FormatText, "":
		return writeText(w, rep)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}
