// File: engine.go
// Title: Khamseena Front End Engine
// Description: Ties lexer, parser and semantic analyzer together. Each stage
//              consumes the full output of the previous one; the pipeline
//              stops at the first stage that cannot produce output.
// Author: msto63
// Version: v0.1.1
// Created: 2025-10-19
// Modified: 2025-11-03
//
// Change History:
// - 2025-10-19 v0.1.0: Initial engine implementation
// - 2025-11-03 v0.1.1: Compile validates the source once

package khamseena

import (
	"time"
	"unicode/utf8"

	mdwerror "github.com/msto63/khamseena/foundation/core/error"
	mdwlog "github.com/msto63/khamseena/foundation/core/log"
	mdwast "github.com/msto63/khamseena/foundation/khamseena/ast"
	mdwparser "github.com/msto63/khamseena/foundation/khamseena/parser"
	mdwsemantic "github.com/msto63/khamseena/foundation/khamseena/semantic"
)

// DefaultMaxSourceLength is the largest source accepted when Options leaves it unset
const DefaultMaxSourceLength = 1 << 20

// Stage names the last pipeline stage a compilation reached
type Stage string

// Pipeline stages
const (
	StageInput    Stage = "input"
	StageLexical  Stage = "lexical"
	StageSyntax   Stage = "syntax"
	StageSemantic Stage = "semantic"
	StageComplete Stage = "complete"
)

// Options configures the engine
type Options struct {
	Logger          *mdwlog.Logger
	DropComments    bool // Do not keep comments as CommentStatements
	MaxSourceLength int  // Bytes; 0 selects DefaultMaxSourceLength
}

// Engine runs the Khamseena front end
type Engine struct {
	logger  *mdwlog.Logger
	options Options
}

// Result holds everything one compilation produced. Fields of stages that
// were not reached are empty.
type Result struct {
	Tokens      []mdwparser.Token
	Program     *mdwast.Program
	ParseErrors []*mdwparser.ParseError
	Analysis    *mdwsemantic.Result
	Stage       Stage
	Duration    time.Duration
}

// Success reports whether the source compiled without parse or semantic errors
func (r *Result) Success() bool {
	return r.Stage == StageComplete &&
		len(r.ParseErrors) == 0 &&
		r.Analysis != nil && r.Analysis.Success
}

// ErrorCount returns the number of recovered parse errors plus semantic errors
func (r *Result) ErrorCount() int {
	n := len(r.ParseErrors)
	if r.Analysis != nil {
		n += len(r.Analysis.Errors)
	}
	return n
}

// WarningCount returns the number of semantic warnings
func (r *Result) WarningCount() int {
	if r.Analysis == nil {
		return 0
	}
	return len(r.Analysis.Warnings)
}

// NewEngine creates a new engine
func NewEngine(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxSourceLength <= 0 {
		opts.MaxSourceLength = DefaultMaxSourceLength
	}

	return &Engine{
		logger:  opts.Logger.WithField("component", "khamseena-engine"),
		options: opts,
	}
}

// Tokenize converts source text into tokens
func (e *Engine) Tokenize(source string) ([]mdwparser.Token, error) {
	if err := e.validateSource(source); err != nil {
		return nil, err
	}
	return e.tokenize(source)
}

// tokenize lexes source that already passed validateSource
func (e *Engine) tokenize(source string) ([]mdwparser.Token, error) {
	lexer := mdwparser.NewLexer(source, mdwparser.LexerOptions{KeepComments: !e.options.DropComments})
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, lexicalError(err)
	}

	e.logger.Debug("Tokenized source", mdwlog.Fields{
		"bytes":  len(source),
		"tokens": len(tokens),
	})
	return tokens, nil
}

// Parse builds a Program from tokens. Recovered statement errors are
// returned alongside the program; the error is set only when parsing could
// not resynchronize.
func (e *Engine) Parse(tokens []mdwparser.Token) (*mdwast.Program, []*mdwparser.ParseError, error) {
	p := mdwparser.New(mdwparser.Options{Logger: e.logger})
	program, err := p.Parse(tokens)
	if err != nil {
		return nil, p.Errors(), mdwerror.Wrap(err, "syntax analysis failed").
			WithCode(mdwerror.CodeSyntax).
			WithOperation("khamseena.Parse")
	}

	recovered := p.Errors()
	e.logger.Debug("Parsed tokens", mdwlog.Fields{
		"statements": len(program.Statements),
		"recovered":  len(recovered),
	})
	return program, recovered, nil
}

// Analyze runs the semantic analyzer on program
func (e *Engine) Analyze(program *mdwast.Program) (*mdwsemantic.Result, error) {
	analyzer := mdwsemantic.NewAnalyzer(mdwsemantic.Options{Logger: e.logger})
	result, err := analyzer.Analyze(program)
	if err != nil {
		return result, mdwerror.Wrap(err, "semantic analysis failed").
			WithOperation("khamseena.Analyze")
	}
	return result, nil
}

// Compile runs the whole pipeline on source. The result is never nil; on
// error it holds the output of the stages that completed and Stage names
// the stage that failed.
func (e *Engine) Compile(source string) (*Result, error) {
	timer := e.logger.StartTimer("compile")
	result := &Result{Stage: StageInput}
	defer func() {
		timer.WithField("stage", string(result.Stage)).
			WithField("errors", result.ErrorCount()).
			WithField("warnings", result.WarningCount())
		result.Duration = timer.Stop()
	}()

	if err := e.validateSource(source); err != nil {
		return result, err
	}

	result.Stage = StageLexical
	tokens, err := e.tokenize(source)
	if err != nil {
		return result, err
	}
	result.Tokens = tokens

	result.Stage = StageSyntax
	program, recovered, err := e.Parse(tokens)
	result.ParseErrors = recovered
	if err != nil {
		return result, err
	}
	result.Program = program

	result.Stage = StageSemantic
	analysis, err := e.Analyze(program)
	result.Analysis = analysis
	if err != nil {
		return result, err
	}

	result.Stage = StageComplete
	return result, nil
}

func (e *Engine) validateSource(source string) error {
	if len(source) > e.options.MaxSourceLength {
		return mdwerror.Newf("source is %d bytes, limit is %d", len(source), e.options.MaxSourceLength).
			WithCode(mdwerror.CodeSourceTooLarge).
			WithOperation("khamseena.validateSource")
	}
	if !utf8.ValidString(source) {
		return mdwerror.New("source is not valid UTF-8").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("khamseena.validateSource")
	}
	e.logger.Trace("Source validated", mdwlog.Fields{"bytes": len(source)})
	return nil
}

func lexicalError(err error) error {
	wrapped := mdwerror.Wrap(err, "lexical analysis failed").
		WithCode(mdwerror.CodeLexical).
		WithOperation("khamseena.Tokenize")
	if lexErr, ok := err.(*mdwparser.LexicalError); ok {
		wrapped.WithDetail("line", lexErr.Line).WithDetail("column", lexErr.Column)
	}
	return wrapped
}
