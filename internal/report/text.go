// ============================================================================
// Khamseena - Front end toolchain
// ============================================================================
//
// Package:     report
// Description: Plain text report writer
// Author:      Mike Stoffels
// Created:     2025-10-19
// License:     MIT
// ============================================================================

package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/khamseena/foundation/utils/stringx"
)

const (
	ruleWidth     = 70
	maxTokenValue = 40 // Longer values are cut in the token table
)

type textWriter struct {
	w       *bufio.Writer
	heading lipgloss.Style
	ok      lipgloss.Style
	bad     lipgloss.Style
}

func writeText(w io.Writer, rep *Report) error {
	// A renderer bound to w drops colors when w is not a terminal.
	r := lipgloss.NewRenderer(w)
	tw := &textWriter{
		w:       bufio.NewWriter(w),
		heading: r.NewStyle().Bold(true),
		ok:      r.NewStyle().Foreground(lipgloss.Color("#10B981")),
		bad:     r.NewStyle().Foreground(lipgloss.Color("#EF4444")),
	}

	if len(rep.Tokens) > 0 {
		tw.tokens(rep.Tokens)
	}
	if rep.AST != "" {
		tw.section("ABSTRACT SYNTAX TREE")
		tw.printf("%s\n", rep.AST)
	}
	if len(rep.ParseErrors) > 0 {
		tw.section(fmt.Sprintf("PARSE ERRORS (%d)", len(rep.ParseErrors)))
		tw.diagnostics(rep.ParseErrors)
	}
	if len(rep.Errors) > 0 {
		tw.section(fmt.Sprintf("SEMANTIC ERRORS (%d)", len(rep.Errors)))
		tw.diagnostics(rep.Errors)
	}
	if len(rep.Warnings) > 0 {
		tw.section(fmt.Sprintf("WARNINGS (%d)", len(rep.Warnings)))
		tw.diagnostics(rep.Warnings)
	}
	if rep.scopeText != "" {
		tw.section("SYMBOL TABLE")
		tw.printf("%s", rep.scopeText)
	}

	tw.summary(rep)
	return tw.w.Flush()
}

func (tw *textWriter) printf(format string, args ...interface{}) {
	fmt.Fprintf(tw.w, format, args...)
}

func (tw *textWriter) section(title string) {
	tw.printf("\n%s\n%s\n", tw.heading.Render(title), strings.Repeat("-", ruleWidth))
}

func (tw *textWriter) tokens(tokens []Token) {
	rule := strings.Repeat("=", ruleWidth)
	tw.printf("%s\n%s\n%s\n", rule, tw.heading.Render("KHAMSEENA SCANNER - TOKEN OUTPUT"), rule)
	tw.printf("%-20s %-20s %s\n", "TOKEN TYPE", "VALUE", "POSITION")
	tw.printf("%s\n", strings.Repeat("-", ruleWidth))
	for _, tok := range tokens {
		tw.printf("%-20s %-20s %s\n", tok.Type, stringx.Truncate(tok.Value, maxTokenValue, "..."), tok.Position)
	}
	tw.printf("%s\nTotal Tokens: %d\n", rule, len(tokens))
}

func (tw *textWriter) diagnostics(diags []Diagnostic) {
	for _, d := range diags {
		tw.printf("  %s\n", d)
	}
}

func (tw *textWriter) summary(rep *Report) {
	status := tw.ok.Render("OK")
	if !rep.Success {
		status = tw.bad.Render("FAILED")
	}
	tw.printf("\n%s: %s (stage %s, %d parse errors, %d errors, %d warnings, %.2fms)\n",
		rep.File, status, rep.Stage,
		len(rep.ParseErrors), len(rep.Errors), len(rep.Warnings), rep.DurationMS)
	if rep.Fatal != "" {
		tw.printf("%s %s\n", tw.bad.Render("fatal:"), rep.Fatal)
	}
}
