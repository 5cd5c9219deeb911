// File: report.go
// Title: Symbol Table Report
// Description: Plain-text rendering of the scope tree, one table per scope,
//              nested scopes indented below their parent.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial report writer

package semantic

import (
	"bufio"
	"io"
	"strings"

	"github.com/msto63/khamseena/foundation/utils/stringx"
)

const (
	nameWidth = 15
	typeWidth = 12
	ruleWidth = 40
)

// WriteReport prints every scope with its symbols (name, type, kind)
func (t *ScopeTree) WriteReport(w io.Writer) error {
	bw := bufio.NewWriter(w)
	rule := strings.Repeat("-", ruleWidth)

	first := true
	t.Walk(func(s *Scope, depth int) {
		prefix := strings.Repeat("  ", depth)
		if !first {
			bw.WriteString("\n")
		}
		first = false

		bw.WriteString(prefix + "Scope: " + s.Name + "\n")
		bw.WriteString(prefix + rule + "\n")
		if s.Len() == 0 {
			bw.WriteString(prefix + "(empty)\n")
			return
		}

		bw.WriteString(prefix + row("Name", "Type", "Kind") + "\n")
		bw.WriteString(prefix + rule + "\n")
		for _, sym := range s.symbols {
			bw.WriteString(prefix + row(sym.Name, sym.Type.String(), string(sym.Kind)) + "\n")
		}
	})

	return bw.Flush()
}

// String returns the report as a string
func (t *ScopeTree) String() string {
	var sb strings.Builder
	_ = t.WriteReport(&sb)
	return sb.String()
}

func row(name, typ, kind string) string {
	return stringx.PadRight(name, nameWidth, ' ') + " " + stringx.PadRight(typ, typeWidth, ' ') + " " + kind
}
