// File: report_test.go
// Title: Symbol Table Report Tests
// Description: Tests for the scope tree text report.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19

package semantic

import (
	"fmt"
	"strings"
	"testing"
)

func TestWriteReport(t *testing.T) {
	result := analyze(t, "count x = 1; recipe f(count a) { }")

	var sb strings.Builder
	if err := result.Scopes.WriteReport(&sb); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}

	rule := strings.Repeat("-", 40)
	row := func(prefix, name, typ, kind string) string {
		return fmt.Sprintf("%s%-15s %-12s %s\n", prefix, name, typ, kind)
	}
	want := "Scope: global\n" + rule + "\n" +
		row("", "Name", "Type", "Kind") + rule + "\n" +
		row("", "x", "INTEGER", "variable") +
		row("", "f", "FUNCTION", "function") +
		"\n" +
		"  Scope: function_f\n  " + rule + "\n" +
		row("  ", "Name", "Type", "Kind") + "  " + rule + "\n" +
		row("  ", "a", "INTEGER", "parameter") +
		"\n" +
		"    Scope: block_1\n    " + rule + "\n" +
		"    (empty)\n"

	if got := sb.String(); got != want {
		t.Errorf("WriteReport() =\n%s\nwant\n%s", got, want)
	}
	if result.Scopes.String() != want {
		t.Error("String() should match WriteReport()")
	}
}

func TestScopeTree_Define(t *testing.T) {
	tree := NewScopeTree()
	inner := tree.NewScope(GlobalScope, "block_1")

	if err := tree.Define(GlobalScope, Symbol{Name: "x", Type: TypeInteger, Kind: KindVariable}); err != nil {
		t.Fatal(err)
	}
	err := tree.Define(GlobalScope, Symbol{Name: "x", Type: TypeFloat, Kind: KindVariable})
	if err == nil || err.Error() != "'x' already declared in global scope" {
		t.Errorf("second Define() error = %v", err)
	}
	if err := tree.Define(inner, Symbol{Name: "x", Type: TypeString, Kind: KindVariable}); err != nil {
		t.Errorf("shadowing Define() error = %v", err)
	}

	sym, scope, ok := tree.Lookup(inner, "x")
	if !ok || scope != inner || sym.Type != TypeString {
		t.Errorf("Lookup() = %+v, %d, %v; want inner STRING", sym, scope, ok)
	}
	if _, _, ok := tree.Lookup(inner, "missing"); ok {
		t.Error("Lookup(missing) should fail")
	}
	if tree.Scope(42) != nil || tree.Scope(NoScope) != nil {
		t.Error("Scope() should return nil for unknown ids")
	}
	if tree.Len() != 2 || len(tree.Global().Children) != 1 {
		t.Errorf("Len() = %d, children = %v", tree.Len(), tree.Global().Children)
	}
}
