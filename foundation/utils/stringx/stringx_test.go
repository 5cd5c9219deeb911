// File: stringx_test.go
// Title: String Utility Tests
// Description: Table-driven tests for the string helpers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-19

package stringx

import (
	"reflect"
	"testing"
)

func TestIsBlank(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{" a ", false},
	}
	for _, tt := range tests {
		if got := IsBlank(tt.input); got != tt.want {
			t.Errorf("IsBlank(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		ellipsis string
		want     string
	}{
		{"fits", "brew", 10, "...", "brew"},
		{"cut with ellipsis", "recipe main", 8, "...", "recip..."},
		{"ellipsis too long", "abcdef", 2, "...", "ab"},
		{"zero width", "abc", 0, "...", ""},
		{"unicode", "héllo wörld", 5, "…", "héll…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxLen, tt.ellipsis); got != tt.want {
				t.Errorf("Truncate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPadding(t *testing.T) {
	if got := PadRight("ab", 5, '.'); got != "ab..." {
		t.Errorf("PadRight() = %q", got)
	}
	if got := PadRight("abcdef", 3, ' '); got != "abcdef" {
		t.Errorf("PadRight() long = %q", got)
	}
	if got := PadLeft("7", 3, '0'); got != "007" {
		t.Errorf("PadLeft() = %q", got)
	}
	if got := PadRight("ü", 3, ' '); got != "ü  " {
		t.Errorf("PadRight() unicode = %q", got)
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("a\r\nb\rc\nd")
	want := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitLines() = %v, want %v", got, want)
	}
}

func TestFirstNonBlank(t *testing.T) {
	if got := FirstNonBlank("", "  ", "x", "y"); got != "x" {
		t.Errorf("FirstNonBlank() = %q", got)
	}
	if got := FirstNonBlank(" "); got != "" {
		t.Errorf("FirstNonBlank() = %q, want empty", got)
	}
}
