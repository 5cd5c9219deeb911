// File: types_test.go
// Title: Semantic Type Tests
// Description: Tests for keyword mapping, compatibility and arithmetic
//              result types.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19

package semantic

import (
	"testing"
)

func TestTypeFromKeyword(t *testing.T) {
	tests := []struct {
		keyword string
		want    Type
	}{
		{"count", TypeInteger},
		{"measure", TypeFloat},
		{"note", TypeString},
		{"flavor", TypeBoolean},
		{"", TypeAny},
		{"spice", Type("SPICE")},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			if got := TypeFromKeyword(tt.keyword); got != tt.want {
				t.Errorf("TypeFromKeyword(%q) = %s, want %s", tt.keyword, got, tt.want)
			}
		})
	}
}

func TestIsCompatible(t *testing.T) {
	tests := []struct {
		target, source Type
		want           bool
	}{
		{TypeInteger, TypeInteger, true},
		{TypeFloat, TypeInteger, true},
		{TypeInteger, TypeFloat, false},
		{TypeString, TypeInteger, false},
		{TypeBoolean, TypeString, false},
		{TypeAny, TypeString, true},
		{TypeBoolean, TypeAny, true},
		{TypeInteger, TypeFunction, false},
	}

	for _, tt := range tests {
		t.Run(tt.target.String()+"<-"+tt.source.String(), func(t *testing.T) {
			if got := IsCompatible(tt.target, tt.source); got != tt.want {
				t.Errorf("IsCompatible(%s, %s) = %v, want %v", tt.target, tt.source, got, tt.want)
			}
		})
	}
}

func TestArithmeticResult(t *testing.T) {
	numeric := []Type{TypeInteger, TypeFloat}
	for _, l := range numeric {
		for _, r := range numeric {
			want := TypeInteger
			if l == TypeFloat || r == TypeFloat {
				want = TypeFloat
			}
			got, ok := ArithmeticResult(l, r)
			if !ok || got != want {
				t.Errorf("ArithmeticResult(%s, %s) = %s, %v; want %s", l, r, got, ok, want)
			}
		}
	}

	for _, bad := range []Type{TypeString, TypeBoolean, TypeAny, TypeFunction} {
		if got, ok := ArithmeticResult(TypeInteger, bad); ok || got != TypeAny {
			t.Errorf("ArithmeticResult(INTEGER, %s) = %s, %v; want ANY, false", bad, got, ok)
		}
	}
}
