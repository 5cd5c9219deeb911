// File: types.go
// Title: Semantic Types
// Description: The type lattice used by the analyzer: the four declared
//              types, ANY for unknown or unchecked values and FUNCTION for
//              function symbols.
// Author: msto63
// Version: v0.1.0
// Created: 2025-10-19
// Modified: 2025-10-19
//
// Change History:
// - 2025-10-19 v0.1.0: Initial type definitions

package semantic

import (
	"strings"
)

// Type is the semantic type of a symbol or expression
type Type string

// Semantic types
const (
	TypeInteger  Type = "INTEGER"
	TypeFloat    Type = "FLOAT"
	TypeString   Type = "STRING"
	TypeBoolean  Type = "BOOLEAN"
	TypeAny      Type = "ANY"
	TypeFunction Type = "FUNCTION"
)

var keywordTypes = map[string]Type{
	"count":   TypeInteger,
	"measure": TypeFloat,
	"note":    TypeString,
	"flavor":  TypeBoolean,
}

// TypeFromKeyword maps a declared type keyword to its semantic type.
// An empty keyword (untyped parameter) is ANY; an unknown one falls back
// to its upper-cased text.
func TypeFromKeyword(keyword string) Type {
	if keyword == "" {
		return TypeAny
	}
	if t, ok := keywordTypes[keyword]; ok {
		return t
	}
	return Type(strings.ToUpper(keyword))
}

func (t Type) String() string {
	return string(t)
}

// IsNumeric reports whether t is INTEGER or FLOAT
func (t Type) IsNumeric() bool {
	return t == TypeInteger || t == TypeFloat
}

// IsBooleanLike reports whether t may be used where a BOOLEAN is expected
func (t Type) IsBooleanLike() bool {
	return t == TypeBoolean || t == TypeAny
}

// IsCompatible reports whether a value of type source may be stored in a
// target of type target. INTEGER widens implicitly to FLOAT.
func IsCompatible(target, source Type) bool {
	if target == TypeAny || source == TypeAny {
		return true
	}
	if target == source {
		return true
	}
	return target == TypeFloat && source == TypeInteger
}

// ArithmeticResult returns the result type of an arithmetic operator
// applied to left and right. ok is false unless both are numeric.
func ArithmeticResult(left, right Type) (result Type, ok bool) {
	if !left.IsNumeric() || !right.IsNumeric() {
		return TypeAny, false
	}
	if left == TypeFloat || right == TypeFloat {
		return TypeFloat, true
	}
	return TypeInteger, true
}

// Operator classes
func isArithmetic(op string) bool {
	switch op {
	case "+", "-", "*", "/", "%":
		return true
	}
	return false
}

func isComparison(op string) bool {
	switch op {
	case ">", "<", ">=", "<=", "==", "!=":
		return true
	}
	return false
}

func isLogical(op string) bool {
	return op == "&&" || op == "||"
}
