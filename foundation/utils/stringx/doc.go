// Package stringx provides string helpers for the Khamseena report renderers.
//
// Package: stringx
// Title: String Utilities
// Description: All functions count runes rather than bytes so that padded
//              columns stay aligned when source text contains UTF-8 literals.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-19
package stringx
