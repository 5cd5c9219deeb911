// ============================================================================
// Khamseena - Front end toolchain
// ============================================================================
//
// Package:     inspector
// Description: Message types for async operations in the inspector
// Author:      Mike Stoffels
// Created:     2025-10-19
// License:     MIT
// ============================================================================

package inspector

import (
	"github.com/msto63/khamseena/foundation/khamseena"
)

// compiledMsg is sent when the source was (re)loaded and compiled
type compiledMsg struct {
	source string
	result *khamseena.Result
	cached bool  // Source was unchanged since an earlier compile
	err    error // Fatal compile error
}

// loadFailedMsg is sent when the source could not be read
type loadFailedMsg struct {
	err error
}

// reloadMsg requests a reload from disk
type reloadMsg struct{}
