// ============================================================================
// Khamseena - Front end toolchain
// ============================================================================
//
// Package:     report
// Description: YAML and JSON report encoders
// Author:      Mike Stoffels
// Created:     2025-10-19
// License:     MIT
// ============================================================================

package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

func writeYAML(w io.Writer, rep *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("failed to encode YAML report: %w", err)
	}
	return enc.Close()
}

func writeJSON(w io.Writer, rep *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return nil
}
