package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"uvm-testgen/internal/common"
)

// Diagnostic codes emitted by the model builder.
const (
	CodeDuplicatePort      = "duplicate_port"
	CodeDuplicateScenario  = "duplicate_scenario"
	CodeInvalidIdentifier  = "invalid_identifier"
	CodeUnknownDirection   = "unknown_direction"
	CodeInvertedRange      = "inverted_range"
	CodeFlagFieldCollision = "flag_field_collision"
	CodeInvalidDataWidth   = "invalid_data_width"
	CodeInvalidPortSize    = "invalid_port_size"
	CodeNegativeCount      = "negative_count"
	CodeUnusedConstraint   = "unused_constraint"
	CodeUnmatchedField     = "unmatched_field"
	CodeIgnoredScenarios   = "ignored_scenarios"
	CodeOutputPortField    = "output_port_field"
	CodeReservedPortField  = "reserved_port_field"
)

// Diagnostics holds all non-fatal findings from a build.
type Diagnostics struct {
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Scenario identifies which scenario this relates to (if any).
	Scenario string
	// Field identifies which field, flag or port this relates to (if any).
	Field string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return common.UnknownStr
	}
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, scenario, field string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Scenario: scenario,
		Field:    field,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, scenario, field string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Scenario: scenario,
		Field:    field,
	})
}

// HasWarnings returns true if there are any warning diagnostics.
func (d *Diagnostics) HasWarnings() bool {
	return len(d.Warnings) > 0
}

// HasCode reports whether any diagnostic of any severity carries the code.
func (d *Diagnostics) HasCode(code string) bool {
	for _, group := range [][]Diagnostic{d.Warnings, d.Infos} {
		for _, diag := range group {
			if diag.Code == code {
				return true
			}
		}
	}

	return false
}

// AsError returns the warnings combined into one error, or nil if there are none.
func (d *Diagnostics) AsError() error {
	if !d.HasWarnings() {
		return nil
	}

	var parts []string
	for _, w := range d.Warnings {
		parts = append(parts, w.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Scenario != "" {
		prefix = append(prefix, "["+d.Scenario+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
