package model

import (
	"errors"

	"uvm-testgen/internal/common"
	"uvm-testgen/internal/diagnostic"
	"uvm-testgen/internal/spec"
)

var (
	// ErrMissingPorts is returned when the document declares no ports.
	ErrMissingPorts = errors.New("no ports found in spec")
	// ErrMissingScenarios is returned when neither "testcases" nor "tests" lists a scenario.
	ErrMissingScenarios = errors.New("no testcases found in spec")
)

// Direction is a port direction.
type Direction int

const (
	DirectionInput Direction = iota
	DirectionOutput
)

// String returns the direction keyword.
func (d Direction) String() string {
	switch d {
	case DirectionInput:
		return "input"
	case DirectionOutput:
		return "output"
	default:
		return common.UnknownStr
	}
}

// Port is a normalized DUT port.
type Port struct {
	Name      string
	Direction Direction
	// Size is the bit width, at least 1.
	Size     int
	Datatype string
}

// IsInput reports whether the port is driven by the testbench.
func (p Port) IsInput() bool {
	return p.Direction == DirectionInput
}

// FieldConstraint is the resolved range of one constrained field.
type FieldConstraint struct {
	Min      spec.Scalar
	Max      spec.Scalar
	Datatype string
}

// BoolConstraint is the resolved value of one boolean flag.
type BoolConstraint struct {
	Value    bool
	Datatype string
}

// Scenario is a canonical test case. Its maps hold an entry for every field
// and flag of the enclosing Model.
type Scenario struct {
	// Name is normalized: lowercase, spaces replaced by underscores.
	Name             string
	NumTransactions  int
	DataWidth        int
	FieldConstraints map[string]FieldConstraint
	BoolConstraints  map[string]BoolConstraint
}

// FieldNames returns the scenario's field names in lexicographic order.
func (s *Scenario) FieldNames() []string {
	return common.SortedKeys(s.FieldConstraints)
}

// FlagNames returns the scenario's flag names in lexicographic order.
func (s *Scenario) FlagNames() []string {
	return common.SortedKeys(s.BoolConstraints)
}

// Model is the canonical, default-completed form of a spec document.
type Model struct {
	// DUT is the lowercased device name.
	DUT       string
	DataWidth int
	// Ports keeps document order.
	Ports []Port
	// InputPortNames is sorted.
	InputPortNames []string
	// Fields is the sorted global set of constrained field names.
	Fields []string
	// Flags is the sorted global set of boolean flag names.
	Flags []string
	// ExtraFields are the sorted fields not backed by an input port.
	ExtraFields []string
	// Scenarios keeps document order.
	Scenarios []Scenario
	// Diagnostics holds non-fatal findings.
	Diagnostics diagnostic.Diagnostics
}
