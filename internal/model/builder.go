package model

import (
	"fmt"
	"slices"
	"strings"

	"uvm-testgen/internal/common"
	"uvm-testgen/internal/config"
	"uvm-testgen/internal/diagnostic"
	"uvm-testgen/internal/ident"
	"uvm-testgen/internal/spec"
)

// Constraint key suffixes that mark a range bound.
const (
	minSuffix = "_min"
	maxSuffix = "_max"
)

// builder carries the state of a single Build call.
type builder struct {
	cfg   config.Config
	model *Model
}

// Build normalizes a raw document into a canonical Model.
// It fails with ErrMissingPorts or ErrMissingScenarios; every other defect is
// defaulted and may be reported in Model.Diagnostics.
func Build(doc *spec.Document, cfg config.Config) (*Model, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", spec.ErrUnreadableInput)
	}

	if common.IsEmpty(doc.Ports) {
		return nil, ErrMissingPorts
	}

	rawScenarios := doc.Scenarios()
	if common.IsEmpty(rawScenarios) {
		return nil, ErrMissingScenarios
	}

	b := &builder{cfg: cfg, model: &Model{}}
	m := b.model

	if !common.IsEmpty(doc.Testcases) && !common.IsEmpty(doc.Tests) {
		m.Diagnostics.AddInfo(diagnostic.CodeIgnoredScenarios,
			fmt.Sprintf("both testcases and tests are present, ignoring the %d tests", len(doc.Tests)), "", "")
	}

	m.DUT = ident.NormalizeDUT(doc.DUT, cfg.DefaultDUT)
	b.checkIdentifier(m.DUT, "", "DUT name")

	m.DataWidth = b.dataWidth(doc.DataWidth)
	b.buildPorts(doc.Ports)
	b.discover(rawScenarios)
	b.checkUnusedKeys(rawScenarios)

	seen := make(map[string]int, len(rawScenarios))

	for i := range rawScenarios {
		sc := b.resolveScenario(&rawScenarios[i], i+1)

		if first, dup := seen[sc.Name]; dup {
			m.Diagnostics.AddWarning(diagnostic.CodeDuplicateScenario,
				fmt.Sprintf("scenarios %d and %d both normalize to %q; later artifacts overwrite earlier ones",
					first, i+1, sc.Name),
				sc.Name, "")
		} else {
			seen[sc.Name] = i + 1
		}

		m.Scenarios = append(m.Scenarios, sc)
	}

	for _, f := range m.Fields {
		if _, ok := slices.BinarySearch(m.InputPortNames, f); !ok {
			m.ExtraFields = append(m.ExtraFields, f)
		}
	}

	b.checkExtraFields()
	b.checkPortFields()

	return m, nil
}

// dataWidth returns the document's data width, or the configured default
// when it is absent or out of range.
func (b *builder) dataWidth(raw *int) int {
	if raw == nil {
		return b.cfg.DefaultDataWidth
	}

	if !config.ValidDataWidth(*raw) {
		b.model.Diagnostics.AddWarning(diagnostic.CodeInvalidDataWidth,
			fmt.Sprintf("data_width %d is out of range, using %d", *raw, b.cfg.DefaultDataWidth), "", "")

		return b.cfg.DefaultDataWidth
	}

	return *raw
}

// buildPorts normalizes ports in document order. Later ports that reuse a
// name are dropped.
func (b *builder) buildPorts(raw []spec.Port) {
	m := b.model
	seen := make(map[string]struct{}, len(raw))
	inputs := make(map[string]struct{})

	for _, rp := range raw {
		if _, dup := seen[rp.Name]; dup {
			m.Diagnostics.AddWarning(diagnostic.CodeDuplicatePort,
				"port declared more than once, keeping the first declaration", "", rp.Name)

			continue
		}

		seen[rp.Name] = struct{}{}

		p := Port{
			Name:      rp.Name,
			Direction: b.direction(rp),
			Size:      1,
			Datatype:  rp.Datatype,
		}

		if p.Datatype == "" {
			p.Datatype = b.cfg.PortDatatype
		}

		if rp.Size != nil {
			if *rp.Size >= 1 {
				p.Size = *rp.Size
			} else {
				m.Diagnostics.AddWarning(diagnostic.CodeInvalidPortSize,
					fmt.Sprintf("size %d is below 1, using 1", *rp.Size), "", rp.Name)
			}
		}

		if !b.cfg.IsReserved(p.Name) {
			b.checkIdentifier(p.Name, "", "port name")
		}

		if p.IsInput() {
			inputs[p.Name] = struct{}{}
		}

		m.Ports = append(m.Ports, p)
	}

	m.InputPortNames = common.SortedKeys(inputs)
}

// direction maps a raw direction to a Direction. Anything other than
// "input" (or nothing) is treated as an output so it is never randomized.
func (b *builder) direction(rp spec.Port) Direction {
	switch strings.ToLower(rp.Direction) {
	case "", "input":
		return DirectionInput
	case "output":
		return DirectionOutput
	default:
		b.model.Diagnostics.AddWarning(diagnostic.CodeUnknownDirection,
			fmt.Sprintf("direction %q is not input or output, treating as output", rp.Direction), "", rp.Name)

		return DirectionOutput
	}
}

// discover scans every scenario's constraint keys and fills the global
// field and flag sets.
func (b *builder) discover(raw []spec.Scenario) {
	fields := make(map[string]struct{})
	flags := make(map[string]struct{})

	for _, sc := range raw {
		for key := range sc.Constraints {
			if base, ok := boundBase(key); ok {
				fields[base] = struct{}{}
				continue
			}

			if b.cfg.IsFlag(key) {
				flags[key] = struct{}{}
			}
		}
	}

	m := b.model

	for _, f := range common.SortedKeys(fields) {
		if _, clash := flags[f]; clash {
			m.Diagnostics.AddWarning(diagnostic.CodeFlagFieldCollision,
				"name is used both as a flag and as a ranged field, keeping the flag", "", f)

			continue
		}

		b.checkIdentifier(f, "", "field name")
		m.Fields = append(m.Fields, f)
	}

	m.Flags = common.SortedKeys(flags)
	for _, f := range m.Flags {
		b.checkIdentifier(f, "", "flag name")
	}
}

// checkUnusedKeys warns about constraint keys that are neither range bounds
// nor flags. Such keys are ignored.
func (b *builder) checkUnusedKeys(raw []spec.Scenario) {
	m := b.model

	known := make([]string, 0, 2*len(m.Fields)+len(m.Flags))
	for _, f := range m.Fields {
		known = append(known, ident.MinBound(f), ident.MaxBound(f))
	}

	known = append(known, m.Flags...)

	for i, sc := range raw {
		name := ident.NormalizeScenarioName(sc.Name, i+1)

		for _, key := range common.SortedKeys(sc.Constraints) {
			if _, ok := boundBase(key); ok || b.cfg.IsFlag(key) {
				continue
			}

			msg := fmt.Sprintf("constraint key %q is neither a _min/_max bound nor a flag, ignoring it", key)
			if s, ok := ident.Suggest(key, known); ok {
				msg += fmt.Sprintf("; did you mean %q?", s)
			}

			m.Diagnostics.AddWarning(diagnostic.CodeUnusedConstraint, msg, name, key)
		}
	}
}

// checkExtraFields warns when an extra field looks like a misspelled input port.
func (b *builder) checkExtraFields() {
	m := b.model

	ports := make([]string, 0, len(m.InputPortNames))
	for _, p := range m.InputPortNames {
		if !b.cfg.IsReserved(p) {
			ports = append(ports, p)
		}
	}

	for _, f := range m.ExtraFields {
		if p, ok := ident.Suggest(f, ports); ok {
			m.Diagnostics.AddWarning(diagnostic.CodeUnmatchedField,
				fmt.Sprintf("field is not an input port and becomes an extra member; did you mean port %q?", p), "", f)
		}
	}
}

// checkPortFields warns when a ranged field shares its name with a port that
// the transaction does not declare as a randomized member. An output port is
// declared again as an extra field; a reserved input port is not declared at
// all while the sequences still constrain it.
func (b *builder) checkPortFields() {
	m := b.model

	for _, p := range m.Ports {
		if _, ok := slices.BinarySearch(m.Fields, p.Name); !ok {
			continue
		}

		reserved := b.cfg.IsReserved(p.Name)

		switch {
		case p.IsInput() && reserved:
			m.Diagnostics.AddWarning(diagnostic.CodeReservedPortField,
				fmt.Sprintf("field names reserved port %q, which the transaction does not declare", p.Name), "", p.Name)
		case !p.IsInput() && !reserved:
			m.Diagnostics.AddWarning(diagnostic.CodeOutputPortField,
				fmt.Sprintf("field names output port %q, which the transaction then declares twice", p.Name), "", p.Name)
		}
	}
}

// boundBase strips a _min/_max suffix from a constraint key.
func boundBase(key string) (string, bool) {
	for _, suffix := range []string{minSuffix, maxSuffix} {
		if base, ok := strings.CutSuffix(key, suffix); ok && base != "" {
			return base, true
		}
	}

	return "", false
}

// checkIdentifier warns when name cannot be used as a SystemVerilog identifier.
func (b *builder) checkIdentifier(name, scenario, what string) {
	if ident.IsIdentifier(name) {
		return
	}

	b.model.Diagnostics.AddWarning(diagnostic.CodeInvalidIdentifier,
		fmt.Sprintf("%s %q is not a valid SystemVerilog identifier", what, name), scenario, name)
}
