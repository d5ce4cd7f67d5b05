package gen

import (
	"bytes"
	"fmt"
	"slices"
	"text/template"

	"uvm-testgen/internal/ident"
	"uvm-testgen/internal/model"
)

// transactionData holds all data needed for the transaction template.
type transactionData struct {
	ClassName   string
	Ports       []portView
	ExtraFields []string
	Flags       []string
}

// portView is a single port-backed transaction member.
type portView struct {
	Name     string
	Datatype string
	Size     int
	MSB      int
	Rand     bool
}

// configData holds all data needed for the config template.
type configData struct {
	ClassName string
	DataWidth int
	Fields    []rangeView
	Flags     []flagView
}

// rangeView is one ranged field with its bound member names.
type rangeView struct {
	Name     string
	MinName  string
	MaxName  string
	Min      string
	Max      string
	Datatype string
}

// flagView is one boolean knob.
type flagView struct {
	Name     string
	Datatype string
	Literal  string
}

// sequenceData holds all data needed for the sequence template.
type sequenceData struct {
	ClassName       string
	Transaction     string
	Config          string
	NumTransactions int
	Fields          []rangeView
	Flags           []flagView
}

// testData holds all data needed for the test template.
type testData struct {
	ClassName     string
	Env           string
	SequencerPath string
	Scenarios     []scenarioRef
}

// scenarioRef names everything the test declares or starts for one scenario.
type scenarioRef struct {
	Config         string
	ConfigHandle   string
	Sequence       string
	SequenceHandle string
}

// RenderTransaction renders the shared <dut>_transaction class.
// Ports keep their given order and reserved names are skipped; extra fields
// and flags are emitted in the order given (callers pass them sorted).
func RenderTransaction(dut string, ports []model.Port, extraFields, flags, reserved []string) (string, error) {
	data := transactionData{
		ClassName:   ident.Transaction(dut),
		ExtraFields: extraFields,
		Flags:       flags,
	}

	for _, p := range ports {
		if slices.Contains(reserved, p.Name) {
			continue
		}

		data.Ports = append(data.Ports, portView{
			Name:     p.Name,
			Datatype: p.Datatype,
			Size:     p.Size,
			MSB:      p.Size - 1,
			Rand:     p.IsInput(),
		})
	}

	return execute(transactionTemplate, data)
}

// RenderConfig renders the <scenario>_config class holding the scenario's
// bounds and flag values.
func RenderConfig(sc *model.Scenario) (string, error) {
	data := configData{
		ClassName: ident.Config(sc.Name),
		DataWidth: sc.DataWidth,
		Fields:    rangeViews(sc, sc.FieldNames()),
		Flags:     flagViews(sc, sc.FlagNames()),
	}

	return execute(configTemplate, data)
}

// RenderSequence renders the <scenario>_seq class. Every field and flag in
// fields and flags is constrained against the scenario's configuration.
func RenderSequence(dut string, sc *model.Scenario, fields, flags []string) (string, error) {
	data := sequenceData{
		ClassName:       ident.Sequence(sc.Name),
		Transaction:     ident.Transaction(dut),
		Config:          ident.Config(sc.Name),
		NumTransactions: sc.NumTransactions,
		Fields:          rangeViews(sc, fields),
		Flags:           flagViews(sc, flags),
	}

	return execute(sequenceTemplate, data)
}

// RenderTest renders the <dut>_test class. Scenarios are configured and
// started in the given order.
func RenderTest(dut string, scenarios []model.Scenario, sequencerPath string) (string, error) {
	data := testData{
		ClassName:     ident.Test(dut),
		Env:           ident.Env(dut),
		SequencerPath: sequencerPath,
	}

	for _, sc := range scenarios {
		data.Scenarios = append(data.Scenarios, scenarioRef{
			Config:         ident.Config(sc.Name),
			ConfigHandle:   ident.ConfigHandle(sc.Name),
			Sequence:       ident.Sequence(sc.Name),
			SequenceHandle: ident.SequenceHandle(sc.Name),
		})
	}

	return execute(testTemplate, data)
}

func rangeViews(sc *model.Scenario, fields []string) []rangeView {
	views := make([]rangeView, 0, len(fields))

	for _, f := range fields {
		fc := sc.FieldConstraints[f]
		views = append(views, rangeView{
			Name:     f,
			MinName:  ident.MinBound(f),
			MaxName:  ident.MaxBound(f),
			Min:      fc.Min.Literal(),
			Max:      fc.Max.Literal(),
			Datatype: fc.Datatype,
		})
	}

	return views
}

func flagViews(sc *model.Scenario, flags []string) []flagView {
	views := make([]flagView, 0, len(flags))

	for _, f := range flags {
		bc := sc.BoolConstraints[f]

		lit := "1'b0"
		if bc.Value {
			lit = "1'b1"
		}

		views = append(views, flagView{Name: f, Datatype: bc.Datatype, Literal: lit})
	}

	return views
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing %s template: %w", tmpl.Name(), err)
	}

	return buf.String(), nil
}
