package model

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uvm-testgen/internal/config"
	"uvm-testgen/internal/diagnostic"
	"uvm-testgen/internal/spec"
)

func build(t *testing.T, doc string) *Model {
	t.Helper()

	d, err := spec.Parse([]byte(doc), spec.FormatJSON)
	require.NoError(t, err)

	m, err := Build(d, config.Default())
	require.NoError(t, err)

	return m
}

const busSpec = `{
  "dut": "Bus",
  "data_width": 8,
  "ports": [
    {"name": "clk", "direction": "input"},
    {"name": "wdata", "direction": "input", "size": 8},
    {"name": "addr", "direction": "input", "size": 4},
    {"name": "rdata", "direction": "output", "size": 8}
  ],
  "testcases": [
    {
      "name": "Basic Read",
      "num_transactions": 5,
      "constraints": {
        "addr_min": 1,
        "addr_max": {"value": 7, "datatype": "int"},
        "enable_burst": true
      }
    },
    {
      "name": "Timeout Stress",
      "constraints": {
        "timeout_min": {"value": 100, "datatype": "shortint"},
        "timeout_max": 200,
        "flag_abort": {"value": 1, "datatype": "logic"}
      }
    },
    {}
  ]
}`

func TestBuild_Basics(t *testing.T) {
	m := build(t, busSpec)

	assert.Equal(t, "bus", m.DUT)
	assert.Equal(t, 8, m.DataWidth)
	assert.Equal(t, []string{"addr", "timeout"}, m.Fields)
	assert.Equal(t, []string{"enable_burst", "flag_abort"}, m.Flags)
	assert.Equal(t, []string{"addr", "clk", "wdata"}, m.InputPortNames)
	assert.Equal(t, []string{"timeout"}, m.ExtraFields)
	assert.Empty(t, m.Diagnostics.Warnings)

	require.Len(t, m.Ports, 4)
	assert.Equal(t, Port{Name: "clk", Direction: DirectionInput, Size: 1, Datatype: "logic"}, m.Ports[0])
	assert.Equal(t, Port{Name: "rdata", Direction: DirectionOutput, Size: 8, Datatype: "logic"}, m.Ports[3])

	names := make([]string, 0, len(m.Scenarios))
	for _, sc := range m.Scenarios {
		names = append(names, sc.Name)
	}

	assert.Equal(t, []string{"basic_read", "timeout_stress", "test_3"}, names)
	assert.Equal(t, 5, m.Scenarios[0].NumTransactions)
	assert.Equal(t, 10, m.Scenarios[1].NumTransactions)
}

func TestBuild_FieldSetCompleteness(t *testing.T) {
	m := build(t, busSpec)

	for _, sc := range m.Scenarios {
		assert.Equal(t, m.Fields, sc.FieldNames(), "scenario %s", sc.Name)
		assert.Equal(t, m.Flags, sc.FlagNames(), "scenario %s", sc.Name)
		assert.Equal(t, m.DataWidth, sc.DataWidth)
	}
}

func TestBuild_Resolution(t *testing.T) {
	m := build(t, busSpec)

	expected := []Scenario{
		{
			Name:            "basic_read",
			NumTransactions: 5,
			DataWidth:       8,
			FieldConstraints: map[string]FieldConstraint{
				"addr":    {Min: spec.Number("1"), Max: spec.Number("7"), Datatype: "int"},
				"timeout": {Min: spec.Number("0"), Max: spec.Number("255"), Datatype: "int"},
			},
			BoolConstraints: map[string]BoolConstraint{
				"enable_burst": {Value: true, Datatype: "bit"},
				"flag_abort":   {Value: false, Datatype: "bit"},
			},
		},
		{
			Name:            "timeout_stress",
			NumTransactions: 10,
			DataWidth:       8,
			FieldConstraints: map[string]FieldConstraint{
				"addr":    {Min: spec.Number("0"), Max: spec.Number("255"), Datatype: "int"},
				"timeout": {Min: spec.Number("100"), Max: spec.Number("200"), Datatype: "shortint"},
			},
			BoolConstraints: map[string]BoolConstraint{
				"enable_burst": {Value: false, Datatype: "bit"},
				"flag_abort":   {Value: true, Datatype: "logic"},
			},
		},
	}

	if diff := cmp.Diff(expected, m.Scenarios[:2]); diff != "" {
		t.Errorf("scenarios mismatch (-want +got):\n%s\nmodel:\n%s", diff, spew.Sdump(m))
	}
}

func TestBuild_DefaultSubstitution(t *testing.T) {
	m := build(t, `{
	  "data_width": 8,
	  "ports": [{"name": "foo"}],
	  "tests": [
	    {"name": "a", "constraints": {"foo_min": 3}},
	    {"name": "b"}
	  ]
	}`)

	fc := m.Scenarios[1].FieldConstraints["foo"]
	assert.Equal(t, spec.Number("0"), fc.Min)
	assert.Equal(t, spec.Number("255"), fc.Max)
	assert.Equal(t, "int", fc.Datatype)

	assert.Equal(t, spec.Number("255"), m.Scenarios[0].FieldConstraints["foo"].Max)
}

func TestBuild_DefaultDataWidth(t *testing.T) {
	m := build(t, `{"ports":[{"name":"x"}],"tests":[{"constraints":{"x_max":9}}]}`)

	assert.Equal(t, 32, m.DataWidth)
	assert.Equal(t, "generic_dut", m.DUT)
	assert.Equal(t, spec.Number("4294967295"), m.Scenarios[0].FieldConstraints["x"].Max)
}

func TestBuild_WideDataWidth(t *testing.T) {
	m := build(t, `{"data_width":128,"ports":[{"name":"x"}],"tests":[{"constraints":{"x_min":0}}]}`)

	assert.Equal(t, spec.Number("340282366920938463463374607431768211455"),
		m.Scenarios[0].FieldConstraints["x"].Max)
}

func TestBuild_ScalarAnnotatedEquivalence(t *testing.T) {
	bare := build(t, `{"ports":[{"name":"a"}],"tests":[{"name":"s","constraints":{
		"a_min": 5, "a_max": 9, "enable_x": true}}]}`)
	annotated := build(t, `{"ports":[{"name":"a"}],"tests":[{"name":"s","constraints":{
		"a_min": {"value": 5, "datatype": "int"},
		"a_max": {"value": 9, "datatype": "int"},
		"enable_x": {"value": true, "datatype": "bit"}}}]}`)

	if diff := cmp.Diff(bare.Scenarios, annotated.Scenarios); diff != "" {
		t.Errorf("bare and annotated encodings differ (-bare +annotated):\n%s", diff)
	}
}

// The datatype is read from the _min entry only. A datatype on the _max
// entry is ignored, even when it disagrees.
func TestBuild_DatatypeFromMinOnly(t *testing.T) {
	m := build(t, `{"ports":[{"name":"a"}],"tests":[
	  {"name": "min_typed", "constraints": {
	    "a_min": {"value": 1, "datatype": "byte"},
	    "a_max": {"value": 9, "datatype": "longint"}}},
	  {"name": "max_typed", "constraints": {
	    "a_min": 1,
	    "a_max": {"value": 9, "datatype": "longint"}}},
	  {"name": "max_only", "constraints": {
	    "a_max": {"value": 9, "datatype": "longint"}}}
	]}`)

	assert.Equal(t, "byte", m.Scenarios[0].FieldConstraints["a"].Datatype)
	assert.Equal(t, "int", m.Scenarios[1].FieldConstraints["a"].Datatype)
	assert.Equal(t, "int", m.Scenarios[2].FieldConstraints["a"].Datatype)
	assert.Equal(t, spec.Number("9"), m.Scenarios[2].FieldConstraints["a"].Max)
}

func TestBuild_NullAndValuelessBounds(t *testing.T) {
	m := build(t, `{"data_width":4,"ports":[{"name":"a"}],"tests":[{"constraints":{
		"a_min": {"datatype": "byte"},
		"a_max": null}}]}`)

	fc := m.Scenarios[0].FieldConstraints["a"]
	assert.Equal(t, spec.Number("0"), fc.Min)
	assert.Equal(t, spec.Number("15"), fc.Max)
	assert.Equal(t, "byte", fc.Datatype)
}

func TestBuild_FlagValues(t *testing.T) {
	m := build(t, `{"ports":[{"name":"a"}],"tests":[{"constraints":{
		"enable_a": 1,
		"enable_b": 0,
		"enable_c": "yes",
		"enable_d": {"datatype": "logic"},
		"flag_e": false,
		"other_key": true}}]}`)

	assert.Equal(t, []string{"enable_a", "enable_b", "enable_c", "enable_d", "flag_e"}, m.Flags)

	bc := m.Scenarios[0].BoolConstraints
	assert.Equal(t, BoolConstraint{Value: true, Datatype: "bit"}, bc["enable_a"])
	assert.Equal(t, BoolConstraint{Value: false, Datatype: "bit"}, bc["enable_b"])
	assert.Equal(t, BoolConstraint{Value: true, Datatype: "bit"}, bc["enable_c"])
	assert.Equal(t, BoolConstraint{Value: false, Datatype: "logic"}, bc["enable_d"])
	assert.Equal(t, BoolConstraint{Value: false, Datatype: "bit"}, bc["flag_e"])
}

func TestBuild_ExtraFieldPartition(t *testing.T) {
	m := build(t, `{"ports":[
	    {"name": "addr", "direction": "input"},
	    {"name": "resp", "direction": "output"}
	  ],"tests":[{"constraints":{
	    "timeout_min": 1, "timeout_max": 5,
	    "addr_min": 0,
	    "resp_max": 3}}]}`)

	assert.Equal(t, []string{"addr", "resp", "timeout"}, m.Fields)
	assert.Equal(t, []string{"resp", "timeout"}, m.ExtraFields, "output ports do not back a field")
}

func TestBuild_Ordering(t *testing.T) {
	m := build(t, `{"ports":[{"name":"a"}],"tests":[
	  {"name": "Zeta", "constraints": {"zz_min": 1, "enable_z": true}},
	  {"name": "Alpha", "constraints": {"bb_max": 1, "aa_min": 2, "flag_b": true, "enable_a": false}}
	]}`)

	assert.Equal(t, []string{"aa", "bb", "zz"}, m.Fields)
	assert.Equal(t, []string{"enable_a", "enable_z", "flag_b"}, m.Flags)
	assert.Equal(t, "zeta", m.Scenarios[0].Name)
	assert.Equal(t, "alpha", m.Scenarios[1].Name)
}

func TestBuild_FatalInputs(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		expected error
	}{
		{"empty ports", `{"ports": [], "tests": [{"name": "a"}]}`, ErrMissingPorts},
		{"absent ports", `{"tests": [{"name": "a"}]}`, ErrMissingPorts},
		{"no scenario keys", `{"ports": [{"name": "a"}]}`, ErrMissingScenarios},
		{"both scenario keys empty", `{"ports": [{"name": "a"}], "testcases": [], "tests": []}`, ErrMissingScenarios},
		{"ports checked first", `{}`, ErrMissingPorts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := spec.Parse([]byte(tt.doc), spec.FormatJSON)
			require.NoError(t, err)

			m, err := Build(d, config.Default())
			require.ErrorIs(t, err, tt.expected)
			assert.Nil(t, m)
		})
	}

	_, err := Build(nil, config.Default())
	require.ErrorIs(t, err, spec.ErrUnreadableInput)
}

func TestBuild_Diagnostics(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code string
	}{
		{
			name: "inverted range",
			doc:  `{"ports":[{"name":"a"}],"tests":[{"constraints":{"a_min":9,"a_max":2}}]}`,
			code: diagnostic.CodeInvertedRange,
		},
		{
			name: "duplicate scenario",
			doc:  `{"ports":[{"name":"a"}],"tests":[{"name":"Basic Read"},{"name":"basic_read"}]}`,
			code: diagnostic.CodeDuplicateScenario,
		},
		{
			name: "duplicate port",
			doc:  `{"ports":[{"name":"a"},{"name":"a","direction":"output"}],"tests":[{}]}`,
			code: diagnostic.CodeDuplicatePort,
		},
		{
			name: "unknown direction",
			doc:  `{"ports":[{"name":"a","direction":"inout"}],"tests":[{}]}`,
			code: diagnostic.CodeUnknownDirection,
		},
		{
			name: "invalid scenario identifier",
			doc:  `{"ports":[{"name":"a"}],"tests":[{"name":"smoke-test"}]}`,
			code: diagnostic.CodeInvalidIdentifier,
		},
		{
			name: "flag field collision",
			doc:  `{"ports":[{"name":"a"}],"tests":[{"constraints":{"flag_x":true,"flag_x_min":1}}]}`,
			code: diagnostic.CodeFlagFieldCollision,
		},
		{
			name: "invalid data width",
			doc:  `{"data_width":0,"ports":[{"name":"a"}],"tests":[{}]}`,
			code: diagnostic.CodeInvalidDataWidth,
		},
		{
			name: "invalid port size",
			doc:  `{"ports":[{"name":"a","size":0}],"tests":[{}]}`,
			code: diagnostic.CodeInvalidPortSize,
		},
		{
			name: "unused constraint key",
			doc:  `{"ports":[{"name":"a"}],"tests":[{"constraints":{"a_min":1,"a_mx":2}}]}`,
			code: diagnostic.CodeUnusedConstraint,
		},
		{
			name: "extra field near a port",
			doc:  `{"ports":[{"name":"addr"}],"tests":[{"constraints":{"adr_min":1}}]}`,
			code: diagnostic.CodeUnmatchedField,
		},
		{
			name: "field names an output port",
			doc:  `{"ports":[{"name":"dout","direction":"output","size":8}],"tests":[{"constraints":{"dout_min":1}}]}`,
			code: diagnostic.CodeOutputPortField,
		},
		{
			name: "field names a reserved input port",
			doc:  `{"ports":[{"name":"clk"},{"name":"a"}],"tests":[{"constraints":{"clk_max":1}}]}`,
			code: diagnostic.CodeReservedPortField,
		},
		{
			name: "negative transactions",
			doc:  `{"ports":[{"name":"a"}],"tests":[{"num_transactions":-3}]}`,
			code: diagnostic.CodeNegativeCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := build(t, tt.doc)
			assert.True(t, m.Diagnostics.HasCode(tt.code), spew.Sdump(m.Diagnostics))
			assert.True(t, m.Diagnostics.HasWarnings())
		})
	}
}

func TestBuild_DiagnosticEffects(t *testing.T) {
	m := build(t, `{"data_width":0,"ports":[
	    {"name":"a","size":0},
	    {"name":"a","direction":"output"},
	    {"name":"b","direction":"inout"}
	  ],"tests":[{"num_transactions":-3,"constraints":{"a_min":9,"a_max":2,"flag_x":true,"flag_x_min":1}}]}`)

	assert.Equal(t, 32, m.DataWidth)
	require.Len(t, m.Ports, 2)
	assert.Equal(t, 1, m.Ports[0].Size)
	assert.Equal(t, DirectionInput, m.Ports[0].Direction)
	assert.Equal(t, DirectionOutput, m.Ports[1].Direction)
	assert.Equal(t, 0, m.Scenarios[0].NumTransactions)
	assert.Equal(t, []string{"a"}, m.Fields)
	assert.Equal(t, []string{"flag_x"}, m.Flags)

	fc := m.Scenarios[0].FieldConstraints["a"]
	assert.Equal(t, spec.Number("9"), fc.Min, "inverted ranges are kept as written")
	assert.Equal(t, spec.Number("2"), fc.Max)
}

func TestBuild_Suggestions(t *testing.T) {
	m := build(t, `{"ports":[{"name":"clk"},{"name":"addr"}],"tests":[{"name":"Smoke","constraints":{
		"adr_min": 1, "enabl_burst": true, "enable_burst": false, "misc": 3}}]}`)

	assert.Equal(t, []string{"adr"}, m.ExtraFields, "unmatched fields are still generated")
	require.Len(t, m.Diagnostics.Warnings, 3, spew.Sdump(m.Diagnostics))

	assert.Equal(t, diagnostic.CodeUnusedConstraint, m.Diagnostics.Warnings[0].Code)
	assert.Equal(t, "enabl_burst", m.Diagnostics.Warnings[0].Field)
	assert.Equal(t, "smoke", m.Diagnostics.Warnings[0].Scenario)
	assert.Contains(t, m.Diagnostics.Warnings[0].Message, `did you mean "enable_burst"?`)

	assert.Equal(t, "misc", m.Diagnostics.Warnings[1].Field)
	assert.NotContains(t, m.Diagnostics.Warnings[1].Message, "did you mean")

	assert.Equal(t, diagnostic.CodeUnmatchedField, m.Diagnostics.Warnings[2].Code)
	assert.Contains(t, m.Diagnostics.Warnings[2].Message, `"addr"`)
}

// Fields that name output or reserved ports keep the plain partition
// (extra = not an input port) and are reported instead.
func TestBuild_PortNamedFields(t *testing.T) {
	m := build(t, `{"ports":[
	    {"name":"clk","direction":"input"},
	    {"name":"dout","direction":"output","size":8},
	    {"name":"rst","direction":"output"},
	    {"name":"din","direction":"input"}
	  ],"tests":[{"constraints":{"dout_min":1,"clk_max":1,"rst_min":0,"din_min":2}}]}`)

	assert.Equal(t, []string{"clk", "din", "dout", "rst"}, m.Fields)
	assert.Equal(t, []string{"clk", "din"}, m.InputPortNames)
	assert.Equal(t, []string{"dout", "rst"}, m.ExtraFields)

	require.Len(t, m.Diagnostics.Warnings, 2, spew.Sdump(m.Diagnostics))
	assert.Equal(t, diagnostic.CodeReservedPortField, m.Diagnostics.Warnings[0].Code)
	assert.Equal(t, "clk", m.Diagnostics.Warnings[0].Field)
	assert.Equal(t, diagnostic.CodeOutputPortField, m.Diagnostics.Warnings[1].Code)
	assert.Equal(t, "dout", m.Diagnostics.Warnings[1].Field)
}

func TestBuild_TestcasesWinOverTests(t *testing.T) {
	m := build(t, `{"ports":[{"name":"a"}],
	  "testcases":[{"name":"Kept"}],
	  "tests":[{"name":"Dropped"},{"name":"Also Dropped"}]}`)

	require.Len(t, m.Scenarios, 1)
	assert.Equal(t, "kept", m.Scenarios[0].Name)
	assert.True(t, m.Diagnostics.HasCode(diagnostic.CodeIgnoredScenarios))
	assert.False(t, m.Diagnostics.HasWarnings())
}

func TestBuild_CustomConfig(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultDataWidth = 4
	cfg.DefaultNumTransactions = 3
	cfg.FlagPrefixes = []string{"en_"}
	cfg.FieldDatatype = "bit [3:0]"

	d, err := spec.Parse([]byte(`{"ports":[{"name":"a"}],"tests":[{"constraints":{
		"a_min": 1, "en_fast": true, "enable_slow": true}}]}`), spec.FormatJSON)
	require.NoError(t, err)

	m, err := Build(d, cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{"en_fast"}, m.Flags)
	assert.Equal(t, 3, m.Scenarios[0].NumTransactions)
	assert.Equal(t, FieldConstraint{Min: spec.Number("1"), Max: spec.Number("15"), Datatype: "bit [3:0]"},
		m.Scenarios[0].FieldConstraints["a"])
}

func TestDirection_String(t *testing.T) {
	assert.Equal(t, "input", DirectionInput.String())
	assert.Equal(t, "output", DirectionOutput.String())
	assert.Equal(t, "unknown", Direction(7).String())
}
