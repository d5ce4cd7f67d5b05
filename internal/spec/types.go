package spec

import (
	"uvm-testgen/internal/common"
)

// Document is a raw verification spec as written by a test author.
// Optional numeric keys are pointers so that absence can be told apart from zero.
type Document struct {
	DUT       string     `json:"dut" yaml:"dut"`
	DataWidth *int       `json:"data_width" yaml:"data_width"`
	Ports     []Port     `json:"ports" yaml:"ports"`
	Testcases []Scenario `json:"testcases" yaml:"testcases"`
	Tests     []Scenario `json:"tests" yaml:"tests"`
}

// Port is a DUT pin as declared in the document.
type Port struct {
	Name      string `json:"name" yaml:"name"`
	Direction string `json:"direction" yaml:"direction"`
	Size      *int   `json:"size" yaml:"size"`
	Datatype  string `json:"datatype" yaml:"datatype"`
}

// Scenario is one test case as declared in the document.
type Scenario struct {
	Name            string      `json:"name" yaml:"name"`
	NumTransactions *int        `json:"num_transactions" yaml:"num_transactions"`
	Constraints     Constraints `json:"constraints" yaml:"constraints"`
}

// Constraints maps constraint keys (<field>_min, <field>_max, flag names) to values.
type Constraints map[string]ConstraintValue

// Scenarios returns the first non-empty scenario list ("testcases" before "tests").
func (d *Document) Scenarios() []Scenario {
	return common.FirstNonEmpty(d.Testcases, d.Tests)
}

// Lookup returns the value for key and whether it is present with a non-null value.
func (c Constraints) Lookup(key string) (ConstraintValue, bool) {
	v, ok := c[key]
	if !ok || v.Value.IsNull() {
		return ConstraintValue{}, false
	}

	return v, true
}
