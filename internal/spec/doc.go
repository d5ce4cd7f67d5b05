// Package spec defines the raw verification-spec document and its loaders.
//
// Documents are JSON by convention; files ending in .yaml or .yml are read
// as YAML. Both encodings decode into the same Document.
//
// # Document Overview
//
//	{
//	  "dut": "alu",
//	  "data_width": 8,
//	  "ports": [
//	    {"name": "clk", "direction": "input", "size": 1},
//	    {"name": "a", "direction": "input", "size": 8, "datatype": "logic"},
//	    {"name": "y", "direction": "output", "size": 8}
//	  ],
//	  "testcases": [
//	    {
//	      "name": "Basic Add",
//	      "num_transactions": 20,
//	      "constraints": {
//	        "a_min": 0,
//	        "a_max": {"value": 127, "datatype": "int"},
//	        "enable_carry": true
//	      }
//	    }
//	  ]
//	}
//
// Scenarios may be listed under "testcases" or "tests"; the first non-empty
// list wins.
//
// # Constraint Values
//
// A constraint value is either a bare scalar (5, true, "8'hFF") or an
// annotated object ({"value": 5, "datatype": "int"}). ConstraintValue keeps
// which encoding was used and Normalize unwraps both to (value, datatype).
package spec
