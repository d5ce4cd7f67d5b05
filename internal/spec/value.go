package spec

import (
	"math/big"
	"strings"

	"uvm-testgen/internal/common"
)

// ScalarKind is the JSON/YAML kind of a scalar constraint value.
type ScalarKind int

const (
	ScalarNull ScalarKind = iota
	ScalarBool
	ScalarNumber
	ScalarString
)

// String returns a human-readable kind name.
func (k ScalarKind) String() string {
	switch k {
	case ScalarNull:
		return "null"
	case ScalarBool:
		return "bool"
	case ScalarNumber:
		return "number"
	case ScalarString:
		return "string"
	default:
		return common.UnknownStr
	}
}

// Scalar is a single constraint value. Text holds the source spelling for
// numbers and strings, and "true"/"false" for booleans.
type Scalar struct {
	Kind ScalarKind
	Text string
}

// Null returns the null scalar.
func Null() Scalar { return Scalar{} }

// Bool returns a boolean scalar.
func Bool(b bool) Scalar {
	if b {
		return Scalar{Kind: ScalarBool, Text: "true"}
	}

	return Scalar{Kind: ScalarBool, Text: "false"}
}

// Number returns a numeric scalar with the given decimal spelling.
func Number(text string) Scalar { return Scalar{Kind: ScalarNumber, Text: text} }

// Int returns a numeric scalar for an arbitrary-precision integer.
func Int(v *big.Int) Scalar { return Number(v.String()) }

// String returns a string scalar.
func String(s string) Scalar { return Scalar{Kind: ScalarString, Text: s} }

// IsNull reports whether the scalar is null or absent.
func (s Scalar) IsNull() bool { return s.Kind == ScalarNull }

// Literal returns the SystemVerilog spelling of the scalar.
// Strings are passed through so authors can write sized literals such as "8'hFF".
func (s Scalar) Literal() string {
	switch s.Kind {
	case ScalarBool:
		if s.Text == "true" {
			return "1"
		}

		return "0"
	case ScalarNull:
		return ""
	default:
		return s.Text
	}
}

// Truthy interprets the scalar as a boolean knob value.
// Numbers are true when non-zero; strings are true unless empty, "0" or "false".
func (s Scalar) Truthy() bool {
	switch s.Kind {
	case ScalarBool:
		return s.Text == "true"
	case ScalarNumber:
		if v, ok := s.BigInt(); ok {
			return v.Sign() != 0
		}

		f, ok := new(big.Float).SetString(s.Text)

		return ok && f.Sign() != 0
	case ScalarString:
		switch strings.ToLower(strings.TrimSpace(s.Text)) {
		case "", "0", "false":
			return false
		default:
			return true
		}
	default:
		return false
	}
}

// BigInt returns the integer value of a numeric scalar.
// It reports false for non-integers and non-numbers.
func (s Scalar) BigInt() (*big.Int, bool) {
	if s.Kind != ScalarNumber {
		return nil, false
	}

	return new(big.Int).SetString(s.Text, 10)
}

// ConstraintValue is a constraint in either of its two encodings:
// a bare scalar, or an annotated {value, datatype} object.
type ConstraintValue struct {
	// Value is the constraint value. Null when an annotated object omits "value".
	Value Scalar
	// Datatype is the annotation's datatype. Empty for bare scalars.
	Datatype string
	// Annotated is true when the value came from a {value, datatype} object.
	Annotated bool
}

// Bare returns a bare-scalar constraint value.
func Bare(v Scalar) ConstraintValue {
	return ConstraintValue{Value: v}
}

// Annotated returns an annotated constraint value.
func Annotated(v Scalar, datatype string) ConstraintValue {
	return ConstraintValue{Value: v, Datatype: datatype, Annotated: true}
}

// Normalize unwraps either encoding to (value, datatype), substituting
// defDatatype when no datatype annotation is present.
func (c ConstraintValue) Normalize(defDatatype string) (Scalar, string) {
	if c.Datatype == "" {
		return c.Value, defDatatype
	}

	return c.Value, c.Datatype
}
