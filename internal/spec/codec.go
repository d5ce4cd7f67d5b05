package spec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"gopkg.in/yaml.v3"
)

// Annotation keys of the {value, datatype} encoding.
const (
	keyValue    = "value"
	keyDatatype = "datatype"
)

// --- ConstraintValue JSON methods ---

// UnmarshalJSON implements custom JSON unmarshaling for ConstraintValue.
// Accepts either a bare scalar or an object like {"value": 5, "datatype": "int"}.
func (c *ConstraintValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var obj map[string]json.RawMessage

		err := json.Unmarshal(trimmed, &obj)
		if err != nil {
			return err
		}

		out := ConstraintValue{Annotated: true}

		if raw, ok := obj[keyValue]; ok {
			out.Value, err = scalarFromJSON(raw)
			if err != nil {
				return fmt.Errorf("invalid %q: %w", keyValue, err)
			}
		}

		if raw, ok := obj[keyDatatype]; ok {
			err = json.Unmarshal(raw, &out.Datatype)
			if err != nil {
				return fmt.Errorf("invalid %q: expected string: %w", keyDatatype, err)
			}
		}

		*c = out

		return nil
	}

	v, err := scalarFromJSON(trimmed)
	if err != nil {
		return err
	}

	*c = Bare(v)

	return nil
}

// scalarFromJSON decodes a JSON scalar, keeping the source spelling of numbers.
func scalarFromJSON(raw []byte) (Scalar, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any

	err := dec.Decode(&v)
	if err != nil {
		return Scalar{}, err
	}

	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case json.Number:
		return Number(x.String()), nil
	case string:
		return String(x), nil
	default:
		return Scalar{}, fmt.Errorf("expected scalar, got %T", v)
	}
}

// --- ConstraintValue YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for ConstraintValue.
// Accepts:
//   - Bare scalar: 5, true, "8'hFF"
//   - Annotated mapping: {value: 5, datatype: int}
func (c *ConstraintValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	switch node.Kind {
	case yaml.ScalarNode:
		v, err := scalarFromYAML(node)
		if err != nil {
			return err
		}

		*c = Bare(v)

		return nil

	case yaml.MappingNode:
		out := ConstraintValue{Annotated: true}

		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i].Value, node.Content[i+1]

			switch key {
			case keyValue:
				if val.Kind != yaml.ScalarNode {
					return fmt.Errorf("line %d: expected scalar %q", val.Line, keyValue)
				}

				v, err := scalarFromYAML(val)
				if err != nil {
					return err
				}

				out.Value = v

			case keyDatatype:
				err := val.Decode(&out.Datatype)
				if err != nil {
					return fmt.Errorf("line %d: invalid %q: %w", val.Line, keyDatatype, err)
				}
			}
		}

		*c = out

		return nil

	default:
		return fmt.Errorf("line %d: expected scalar or {value, datatype} mapping", node.Line)
	}
}

// scalarFromYAML converts a YAML scalar node, rewriting integers to decimal
// so that 0x1F and 31 normalize identically.
func scalarFromYAML(node *yaml.Node) (Scalar, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil

	case "!!bool":
		var b bool

		err := node.Decode(&b)
		if err != nil {
			return Scalar{}, err
		}

		return Bool(b), nil

	case "!!int":
		v, ok := new(big.Int).SetString(strings.ReplaceAll(node.Value, "_", ""), 0)
		if !ok {
			return Number(node.Value), nil
		}

		return Int(v), nil

	case "!!float":
		return Number(node.Value), nil

	default:
		return String(node.Value), nil
	}
}
