package model

import (
	"fmt"
	"math/big"

	"uvm-testgen/internal/diagnostic"
	"uvm-testgen/internal/ident"
	"uvm-testgen/internal/spec"
)

// resolveScenario builds the canonical form of one raw scenario. index is 1-based.
func (b *builder) resolveScenario(raw *spec.Scenario, index int) Scenario {
	m := b.model

	sc := Scenario{
		Name:             ident.NormalizeScenarioName(raw.Name, index),
		NumTransactions:  b.cfg.DefaultNumTransactions,
		DataWidth:        m.DataWidth,
		FieldConstraints: make(map[string]FieldConstraint, len(m.Fields)),
		BoolConstraints:  make(map[string]BoolConstraint, len(m.Flags)),
	}

	b.checkIdentifier(sc.Name, sc.Name, "scenario name")

	if raw.NumTransactions != nil {
		if *raw.NumTransactions >= 0 {
			sc.NumTransactions = *raw.NumTransactions
		} else {
			m.Diagnostics.AddWarning(diagnostic.CodeNegativeCount,
				fmt.Sprintf("num_transactions %d is negative, using 0", *raw.NumTransactions), sc.Name, "")

			sc.NumTransactions = 0
		}
	}

	upper := spec.Int(maxValue(m.DataWidth))

	for _, f := range m.Fields {
		fc := b.resolveField(raw.Constraints, f, upper)
		b.checkRange(sc.Name, f, fc)
		sc.FieldConstraints[f] = fc
	}

	for _, flag := range m.Flags {
		sc.BoolConstraints[flag] = b.resolveFlag(raw.Constraints, flag)
	}

	return sc
}

// resolveField looks up <f>_min and <f>_max. The datatype comes from the
// _min entry only; a datatype on the _max entry is ignored.
func (b *builder) resolveField(c spec.Constraints, f string, upper spec.Scalar) FieldConstraint {
	fc := FieldConstraint{
		Min:      spec.Number("0"),
		Max:      upper,
		Datatype: b.cfg.FieldDatatype,
	}

	if v, ok := c[ident.MinBound(f)]; ok {
		val, dt := v.Normalize(b.cfg.FieldDatatype)
		if !val.IsNull() {
			fc.Min = val
		}

		fc.Datatype = dt
	}

	if v, ok := c.Lookup(ident.MaxBound(f)); ok {
		fc.Max = v.Value
	}

	return fc
}

// resolveFlag looks up a flag, defaulting to false.
func (b *builder) resolveFlag(c spec.Constraints, flag string) BoolConstraint {
	bc := BoolConstraint{Datatype: b.cfg.FlagDatatype}

	if v, ok := c[flag]; ok {
		val, dt := v.Normalize(b.cfg.FlagDatatype)
		bc.Value = val.Truthy()
		bc.Datatype = dt
	}

	return bc
}

// checkRange warns when both bounds are integers and min > max.
// The range is kept as written; the generated sequence reports the
// randomization failure at simulation time.
func (b *builder) checkRange(scenario, field string, fc FieldConstraint) {
	lo, okLo := fc.Min.BigInt()
	hi, okHi := fc.Max.BigInt()

	if okLo && okHi && lo.Cmp(hi) > 0 {
		b.model.Diagnostics.AddWarning(diagnostic.CodeInvertedRange,
			fmt.Sprintf("min %s is greater than max %s", lo, hi), scenario, field)
	}
}

// maxValue returns 2^width - 1.
func maxValue(width int) *big.Int {
	v := new(big.Int).Lsh(big.NewInt(1), uint(width))

	return v.Sub(v, big.NewInt(1))
}
