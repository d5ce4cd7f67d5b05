package ident

// SourceExt is the file extension of every generated artifact.
const SourceExt = ".sv"

// Transaction returns the data-record class name for a DUT.
func Transaction(dut string) string { return dut + "_transaction" }

// Env returns the environment class name the test instantiates.
func Env(dut string) string { return dut + "_env" }

// Test returns the orchestrator class name for a DUT.
func Test(dut string) string { return dut + "_test" }

// Config returns the configuration class name for a scenario.
func Config(scenario string) string { return scenario + "_config" }

// Sequence returns the sequence class name for a scenario.
func Sequence(scenario string) string { return scenario + "_seq" }

// ConfigHandle returns the test member holding a scenario's configuration.
func ConfigHandle(scenario string) string { return scenario + "_cfg_h" }

// SequenceHandle returns the instance name used when starting a scenario's sequence.
func SequenceHandle(scenario string) string { return scenario + "_seq_h" }

// MinBound returns the configuration member holding a field's lower bound.
func MinBound(field string) string { return field + "_min" }

// MaxBound returns the configuration member holding a field's upper bound.
func MaxBound(field string) string { return field + "_max" }

// Filename returns the artifact file name for a generated class.
func Filename(class string) string { return class + SourceExt }
