// Package gen renders SystemVerilog/UVM stimulus code from a canonical model.
//
// Generation approach uses text/template with precomputed views, so the same
// model always renders byte-identical files.
//
// Artifacts:
//   - <dut>_transaction: one member per non-reserved port, extra field and flag
//   - <scenario>_config: per-scenario bounds and flag values
//   - <scenario>_seq: randomizes each transaction inside the config's ranges
//   - <dut>_test: scopes every config to the sequencer and starts every sequence
package gen
