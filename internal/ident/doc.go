// Package ident normalizes user-supplied names and derives every generated
// SystemVerilog identifier from them.
//
// Generated names are plain concatenations:
//   - <dut>_transaction, <dut>_env, <dut>_test
//   - <scenario>_config, <scenario>_seq
//   - <scenario>_cfg_h, <scenario>_seq_h for instance handles
//
// Artifacts reference each other only through these functions, so a
// reference in one file always resolves to a declaration in another.
//
// Suggest offers edit-distance "did you mean" hints for misspelled keys.
package ident
