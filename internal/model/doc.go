// Package model builds the canonical verification model from a raw spec
// document.
//
// Build pipeline:
//  1. Reject documents without ports or scenarios (fatal)
//  2. Normalize ports, DUT name and data width
//  3. Discover the global field set (<f>_min/<f>_max keys) and flag set
//     (prefixed keys) across all scenarios
//  4. Resolve every scenario against the global sets, filling defaults
//  5. Partition fields into port-backed and extra fields
//
// Per-field defects are never fatal; they are defaulted and, where useful,
// reported as diagnostics on the Model.
package model
