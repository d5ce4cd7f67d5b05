// Package diagnostic provides structured, non-fatal findings produced while
// normalizing a verification spec.
//
// Key capabilities:
//   - Coded warnings (inverted ranges, duplicate scenarios, colliding names)
//   - Scenario and field locators for each finding
//   - Conversion of warnings to a single error value for strict builds
package diagnostic
