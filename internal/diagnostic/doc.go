// Package diagnostic provides structured errors, warnings, and
// "what happened to this instance" explanations for the migrator.
//
// Key capabilities:
//   - Instance-level failure reports (unmapped node types, required attributes)
//   - Attribute-level data-loss warnings (dropped keys, transform misses)
//   - Dangling cross-reference reports from the resolution pass
//
// Diagnostics never abort the run by themselves; the caller decides what
// severity means at its boundary (the manifest records everything).
package diagnostic
