// Package engine implements model selection and the per-instance v3→v4
// transformation.
//
// Transformation is embarrassingly parallel at instance granularity: each
// instance is translated independently, and the only shared state is the
// identifier remap table and the run manifest, both guarded appends. The
// remap table is frozen once every transformation has finished, before
// the resolution pass reads it.
//
// Failure isolation: an instance that cannot be translated (unmapped node
// type, required attribute loss) is excluded and recorded in the
// manifest; every other instance proceeds. Only broken run invariants
// (a remap collision, an explicitly requested model without a mapping)
// abort the whole run.
package engine
