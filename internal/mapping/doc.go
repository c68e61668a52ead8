// Package mapping provides the schema, parsing, validation, and indexed
// repository for externally supplied v3→v4 mapping definitions.
//
// Mapping sources arrive already extracted from their archives as JSON
// (the v4 importer's .mapping format) or YAML documents. Alongside the
// definitions, two kinds of auxiliary documents are consumed:
//
//   - concept documents (per concept-type UUID → prefLabel tables),
//     indexed inverted so value transforms can resolve labels to UUIDs;
//   - graphdiff documents (v3 node-type → v4 node name, possibly null),
//     merged into the owning definition's node alias table.
//
// # Conflict policy
//
// At most one definition may exist per v3 model name. Two sources
// declaring the same v3 model are always reported as a conflict, never
// resolved by precedence.
package mapping
