// Package match provides identifier normalization and fuzzy name
// resolution for v3 resource-model names.
//
// v3 model identifiers look like "HERITAGE_RESOURCE.E18"; mapping
// definitions name the same model "Heritage Resource". Normalization
// strips the CRM class suffix and restores word casing, and the fuzzy
// scorer ranks mapping names by normalized edit distance so a raw v3
// identifier can be resolved against the loaded mapping set.
package match
