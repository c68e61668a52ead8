// Package v3 defines the in-memory model of version-3 resource-instance
// graphs and the loader that parses and validates raw v3 export documents.
//
// The loader normalizes graph shape before any mapping happens: the nested
// child-entity form produced by the v3 exporter is flattened into explicit
// node and edge sets, and every node/edge reference is checked against the
// declared nodes. Mapping availability is deliberately not checked here;
// that is the model selector's concern.
package v3
