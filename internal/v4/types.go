// Package v4 defines the in-memory model of version-4 resource-instance
// graphs and the deterministic identifier derivation both phases rely on.
package v4

// ResourceInstance is one migrated resource graph. It is provisional
// while Pending still holds unresolved cross-instance references and
// resolved once the resolution pass has run.
type ResourceInstance struct {
	// ID is the freshly assigned v4 instance identifier.
	ID string `json:"id"`
	// Model is the v4 resource-model name.
	Model string `json:"model"`
	// V3ID is the v3 instance this was migrated from.
	V3ID string `json:"v3_id"`
	// Nodes in deterministic (v3 declaration) order.
	Nodes []Node `json:"nodes"`
	// Edges holds intra-instance edges plus resolved cross-instance edges.
	Edges []Edge `json:"edges"`
	// Pending holds cross-instance references awaiting resolution. Empty
	// after the resolution pass.
	Pending []PendingRef `json:"-"`
}

// Node is one translated entity.
type Node struct {
	// ID is the deterministic v4 node identifier.
	ID string `json:"id"`
	// Type is the v4 node-type identifier.
	Type string `json:"type"`
	// Attributes maps translated attribute keys to fixed values.
	Attributes map[string]string `json:"attributes"`
}

// Edge is one translated relationship. Both endpoints are v4 node
// identifiers.
type Edge struct {
	Type string `json:"type"`
	From string `json:"from"`
	To   string `json:"to"`
	// CrossInstance marks edges whose target node lives in another
	// resource instance.
	CrossInstance bool `json:"cross_instance,omitempty"`
}

// PendingRef is a cross-instance reference recorded during transformation
// and rewritten by the resolution pass once every instance has stable v4
// identifiers.
type PendingRef struct {
	// SourceNode is the v4 identifier of the edge source.
	SourceNode string
	// TargetInstance and TargetNode are the v3 identifiers of the target.
	TargetInstance string
	TargetNode     string
	// EdgeType is the already-translated v4 edge type.
	EdgeType string
	// Inverse swaps the endpoints of the resolved edge.
	Inverse bool
}
