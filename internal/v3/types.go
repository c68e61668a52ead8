package v3

// ResourceInstance is one concrete v3 resource graph, tagged with the
// model it conforms to. Instances are read-only once loaded.
type ResourceInstance struct {
	// ID is the stable v3 identifier of this instance.
	ID string
	// Model is the raw v3 resource-model name (e.g. "HERITAGE_RESOURCE.E18").
	Model string
	// Nodes in declaration order. Node identifiers are unique within the
	// instance only; the same identifier value in another instance names
	// an unrelated node.
	Nodes []Node
	// Edges in declaration order, including flattened child relations.
	Edges []Edge

	nodesByID map[string]*Node
}

// Node is one entity in a v3 resource graph.
type Node struct {
	// ID is unique within the owning instance.
	ID string
	// Type is the v3 node-type identifier (entity type in v3 terms).
	Type string
	// Attributes maps attribute key to value. Insertion order is irrelevant.
	Attributes map[string]string
	// Semantic marks structural nodes that carry no business data.
	Semantic bool

	// instance is a back-reference to the owning instance id.
	instance string
}

// Edge is one relationship in a v3 resource graph.
type Edge struct {
	// Type is the v3 edge/relationship type.
	Type string
	// From is the source node identifier within the owning instance.
	From string
	// To is the target node identifier. For cross-instance references it
	// names a node within ToInstance instead.
	To string
	// ToInstance, when non-empty, is the v3 identifier of the instance
	// owning the target node (a cross-instance reference).
	ToInstance string
}

// CrossInstance reports whether the edge targets a node in another instance.
func (e Edge) CrossInstance() bool {
	return e.ToInstance != ""
}

// Node returns the node with the given identifier, or nil.
func (r *ResourceInstance) Node(id string) *Node {
	return r.nodesByID[id]
}

// Instance returns the identifier of the instance owning this node.
func (n *Node) Instance() string {
	return n.instance
}

// index rebuilds the node lookup table and owner back-references.
func (r *ResourceInstance) index() {
	r.nodesByID = make(map[string]*Node, len(r.Nodes))
	for i := range r.Nodes {
		r.Nodes[i].instance = r.ID
		r.nodesByID[r.Nodes[i].ID] = &r.Nodes[i]
	}
}
