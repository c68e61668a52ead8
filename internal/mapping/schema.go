package mapping

// Definition associates one v3 resource model with one v4 resource model
// and carries the node/edge translation rules between them.
type Definition struct {
	// V3Name is the v3 resource-model name this definition applies to,
	// in mapping form (e.g. "Heritage Resource").
	V3Name string `json:"resource_model_name" yaml:"resource_model_name"`

	// V4Name is the v4 resource-model name instances become.
	V4Name string `json:"target_model_name" yaml:"target_model_name"`

	// Nodes lists the node-type translation rules, in declaration order.
	Nodes []NodeMapping `json:"nodes" yaml:"nodes"`

	// Edges lists the edge-type translation rules, in declaration order.
	Edges []EdgeMapping `json:"edges,omitempty" yaml:"edges,omitempty"`

	// Aliases maps additional v3 node-type identifiers to NodeMapping
	// names. Populated from graphdiff documents; explicit entries in the
	// source document win over graphdiff-derived ones.
	Aliases map[string]string `json:"aliases,omitempty" yaml:"aliases,omitempty"`

	nodesByName map[string]*NodeMapping
	edgesByType map[string]*EdgeMapping
}

// NodeMapping maps one v3 node-type identifier to its v4 counterpart.
type NodeMapping struct {
	// Name is the v3 node-type identifier.
	Name string `json:"name" yaml:"name"`

	// TargetName is the v4 node-type identifier.
	TargetName string `json:"target_name" yaml:"target_name"`

	// DataType tags the value transform applied to attribute values of
	// this node (e.g. "date", "concept"). Empty means no transform.
	DataType string `json:"data_type,omitempty" yaml:"data_type,omitempty"`

	// Exclude marks semantic node types that carry no data into v4.
	// Excluded nodes are dropped along with edges touching them.
	Exclude bool `json:"exclude,omitempty" yaml:"exclude,omitempty"`

	// Attributes translates attribute keys, old key → new key. Keys
	// absent from this table are dropped with a warning.
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`

	// Required lists old attribute keys whose values must survive the
	// declared transform; a transform miss on one of these fails the
	// whole instance instead of degrading to a warning.
	Required []string `json:"required,omitempty" yaml:"required,omitempty"`
}

// Direction describes how an edge mapping orients the v4 edge.
type Direction string

const (
	// DirectionForward keeps the v3 edge orientation.
	DirectionForward Direction = "forward"
	// DirectionInverse swaps source and target in the v4 edge.
	DirectionInverse Direction = "inverse"
)

// IsValid returns true if the direction is a recognized value.
func (d Direction) IsValid() bool {
	return d == "" || d == DirectionForward || d == DirectionInverse
}

// EdgeMapping maps one v3 edge/relationship type to its v4 counterpart.
type EdgeMapping struct {
	// Type is the v3 edge type.
	Type string `json:"type" yaml:"type"`

	// TargetType is the v4 edge type.
	TargetType string `json:"target_type" yaml:"target_type"`

	// Direction orients the v4 edge; empty means forward.
	Direction Direction `json:"direction,omitempty" yaml:"direction,omitempty"`

	// CrossInstance declares whether this edge type references nodes
	// owned by other resource instances.
	CrossInstance bool `json:"cross_instance,omitempty" yaml:"cross_instance,omitempty"`
}

// Inverse reports whether the v4 edge endpoints should be swapped.
func (m *EdgeMapping) Inverse() bool {
	return m.Direction == DirectionInverse
}

// LookupNode returns the node mapping for a v3 node-type identifier,
// checking exact names first and the alias table second.
func (d *Definition) LookupNode(v3Type string) (*NodeMapping, bool) {
	if nm, ok := d.nodesByName[v3Type]; ok {
		return nm, true
	}

	if alias, ok := d.Aliases[v3Type]; ok {
		if nm, ok := d.nodesByName[alias]; ok {
			return nm, true
		}
	}

	return nil, false
}

// LookupEdge returns the edge mapping for a v3 edge type.
func (d *Definition) LookupEdge(v3Type string) (*EdgeMapping, bool) {
	em, ok := d.edgesByType[v3Type]
	return em, ok
}

// NodeNames returns the v3 node-mapping names in declaration order.
func (d *Definition) NodeNames() []string {
	names := make([]string, len(d.Nodes))
	for i := range d.Nodes {
		names[i] = d.Nodes[i].Name
	}

	return names
}

// RequiresAttribute reports whether the old attribute key is marked required.
func (m *NodeMapping) RequiresAttribute(oldKey string) bool {
	for _, k := range m.Required {
		if k == oldKey {
			return true
		}
	}

	return false
}

// index rebuilds the node/edge lookup tables.
func (d *Definition) index() {
	d.nodesByName = make(map[string]*NodeMapping, len(d.Nodes))
	for i := range d.Nodes {
		d.nodesByName[d.Nodes[i].Name] = &d.Nodes[i]
	}

	d.edgesByType = make(map[string]*EdgeMapping, len(d.Edges))
	for i := range d.Edges {
		d.edgesByType[d.Edges[i].Type] = &d.Edges[i]
	}
}
