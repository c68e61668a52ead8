package v3

import (
	"encoding/json"
	"fmt"
	"os"
)

// MalformedGraphError reports a structural defect in the v3 input document.
// It is fatal: the run stops before any transformation begins.
type MalformedGraphError struct {
	// Instance is the v3 instance identifier, when known.
	Instance string
	// Reference is the offending node/edge reference, when applicable.
	Reference string
	// Reason describes the defect.
	Reason string
}

// Error implements the error interface.
func (e *MalformedGraphError) Error() string {
	msg := "malformed v3 graph"
	if e.Instance != "" {
		msg += " in instance " + e.Instance
	}

	if e.Reference != "" {
		msg += fmt.Sprintf(": reference %q", e.Reference)
	}

	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

// document mirrors the on-disk v3 export shape.
type document struct {
	Resources []resourceDoc `json:"resources"`
}

type resourceDoc struct {
	ID    string    `json:"id"`
	Model string    `json:"model"`
	Nodes []nodeDoc `json:"nodes"`
	Edges []edgeDoc `json:"edges"`
}

type nodeDoc struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
	Semantic   bool              `json:"semantic"`

	// Edge names the relationship type linking this node to its parent
	// when the node appears in nested child form.
	Edge     string    `json:"edge"`
	Children []nodeDoc `json:"children"`
}

type edgeDoc struct {
	Type       string `json:"type"`
	From       string `json:"from"`
	To         string `json:"to"`
	ToInstance string `json:"to_instance"`
}

// LoadFile loads and parses a v3 export document from the given path.
func LoadFile(path string) ([]*ResourceInstance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read v3 data file %s: %w", path, err)
	}

	return Load(data)
}

// Load parses raw v3 export data into validated resource instances.
// Nested child entities are flattened into nodes plus explicit edges.
func Load(raw []byte) ([]*ResourceInstance, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse v3 data: %w", err)
	}

	instances := make([]*ResourceInstance, 0, len(doc.Resources))

	seen := make(map[string]bool, len(doc.Resources))

	for i := range doc.Resources {
		inst, err := buildInstance(&doc.Resources[i])
		if err != nil {
			return nil, err
		}

		if seen[inst.ID] {
			return nil, &MalformedGraphError{
				Instance: inst.ID,
				Reason:   "duplicate instance identifier",
			}
		}

		seen[inst.ID] = true

		instances = append(instances, inst)
	}

	return instances, nil
}

// buildInstance flattens one resource document and validates its references.
func buildInstance(doc *resourceDoc) (*ResourceInstance, error) {
	if doc.ID == "" {
		return nil, &MalformedGraphError{Reason: "instance has no identifier"}
	}

	if doc.Model == "" {
		return nil, &MalformedGraphError{
			Instance: doc.ID,
			Reason:   "instance has no resource-model name",
		}
	}

	inst := &ResourceInstance{ID: doc.ID, Model: doc.Model}

	for i := range doc.Nodes {
		if err := flattenNode(inst, &doc.Nodes[i], ""); err != nil {
			return nil, err
		}
	}

	for _, e := range doc.Edges {
		inst.Edges = append(inst.Edges, Edge{
			Type:       e.Type,
			From:       e.From,
			To:         e.To,
			ToInstance: e.ToInstance,
		})
	}

	inst.index()

	if err := validateInstance(inst); err != nil {
		return nil, err
	}

	return inst, nil
}

// flattenNode appends the node and, recursively, its children. A child
// entry contributes an edge from the parent to the child; the child must
// name its relationship type.
func flattenNode(inst *ResourceInstance, doc *nodeDoc, parent string) error {
	if doc.ID == "" {
		return &MalformedGraphError{
			Instance: inst.ID,
			Reason:   "node has no identifier",
		}
	}

	if doc.Type == "" {
		return &MalformedGraphError{
			Instance:  inst.ID,
			Reference: doc.ID,
			Reason:    "node has no type",
		}
	}

	attrs := doc.Attributes
	if attrs == nil {
		attrs = map[string]string{}
	}

	inst.Nodes = append(inst.Nodes, Node{
		ID:         doc.ID,
		Type:       doc.Type,
		Attributes: attrs,
		Semantic:   doc.Semantic,
	})

	if parent != "" {
		if doc.Edge == "" {
			return &MalformedGraphError{
				Instance:  inst.ID,
				Reference: doc.ID,
				Reason:    "nested child declares no edge type",
			}
		}

		inst.Edges = append(inst.Edges, Edge{
			Type: doc.Edge,
			From: parent,
			To:   doc.ID,
		})
	}

	for i := range doc.Children {
		if err := flattenNode(inst, &doc.Children[i], doc.ID); err != nil {
			return err
		}
	}

	return nil
}

// validateInstance checks node identifier uniqueness and edge endpoint
// resolution. Cross-instance targets are not checked here; a missing
// target surfaces during the resolution pass instead.
func validateInstance(inst *ResourceInstance) error {
	ids := make(map[string]bool, len(inst.Nodes))

	for i := range inst.Nodes {
		id := inst.Nodes[i].ID
		if ids[id] {
			return &MalformedGraphError{
				Instance:  inst.ID,
				Reference: id,
				Reason:    "duplicate node identifier",
			}
		}

		ids[id] = true
	}

	for _, e := range inst.Edges {
		if e.Type == "" {
			return &MalformedGraphError{
				Instance:  inst.ID,
				Reference: e.From + "->" + e.To,
				Reason:    "edge has no type",
			}
		}

		if !ids[e.From] {
			return &MalformedGraphError{
				Instance:  inst.ID,
				Reference: e.From,
				Reason:    "edge source does not resolve to a declared node",
			}
		}

		if !e.CrossInstance() && !ids[e.To] {
			return &MalformedGraphError{
				Instance:  inst.ID,
				Reference: e.To,
				Reason:    "edge target does not resolve to a declared node",
			}
		}
	}

	return nil
}
