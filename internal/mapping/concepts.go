package mapping

import (
	"encoding/json"
	"fmt"
)

// ConceptIndex resolves concept prefLabels to their UUIDs across every
// loaded concept document. The v3 export stores labels; the v4 importer
// wants UUIDs, so the index is built inverted.
type ConceptIndex struct {
	byLabel map[string]string
}

// NewConceptIndex creates an empty concept index.
func NewConceptIndex() *ConceptIndex {
	return &ConceptIndex{byLabel: make(map[string]string)}
}

// Add records one concept. A label seen twice keeps its first UUID; the
// original import format makes the same guarantee only when labels are
// unique, so collisions are simply first-wins here.
func (c *ConceptIndex) Add(uuid, label string) {
	if _, ok := c.byLabel[label]; ok {
		return
	}

	c.byLabel[label] = uuid
}

// UUID returns the UUID registered for a prefLabel.
func (c *ConceptIndex) UUID(label string) (string, bool) {
	id, ok := c.byLabel[label]
	return id, ok
}

// Len returns the number of indexed concepts.
func (c *ConceptIndex) Len() int {
	return len(c.byLabel)
}

// MergeConceptDocument parses one concept document and folds it into the
// index. The document shape is a per-concept-type map of UUID → prefLabel:
//
//	{"Resource Type": {"a1b2...": "Building", ...}, ...}
func (c *ConceptIndex) MergeConceptDocument(raw []byte) error {
	var doc map[string]map[string]string
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to parse concept document: %w", err)
	}

	for _, concepts := range doc {
		for uuid, label := range concepts {
			c.Add(uuid, label)
		}
	}

	return nil
}
