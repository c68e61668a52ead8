package engine

import (
	"fmt"
	"sync"
)

// RemapCollisionError reports a double write of one identifier pair into
// the remap table. Identifier derivation is deterministic, so a collision
// means the run's internal consistency is broken and no output should be
// trusted.
type RemapCollisionError struct {
	// Instance and Node are the colliding v3 identifiers.
	Instance string
	Node     string
}

// Error implements the error interface.
func (e *RemapCollisionError) Error() string {
	return fmt.Sprintf("remap collision: identifier pair (%s, %s) written twice",
		e.Instance, e.Node)
}

// Key addresses one v3 node globally: node identifiers are unique within
// their instance only, so the instance identifier is part of the key.
type Key struct {
	Instance string
	Node     string
}

// Entry is the v4 identity assigned to one v3 node.
type Entry struct {
	Instance string
	Node     string
}

// RemapTable is the process-scoped (v3 instance, v3 node) → (v4 instance,
// v4 node) table. Phase-one workers append concurrently; Freeze closes it
// for writes before the resolution pass reads it. The resolution pass
// never mutates the table.
type RemapTable struct {
	mu      sync.Mutex
	entries map[Key]Entry
	frozen  bool
}

// NewRemapTable creates an empty remap table.
func NewRemapTable() *RemapTable {
	return &RemapTable{entries: make(map[Key]Entry)}
}

// PutAll records every node assignment of one transformed instance in a
// single critical section. Any already-present key is a collision.
func (t *RemapTable) PutAll(v3Instance, v4Instance string, nodes map[string]string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.frozen {
		return fmt.Errorf("remap table is frozen: write for instance %s rejected", v3Instance)
	}

	for v3Node := range nodes {
		if _, ok := t.entries[Key{Instance: v3Instance, Node: v3Node}]; ok {
			return &RemapCollisionError{Instance: v3Instance, Node: v3Node}
		}
	}

	for v3Node, v4Node := range nodes {
		t.entries[Key{Instance: v3Instance, Node: v3Node}] = Entry{
			Instance: v4Instance,
			Node:     v4Node,
		}
	}

	return nil
}

// Get looks up the v4 identity of a v3 node.
func (t *RemapTable) Get(k Key) (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[k]

	return e, ok
}

// Freeze closes the table for writes.
func (t *RemapTable) Freeze() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frozen = true
}

// Len returns the number of recorded identifier pairs.
func (t *RemapTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}

// Snapshot copies the table contents, for diagnostics only.
func (t *RemapTable) Snapshot() map[Key]Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[Key]Entry, len(t.entries))
	for k, e := range t.entries {
		out[k] = e
	}

	return out
}
