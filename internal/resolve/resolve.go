// Package resolve implements the second migration phase: rewriting
// cross-instance references into concrete v4 edges once every instance
// has stable v4 identifiers.
//
// This pass is a strict barrier. It must not start until all
// transformation work has completed and the remap table is closed for
// writes, because any instance may be the target of a reference before
// its own transformation is known to have succeeded.
package resolve

import (
	"fmt"

	"graph-migrator/internal/diagnostic"
	"graph-migrator/internal/engine"
	"graph-migrator/internal/manifest"
	"graph-migrator/internal/v4"
)

// Apply rewrites every pending cross-instance reference. References whose
// target was skipped or failed are dropped and recorded as warnings;
// migrations over a model subset are expected to tolerate some
// unreachable targets. The remap table is read-only here.
func Apply(instances []*v4.ResourceInstance, table *engine.RemapTable, man *manifest.Run) []*v4.ResourceInstance {
	for _, inst := range instances {
		for _, ref := range inst.Pending {
			entry, ok := table.Get(engine.Key{
				Instance: ref.TargetInstance,
				Node:     ref.TargetNode,
			})
			if !ok {
				man.AddWarning(inst.V3ID, diagnostic.Diagnostic{
					Severity: diagnostic.SeverityWarning,
					Code:     "dangling_cross_reference_dropped",
					Message: fmt.Sprintf(
						"cross-instance reference to (%s, %s) has no migrated target; edge %q dropped",
						ref.TargetInstance, ref.TargetNode, ref.EdgeType),
					Instance:  inst.V3ID,
					Attribute: ref.SourceNode,
				})

				continue
			}

			from, to := ref.SourceNode, entry.Node
			if ref.Inverse {
				from, to = to, from
			}

			inst.Edges = append(inst.Edges, v4.Edge{
				Type:          ref.EdgeType,
				From:          from,
				To:            to,
				CrossInstance: true,
			})
		}

		inst.Pending = nil
	}

	return instances
}
