package engine

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"graph-migrator/internal/common"
	"graph-migrator/internal/diagnostic"
	"graph-migrator/internal/manifest"
	"graph-migrator/internal/mapping"
	"graph-migrator/internal/transform"
	"graph-migrator/internal/v3"
	"graph-migrator/internal/v4"
)

// Engine transforms selected v3 instances into provisional v4 instances.
type Engine struct {
	repo       *mapping.Repository
	transforms *transform.Registry
	man        *manifest.Run
	remap      *RemapTable
}

// New creates an engine sharing the given repository, transform registry,
// and manifest. The remap table is owned by the engine and handed to the
// resolution pass via Remap after phase one completes.
func New(repo *mapping.Repository, reg *transform.Registry, man *manifest.Run) *Engine {
	return &Engine{
		repo:       repo,
		transforms: reg,
		man:        man,
		remap:      NewRemapTable(),
	}
}

// Remap returns the shared identifier remap table.
func (e *Engine) Remap() *RemapTable {
	return e.remap
}

// Result is the outcome of transforming one instance. Instance is nil
// when the diagnostics contain an error (instance-fatal conditions).
type Result struct {
	Instance *v4.ResourceInstance
	Diags    diagnostic.Diagnostics

	// assignments maps v3 node id -> v4 node id for publication into the
	// remap table once the instance is known to have succeeded.
	assignments map[string]string
}

// Transform translates one instance under its mapping definition. All
// conditions are reported through the result's diagnostics; nothing here
// aborts the run.
func (e *Engine) Transform(inst *v3.ResourceInstance, def *mapping.Definition) *Result {
	res := &Result{assignments: make(map[string]string, len(inst.Nodes))}

	out := &v4.ResourceInstance{
		ID:    v4.InstanceID(def.V4Name, inst.ID),
		Model: def.V4Name,
		V3ID:  inst.ID,
	}

	// Without loaded concept documents, labels pass through untouched.
	ctx := transform.Context{}
	if e.repo.Concepts().Len() > 0 {
		ctx.Concepts = e.repo.Concepts()
	}

	excluded := make(map[string]bool)

	for i := range inst.Nodes {
		node := &inst.Nodes[i]

		nm, ok := def.LookupNode(node.Type)
		if !ok {
			// Semantic nodes carry no business data; an unmapped semantic
			// node is dropped like an excluded one.
			if node.Semantic {
				excluded[node.ID] = true
				continue
			}

			res.Diags.AddError("unmapped_node_type",
				fmt.Sprintf("no node mapping for type %q", node.Type),
				inst.ID, node.Type)

			return res
		}

		if nm.Exclude || node.Semantic {
			excluded[node.ID] = true
			continue
		}

		v4Node := v4.Node{
			ID:         v4.NodeID(def.V4Name, inst.ID, node.ID),
			Type:       nm.TargetName,
			Attributes: make(map[string]string, len(node.Attributes)),
		}

		// Sorted iteration keeps warning order stable across runs.
		for _, oldKey := range common.SortedKeys(node.Attributes) {
			value := node.Attributes[oldKey]

			newKey, ok := nm.Attributes[oldKey]
			if !ok {
				res.Diags.AddWarning("attribute_dropped",
					fmt.Sprintf("attribute %q has no translation and was dropped", oldKey),
					inst.ID, node.Type+"/"+oldKey)

				continue
			}

			fixed, err := e.transforms.Apply(nm.DataType, value, ctx)
			if err != nil {
				if nm.RequiresAttribute(oldKey) {
					res.Diags.AddError("required_attribute_unmappable",
						fmt.Sprintf("required attribute %q: %v", oldKey, err),
						inst.ID, node.Type+"/"+oldKey)

					return res
				}

				res.Diags.AddWarning("transform_failed",
					fmt.Sprintf("attribute %q dropped: %v", oldKey, err),
					inst.ID, node.Type+"/"+oldKey)

				continue
			}

			v4Node.Attributes[newKey] = fixed
		}

		out.Nodes = append(out.Nodes, v4Node)
		res.assignments[node.ID] = v4Node.ID
	}

	for _, edge := range inst.Edges {
		e.transformEdge(inst, def, edge, out, excluded, res)
	}

	res.Instance = out

	return res
}

// transformEdge translates one edge, deferring cross-instance references.
func (e *Engine) transformEdge(
	inst *v3.ResourceInstance,
	def *mapping.Definition,
	edge v3.Edge,
	out *v4.ResourceInstance,
	excluded map[string]bool,
	res *Result,
) {
	ref := edge.From + "->" + edge.To

	if excluded[edge.From] || (!edge.CrossInstance() && excluded[edge.To]) {
		res.Diags.AddWarning("excluded_node_edge_dropped",
			fmt.Sprintf("edge %q touches an excluded node and was dropped", edge.Type),
			inst.ID, ref)

		return
	}

	em, ok := def.LookupEdge(edge.Type)
	if !ok {
		res.Diags.AddWarning("edge_type_unmapped",
			fmt.Sprintf("no edge mapping for type %q; edge dropped", edge.Type),
			inst.ID, ref)

		return
	}

	from, ok := res.assignments[edge.From]
	if !ok {
		res.Diags.AddWarning("excluded_node_edge_dropped",
			fmt.Sprintf("edge %q source carries no v4 identity and was dropped", edge.Type),
			inst.ID, ref)

		return
	}

	if edge.CrossInstance() {
		out.Pending = append(out.Pending, v4.PendingRef{
			SourceNode:     from,
			TargetInstance: edge.ToInstance,
			TargetNode:     edge.To,
			EdgeType:       em.TargetType,
			Inverse:        em.Inverse(),
		})

		return
	}

	to, ok := res.assignments[edge.To]
	if !ok {
		res.Diags.AddWarning("excluded_node_edge_dropped",
			fmt.Sprintf("edge %q target carries no v4 identity and was dropped", edge.Type),
			inst.ID, ref)

		return
	}

	if em.Inverse() {
		from, to = to, from
	}

	out.Edges = append(out.Edges, v4.Edge{Type: em.TargetType, From: from, To: to})
}

// TransformAll runs phase one over every selected instance with a bounded
// worker pool, records outcomes in the manifest, publishes identifier
// assignments, and freezes the remap table. The returned slice preserves
// selection order and contains only succeeded instances.
func (e *Engine) TransformAll(ctx context.Context, selected []Selected, workers int) ([]*v4.ResourceInstance, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([]*v4.ResourceInstance, len(selected))

	for i := range selected {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			sel := selected[i]
			res := e.Transform(sel.Instance, sel.Definition)

			if res.Diags.HasErrors() {
				e.man.Add(manifest.Outcome{
					V3ID:     sel.Instance.ID,
					Model:    sel.Instance.Model,
					Status:   manifest.StatusFailed,
					Reason:   res.Diags.Errors[0].String(),
					Warnings: res.Diags.Warnings,
				})

				return nil
			}

			if err := e.remap.PutAll(sel.Instance.ID, res.Instance.ID, res.assignments); err != nil {
				return err
			}

			e.man.Add(manifest.Outcome{
				V3ID:     sel.Instance.ID,
				Model:    sel.Instance.Model,
				V4ID:     res.Instance.ID,
				V4Model:  res.Instance.Model,
				Status:   manifest.StatusSucceeded,
				Warnings: res.Diags.Warnings,
			})

			results[i] = res.Instance

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.remap.Freeze()

	out := make([]*v4.ResourceInstance, 0, len(results))

	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}

	return out, nil
}
