package mapping

import (
	"fmt"

	"graph-migrator/internal/diagnostic"
)

// Validate performs structural validation of one mapping definition.
// This checks the definition's own invariants; it does not try to prove
// anything about the v3 data the definition will be applied to.
func Validate(def *Definition) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if def == nil {
		res.AddError("mapping_is_nil", "mapping definition is nil", "", "")
		return res
	}

	if def.V3Name == "" {
		res.AddError("missing_v3_name", "definition has no v3 resource-model name", "", "")
	}

	if def.V4Name == "" {
		res.AddError("missing_v4_name",
			fmt.Sprintf("definition %q has no v4 target model name", def.V3Name), "", "")
	}

	if len(def.Nodes) == 0 {
		res.AddWarning("no_node_mappings",
			fmt.Sprintf("definition %q declares no node mappings", def.V3Name), "", "")
	}

	seenNodes := map[string]struct{}{}

	for i := range def.Nodes {
		nm := &def.Nodes[i]

		if nm.Name == "" {
			res.AddError("missing_node_name", "node mapping has no v3 name", "", "")
			continue
		}

		if _, ok := seenNodes[nm.Name]; ok {
			res.AddError("duplicate_node_mapping",
				fmt.Sprintf("duplicate node mapping %q", nm.Name), "", nm.Name)

			continue
		}

		seenNodes[nm.Name] = struct{}{}

		if nm.TargetName == "" && !nm.Exclude {
			res.AddError("missing_target_name",
				fmt.Sprintf("node mapping %q has no v4 target name", nm.Name), "", nm.Name)
		}

		// Required keys must be translatable, otherwise every instance
		// carrying the node type would fail.
		for _, key := range nm.Required {
			if _, ok := nm.Attributes[key]; !ok {
				res.AddWarning("required_key_untranslated",
					fmt.Sprintf("node mapping %q marks %q required but has no translation for it",
						nm.Name, key), "", nm.Name)
			}
		}
	}

	seenEdges := map[string]struct{}{}

	for i := range def.Edges {
		em := &def.Edges[i]

		if em.Type == "" {
			res.AddError("missing_edge_type", "edge mapping has no v3 type", "", "")
			continue
		}

		if _, ok := seenEdges[em.Type]; ok {
			res.AddError("duplicate_edge_mapping",
				fmt.Sprintf("duplicate edge mapping %q", em.Type), "", em.Type)

			continue
		}

		seenEdges[em.Type] = struct{}{}

		if em.TargetType == "" {
			res.AddError("missing_edge_target",
				fmt.Sprintf("edge mapping %q has no v4 target type", em.Type), "", em.Type)
		}

		if !em.Direction.IsValid() {
			res.AddError("invalid_edge_direction",
				fmt.Sprintf("edge mapping %q has unrecognized direction %q", em.Type, em.Direction),
				"", em.Type)
		}
	}

	for alias, target := range def.Aliases {
		if _, ok := seenNodes[target]; !ok {
			res.AddWarning("alias_target_unknown",
				fmt.Sprintf("alias %q points at unknown node mapping %q", alias, target),
				"", alias)
		}
	}

	return res
}

// ValidateAll validates every source and merges the results.
func ValidateAll(sources []Source) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	for _, s := range sources {
		res.Merge(*Validate(s.Definition))
	}

	return res
}
