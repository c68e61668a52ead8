package engine

import (
	"fmt"

	"graph-migrator/internal/manifest"
	"graph-migrator/internal/mapping"
	"graph-migrator/internal/v3"
)

// UnmappedModelError reports an explicitly requested model with no
// mapping definition. Unlike the default-all case, an explicit request
// for an unmapped model is a hard failure.
type UnmappedModelError struct {
	// Model is the requested model name as given.
	Model string
}

// Error implements the error interface.
func (e *UnmappedModelError) Error() string {
	return fmt.Sprintf("requested model %q has no mapping definition", e.Model)
}

// Selected pairs an instance with the definition that will transform it.
type Selected struct {
	Instance   *v3.ResourceInstance
	Definition *mapping.Definition
}

// Select narrows the loaded instances to the processing set.
//
// With no requested models, every instance whose model resolves in the
// repository is selected; the rest are recorded skipped-no-mapping in the
// manifest. That is expected for partially covered migrations, not an error.
//
// With requested models, only instances of those models are selected,
// and a requested model that does not resolve fails the run.
func Select(
	instances []*v3.ResourceInstance,
	requested []string,
	repo *mapping.Repository,
	man *manifest.Run,
) ([]Selected, error) {
	var requestedDefs map[*mapping.Definition]bool

	if len(requested) > 0 {
		requestedDefs = make(map[*mapping.Definition]bool, len(requested))

		for _, name := range requested {
			def, ok := repo.Resolve(name)
			if !ok {
				return nil, &UnmappedModelError{Model: name}
			}

			requestedDefs[def] = true
		}
	}

	var selected []Selected

	for _, inst := range instances {
		def, ok := repo.Resolve(inst.Model)
		if !ok {
			if requestedDefs == nil {
				man.Add(manifest.Outcome{
					V3ID:   inst.ID,
					Model:  inst.Model,
					Status: manifest.StatusSkipped,
					Reason: fmt.Sprintf("no mapping definition for model %q", inst.Model),
				})
			}

			continue
		}

		if requestedDefs != nil && !requestedDefs[def] {
			continue
		}

		selected = append(selected, Selected{Instance: inst, Definition: def})
	}

	return selected, nil
}
