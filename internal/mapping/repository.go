package mapping

import (
	"fmt"
	"sort"

	"graph-migrator/internal/match"
)

// ConflictError reports two mapping sources declaring the same v3 model.
// It is fatal: conflicts are never resolved by source precedence.
type ConflictError struct {
	// V3Name is the contested v3 model name.
	V3Name string
	// ExistingSource and ConflictingSource identify the two declarations.
	ExistingSource    string
	ConflictingSource string
	// ExistingTarget and ConflictingTarget are the two declared v4 names.
	ExistingTarget    string
	ConflictingTarget string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	if e.ExistingTarget != e.ConflictingTarget {
		return fmt.Sprintf(
			"mapping conflict for v3 model %q: %s targets %q but %s targets %q",
			e.V3Name, e.ExistingSource, e.ExistingTarget,
			e.ConflictingSource, e.ConflictingTarget)
	}

	return fmt.Sprintf(
		"mapping conflict for v3 model %q: declared by both %s and %s",
		e.V3Name, e.ExistingSource, e.ConflictingSource)
}

// Repository indexes mapping definitions by v3 model name and resolves
// raw v3 identifiers against them. Constructed once per run and passed by
// reference; there is no ambient lookup state.
type Repository struct {
	defs     map[string]*Definition
	sources  map[string]string
	norm     map[string]string
	concepts *ConceptIndex
}

// NewRepository builds a repository from loaded sources, failing on the
// first conflict.
func NewRepository(sources []Source, concepts *ConceptIndex) (*Repository, error) {
	if concepts == nil {
		concepts = NewConceptIndex()
	}

	r := &Repository{
		defs:     make(map[string]*Definition, len(sources)),
		sources:  make(map[string]string, len(sources)),
		norm:     make(map[string]string, len(sources)),
		concepts: concepts,
	}

	for _, s := range sources {
		name := s.Definition.V3Name

		if existing, ok := r.defs[name]; ok {
			return nil, &ConflictError{
				V3Name:            name,
				ExistingSource:    r.sources[name],
				ConflictingSource: s.Name,
				ExistingTarget:    existing.V4Name,
				ConflictingTarget: s.Definition.V4Name,
			}
		}

		r.defs[name] = s.Definition
		r.sources[name] = s.Name
		r.norm[match.NormalizeForCompare(name)] = name
	}

	return r, nil
}

// Lookup returns the definition registered under the exact v3 model name.
func (r *Repository) Lookup(v3Name string) (*Definition, bool) {
	def, ok := r.defs[v3Name]
	return def, ok
}

// Resolve maps a raw v3 model identifier (e.g. "HERITAGE_RESOURCE.E18")
// to its definition. An exact or normalized hit always wins; otherwise
// the normalized name is matched fuzzily against the registered models.
func (r *Repository) Resolve(rawName string) (*Definition, bool) {
	if def, ok := r.defs[rawName]; ok {
		return def, true
	}

	normalized := match.NormalizeModelName(rawName)
	if name, ok := r.norm[match.NormalizeForCompare(normalized)]; ok {
		return r.defs[name], true
	}

	if best, ok := match.Best(normalized, r.Models()); ok {
		return r.defs[best.Value], true
	}

	return nil, false
}

// Models returns the registered v3 model names in sorted order.
func (r *Repository) Models() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Definitions returns all registered definitions, ordered by model name.
func (r *Repository) Definitions() []*Definition {
	defs := make([]*Definition, 0, len(r.defs))
	for _, name := range r.Models() {
		defs = append(defs, r.defs[name])
	}

	return defs
}

// Concepts returns the shared concept index.
func (r *Repository) Concepts() *ConceptIndex {
	return r.concepts
}

// Len returns the number of registered definitions.
func (r *Repository) Len() int {
	return len(r.defs)
}
