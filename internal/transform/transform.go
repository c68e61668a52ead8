// Package transform provides the datatype value fixers applied to
// attribute values during transformation. Each fixer normalizes one v3
// datatype into the form the v4 importer expects; the tags match the v4
// datatype names carried by node mappings.
package transform

import (
	"fmt"
	"strings"
	"time"
)

// ConceptLookup resolves a concept prefLabel to its UUID.
type ConceptLookup interface {
	UUID(label string) (string, bool)
}

// Context carries run-scoped state a fixer may need.
type Context struct {
	// Concepts resolves prefLabels for concept-valued datatypes.
	// May be nil when no concept documents were supplied.
	Concepts ConceptLookup
}

// Func normalizes one attribute value. A returned error means the value
// could not be made importable; the caller decides whether that is a
// warning or an instance failure.
type Func func(value string, ctx Context) (string, error)

// Registry holds the fixers keyed by datatype tag.
type Registry struct {
	fixers map[string]Func
}

// NewRegistry creates a registry with every built-in fixer installed.
func NewRegistry() *Registry {
	r := &Registry{fixers: make(map[string]Func)}

	r.Register("string", fixString)
	r.Register("number", passthrough)
	r.Register("date", fixDate)
	r.Register("geojson-feature-collection", passthrough)
	r.Register("concept", fixConcept)
	r.Register("domain-value", fixConcept)
	r.Register("concept-list", fixList)
	r.Register("domain-value-list", fixList)
	r.Register("file-list", fixList)

	return r
}

// Register installs or replaces a fixer for a datatype tag.
func (r *Registry) Register(tag string, fn Func) {
	r.fixers[tag] = fn
}

// Has returns true if a fixer exists for the tag.
func (r *Registry) Has(tag string) bool {
	_, ok := r.fixers[tag]
	return ok
}

// Apply runs the fixer for the tag. An empty tag is a no-op; an unknown
// tag is an error so silently unfixed data cannot slip through.
func (r *Registry) Apply(tag, value string, ctx Context) (string, error) {
	if tag == "" {
		return value, nil
	}

	fn, ok := r.fixers[tag]
	if !ok {
		return "", fmt.Errorf("unknown datatype %q", tag)
	}

	return fn(value, ctx)
}

func passthrough(value string, _ Context) (string, error) {
	return value, nil
}

// fixString triple-quotes strings so commas and markup survive the
// importer's CSV handling.
func fixString(value string, _ Context) (string, error) {
	return `"""` + value + `"""`, nil
}

// v3DateLayout is the timestamp form the v3 exporter writes.
const v3DateLayout = "2006-01-02T15:04:05"

// fixDate reduces a v3 timestamp to the YYYY-MM-DD form v4 requires.
// Values already in date-only form are accepted as-is.
func fixDate(value string, _ Context) (string, error) {
	if t, err := time.Parse(v3DateLayout, value); err == nil {
		return t.Format("2006-01-02"), nil
	}

	if _, err := time.Parse("2006-01-02", value); err == nil {
		return value, nil
	}

	return "", fmt.Errorf("unparseable date %q", value)
}

// fixConcept resolves a prefLabel to its UUID. Without a concept index
// the label passes through, matching the original importer's tolerance
// for unique labels.
func fixConcept(value string, ctx Context) (string, error) {
	if ctx.Concepts == nil {
		return value, nil
	}

	uuid, ok := ctx.Concepts.UUID(value)
	if !ok {
		return "", fmt.Errorf("concept lookup miss for label %q", value)
	}

	return uuid, nil
}

// fixList single-quotes multi-valued lists so the importer keeps them as
// one field.
func fixList(value string, _ Context) (string, error) {
	if len(strings.Fields(value)) > 1 {
		return "'" + value + "'", nil
	}

	return value, nil
}
