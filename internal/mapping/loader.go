package mapping

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"graph-migrator/internal/match"
)

// Source is one parsed mapping definition together with where it came
// from, so conflicts can name both sides.
type Source struct {
	// Name identifies the source (usually the file path).
	Name string
	// Definition is the parsed mapping definition.
	Definition *Definition
}

// LoadResult bundles everything a mapping directory contributes.
type LoadResult struct {
	Sources  []Source
	Concepts *ConceptIndex
}

// Parse parses a mapping definition from JSON or YAML data. JSON is the
// v4 importer's native .mapping format; YAML is accepted for hand-written
// definitions.
func Parse(data []byte) (*Definition, error) {
	var def Definition

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("failed to parse mapping JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
		}
	}

	if def.Aliases == nil {
		def.Aliases = map[string]string{}
	}

	def.index()

	return &def, nil
}

// LoadFile loads and parses one mapping definition file.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	return Parse(data)
}

// LoadDir loads every mapping source in a directory, already extracted
// from its archives. Recognized entries:
//
//   - *.mapping, *.json, *.yaml, *.yml: mapping definitions
//   - *_concepts.json: concept documents
//   - graphdiffs/*.json: graphdiff documents, matched to their owning
//     definition by fuzzy filename resolution
func LoadDir(dir string) (*LoadResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read mappings directory %s: %w", dir, err)
	}

	result := &LoadResult{Concepts: NewConceptIndex()}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		switch {
		case strings.HasSuffix(entry.Name(), "_concepts.json"):
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read concept document %s: %w", path, err)
			}

			if err := result.Concepts.MergeConceptDocument(data); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}

		case hasMappingExt(entry.Name()):
			def, err := LoadFile(path)
			if err != nil {
				return nil, err
			}

			result.Sources = append(result.Sources, Source{Name: path, Definition: def})
		}
	}

	if err := mergeGraphdiffs(filepath.Join(dir, "graphdiffs"), result.Sources); err != nil {
		return nil, err
	}

	return result, nil
}

// hasMappingExt reports whether the filename looks like a mapping definition.
func hasMappingExt(name string) bool {
	switch filepath.Ext(name) {
	case ".mapping", ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// mergeGraphdiffs folds graphdiff documents into their owning definitions.
// The directory is optional. Each file is matched to the definition whose
// model name best matches the filename, the same way the original tooling
// located its graphdiff per resource model.
func mergeGraphdiffs(dir string, sources []Source) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return fmt.Errorf("failed to read graphdiffs directory %s: %w", dir, err)
	}

	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Definition.V3Name
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		stem := strings.TrimSuffix(entry.Name(), ".json")

		best, ok := match.Best(stem, names)
		if !ok {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read graphdiff %s: %w", path, err)
		}

		for i := range sources {
			if sources[i].Definition.V3Name == best.Value {
				if err := MergeGraphdiff(sources[i].Definition, data); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				break
			}
		}
	}

	return nil
}

// MergeGraphdiff merges one graphdiff document into a definition's alias
// table. The document maps v3 node-type identifiers to renamed v4 node
// names, or null when the rename tooling had no answer. Renames are
// resolved against the definition's node-mapping names fuzzily; explicit
// aliases already present win.
func MergeGraphdiff(def *Definition, raw []byte) error {
	var diff map[string]*string
	if err := json.Unmarshal(raw, &diff); err != nil {
		return fmt.Errorf("failed to parse graphdiff: %w", err)
	}

	names := def.NodeNames()

	for oldType, renamed := range diff {
		if renamed == nil || *renamed == "" {
			continue
		}

		if _, ok := def.Aliases[oldType]; ok {
			continue
		}

		if best, ok := match.Best(*renamed, names); ok {
			def.Aliases[oldType] = best.Value
		}
	}

	return nil
}

// Marshal serializes a definition back to the JSON .mapping format, as
// written into the output set for the v4 importer.
func Marshal(def *Definition) ([]byte, error) {
	return json.MarshalIndent(def, "", "    ")
}
