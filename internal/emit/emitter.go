// Package emit serializes resolved v4 instances, the run manifest, and
// the re-emitted mapping definitions into logical output files. Physical
// writing is a separate step so the core stays free of side effects.
package emit

import (
	"encoding/json"
	"fmt"
	"strings"

	"graph-migrator/internal/manifest"
	"graph-migrator/internal/mapping"
	"graph-migrator/internal/v4"
)

// OutputFile is one logical write target.
type OutputFile struct {
	// Filename relative to the output directory.
	Filename string
	// Content is the serialized document.
	Content []byte
}

// Instances serializes one JSON document per resolved instance. The
// filename is the v4 identifier, which is deterministic, so re-runs
// overwrite rather than accumulate.
func Instances(resolved []*v4.ResourceInstance) ([]OutputFile, error) {
	files := make([]OutputFile, 0, len(resolved))

	for _, inst := range resolved {
		data, err := json.MarshalIndent(inst, "", "    ")
		if err != nil {
			return nil, fmt.Errorf("serializing instance %s: %w", inst.V3ID, err)
		}

		files = append(files, OutputFile{
			Filename: inst.ID + ".json",
			Content:  data,
		})
	}

	return files, nil
}

// Manifest serializes the run report.
func Manifest(rep manifest.Report) (OutputFile, error) {
	data, err := json.MarshalIndent(rep, "", "    ")
	if err != nil {
		return OutputFile{}, fmt.Errorf("serializing manifest: %w", err)
	}

	return OutputFile{Filename: "manifest.json", Content: data}, nil
}

// Mappings re-emits the loaded mapping definitions in the importer's
// .mapping format, alongside the migrated data.
func Mappings(defs []*mapping.Definition) ([]OutputFile, error) {
	files := make([]OutputFile, 0, len(defs))

	for _, def := range defs {
		data, err := mapping.Marshal(def)
		if err != nil {
			return nil, fmt.Errorf("serializing mapping %q: %w", def.V3Name, err)
		}

		files = append(files, OutputFile{
			Filename: slug(def.V3Name) + ".mapping",
			Content:  data,
		})
	}

	return files, nil
}

// slug turns a model name into a filename-safe stem.
func slug(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}
