package emit

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"

	"graph-migrator/internal/common"
	"graph-migrator/internal/v4"
)

// resourceIDColumn is always the first CSV column, as the v4 importer
// requires.
const resourceIDColumn = "ResourceID"

// ModelCSV produces one CSV per v4 model, the flat import format: one row
// per (node, attribute) record, ResourceID first, remaining columns the
// sorted union of the model's populated fields. Single-attribute nodes
// use the node type as column name; multi-attribute nodes qualify it with
// the attribute key.
func ModelCSV(resolved []*v4.ResourceInstance) ([]OutputFile, error) {
	type record map[string]string

	byModel := make(map[string][]record)
	columns := make(map[string]map[string]bool)

	for _, inst := range resolved {
		if columns[inst.Model] == nil {
			columns[inst.Model] = make(map[string]bool)
		}

		for _, node := range inst.Nodes {
			for _, key := range common.SortedKeys(node.Attributes) {
				col := node.Type
				if len(node.Attributes) > 1 {
					col = node.Type + "/" + key
				}

				columns[inst.Model][col] = true

				byModel[inst.Model] = append(byModel[inst.Model], record{
					resourceIDColumn: inst.ID,
					col:              node.Attributes[key],
				})
			}
		}
	}

	models := make([]string, 0, len(byModel))
	for model := range byModel {
		models = append(models, model)
	}

	sort.Strings(models)

	files := make([]OutputFile, 0, len(models))

	for _, model := range models {
		header := append([]string{resourceIDColumn}, common.SortedKeys(columns[model])...)

		var buf bytes.Buffer

		w := csv.NewWriter(&buf)
		if err := w.Write(header); err != nil {
			return nil, fmt.Errorf("writing CSV header for %q: %w", model, err)
		}

		for _, rec := range byModel[model] {
			row := make([]string, len(header))
			for i, col := range header {
				row[i] = rec[col]
			}

			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("writing CSV row for %q: %w", model, err)
			}
		}

		w.Flush()

		if err := w.Error(); err != nil {
			return nil, fmt.Errorf("flushing CSV for %q: %w", model, err)
		}

		files = append(files, OutputFile{
			Filename: slug(model) + ".csv",
			Content:  buf.Bytes(),
		})
	}

	return files, nil
}
