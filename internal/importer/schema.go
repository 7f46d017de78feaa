package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// DataSetSchema is the top-level JSON structure for a roadmap dataset.
type DataSetSchema struct {
	Projects []ProjectImport `json:"projects"`
	Teams    []TeamImport    `json:"teams"`
	Features []FeatureImport `json:"features"`
}

// ProjectImport defines one project in the import file.
type ProjectImport struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// TeamImport defines one team in the import file.
type TeamImport struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// FeatureImport defines one roadmap item in the import file. Dates are ISO
// YYYY-MM-DD strings, inclusive, day granularity.
type FeatureImport struct {
	ID         string           `json:"id"`
	Kind       string           `json:"kind"`
	Name       string           `json:"name"`
	Start      *string          `json:"start,omitempty"`
	End        *string          `json:"end,omitempty"`
	Project    string           `json:"project"`
	ParentEpic *string          `json:"parent_epic,omitempty"`
	Status     string           `json:"status"`
	Capacity   []CapacityImport `json:"capacity,omitempty"`
}

// CapacityImport is one (team, load) allocation entry.
type CapacityImport struct {
	Team     string  `json:"team"`
	Capacity float64 `json:"capacity"`
}

// LoadDataSetSchema reads and parses a dataset JSON file.
func LoadDataSetSchema(path string) (*DataSetSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema DataSetSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing dataset file: %w", err)
	}
	return &schema, nil
}
