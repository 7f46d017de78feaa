// Package contract holds the DTO types crossing the service boundary.
package contract

// ScenarioInfo is the scenario metadata consumed by picker UIs.
type ScenarioInfo struct {
	ID            string
	Name          string
	OverrideCount int
	Dirty         bool
	Readonly      bool
	Active        bool
}

// CapacityRequest selects what the capacity computation makes visible.
// Empty slices mean "nothing selected"; the caller decides whether to
// default to everything before building the request.
type CapacityRequest struct {
	SelectedProjects []string
	SelectedTeams    []string
	SelectedStates   []string
	Mode             string
}

// ImportResult summarizes a dataset import.
type ImportResult struct {
	ProjectCount int
	TeamCount    int
	FeatureCount int
}
