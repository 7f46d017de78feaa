package capacity

// Filter is the per-entity selection state applied during computation. An
// empty slice means "nothing selected" and short-circuits to the empty
// table; it never means "everything".
type Filter struct {
	SelectedProjects []string
	SelectedTeams    []string
	SelectedStates   []string
}

// Table is the dense per-day capacity breakdown. All series are aligned
// with Dates. Team series are raw percentages and never normalized; the
// normalized project series and the per-team-average organization series
// divide the raw values by the team count, expressing load as "average
// concurrent team-capacity fraction".
type Table struct {
	Dates []string

	TeamLoad    map[string][]float64
	ProjectLoad map[string][]float64

	ProjectLoadNormalized map[string][]float64

	OrgTotal      []float64
	OrgPerTeamAvg []float64
}

// EmptyTable is the canonical "nothing visible" result: zero-length date
// axis and empty series maps.
func EmptyTable() *Table {
	return &Table{
		Dates:                 []string{},
		TeamLoad:              map[string][]float64{},
		ProjectLoad:           map[string][]float64{},
		ProjectLoadNormalized: map[string][]float64{},
		OrgTotal:              []float64{},
		OrgPerTeamAvg:         []float64{},
	}
}

// Clone returns a deep copy, so callers can hold results while the
// calculator keeps mutating its cached tables in place.
func (t *Table) Clone() *Table {
	cp := &Table{
		Dates:                 append([]string(nil), t.Dates...),
		TeamLoad:              cloneSeries(t.TeamLoad),
		ProjectLoad:           cloneSeries(t.ProjectLoad),
		ProjectLoadNormalized: cloneSeries(t.ProjectLoadNormalized),
		OrgTotal:              append([]float64(nil), t.OrgTotal...),
		OrgPerTeamAvg:         append([]float64(nil), t.OrgPerTeamAvg...),
	}
	return cp
}

// normalize rebuilds the derived series from the raw ones. teamCount falls
// back to 1 to avoid division by zero.
func (t *Table) normalize(teamCount int) {
	if teamCount < 1 {
		teamCount = 1
	}
	div := float64(teamCount)

	t.ProjectLoadNormalized = make(map[string][]float64, len(t.ProjectLoad))
	for id, series := range t.ProjectLoad {
		norm := make([]float64, len(series))
		for i, v := range series {
			norm[i] = v / div
		}
		t.ProjectLoadNormalized[id] = norm
	}

	t.OrgPerTeamAvg = make([]float64, len(t.OrgTotal))
	for i, v := range t.OrgTotal {
		t.OrgPerTeamAvg[i] = v / div
	}
}

func cloneSeries(in map[string][]float64) map[string][]float64 {
	out := make(map[string][]float64, len(in))
	for id, series := range in {
		out[id] = append([]float64(nil), series...)
	}
	return out
}
