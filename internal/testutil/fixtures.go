package testutil

import (
	"time"

	"github.com/planscope/planscope/internal/baseline"
	"github.com/planscope/planscope/internal/domain"
)

// MustDate parses YYYY-MM-DD and panics on failure; for test fixtures only.
func MustDate(s string) *time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return domain.DatePtr(d)
}

// NewFeature builds a dated feature allocated to a single team.
func NewFeature(id, projectID, teamID string, load float64, start, end string) *domain.Feature {
	return &domain.Feature{
		ID:        id,
		Kind:      domain.KindFeature,
		Name:      id,
		Start:     MustDate(start),
		End:       MustDate(end),
		ProjectID: projectID,
		Status:    "planned",
		Allocations: []domain.Allocation{
			{TeamID: teamID, Load: load},
		},
	}
}

// NewEpic builds a dated epic allocated to a single team.
func NewEpic(id, projectID, teamID string, load float64, start, end string) *domain.Feature {
	f := NewFeature(id, projectID, teamID, load, start, end)
	f.Kind = domain.KindEpic
	return f
}

// NewChild builds a feature nested under the given epic.
func NewChild(id, epicID, projectID, teamID string, load float64, start, end string) *domain.Feature {
	f := NewFeature(id, projectID, teamID, load, start, end)
	f.ParentEpic = epicID
	return f
}

// SmallDataSet builds a dataset with one project, two teams, one epic and
// one nested feature, covering January 2025.
func SmallDataSet() baseline.DataSet {
	return baseline.DataSet{
		Projects: []*domain.Project{
			{ID: "p1", Name: "Atlas"},
		},
		Teams: []*domain.Team{
			{ID: "t1", Name: "Core"},
			{ID: "t2", Name: "Platform"},
		},
		Features: []*domain.Feature{
			NewEpic("e1", "p1", "t1", 30, "2025-01-01", "2025-01-31"),
			NewChild("c1", "e1", "p1", "t1", 50, "2025-01-01", "2025-01-10"),
		},
	}
}
