package importer

import (
	"time"

	"github.com/planscope/planscope/internal/baseline"
	"github.com/planscope/planscope/internal/domain"
)

// Convert turns a validated dataset schema into domain values. Call
// ValidateDataSet first; Convert assumes well-formed input and drops any
// date that fails to parse.
func Convert(schema *DataSetSchema) baseline.DataSet {
	data := baseline.DataSet{
		Projects: make([]*domain.Project, 0, len(schema.Projects)),
		Teams:    make([]*domain.Team, 0, len(schema.Teams)),
		Features: make([]*domain.Feature, 0, len(schema.Features)),
	}

	for _, p := range schema.Projects {
		data.Projects = append(data.Projects, &domain.Project{
			ID:    p.ID,
			Name:  p.Name,
			Color: p.Color,
		})
	}

	for _, t := range schema.Teams {
		data.Teams = append(data.Teams, &domain.Team{
			ID:    t.ID,
			Name:  t.Name,
			Color: t.Color,
		})
	}

	for _, f := range schema.Features {
		feature := &domain.Feature{
			ID:        f.ID,
			Kind:      domain.FeatureKind(f.Kind),
			Name:      f.Name,
			ProjectID: f.Project,
			Status:    f.Status,
			Start:     parseOptionalDate(f.Start),
			End:       parseOptionalDate(f.End),
		}
		if f.ParentEpic != nil {
			feature.ParentEpic = *f.ParentEpic
		}
		for _, c := range f.Capacity {
			feature.Allocations = append(feature.Allocations, domain.Allocation{
				TeamID: c.Team,
				Load:   c.Capacity,
			})
		}
		data.Features = append(data.Features, feature)
	}

	return data
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := domain.ParseDate(*s)
	if err != nil {
		return nil
	}
	return domain.DatePtr(t)
}
