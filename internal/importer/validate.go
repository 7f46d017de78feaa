package importer

import (
	"fmt"
	"time"

	"github.com/planscope/planscope/internal/domain"
)

// ValidateDataSet checks the dataset for errors before conversion. Returns
// a slice of all validation errors found.
//
// Dates are validated strictly: a malformed date string is a hard error at
// ingestion time, never a silently skipped feature. A capacity entry
// referencing an unknown team is tolerated, matching the engine's silent
// per-team exclusion for stale team references.
func ValidateDataSet(schema *DataSetSchema) []error {
	var errs []error

	projectIDs := make(map[string]bool)
	for i, p := range schema.Projects {
		prefix := fmt.Sprintf("projects[%d]", i)
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if projectIDs[p.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, p.ID))
		} else {
			projectIDs[p.ID] = true
		}
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
	}

	teamIDs := make(map[string]bool)
	for i, t := range schema.Teams {
		prefix := fmt.Sprintf("teams[%d]", i)
		if t.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if teamIDs[t.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, t.ID))
		} else {
			teamIDs[t.ID] = true
		}
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
	}

	featureIDs := make(map[string]bool)
	epicIDs := make(map[string]bool)
	for _, f := range schema.Features {
		if f.ID != "" && f.Kind == string(domain.KindEpic) {
			epicIDs[f.ID] = true
		}
	}

	for i, f := range schema.Features {
		prefix := fmt.Sprintf("features[%d]", i)

		if f.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if featureIDs[f.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, f.ID))
		} else {
			featureIDs[f.ID] = true
		}

		if f.Kind == "" {
			errs = append(errs, fmt.Errorf("%s.kind is required", prefix))
		} else if !domain.ValidFeatureKinds[f.Kind] {
			errs = append(errs, fmt.Errorf("%s.kind: invalid value %q", prefix, f.Kind))
		}

		if f.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}

		if f.Project == "" {
			errs = append(errs, fmt.Errorf("%s.project is required", prefix))
		} else if !projectIDs[f.Project] {
			errs = append(errs, fmt.Errorf("%s.project: id %q not found in projects", prefix, f.Project))
		}

		if f.ParentEpic != nil && *f.ParentEpic != "" {
			if f.Kind == string(domain.KindEpic) {
				errs = append(errs, fmt.Errorf("%s.parent_epic: an epic cannot have a parent epic", prefix))
			} else if !epicIDs[*f.ParentEpic] {
				errs = append(errs, fmt.Errorf("%s.parent_epic: id %q not found among epics", prefix, *f.ParentEpic))
			}
		}

		start := validateOptionalDate(prefix+".start", f.Start, &errs)
		end := validateOptionalDate(prefix+".end", f.End, &errs)
		if start != nil && end != nil && end.Before(*start) {
			errs = append(errs, fmt.Errorf("%s: end %q is before start %q", prefix, *f.End, *f.Start))
		}

		for j, c := range f.Capacity {
			cPrefix := fmt.Sprintf("%s.capacity[%d]", prefix, j)
			if c.Team == "" {
				errs = append(errs, fmt.Errorf("%s.team is required", cPrefix))
			}
			if c.Capacity < 0 {
				errs = append(errs, fmt.Errorf("%s.capacity must not be negative", cPrefix))
			}
		}
	}

	return errs
}

func validateOptionalDate(field string, s *string, errs *[]error) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := domain.ParseDate(*s)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, *s))
		return nil
	}
	return &t
}
