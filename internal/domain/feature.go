package domain

import "time"

// Allocation is one (team, load) entry in a feature's capacity list. Load is
// an organization-relative percentage of one team's capacity; it is not
// bounded to 100 and a feature may allocate to several teams at once.
type Allocation struct {
	TeamID string
	Load   float64
}

// Feature is a roadmap item: either an epic or a regular feature. Start and
// End are inclusive calendar days; either may be missing, in which case the
// feature is excluded from capacity computation.
type Feature struct {
	ID          string
	Kind        FeatureKind
	Name        string
	Start       *time.Time
	End         *time.Time
	ProjectID   string
	ParentEpic  string // set on features only
	Status      string
	Allocations []Allocation
}

// Clone returns a deep, independent copy.
func (f *Feature) Clone() *Feature {
	cp := *f
	cp.Start = CloneDate(f.Start)
	cp.End = CloneDate(f.End)
	if f.Allocations != nil {
		cp.Allocations = make([]Allocation, len(f.Allocations))
		copy(cp.Allocations, f.Allocations)
	}
	return &cp
}

// HasDates reports whether both start and end are present.
func (f *Feature) HasDates() bool {
	return f.Start != nil && f.End != nil
}

// CoversDay reports whether day falls inside the feature's inclusive span.
// A feature missing either date covers nothing.
func (f *Feature) CoversDay(day time.Time) bool {
	if !f.HasDates() {
		return false
	}
	d := Day(day)
	return !d.Before(Day(*f.Start)) && !d.After(Day(*f.End))
}

// IsEpic reports whether the feature is an epic.
func (f *Feature) IsEpic() bool {
	return f.Kind == KindEpic
}

// EffectiveFeature is a baseline feature with the active scenario's override
// applied. It is a derived value, never stored.
type EffectiveFeature struct {
	Feature

	// ScenarioOverride is true when the active scenario has an override
	// record for this feature, even if the override matches baseline.
	ScenarioOverride bool
	// ChangedFields lists the fields whose override value differs from
	// baseline (presence and inequality both required).
	ChangedFields []FieldName
	// Dirty is true when ChangedFields is non-empty.
	Dirty bool
}
