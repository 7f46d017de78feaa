package domain

import "time"

// DateOverride is the per-feature override record a scenario carries. Only
// dates are overridable; a nil side means "not overridden".
type DateOverride struct {
	Start *time.Time
	End   *time.Time
}

// Clone returns an independent copy.
func (o DateOverride) Clone() DateOverride {
	return DateOverride{Start: CloneDate(o.Start), End: CloneDate(o.End)}
}

// FilterSnapshot captures the selection state a scenario was created under.
// An empty slice means "nothing selected", never "everything".
type FilterSnapshot struct {
	SelectedProjects []string
	SelectedTeams    []string
	SelectedStates   []string
}

// Clone returns a deep copy.
func (f FilterSnapshot) Clone() FilterSnapshot {
	return FilterSnapshot{
		SelectedProjects: cloneStrings(f.SelectedProjects),
		SelectedTeams:    cloneStrings(f.SelectedTeams),
		SelectedStates:   cloneStrings(f.SelectedStates),
	}
}

// ViewSnapshot captures the timeline viewport a scenario was created under.
type ViewSnapshot struct {
	From *time.Time
	To   *time.Time
	Zoom string
}

// Clone returns a deep copy.
func (v ViewSnapshot) Clone() ViewSnapshot {
	return ViewSnapshot{From: CloneDate(v.From), To: CloneDate(v.To), Zoom: v.Zoom}
}

// Scenario is a named, editable overlay of date overrides on top of the
// baseline. The baseline itself is not a Scenario value: it is implicit,
// readonly, and has no entry in the managed collection.
type Scenario struct {
	ID        string
	Name      string
	Overrides map[string]DateOverride
	Filters   FilterSnapshot
	View      ViewSnapshot
	Dirty     bool
}

// Clone returns a deep, independent copy.
func (s *Scenario) Clone() *Scenario {
	cp := &Scenario{
		ID:        s.ID,
		Name:      s.Name,
		Overrides: make(map[string]DateOverride, len(s.Overrides)),
		Filters:   s.Filters.Clone(),
		View:      s.View.Clone(),
		Dirty:     s.Dirty,
	}
	for id, o := range s.Overrides {
		cp.Overrides[id] = o.Clone()
	}
	return cp
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
