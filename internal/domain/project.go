package domain

// Project is an organizational container for features. Baseline copies are
// immutable; Selected only matters on working copies used to seed filters.
type Project struct {
	ID       string
	Name     string
	Color    string
	Selected bool
}

// Clone returns an independent copy.
func (p *Project) Clone() *Project {
	cp := *p
	return &cp
}

// Team is a delivery team that features allocate capacity against.
type Team struct {
	ID       string
	Name     string
	Color    string
	Selected bool
}

// Clone returns an independent copy.
func (t *Team) Clone() *Team {
	cp := *t
	return &cp
}
