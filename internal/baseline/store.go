// Package baseline holds the immutable snapshot of projects, teams and
// features that every scenario is diffed against. The store only ever hands
// out deep copies: mutating a returned value never affects the snapshot.
package baseline

import "github.com/planscope/planscope/internal/domain"

// DataSet is the full inbound payload from a data-loading collaborator.
type DataSet struct {
	Projects []*domain.Project
	Teams    []*domain.Team
	Features []*domain.Feature
}

// Store is the single source of truth for unmodified data. It performs no
// validation beyond structural copying; callers supply well-formed input.
type Store struct {
	projects []*domain.Project
	teams    []*domain.Team
	features []*domain.Feature
	rank     map[string]int // original feature order, for stable default ranking
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{rank: make(map[string]int)}
}

// Load replaces all three collections atomically and records the original
// feature order.
func (s *Store) Load(data DataSet) {
	s.projects = cloneProjects(data.Projects)
	s.teams = cloneTeams(data.Teams)
	s.features = cloneFeatures(data.Features)
	s.rank = make(map[string]int, len(data.Features))
	for i, f := range data.Features {
		s.rank[f.ID] = i
	}
}

// Projects returns fresh copies of all projects.
func (s *Store) Projects() []*domain.Project {
	return cloneProjects(s.projects)
}

// Teams returns fresh copies of all teams.
func (s *Store) Teams() []*domain.Team {
	return cloneTeams(s.teams)
}

// Features returns fresh copies of all features in original order.
func (s *Store) Features() []*domain.Feature {
	return cloneFeatures(s.features)
}

// FeatureByID returns a fresh copy of the feature with the given id, or nil.
func (s *Store) FeatureByID(id string) *domain.Feature {
	for _, f := range s.features {
		if f.ID == id {
			return f.Clone()
		}
	}
	return nil
}

// SetProjects replaces the project collection.
func (s *Store) SetProjects(projects []*domain.Project) {
	s.projects = cloneProjects(projects)
}

// SetTeams replaces the team collection.
func (s *Store) SetTeams(teams []*domain.Team) {
	s.teams = cloneTeams(teams)
}

// SetFeatures replaces the feature collection and re-records original order.
func (s *Store) SetFeatures(features []*domain.Feature) {
	s.features = cloneFeatures(features)
	s.rank = make(map[string]int, len(features))
	for i, f := range features {
		s.rank[f.ID] = i
	}
}

// FeatureRank returns the feature's position in the originally loaded order.
// Unknown ids rank last.
func (s *Store) FeatureRank(id string) int {
	if r, ok := s.rank[id]; ok {
		return r
	}
	return len(s.rank)
}

// Clear empties all state.
func (s *Store) Clear() {
	s.projects = nil
	s.teams = nil
	s.features = nil
	s.rank = make(map[string]int)
}

func cloneProjects(in []*domain.Project) []*domain.Project {
	out := make([]*domain.Project, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}

func cloneTeams(in []*domain.Team) []*domain.Team {
	out := make([]*domain.Team, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}

func cloneFeatures(in []*domain.Feature) []*domain.Feature {
	out := make([]*domain.Feature, len(in))
	for i, f := range in {
		out[i] = f.Clone()
	}
	return out
}
