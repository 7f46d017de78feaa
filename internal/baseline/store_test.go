package baseline

import (
	"testing"
	"time"

	"github.com/planscope/planscope/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) *time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return domain.DatePtr(d)
}

func sampleData() DataSet {
	return DataSet{
		Projects: []*domain.Project{{ID: "p1", Name: "Atlas"}},
		Teams:    []*domain.Team{{ID: "t1", Name: "Core"}},
		Features: []*domain.Feature{
			{ID: "f1", Kind: domain.KindFeature, Name: "Login", ProjectID: "p1",
				Start: day("2025-01-01"), End: day("2025-01-10"),
				Allocations: []domain.Allocation{{TeamID: "t1", Load: 50}}},
			{ID: "f2", Kind: domain.KindFeature, Name: "Search", ProjectID: "p1"},
		},
	}
}

func TestStoreLoadCopiesInput(t *testing.T) {
	s := NewStore()
	data := sampleData()
	s.Load(data)

	// Mutating the input after load must not leak into the store.
	data.Projects[0].Name = "mutated"
	data.Features[0].Allocations[0].Load = 999

	require.Len(t, s.Projects(), 1)
	assert.Equal(t, "Atlas", s.Projects()[0].Name)
	assert.Equal(t, 50.0, s.FeatureByID("f1").Allocations[0].Load)
}

func TestStoreReturnsIndependentCopies(t *testing.T) {
	s := NewStore()
	s.Load(sampleData())

	f := s.FeatureByID("f1")
	require.NotNil(t, f)
	f.Name = "mutated"
	f.Start = day("2030-12-31")

	again := s.FeatureByID("f1")
	assert.Equal(t, "Login", again.Name)
	assert.True(t, domain.DateEqual(day("2025-01-01"), again.Start))
}

func TestStoreFeatureByIDUnknown(t *testing.T) {
	s := NewStore()
	s.Load(sampleData())
	assert.Nil(t, s.FeatureByID("nope"))
}

func TestStoreFeatureRank(t *testing.T) {
	s := NewStore()
	s.Load(sampleData())

	assert.Equal(t, 0, s.FeatureRank("f1"))
	assert.Equal(t, 1, s.FeatureRank("f2"))
	assert.Equal(t, 2, s.FeatureRank("unknown"), "unknown ids rank last")
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	s.Load(sampleData())
	s.Clear()

	assert.Empty(t, s.Projects())
	assert.Empty(t, s.Teams())
	assert.Empty(t, s.Features())
	assert.Equal(t, 0, s.FeatureRank("f1"))
}

func TestStoreSetFeaturesReranks(t *testing.T) {
	s := NewStore()
	s.Load(sampleData())

	s.SetFeatures([]*domain.Feature{
		{ID: "f2"},
		{ID: "f1"},
	})
	assert.Equal(t, 0, s.FeatureRank("f2"))
	assert.Equal(t, 1, s.FeatureRank("f1"))
}
