package repository

import (
	"context"
	"testing"

	"github.com/planscope/planscope/internal/baseline"
	"github.com/planscope/planscope/internal/domain"
	"github.com/planscope/planscope/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetReplaceAndLoad(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteDatasetRepo(database)
	ctx := context.Background()

	original := baseline.DataSet{
		Projects: []*domain.Project{{ID: "p1", Name: "Atlas", Color: "#ff0000"}},
		Teams: []*domain.Team{
			{ID: "t1", Name: "Core"},
			{ID: "t2", Name: "Platform"},
		},
		Features: []*domain.Feature{
			testutil.NewEpic("e1", "p1", "t1", 30, "2025-01-01", "2025-03-31"),
			testutil.NewChild("c1", "e1", "p1", "t1", 50, "2025-01-01", "2025-01-20"),
			{ID: "f2", Kind: domain.KindFeature, Name: "f2", ProjectID: "p1", Status: "planned"},
		},
	}
	require.NoError(t, repo.Replace(ctx, original))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)

	require.Len(t, loaded.Projects, 1)
	assert.Equal(t, "#ff0000", loaded.Projects[0].Color)
	require.Len(t, loaded.Teams, 2)
	assert.Equal(t, "Core", loaded.Teams[0].Name)

	require.Len(t, loaded.Features, 3)
	assert.Equal(t, "e1", loaded.Features[0].ID, "stored order preserved")
	assert.Equal(t, domain.KindEpic, loaded.Features[0].Kind)
	assert.True(t, domain.DateEqual(testutil.MustDate("2025-03-31"), loaded.Features[0].End))

	child := loaded.Features[1]
	assert.Equal(t, "e1", child.ParentEpic)
	require.Len(t, child.Allocations, 1)
	assert.Equal(t, 50.0, child.Allocations[0].Load)

	undated := loaded.Features[2]
	assert.Nil(t, undated.Start)
	assert.Nil(t, undated.End)
	assert.Empty(t, undated.Allocations)
}

func TestDatasetReplaceIsDestructive(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteDatasetRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Replace(ctx, baseline.DataSet{
		Projects: []*domain.Project{{ID: "p1", Name: "Old"}},
		Teams:    []*domain.Team{{ID: "t1", Name: "Old"}},
		Features: []*domain.Feature{testutil.NewFeature("f1", "p1", "t1", 10, "2025-01-01", "2025-01-02")},
	}))
	require.NoError(t, repo.Replace(ctx, baseline.DataSet{
		Projects: []*domain.Project{{ID: "p2", Name: "New"}},
		Teams:    []*domain.Team{{ID: "t2", Name: "New"}},
		Features: []*domain.Feature{testutil.NewFeature("f2", "p2", "t2", 10, "2025-01-01", "2025-01-02")},
	}))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Projects, 1)
	assert.Equal(t, "p2", loaded.Projects[0].ID)
	require.Len(t, loaded.Features, 1)
	assert.Equal(t, "f2", loaded.Features[0].ID)
}

func TestDatasetLoadEmpty(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteDatasetRepo(database)

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded.Projects)
	assert.Empty(t, loaded.Teams)
	assert.Empty(t, loaded.Features)
}
