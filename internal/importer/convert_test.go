package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/planscope/planscope/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	data := Convert(validSchema())

	require.Len(t, data.Projects, 1)
	require.Len(t, data.Teams, 1)
	require.Len(t, data.Features, 2)

	epic := data.Features[0]
	assert.Equal(t, domain.KindEpic, epic.Kind)
	assert.True(t, epic.IsEpic())
	require.NotNil(t, epic.Start)
	assert.Equal(t, "2025-01-01", domain.DateString(*epic.Start))

	child := data.Features[1]
	assert.Equal(t, "e1", child.ParentEpic)
	require.Len(t, child.Allocations, 1)
	assert.Equal(t, "t1", child.Allocations[0].TeamID)
	assert.Equal(t, 50.0, child.Allocations[0].Load)
}

func TestConvertMissingDates(t *testing.T) {
	schema := validSchema()
	schema.Features[1].Start = nil
	schema.Features[1].End = strPtr("")

	data := Convert(schema)
	assert.Nil(t, data.Features[1].Start)
	assert.Nil(t, data.Features[1].End)
	assert.False(t, data.Features[1].HasDates())
}

func TestLoadDataSetSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	payload := `{
		"projects": [{"id": "p1", "name": "Atlas"}],
		"teams": [{"id": "t1", "name": "Core"}],
		"features": [{
			"id": "f1", "kind": "feature", "name": "Checkout",
			"project": "p1", "status": "planned",
			"start": "2025-01-01", "end": "2025-01-20",
			"capacity": [{"team": "t1", "capacity": 50}]
		}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	schema, err := LoadDataSetSchema(path)
	require.NoError(t, err)
	assert.Len(t, schema.Features, 1)
	assert.Equal(t, "Checkout", schema.Features[0].Name)

	_, err = LoadDataSetSchema(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))
	_, err = LoadDataSetSchema(path)
	assert.Error(t, err)
}
