package formatter

import (
	"strings"
	"testing"

	"github.com/planscope/planscope/internal/capacity"
	"github.com/planscope/planscope/internal/contract"
	"github.com/planscope/planscope/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	SetColorEnabled(false)
	m.Run()
}

func TestRenderTableAlignment(t *testing.T) {
	out := RenderTable(
		[]string{"NAME", "LOAD"},
		[][]string{
			{"alpha", "5%"},
			{"b", "120%"},
		},
		[]Align{AlignLeft, AlignRight},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4, "header, separator, two rows")
	assert.Equal(t, "NAME   LOAD", lines[0])
	assert.Equal(t, "alpha    5%", lines[2])
	assert.Equal(t, "b      120%", lines[3])
}

func TestRenderTableEmpty(t *testing.T) {
	assert.Equal(t, "", RenderTable(nil, nil, nil))

	out := RenderTable([]string{"A"}, nil, nil)
	assert.Contains(t, out, "A")
}

func TestRenderTableShortRows(t *testing.T) {
	out := RenderTable([]string{"A", "B"}, [][]string{{"x"}}, nil)
	assert.Contains(t, out, "x")
}

func TestFormatScenarioList(t *testing.T) {
	out := FormatScenarioList([]contract.ScenarioInfo{
		{Name: "Baseline", Readonly: true, Active: true},
		{ID: "s1", Name: "Plan A", OverrideCount: 2, Dirty: true},
	})

	assert.Contains(t, out, "Baseline")
	assert.Contains(t, out, "readonly")
	assert.Contains(t, out, "Plan A")
	assert.Contains(t, out, "unsaved")
	assert.Contains(t, out, "▸")
}

func TestFormatCapacityTable(t *testing.T) {
	table := &capacity.Table{
		Dates:         []string{"2025-01-01", "2025-01-02"},
		TeamLoad:      map[string][]float64{"t1": {50, 120}},
		OrgTotal:      []float64{50, 120},
		OrgPerTeamAvg: []float64{25, 60},
	}
	out := FormatCapacityTable(table, []*domain.Team{{ID: "t1", Name: "Core"}, {ID: "t2", Name: "Platform"}})

	assert.Contains(t, out, "CORE")
	assert.Contains(t, out, "PLATFORM")
	assert.Contains(t, out, "2025-01-01")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "120%")
	assert.Contains(t, out, "0%", "teams without a series render as zero")
}

func TestFormatCapacityTableEmpty(t *testing.T) {
	out := FormatCapacityTable(capacity.EmptyTable(), nil)
	assert.Contains(t, out, "no capacity data")
}

func TestFormatFeatureList(t *testing.T) {
	start, _ := domain.ParseDate("2025-01-05")
	f := &domain.EffectiveFeature{
		Feature: domain.Feature{
			ID: "f1", Kind: domain.KindFeature, Name: "Checkout",
			ProjectID: "p1", Status: "planned",
			Start: domain.DatePtr(start),
		},
		ScenarioOverride: true,
		ChangedFields:    []domain.FieldName{domain.FieldStart},
		Dirty:            true,
	}
	out := FormatFeatureList([]*domain.EffectiveFeature{f})

	assert.Contains(t, out, "Checkout")
	assert.Contains(t, out, "2025-01-05")
	assert.Contains(t, out, "-", "missing end renders as a dash")
	assert.Contains(t, out, "start")
	assert.Contains(t, out, "*")
}
