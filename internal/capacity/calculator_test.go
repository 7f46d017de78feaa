package capacity

import (
	"testing"

	"github.com/planscope/planscope/internal/domain"
	"github.com/planscope/planscope/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eff(f *domain.Feature) *domain.EffectiveFeature {
	return &domain.EffectiveFeature{Feature: *f}
}

func allFilter() Filter {
	return Filter{
		SelectedProjects: []string{"p1"},
		SelectedTeams:    []string{"t1", "t2"},
		SelectedStates:   []string{"planned"},
	}
}

func twoTeams() []*domain.Team {
	return []*domain.Team{{ID: "t1"}, {ID: "t2"}}
}

func oneProject() []*domain.Project {
	return []*domain.Project{{ID: "p1"}}
}

// januaryRequest: epic e1 at 30% of t1 over all of January, child c1 at 50%
// of t1 over Jan 1-10.
func januaryRequest(mode domain.EpicMode) Request {
	return Request{
		Features: []*domain.EffectiveFeature{
			eff(testutil.NewEpic("e1", "p1", "t1", 30, "2025-01-01", "2025-01-31")),
			eff(testutil.NewChild("c1", "e1", "p1", "t1", 50, "2025-01-01", "2025-01-10")),
		},
		Teams:    twoTeams(),
		Projects: oneProject(),
		Filter:   allFilter(),
		Mode:     mode,
	}
}

func TestComputeEmptySelectionShortCircuits(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"no features", func(r *Request) { r.Features = nil }},
		{"no teams", func(r *Request) { r.Teams = nil }},
		{"no projects selected", func(r *Request) { r.Filter.SelectedProjects = []string{} }},
		{"no teams selected", func(r *Request) { r.Filter.SelectedTeams = []string{} }},
		{"no states selected", func(r *Request) { r.Filter.SelectedStates = []string{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := januaryRequest(domain.EpicGapFill)
			tc.mutate(&req)

			table := NewCalculator().Compute(req)
			assert.Empty(t, table.Dates)
			assert.Empty(t, table.TeamLoad)
			assert.Empty(t, table.OrgTotal)
		})
	}
}

func TestComputeDateAxisSpansAllFeatures(t *testing.T) {
	req := januaryRequest(domain.EpicGapFill)
	table := NewCalculator().Compute(req)

	require.Len(t, table.Dates, 31)
	assert.Equal(t, "2025-01-01", table.Dates[0])
	assert.Equal(t, "2025-01-31", table.Dates[30])
}

func TestComputeUndatedFeaturesExcluded(t *testing.T) {
	req := januaryRequest(domain.EpicGapFill)
	undated := testutil.NewFeature("u1", "p1", "t1", 90, "2025-01-01", "2025-01-31")
	undated.End = nil
	req.Features = append(req.Features, eff(undated))

	table := NewCalculator().Compute(req)
	assert.Equal(t, 50.0, table.TeamLoad["t1"][0], "undated feature contributes nothing")
}

func TestEpicIgnoredWhenItHasChildren(t *testing.T) {
	table := NewCalculator().Compute(januaryRequest(domain.EpicIgnoreChildren))

	require.Len(t, table.TeamLoad["t1"], 31)
	assert.Equal(t, 50.0, table.TeamLoad["t1"][0], "child only")
	assert.Equal(t, 50.0, table.TeamLoad["t1"][9])
	assert.Equal(t, 0.0, table.TeamLoad["t1"][10], "epic suppressed entirely")
	assert.Equal(t, 0.0, table.TeamLoad["t1"][30])
}

func TestEpicGapFillCountsOnlyUncoveredDays(t *testing.T) {
	table := NewCalculator().Compute(januaryRequest(domain.EpicGapFill))

	assert.Equal(t, 50.0, table.TeamLoad["t1"][0], "child days exclude the epic")
	assert.Equal(t, 50.0, table.TeamLoad["t1"][9])
	assert.Equal(t, 30.0, table.TeamLoad["t1"][10], "epic fills the gap after the child ends")
	assert.Equal(t, 30.0, table.TeamLoad["t1"][30])
}

func TestChildlessEpicCountsInBothModes(t *testing.T) {
	for _, mode := range []domain.EpicMode{domain.EpicIgnoreChildren, domain.EpicGapFill} {
		req := Request{
			Features: []*domain.EffectiveFeature{
				eff(testutil.NewEpic("e1", "p1", "t1", 30, "2025-01-01", "2025-01-10")),
			},
			Teams:    twoTeams(),
			Projects: oneProject(),
			Filter:   allFilter(),
			Mode:     mode,
		}
		table := NewCalculator().Compute(req)
		assert.Equal(t, 30.0, table.TeamLoad["t1"][0], "mode %s", mode)
	}
}

func TestUnknownTeamCountsTowardProjectAndOrgOnly(t *testing.T) {
	req := januaryRequest(domain.EpicGapFill)
	req.Features = append(req.Features,
		eff(testutil.NewFeature("f9", "p1", "ghost-team", 25, "2025-01-01", "2025-01-31")))

	table := NewCalculator().Compute(req)
	assert.NotContains(t, table.TeamLoad, "ghost-team")
	assert.Equal(t, 75.0, table.ProjectLoad["p1"][0], "50 child + 25 unknown-team")
	assert.Equal(t, 75.0, table.OrgTotal[0])
	assert.Equal(t, 50.0, table.TeamLoad["t1"][0])
}

func TestUnselectedKnownTeamSkipped(t *testing.T) {
	req := januaryRequest(domain.EpicGapFill)
	req.Features = append(req.Features,
		eff(testutil.NewFeature("f9", "p1", "t2", 25, "2025-01-01", "2025-01-31")))
	req.Filter.SelectedTeams = []string{"t1"}

	table := NewCalculator().Compute(req)
	assert.Equal(t, 0.0, table.TeamLoad["t2"][0])
	assert.Equal(t, 50.0, table.ProjectLoad["p1"][0],
		"deselected known team contributes nowhere, unlike unknown team ids")
	assert.Equal(t, 50.0, table.OrgTotal[0])
}

func TestUnselectedProjectAndStatusSkipFeature(t *testing.T) {
	req := januaryRequest(domain.EpicGapFill)
	done := testutil.NewFeature("f9", "p1", "t1", 25, "2025-01-01", "2025-01-31")
	done.Status = "done"
	other := testutil.NewFeature("f8", "p2", "t1", 25, "2025-01-01", "2025-01-31")
	req.Features = append(req.Features, eff(done), eff(other))

	table := NewCalculator().Compute(req)
	assert.Equal(t, 50.0, table.TeamLoad["t1"][0], "filtered features contribute nothing at all")
	assert.Equal(t, 50.0, table.OrgTotal[0])
}

func TestNormalizationDividesByTeamCount(t *testing.T) {
	table := NewCalculator().Compute(januaryRequest(domain.EpicGapFill))

	assert.Equal(t, 50.0, table.TeamLoad["t1"][0], "team series stay raw")
	assert.Equal(t, 25.0, table.ProjectLoadNormalized["p1"][0], "50 / 2 teams")
	assert.Equal(t, 25.0, table.OrgPerTeamAvg[0])
	assert.Equal(t, 50.0, table.OrgTotal[0])
}

func TestComputeResultIsIndependentCopy(t *testing.T) {
	calc := NewCalculator()
	first := calc.Compute(januaryRequest(domain.EpicGapFill))
	first.TeamLoad["t1"][0] = 999

	second := calc.Compute(januaryRequest(domain.EpicGapFill))
	assert.Equal(t, 50.0, second.TeamLoad["t1"][0])
}

func TestDeltaMatchesFullRecompute(t *testing.T) {
	calc := NewCalculator()
	req := januaryRequest(domain.EpicGapFill)
	calc.Compute(req)

	// Move the child: it now covers Jan 5-15.
	moved := januaryRequest(domain.EpicGapFill)
	moved.Features[1] = eff(testutil.NewChild("c1", "e1", "p1", "t1", 50, "2025-01-05", "2025-01-15"))
	moved.ChangedIDs = []string{"c1"}

	delta := calc.Compute(moved)

	fullReq := moved
	fullReq.ChangedIDs = nil
	full := NewCalculator().Compute(fullReq)

	require.Equal(t, full.Dates, delta.Dates)
	for _, id := range []string{"t1", "t2"} {
		for i := range full.Dates {
			assert.InDelta(t, full.TeamLoad[id][i], delta.TeamLoad[id][i], 1e-9)
		}
	}
	for i := range full.Dates {
		assert.InDelta(t, full.OrgTotal[i], delta.OrgTotal[i], 1e-9)
		assert.InDelta(t, full.OrgPerTeamAvg[i], delta.OrgPerTeamAvg[i], 1e-9)
		assert.InDelta(t, full.ProjectLoadNormalized["p1"][i], delta.ProjectLoadNormalized["p1"][i], 1e-9)
	}
}

func TestDeltaRemovedFeatureNetsToRemoval(t *testing.T) {
	calc := NewCalculator()
	calc.Compute(januaryRequest(domain.EpicGapFill))

	// Drop the child entirely; the epic keeps the axis intact.
	next := januaryRequest(domain.EpicGapFill)
	next.Features = next.Features[:1]
	next.ChangedIDs = []string{"c1"}

	delta := calc.Compute(next)
	full := NewCalculator().Compute(Request{
		Features: next.Features,
		Teams:    next.Teams,
		Projects: next.Projects,
		Filter:   next.Filter,
		Mode:     next.Mode,
	})
	for i := range full.Dates {
		assert.InDelta(t, full.TeamLoad["t1"][i], delta.TeamLoad["t1"][i], 1e-9)
	}
}

func TestDeltaFallsBackOnAxisChange(t *testing.T) {
	calc := NewCalculator()
	calc.Compute(januaryRequest(domain.EpicGapFill))

	// Extending the epic grows the date axis, so the delta path must fall
	// back to a full rebuild.
	next := januaryRequest(domain.EpicGapFill)
	next.Features[0] = eff(testutil.NewEpic("e1", "p1", "t1", 30, "2025-01-01", "2025-02-28"))
	next.ChangedIDs = []string{"e1"}

	table := calc.Compute(next)
	require.Len(t, table.Dates, 59)
	assert.Equal(t, 30.0, table.TeamLoad["t1"][58])
}

func TestDeltaFallsBackOnModeOrFilterChange(t *testing.T) {
	calc := NewCalculator()
	calc.Compute(januaryRequest(domain.EpicGapFill))

	next := januaryRequest(domain.EpicIgnoreChildren)
	next.ChangedIDs = []string{"c1"}

	table := calc.Compute(next)
	assert.Equal(t, 0.0, table.TeamLoad["t1"][30], "recomputed under the new mode")
}

func TestInvalidateDropsCache(t *testing.T) {
	calc := NewCalculator()
	calc.Compute(januaryRequest(domain.EpicGapFill))
	calc.Invalidate()

	next := januaryRequest(domain.EpicGapFill)
	next.ChangedIDs = []string{"c1"}
	table := calc.Compute(next)

	assert.Equal(t, 50.0, table.TeamLoad["t1"][0], "full rebuild still correct")
}
