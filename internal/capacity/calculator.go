// Package capacity computes, per calendar day, how much of each team's and
// project's capacity the effective feature set consumes, under arbitrary
// project/team/status filters and one of two epic-accounting policies. It
// supports full recomputation and an incremental delta mode that touches
// only the days of the features that changed.
package capacity

import (
	"time"

	"github.com/planscope/planscope/internal/domain"
)

// Request carries one computation's inputs. Features are the effective
// (scenario-resolved) set. ChangedIDs, when non-empty, requests the
// incremental path against the previous computation's cached tables; the
// calculator silently falls back to a full rebuild when the cache cannot
// serve the delta.
type Request struct {
	Features   []*domain.EffectiveFeature
	Teams      []*domain.Team
	Projects   []*domain.Project
	Filter     Filter
	Mode       domain.EpicMode
	ChangedIDs []string
}

// Calculator owns the cached tables and last-seen feature snapshots that
// make incremental updates possible. It is not safe for concurrent use; the
// caller serializes computations.
type Calculator struct {
	cached    *Table
	dateIndex map[string]int
	lastSeen  map[string]*domain.EffectiveFeature
	lastMode  domain.EpicMode
	lastKey   string
}

// NewCalculator returns a calculator with an empty cache.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Invalidate drops the cached tables and snapshots. Call on dataset reload
// or scenario switch, where a delta against the previous state is
// meaningless.
func (c *Calculator) Invalidate() {
	c.cached = nil
	c.dateIndex = nil
	c.lastSeen = nil
}

// Compute produces the daily capacity table for the request. The result is
// an independent copy; the calculator retains its own tables for future
// deltas.
func (c *Calculator) Compute(req Request) *Table {
	if shortCircuit(req) {
		c.Invalidate()
		return EmptyTable()
	}

	dates := deriveDates(req.Features)
	if len(dates) == 0 {
		c.Invalidate()
		return EmptyTable()
	}

	if c.canApplyDelta(req, dates) {
		return c.computeDelta(req)
	}
	return c.computeFull(req, dates)
}

// shortCircuit reports whether the request trivially resolves to the empty
// table: nothing loaded, or an empty selection making nothing visible.
func shortCircuit(req Request) bool {
	if len(req.Features) == 0 || len(req.Teams) == 0 || len(req.Projects) == 0 {
		return true
	}
	if len(req.Filter.SelectedProjects) == 0 ||
		len(req.Filter.SelectedTeams) == 0 ||
		len(req.Filter.SelectedStates) == 0 {
		return true
	}
	return false
}

// deriveDates spans the earliest start to the latest end across all features
// carrying both dates, one ISO entry per UTC calendar day, inclusive.
func deriveDates(features []*domain.EffectiveFeature) []string {
	var min, max *time.Time
	for _, f := range features {
		if !f.HasDates() {
			continue
		}
		start := domain.Day(*f.Start)
		end := domain.Day(*f.End)
		if min == nil || start.Before(*min) {
			min = &start
		}
		if max == nil || end.After(*max) {
			max = &end
		}
	}
	if min == nil || max == nil || max.Before(*min) {
		return nil
	}

	var dates []string
	for d := *min; !d.After(*max); d = d.AddDate(0, 0, 1) {
		dates = append(dates, domain.DateString(d))
	}
	return dates
}

func (c *Calculator) computeFull(req Request, dates []string) *Table {
	n := len(dates)
	table := &Table{
		Dates:       dates,
		TeamLoad:    make(map[string][]float64, len(req.Teams)),
		ProjectLoad: make(map[string][]float64, len(req.Projects)),
		OrgTotal:    make([]float64, n),
	}
	for _, t := range req.Teams {
		table.TeamLoad[t.ID] = make([]float64, n)
	}
	for _, p := range req.Projects {
		table.ProjectLoad[p.ID] = make([]float64, n)
	}

	c.dateIndex = make(map[string]int, n)
	for i, d := range dates {
		c.dateIndex[d] = i
	}

	ctx := newAccumContext(req)
	for _, f := range req.Features {
		c.accumulate(table, f, ctx, +1)
	}

	table.normalize(len(req.Teams))
	c.cached = table
	c.lastSeen = snapshotFeatures(req.Features)
	c.lastMode = req.Mode
	c.lastKey = filterKey(req.Filter)
	return table.Clone()
}

// canApplyDelta reports whether the cached tables can absorb an in-place
// delta for the request: changed ids supplied, a cached result present, the
// date axis length unchanged, and the same mode and filters as the cached
// computation.
func (c *Calculator) canApplyDelta(req Request, dates []string) bool {
	if len(req.ChangedIDs) == 0 || c.cached == nil || c.lastSeen == nil {
		return false
	}
	if len(dates) != len(c.cached.Dates) {
		return false
	}
	return req.Mode == c.lastMode && filterKey(req.Filter) == c.lastKey
}

// computeDelta mutates the cached per-day tables in place: for each changed
// id it subtracts the previously seen version's contribution and adds the
// current version's. A missing old or new snapshot contributes zero, so a
// deleted feature nets to pure removal and a brand-new one to pure addition.
// Changed children drag their parent epic into the delta, because the epic's
// own contribution depends on child day coverage.
func (c *Calculator) computeDelta(req Request) *Table {
	table := c.cached

	oldCtx := newSnapshotContext(req, c.lastSeen)
	newCtx := newAccumContext(req)

	current := make(map[string]*domain.EffectiveFeature, len(req.Features))
	for _, f := range req.Features {
		current[f.ID] = f
	}

	for _, id := range c.expandChanged(req.ChangedIDs, current) {
		if old, ok := c.lastSeen[id]; ok {
			c.accumulate(table, old, oldCtx, -1)
		}
		if cur, ok := current[id]; ok {
			c.accumulate(table, cur, newCtx, +1)
		}
	}

	table.normalize(len(req.Teams))
	c.lastSeen = snapshotFeatures(req.Features)
	return table.Clone()
}

// expandChanged adds the parent epic of every changed feature, deduplicated
// and in stable order. Both the old and the current version of a feature may
// name a parent; ParentEpic is baseline data so they normally agree.
func (c *Calculator) expandChanged(ids []string, current map[string]*domain.EffectiveFeature) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range ids {
		add(id)
		if old, ok := c.lastSeen[id]; ok {
			add(old.ParentEpic)
		}
		if cur, ok := current[id]; ok {
			add(cur.ParentEpic)
		}
	}
	return out
}

// accumContext precomputes the selection sets and child index one
// accumulation pass works against.
type accumContext struct {
	mode             domain.EpicMode
	selectedProjects map[string]bool
	selectedTeams    map[string]bool
	selectedStates   map[string]bool
	knownTeams       map[string]bool
	children         map[string][]*domain.EffectiveFeature
}

func newAccumContext(req Request) *accumContext {
	ctx := baseContext(req)
	for _, f := range req.Features {
		if f.ParentEpic != "" {
			ctx.children[f.ParentEpic] = append(ctx.children[f.ParentEpic], f)
		}
	}
	return ctx
}

// newSnapshotContext builds the accumulation context against the last-seen
// feature set, so subtraction replays exactly what was added.
func newSnapshotContext(req Request, snapshot map[string]*domain.EffectiveFeature) *accumContext {
	ctx := baseContext(req)
	for _, f := range snapshot {
		if f.ParentEpic != "" {
			ctx.children[f.ParentEpic] = append(ctx.children[f.ParentEpic], f)
		}
	}
	return ctx
}

func baseContext(req Request) *accumContext {
	ctx := &accumContext{
		mode:             req.Mode,
		selectedProjects: toSet(req.Filter.SelectedProjects),
		selectedTeams:    toSet(req.Filter.SelectedTeams),
		selectedStates:   toSet(req.Filter.SelectedStates),
		knownTeams:       make(map[string]bool, len(req.Teams)),
		children:         make(map[string][]*domain.EffectiveFeature),
	}
	for _, t := range req.Teams {
		ctx.knownTeams[t.ID] = true
	}
	return ctx
}

// accumulate applies one feature's contribution to the tables with the given
// sign. Features outside the project/status selection, missing dates, or
// whose span falls outside the date index are skipped entirely.
func (c *Calculator) accumulate(table *Table, f *domain.EffectiveFeature, ctx *accumContext, sign float64) {
	if !ctx.selectedProjects[f.ProjectID] || !ctx.selectedStates[f.Status] {
		return
	}
	if !f.HasDates() {
		return
	}
	startIdx, ok := c.dateIndex[domain.DateString(*f.Start)]
	if !ok {
		return
	}
	endIdx, ok := c.dateIndex[domain.DateString(*f.End)]
	if !ok {
		return
	}

	children := ctx.children[f.ID]
	hasChildren := f.IsEpic() && len(children) > 0
	if hasChildren && ctx.mode == domain.EpicIgnoreChildren {
		return
	}

	for i := startIdx; i <= endIdx; i++ {
		if hasChildren && ctx.mode == domain.EpicGapFill && anyChildCovers(children, table.Dates[i]) {
			continue
		}
		c.addDay(table, f, ctx, i, sign)
	}
}

func (c *Calculator) addDay(table *Table, f *domain.EffectiveFeature, ctx *accumContext, day int, sign float64) {
	for _, alloc := range f.Allocations {
		if ctx.knownTeams[alloc.TeamID] {
			if !ctx.selectedTeams[alloc.TeamID] {
				continue
			}
			table.TeamLoad[alloc.TeamID][day] += sign * alloc.Load
		}
		// Unknown team ids still count toward project and organization
		// totals; they just have no per-team cell.
		if series, ok := table.ProjectLoad[f.ProjectID]; ok {
			series[day] += sign * alloc.Load
		}
		table.OrgTotal[day] += sign * alloc.Load
	}
}

func anyChildCovers(children []*domain.EffectiveFeature, isoDay string) bool {
	day, err := domain.ParseDate(isoDay)
	if err != nil {
		return false
	}
	for _, child := range children {
		if child.CoversDay(day) {
			return true
		}
	}
	return false
}

func snapshotFeatures(features []*domain.EffectiveFeature) map[string]*domain.EffectiveFeature {
	out := make(map[string]*domain.EffectiveFeature, len(features))
	for _, f := range features {
		cp := *f
		cp.Feature = *f.Feature.Clone()
		out[f.ID] = &cp
	}
	return out
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func filterKey(f Filter) string {
	key := ""
	for _, id := range f.SelectedProjects {
		key += "p:" + id + ";"
	}
	for _, id := range f.SelectedTeams {
		key += "t:" + id + ";"
	}
	for _, s := range f.SelectedStates {
		key += "s:" + s + ";"
	}
	return key
}
