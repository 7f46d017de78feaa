// Package resolve produces effective features: baseline fields overlaid by
// the active scenario's date overrides, with the epic/child containment
// invariant enforced at commit time.
package resolve

import (
	"time"

	"github.com/planscope/planscope/internal/baseline"
	"github.com/planscope/planscope/internal/domain"
	"github.com/planscope/planscope/internal/scenario"
)

// DateUpdate is one entry in a batch date mutation, typically produced by a
// drag-and-drop end event. A nil side means "leave that field alone".
type DateUpdate struct {
	ID    string
	Start *time.Time
	End   *time.Time
}

// RecomputeFunc receives the ids whose effective state changed, enabling
// incremental capacity recomputation downstream.
type RecomputeFunc func(changedIDs []string)

// Resolver merges baseline features with the active scenario's overrides.
type Resolver struct {
	store     *baseline.Store
	scenarios *scenario.Manager

	onFeatureUpdated func()
}

// NewResolver wires a resolver to its baseline store and scenario manager.
func NewResolver(store *baseline.Store, scenarios *scenario.Manager) *Resolver {
	return &Resolver{store: store, scenarios: scenarios}
}

// SetFeatureUpdatedListener registers a callback fired after any batch that
// committed at least one override.
func (r *Resolver) SetFeatureUpdatedListener(fn func()) {
	r.onFeatureUpdated = fn
}

// EffectiveFeatures returns every baseline feature with the active scenario's
// override applied. With the baseline active, returns unmodified copies.
func (r *Resolver) EffectiveFeatures() []*domain.EffectiveFeature {
	features := r.store.Features()
	out := make([]*domain.EffectiveFeature, len(features))
	for i, f := range features {
		out[i] = r.resolve(f)
	}
	return out
}

// EffectiveFeatureByID returns the effective view of a single feature, or
// nil when the id is unknown.
func (r *Resolver) EffectiveFeatureByID(id string) *domain.EffectiveFeature {
	f := r.store.FeatureByID(id)
	if f == nil {
		return nil
	}
	return r.resolve(f)
}

func (r *Resolver) resolve(f *domain.Feature) *domain.EffectiveFeature {
	eff := &domain.EffectiveFeature{Feature: *f}
	o, ok := r.scenarios.Override(f.ID)
	if !ok {
		return eff
	}

	eff.ScenarioOverride = true
	if o.Start != nil {
		eff.Start = domain.CloneDate(o.Start)
		if !domain.DateEqual(o.Start, f.Start) {
			eff.ChangedFields = append(eff.ChangedFields, domain.FieldStart)
		}
	}
	if o.End != nil {
		eff.End = domain.CloneDate(o.End)
		if !domain.DateEqual(o.End, f.End) {
			eff.ChangedFields = append(eff.ChangedFields, domain.FieldEnd)
		}
	}
	eff.Dirty = len(eff.ChangedFields) > 0
	return eff
}

// UpdateFeatureDates applies a batch of date updates to the active scenario,
// strictly in input order. Epic targets are clamped so their end never
// shrinks below the latest effective child end; feature targets extend their
// parent epic's override when the new span escapes the parent's effective
// span. Each update's propagation is visible to subsequent updates in the
// same batch. Returns the ids whose effective state changed; the recompute
// callback is invoked with the same set when anything was committed.
//
// The whole batch is a silent no-op when the baseline (or another readonly
// scenario) is active.
func (r *Resolver) UpdateFeatureDates(updates []DateUpdate, recompute RecomputeFunc) []string {
	if r.scenarios.BaselineActive() || len(updates) == 0 {
		return nil
	}

	// Tentative view: current overrides plus all updates as if already
	// applied. Used only to resolve cross-feature epic/child dependencies
	// before committing.
	tentative := r.scenarios.ActiveOverrides()
	for _, u := range updates {
		tentative[u.ID] = mergeOverride(tentative[u.ID], u.Start, u.End)
	}

	children := r.childIndex()
	changed := make([]string, 0, len(updates))
	seen := make(map[string]bool)

	for _, u := range updates {
		f := r.store.FeatureByID(u.ID)
		if f == nil {
			continue
		}
		if u.Start == nil && u.End == nil {
			continue
		}

		start, end := u.Start, u.End

		// Shrink inhibition: an epic can never end before its latest
		// effective child end.
		if f.IsEpic() {
			if maxEnd := r.latestChildEnd(children[f.ID], tentative); maxEnd != nil {
				proposed := r.effectiveEnd(f, end, tentative)
				if proposed == nil || domain.Day(*proposed).Before(domain.Day(*maxEnd)) {
					end = domain.CloneDate(maxEnd)
				}
			}
		}

		prev, hadPrev := r.scenarios.Override(u.ID)
		next := mergeOverride(prev, start, end)
		if hadPrev && domain.DateEqual(prev.Start, next.Start) && domain.DateEqual(prev.End, next.End) {
			continue
		}

		r.scenarios.SetOverride(u.ID, start, end)
		tentative[u.ID] = next
		if !seen[u.ID] {
			changed = append(changed, u.ID)
			seen[u.ID] = true
		}

		// Parent extension: a child may not escape its epic's span, so the
		// epic grows instead.
		if !f.IsEpic() && f.ParentEpic != "" {
			if pid, ok := r.extendParent(f, next, tentative); ok && !seen[pid] {
				changed = append(changed, pid)
				seen[pid] = true
			}
		}
	}

	if len(changed) > 0 {
		r.scenarios.MarkDirty()
		if r.onFeatureUpdated != nil {
			r.onFeatureUpdated()
		}
		if recompute != nil {
			recompute(changed)
		}
	}
	return changed
}

// UpdateFeatureField sets a single date field override, following the same
// clamp/extend, dirty, signal and callback contract as UpdateFeatureDates.
func (r *Resolver) UpdateFeatureField(id string, field domain.FieldName, value time.Time, recompute RecomputeFunc) []string {
	u := DateUpdate{ID: id}
	switch field {
	case domain.FieldStart:
		u.Start = domain.DatePtr(value)
	case domain.FieldEnd:
		u.End = domain.DatePtr(value)
	default:
		return nil
	}
	return r.UpdateFeatureDates([]DateUpdate{u}, recompute)
}

// RevertFeature removes the active scenario's override for the feature,
// restoring its baseline dates. A silent no-op when there is nothing to
// revert.
func (r *Resolver) RevertFeature(id string, recompute RecomputeFunc) bool {
	if _, ok := r.scenarios.Override(id); !ok {
		return false
	}
	r.scenarios.RemoveOverride(id)
	if r.onFeatureUpdated != nil {
		r.onFeatureUpdated()
	}
	if recompute != nil {
		recompute([]string{id})
	}
	return true
}

// childIndex maps epic id to its baseline children.
func (r *Resolver) childIndex() map[string][]*domain.Feature {
	idx := make(map[string][]*domain.Feature)
	for _, f := range r.store.Features() {
		if f.ParentEpic != "" {
			idx[f.ParentEpic] = append(idx[f.ParentEpic], f)
		}
	}
	return idx
}

// latestChildEnd returns the maximum effective end across children: each
// child's tentative override end when present, else its baseline end.
func (r *Resolver) latestChildEnd(children []*domain.Feature, tentative map[string]domain.DateOverride) *time.Time {
	var maxEnd *time.Time
	for _, c := range children {
		end := c.End
		if o, ok := tentative[c.ID]; ok && o.End != nil {
			end = o.End
		}
		if end == nil {
			continue
		}
		if maxEnd == nil || domain.Day(*end).After(domain.Day(*maxEnd)) {
			maxEnd = end
		}
	}
	return domain.CloneDate(maxEnd)
}

// effectiveEnd resolves the end an update would leave the feature with:
// the update's own end when set, else the tentative override end, else
// baseline.
func (r *Resolver) effectiveEnd(f *domain.Feature, updateEnd *time.Time, tentative map[string]domain.DateOverride) *time.Time {
	if updateEnd != nil {
		return updateEnd
	}
	if o, ok := tentative[f.ID]; ok && o.End != nil {
		return o.End
	}
	return f.End
}

// extendParent grows the parent epic's override when the child's new span
// starts earlier or ends later than the parent's effective span. The
// extension is propagated into the tentative mapping so later updates in the
// same batch see it. Returns the parent id and whether an extension was
// committed.
func (r *Resolver) extendParent(child *domain.Feature, childOverride domain.DateOverride, tentative map[string]domain.DateOverride) (string, bool) {
	parent := r.store.FeatureByID(child.ParentEpic)
	if parent == nil {
		return "", false
	}

	pStart, pEnd := parent.Start, parent.End
	if o, ok := tentative[parent.ID]; ok {
		if o.Start != nil {
			pStart = o.Start
		}
		if o.End != nil {
			pEnd = o.End
		}
	}

	cStart := childOverride.Start
	if cStart == nil {
		cStart = child.Start
	}
	cEnd := childOverride.End
	if cEnd == nil {
		cEnd = child.End
	}

	var newStart, newEnd *time.Time
	if cStart != nil && (pStart == nil || domain.Day(*cStart).Before(domain.Day(*pStart))) {
		newStart = domain.CloneDate(cStart)
	}
	if cEnd != nil && (pEnd == nil || domain.Day(*cEnd).After(domain.Day(*pEnd))) {
		newEnd = domain.CloneDate(cEnd)
	}
	if newStart == nil && newEnd == nil {
		return "", false
	}

	r.scenarios.SetOverride(parent.ID, newStart, newEnd)
	tentative[parent.ID] = mergeOverride(tentative[parent.ID], newStart, newEnd)
	return parent.ID, true
}

// mergeOverride overlays non-nil sides onto an existing override record.
func mergeOverride(existing domain.DateOverride, start, end *time.Time) domain.DateOverride {
	out := existing.Clone()
	if start != nil {
		out.Start = domain.CloneDate(start)
	}
	if end != nil {
		out.End = domain.CloneDate(end)
	}
	return out
}
