// Package scenario owns the collection of named what-if scenarios and the
// single active-scenario pointer. The baseline is not part of the collection:
// it is implicit and readonly, so "cannot mutate the baseline" holds by
// construction rather than by runtime checks on a sentinel id.
package scenario

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/planscope/planscope/internal/domain"
)

var autoNamePattern = regexp.MustCompile(`^(\d{2}-\d{2}) Scenario (\d+)$`)

// Snapshot carries the caller's current filter and view state, used to seed
// a scenario cloned from the baseline.
type Snapshot struct {
	Filters domain.FilterSnapshot
	View    domain.ViewSnapshot
}

// Manager is the CRUD owner of editable scenarios. All mutating operations
// are defensive: unknown ids, readonly targets and no-active states degrade
// to silent no-ops, because they are typically triggered from asynchronous
// UI events where the entity may have raced out of existence.
type Manager struct {
	scenarios map[string]*domain.Scenario
	order     []string
	activeID  string // empty means the readonly baseline is active

	// Now is injectable for deterministic auto-generated names in tests.
	Now func() time.Time

	onChange func()
}

// NewManager returns a manager with the baseline active.
func NewManager() *Manager {
	return &Manager{
		scenarios: make(map[string]*domain.Scenario),
		Now:       time.Now,
	}
}

// SetChangeListener registers a callback invoked after every change to the
// collection or the active pointer.
func (m *Manager) SetChangeListener(fn func()) {
	m.onChange = fn
}

func (m *Manager) notify() {
	if m.onChange != nil {
		m.onChange()
	}
}

// ActiveID returns the active scenario id, or "" when the baseline is active.
func (m *Manager) ActiveID() string {
	return m.activeID
}

// BaselineActive reports whether the readonly baseline is the active view.
// The active id may also reference a readonly scenario the manager does not
// own; those are treated the same as the baseline for mutation purposes.
func (m *Manager) BaselineActive() bool {
	if m.activeID == "" {
		return true
	}
	_, ok := m.scenarios[m.activeID]
	return !ok
}

// Get returns a deep copy of the scenario, or nil if unknown.
func (m *Manager) Get(id string) *domain.Scenario {
	s, ok := m.scenarios[id]
	if !ok {
		return nil
	}
	return s.Clone()
}

// List returns deep copies of all editable scenarios in creation order.
func (m *Manager) List() []*domain.Scenario {
	out := make([]*domain.Scenario, 0, len(m.order))
	for _, id := range m.order {
		if s, ok := m.scenarios[id]; ok {
			out = append(out, s.Clone())
		}
	}
	return out
}

// Clone creates a new scenario. If sourceID resolves to a known editable
// scenario its overrides, filters and view are deep-copied; otherwise the
// source is the implicit readonly baseline and the caller-supplied snapshot
// seeds the new scenario with empty overrides. The name (auto-generated when
// empty) is made unique case-insensitively. New scenarios start dirty and
// the new scenario becomes active.
func (m *Manager) Clone(sourceID, name string, current Snapshot) *domain.Scenario {
	var s *domain.Scenario
	if src, ok := m.scenarios[sourceID]; ok {
		s = src.Clone()
	} else {
		s = &domain.Scenario{
			Overrides: make(map[string]domain.DateOverride),
			Filters:   current.Filters.Clone(),
			View:      current.View.Clone(),
		}
	}

	s.ID = uuid.New().String()
	if name == "" {
		name = m.autoName()
	}
	s.Name = m.uniqueName(name, "")
	s.Dirty = true

	m.scenarios[s.ID] = s
	m.order = append(m.order, s.ID)
	m.activeID = s.ID
	m.notify()
	return s.Clone()
}

// Activate switches the active pointer. A no-op when already active. The id
// need not exist in the editable collection: ids outside it are assumed to
// reference readonly scenarios known to the caller (the baseline included).
func (m *Manager) Activate(id string) {
	if id == m.activeID {
		return
	}
	m.activeID = id
	m.notify()
}

// Delete removes an editable scenario. Deleting the active scenario falls
// back to the baseline. Unknown ids are a silent no-op.
func (m *Manager) Delete(id string) {
	if _, ok := m.scenarios[id]; !ok {
		return
	}
	delete(m.scenarios, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.activeID == id {
		m.activeID = ""
	}
	m.notify()
}

// Rename applies the uniqueness algorithm to newName and renames the
// scenario. A no-op when the id is unknown or the name is unchanged.
func (m *Manager) Rename(id, newName string) {
	s, ok := m.scenarios[id]
	if !ok || newName == "" || newName == s.Name {
		return
	}
	s.Name = m.uniqueName(newName, id)
	s.Dirty = true
	m.notify()
}

// SetOverride merges a date override into the active scenario's record for
// the feature and marks the scenario dirty. Non-nil sides overwrite the
// existing override; nil sides keep it. A no-op when the baseline (or any
// readonly scenario) is active.
func (m *Manager) SetOverride(featureID string, start, end *time.Time) {
	s, ok := m.scenarios[m.activeID]
	if !ok {
		return
	}
	o := s.Overrides[featureID]
	if start != nil {
		o.Start = domain.CloneDate(start)
	}
	if end != nil {
		o.End = domain.CloneDate(end)
	}
	s.Overrides[featureID] = o
	s.Dirty = true
}

// RemoveOverride drops the active scenario's override for the feature.
// A no-op when no override exists or a readonly scenario is active.
func (m *Manager) RemoveOverride(featureID string) {
	s, ok := m.scenarios[m.activeID]
	if !ok {
		return
	}
	if _, exists := s.Overrides[featureID]; !exists {
		return
	}
	delete(s.Overrides, featureID)
	s.Dirty = true
}

// Override returns the active scenario's override for the feature, if any.
func (m *Manager) Override(featureID string) (domain.DateOverride, bool) {
	s, ok := m.scenarios[m.activeID]
	if !ok {
		return domain.DateOverride{}, false
	}
	o, exists := s.Overrides[featureID]
	if !exists {
		return domain.DateOverride{}, false
	}
	return o.Clone(), true
}

// ActiveOverrides returns a deep copy of the active scenario's override map.
// Empty when the baseline is active.
func (m *Manager) ActiveOverrides() map[string]domain.DateOverride {
	out := make(map[string]domain.DateOverride)
	s, ok := m.scenarios[m.activeID]
	if !ok {
		return out
	}
	for id, o := range s.Overrides {
		out[id] = o.Clone()
	}
	return out
}

// MarkDirty flags the active scenario as changed. Used by callers that
// mutate scenario-adjacent state (filters, view) outside the manager.
func (m *Manager) MarkDirty() {
	if s, ok := m.scenarios[m.activeID]; ok {
		s.Dirty = true
	}
}

// IsDirty reports whether the scenario has unsaved changes. Unknown ids
// report false.
func (m *Manager) IsDirty(id string) bool {
	s, ok := m.scenarios[id]
	return ok && s.Dirty
}

// MarkSaved clears the dirty flag after a successful persistence write.
func (m *Manager) MarkSaved(id string) {
	if s, ok := m.scenarios[id]; ok {
		s.Dirty = false
	}
}

// Restore installs persisted scenarios without dirty-marking or signaling,
// preserving the given order. Used once at startup by the persistence layer.
func (m *Manager) Restore(scenarios []*domain.Scenario, activeID string) {
	m.scenarios = make(map[string]*domain.Scenario, len(scenarios))
	m.order = m.order[:0]
	for _, s := range scenarios {
		cp := s.Clone()
		if cp.Overrides == nil {
			cp.Overrides = make(map[string]domain.DateOverride)
		}
		m.scenarios[cp.ID] = cp
		m.order = append(m.order, cp.ID)
	}
	m.activeID = activeID
}

// autoName produces the default "MM-DD Scenario N" name, where N is one
// greater than the highest counter among existing names matching today's
// exact pattern.
func (m *Manager) autoName() string {
	prefix := m.Now().Format("01-02")
	highest := 0
	for _, s := range m.scenarios {
		match := autoNamePattern.FindStringSubmatch(s.Name)
		if match == nil || match[1] != prefix {
			continue
		}
		if n, err := strconv.Atoi(match[2]); err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s Scenario %d", prefix, highest+1)
}

// uniqueName appends " 2", " 3", … to name until no case-insensitive
// collision remains among sibling scenarios. excludeID exempts the scenario
// being renamed from the collision scan.
func (m *Manager) uniqueName(name, excludeID string) string {
	candidate := name
	for n := 2; m.nameTaken(candidate, excludeID); n++ {
		candidate = fmt.Sprintf("%s %d", name, n)
	}
	return candidate
}

func (m *Manager) nameTaken(name, excludeID string) bool {
	for id, s := range m.scenarios {
		if id == excludeID {
			continue
		}
		if strings.EqualFold(s.Name, name) {
			return true
		}
	}
	return false
}
