package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/planscope/planscope/internal/db"
	"github.com/planscope/planscope/internal/domain"
)

// SQLiteScenarioRepo implements ScenarioRepo using a SQLite database. The
// override, filter and view blobs are stored as JSON text columns: they are
// opaque to queries and travel as a unit with the scenario.
type SQLiteScenarioRepo struct {
	q db.DBTX
}

// NewSQLiteScenarioRepo creates a scenario repo over the given DBTX.
func NewSQLiteScenarioRepo(q db.DBTX) *SQLiteScenarioRepo {
	return &SQLiteScenarioRepo{q: q}
}

type overrideJSON struct {
	Start *string `json:"start,omitempty"`
	End   *string `json:"end,omitempty"`
}

type filtersJSON struct {
	SelectedProjects []string `json:"selected_projects"`
	SelectedTeams    []string `json:"selected_teams"`
	SelectedStates   []string `json:"selected_states"`
}

type viewJSON struct {
	From *string `json:"from,omitempty"`
	To   *string `json:"to,omitempty"`
	Zoom string  `json:"zoom,omitempty"`
}

// Save upserts the scenario. Position preserves the manager's creation
// order across restarts.
func (r *SQLiteScenarioRepo) Save(ctx context.Context, s *domain.Scenario, position int) error {
	overrides := make(map[string]overrideJSON, len(s.Overrides))
	for id, o := range s.Overrides {
		overrides[id] = overrideJSON{Start: dateStringPtr(o.Start), End: dateStringPtr(o.End)}
	}
	overridesBlob, err := json.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("encoding overrides: %w", err)
	}

	filtersBlob, err := json.Marshal(filtersJSON{
		SelectedProjects: s.Filters.SelectedProjects,
		SelectedTeams:    s.Filters.SelectedTeams,
		SelectedStates:   s.Filters.SelectedStates,
	})
	if err != nil {
		return fmt.Errorf("encoding filters: %w", err)
	}

	viewBlob, err := json.Marshal(viewJSON{
		From: dateStringPtr(s.View.From),
		To:   dateStringPtr(s.View.To),
		Zoom: s.View.Zoom,
	})
	if err != nil {
		return fmt.Errorf("encoding view: %w", err)
	}

	now := nowUTC()
	query := `INSERT INTO scenarios (id, name, overrides, filters, view, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			overrides = excluded.overrides,
			filters = excluded.filters,
			view = excluded.view,
			position = excluded.position,
			updated_at = excluded.updated_at`
	if _, err := r.q.ExecContext(ctx, query,
		s.ID, s.Name, string(overridesBlob), string(filtersBlob), string(viewBlob), position, now, now,
	); err != nil {
		return fmt.Errorf("saving scenario: %w", err)
	}
	return nil
}

// List returns all persisted scenarios in position order. Loaded scenarios
// are clean (not dirty).
func (r *SQLiteScenarioRepo) List(ctx context.Context) ([]*domain.Scenario, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, name, overrides, filters, view FROM scenarios ORDER BY position, created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []*domain.Scenario
	for rows.Next() {
		var id, name, overridesBlob, filtersBlob, viewBlob string
		if err := rows.Scan(&id, &name, &overridesBlob, &filtersBlob, &viewBlob); err != nil {
			return nil, fmt.Errorf("scanning scenario: %w", err)
		}

		s := &domain.Scenario{
			ID:        id,
			Name:      name,
			Overrides: make(map[string]domain.DateOverride),
		}

		var overrides map[string]overrideJSON
		if err := json.Unmarshal([]byte(overridesBlob), &overrides); err != nil {
			return nil, fmt.Errorf("decoding overrides for scenario %s: %w", id, err)
		}
		for fid, o := range overrides {
			s.Overrides[fid] = domain.DateOverride{Start: parseDatePtr(o.Start), End: parseDatePtr(o.End)}
		}

		var filters filtersJSON
		if err := json.Unmarshal([]byte(filtersBlob), &filters); err != nil {
			return nil, fmt.Errorf("decoding filters for scenario %s: %w", id, err)
		}
		s.Filters = domain.FilterSnapshot{
			SelectedProjects: filters.SelectedProjects,
			SelectedTeams:    filters.SelectedTeams,
			SelectedStates:   filters.SelectedStates,
		}

		var view viewJSON
		if err := json.Unmarshal([]byte(viewBlob), &view); err != nil {
			return nil, fmt.Errorf("decoding view for scenario %s: %w", id, err)
		}
		s.View = domain.ViewSnapshot{From: parseDatePtr(view.From), To: parseDatePtr(view.To), Zoom: view.Zoom}

		scenarios = append(scenarios, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scenarios: %w", err)
	}
	return scenarios, nil
}

// Delete removes a scenario row. Deleting a nonexistent id is not an error.
func (r *SQLiteScenarioRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM scenarios WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting scenario: %w", err)
	}
	return nil
}
