package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/planscope/planscope/internal/baseline"
	"github.com/planscope/planscope/internal/db"
	"github.com/planscope/planscope/internal/domain"
)

// SQLiteDatasetRepo implements DatasetRepo over a DBTX, so dataset
// replacement can run inside a single transaction.
type SQLiteDatasetRepo struct {
	q db.DBTX
}

// NewSQLiteDatasetRepo creates a dataset repo over the given DBTX.
func NewSQLiteDatasetRepo(q db.DBTX) *SQLiteDatasetRepo {
	return &SQLiteDatasetRepo{q: q}
}

// Replace wipes and re-inserts all three collections, preserving input
// order in the position columns.
func (r *SQLiteDatasetRepo) Replace(ctx context.Context, data baseline.DataSet) error {
	for _, table := range []string{"feature_allocations", "features", "teams", "projects"} {
		if _, err := r.q.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for i, p := range data.Projects {
		if _, err := r.q.ExecContext(ctx,
			`INSERT INTO projects (id, name, color, position) VALUES (?, ?, ?, ?)`,
			p.ID, p.Name, p.Color, i,
		); err != nil {
			return fmt.Errorf("inserting project %s: %w", p.ID, err)
		}
	}

	for i, t := range data.Teams {
		if _, err := r.q.ExecContext(ctx,
			`INSERT INTO teams (id, name, color, position) VALUES (?, ?, ?, ?)`,
			t.ID, t.Name, t.Color, i,
		); err != nil {
			return fmt.Errorf("inserting team %s: %w", t.ID, err)
		}
	}

	for i, f := range data.Features {
		if _, err := r.q.ExecContext(ctx,
			`INSERT INTO features (id, kind, name, start_date, end_date, project_id, parent_epic, status, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			f.ID, string(f.Kind), f.Name,
			nullableDateToValue(f.Start), nullableDateToValue(f.End),
			f.ProjectID, f.ParentEpic, f.Status, i,
		); err != nil {
			return fmt.Errorf("inserting feature %s: %w", f.ID, err)
		}
		for j, a := range f.Allocations {
			if _, err := r.q.ExecContext(ctx,
				`INSERT INTO feature_allocations (feature_id, team_id, load, position) VALUES (?, ?, ?, ?)`,
				f.ID, a.TeamID, a.Load, j,
			); err != nil {
				return fmt.Errorf("inserting allocation for feature %s: %w", f.ID, err)
			}
		}
	}

	return nil
}

// Load reads the whole dataset back in stored order.
func (r *SQLiteDatasetRepo) Load(ctx context.Context) (baseline.DataSet, error) {
	var data baseline.DataSet

	rows, err := r.q.QueryContext(ctx, `SELECT id, name, color FROM projects ORDER BY position`)
	if err != nil {
		return data, fmt.Errorf("listing projects: %w", err)
	}
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Color); err != nil {
			rows.Close()
			return data, fmt.Errorf("scanning project: %w", err)
		}
		data.Projects = append(data.Projects, &p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return data, fmt.Errorf("iterating projects: %w", err)
	}

	rows, err = r.q.QueryContext(ctx, `SELECT id, name, color FROM teams ORDER BY position`)
	if err != nil {
		return data, fmt.Errorf("listing teams: %w", err)
	}
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			rows.Close()
			return data, fmt.Errorf("scanning team: %w", err)
		}
		data.Teams = append(data.Teams, &t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return data, fmt.Errorf("iterating teams: %w", err)
	}

	rows, err = r.q.QueryContext(ctx,
		`SELECT id, kind, name, start_date, end_date, project_id, parent_epic, status FROM features ORDER BY position`)
	if err != nil {
		return data, fmt.Errorf("listing features: %w", err)
	}
	byID := make(map[string]*domain.Feature)
	for rows.Next() {
		var f domain.Feature
		var kind string
		var start, end sql.NullString
		if err := rows.Scan(&f.ID, &kind, &f.Name, &start, &end, &f.ProjectID, &f.ParentEpic, &f.Status); err != nil {
			rows.Close()
			return data, fmt.Errorf("scanning feature: %w", err)
		}
		f.Kind = domain.FeatureKind(kind)
		f.Start = parseNullableDate(start)
		f.End = parseNullableDate(end)
		data.Features = append(data.Features, &f)
		byID[f.ID] = &f
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return data, fmt.Errorf("iterating features: %w", err)
	}

	rows, err = r.q.QueryContext(ctx,
		`SELECT feature_id, team_id, load FROM feature_allocations ORDER BY feature_id, position`)
	if err != nil {
		return data, fmt.Errorf("listing allocations: %w", err)
	}
	for rows.Next() {
		var featureID string
		var a domain.Allocation
		if err := rows.Scan(&featureID, &a.TeamID, &a.Load); err != nil {
			rows.Close()
			return data, fmt.Errorf("scanning allocation: %w", err)
		}
		if f, ok := byID[featureID]; ok {
			f.Allocations = append(f.Allocations, a)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return data, fmt.Errorf("iterating allocations: %w", err)
	}

	return data, nil
}
