package repository

import (
	"context"

	"github.com/planscope/planscope/internal/baseline"
	"github.com/planscope/planscope/internal/domain"
)

// Meta keys used by the planner service.
const (
	MetaActiveScenario = "active_scenario"
	MetaEpicMode       = "epic_mode"
)

// DatasetRepo persists the baseline dataset. The baseline is replaced as a
// whole on import, never edited row by row.
type DatasetRepo interface {
	Replace(ctx context.Context, data baseline.DataSet) error
	Load(ctx context.Context) (baseline.DataSet, error)
}

// ScenarioRepo persists editable scenarios. The readonly baseline never has
// a row; save is only ever called for editable scenarios.
type ScenarioRepo interface {
	Save(ctx context.Context, s *domain.Scenario, position int) error
	List(ctx context.Context) ([]*domain.Scenario, error)
	Delete(ctx context.Context, id string) error
}

// MetaRepo is a small key/value store for app-level pointers such as the
// active scenario id.
type MetaRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
