package service

import (
	"context"

	"github.com/planscope/planscope/internal/capacity"
	"github.com/planscope/planscope/internal/contract"
	"github.com/planscope/planscope/internal/domain"
	"github.com/planscope/planscope/internal/resolve"
)

// PlannerService is the single entry point the CLI works against: baseline
// data, scenarios, effective features and capacity tables.
type PlannerService interface {
	// Init loads the persisted dataset, scenarios and active pointer.
	Init(ctx context.Context) error

	ImportDataSet(ctx context.Context, path string) (*contract.ImportResult, error)

	Projects(ctx context.Context) ([]*domain.Project, error)
	Teams(ctx context.Context) ([]*domain.Team, error)
	EffectiveFeatures(ctx context.Context) ([]*domain.EffectiveFeature, error)
	EffectiveFeature(ctx context.Context, id string) (*domain.EffectiveFeature, error)

	Scenarios(ctx context.Context) ([]contract.ScenarioInfo, error)
	CreateScenario(ctx context.Context, sourceID, name string) (*contract.ScenarioInfo, error)
	RenameScenario(ctx context.Context, id, name string) error
	DeleteScenario(ctx context.Context, id string) error
	SwitchScenario(ctx context.Context, id string) error
	SaveScenarios(ctx context.Context) (int, error)

	MoveFeatures(ctx context.Context, updates []resolve.DateUpdate) ([]string, error)
	RevertFeature(ctx context.Context, id string) (bool, error)

	Capacity(ctx context.Context, req contract.CapacityRequest) (*capacity.Table, error)
	EpicMode(ctx context.Context) (domain.EpicMode, error)
	SetEpicMode(ctx context.Context, mode domain.EpicMode) error
}
