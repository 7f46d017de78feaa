package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/planscope/planscope/internal/baseline"
	"github.com/planscope/planscope/internal/capacity"
	"github.com/planscope/planscope/internal/contract"
	"github.com/planscope/planscope/internal/db"
	"github.com/planscope/planscope/internal/domain"
	"github.com/planscope/planscope/internal/importer"
	"github.com/planscope/planscope/internal/repository"
	"github.com/planscope/planscope/internal/resolve"
	"github.com/planscope/planscope/internal/scenario"
)

type plannerService struct {
	store     *baseline.Store
	scenarios *scenario.Manager
	resolver  *resolve.Resolver
	calc      *capacity.Calculator

	datasets repository.DatasetRepo
	scenRepo repository.ScenarioRepo
	meta     repository.MetaRepo
	uow      db.UnitOfWork

	mode     domain.EpicMode
	observer UseCaseObserver
}

// NewPlannerService wires the planning engine: baseline store, scenario
// manager, feature resolver and capacity calculator, constructed in
// dependency order, plus the persistence collaborators.
func NewPlannerService(
	datasets repository.DatasetRepo,
	scenRepo repository.ScenarioRepo,
	meta repository.MetaRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) PlannerService {
	store := baseline.NewStore()
	scenarios := scenario.NewManager()
	resolver := resolve.NewResolver(store, scenarios)
	calc := capacity.NewCalculator()

	return &plannerService{
		store:     store,
		scenarios: scenarios,
		resolver:  resolver,
		calc:      calc,
		datasets:  datasets,
		scenRepo:  scenRepo,
		meta:      meta,
		uow:       uow,
		mode:      domain.EpicIgnoreChildren,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

func (s *plannerService) Init(ctx context.Context) error {
	data, err := s.datasets.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}
	s.store.Load(data)

	scenarios, err := s.scenRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("loading scenarios: %w", err)
	}
	activeID, err := s.meta.Get(ctx, repository.MetaActiveScenario)
	if err != nil {
		return fmt.Errorf("loading active scenario: %w", err)
	}
	s.scenarios.Restore(scenarios, activeID)

	if mode, err := s.meta.Get(ctx, repository.MetaEpicMode); err != nil {
		return fmt.Errorf("loading epic mode: %w", err)
	} else if domain.ValidEpicModes[mode] {
		s.mode = domain.EpicMode(mode)
	}
	return nil
}

func (s *plannerService) ImportDataSet(ctx context.Context, path string) (*contract.ImportResult, error) {
	var result *contract.ImportResult
	err := observe(ctx, s.observer, "import_dataset", map[string]any{"path": path}, func() error {
		schema, err := importer.LoadDataSetSchema(path)
		if err != nil {
			return err
		}
		if errs := importer.ValidateDataSet(schema); len(errs) > 0 {
			return fmt.Errorf("dataset validation failed: %w", errors.Join(errs...))
		}
		data := importer.Convert(schema)

		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return repository.NewSQLiteDatasetRepo(tx).Replace(ctx, data)
		})
		if err != nil {
			return err
		}

		s.store.Load(data)
		s.calc.Invalidate()
		result = &contract.ImportResult{
			ProjectCount: len(data.Projects),
			TeamCount:    len(data.Teams),
			FeatureCount: len(data.Features),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *plannerService) Projects(ctx context.Context) ([]*domain.Project, error) {
	return s.store.Projects(), nil
}

func (s *plannerService) Teams(ctx context.Context) ([]*domain.Team, error) {
	return s.store.Teams(), nil
}

func (s *plannerService) EffectiveFeatures(ctx context.Context) ([]*domain.EffectiveFeature, error) {
	return s.resolver.EffectiveFeatures(), nil
}

func (s *plannerService) EffectiveFeature(ctx context.Context, id string) (*domain.EffectiveFeature, error) {
	f := s.resolver.EffectiveFeatureByID(id)
	if f == nil {
		return nil, fmt.Errorf("feature not found: %q", id)
	}
	return f, nil
}

func (s *plannerService) Scenarios(ctx context.Context) ([]contract.ScenarioInfo, error) {
	activeID := s.scenarios.ActiveID()
	infos := []contract.ScenarioInfo{{
		Name:     "Baseline",
		Readonly: true,
		Active:   s.scenarios.BaselineActive(),
	}}
	for _, sc := range s.scenarios.List() {
		infos = append(infos, contract.ScenarioInfo{
			ID:            sc.ID,
			Name:          sc.Name,
			OverrideCount: len(sc.Overrides),
			Dirty:         sc.Dirty,
			Active:        sc.ID == activeID,
		})
	}
	return infos, nil
}

func (s *plannerService) CreateScenario(ctx context.Context, sourceID, name string) (*contract.ScenarioInfo, error) {
	var info *contract.ScenarioInfo
	err := observe(ctx, s.observer, "create_scenario", map[string]any{"source": sourceID}, func() error {
		sc := s.scenarios.Clone(sourceID, name, s.currentSnapshot())
		s.calc.Invalidate()
		if err := s.meta.Set(ctx, repository.MetaActiveScenario, sc.ID); err != nil {
			return err
		}
		info = &contract.ScenarioInfo{
			ID:            sc.ID,
			Name:          sc.Name,
			OverrideCount: len(sc.Overrides),
			Dirty:         sc.Dirty,
			Active:        true,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (s *plannerService) RenameScenario(ctx context.Context, id, name string) error {
	s.scenarios.Rename(id, name)
	return nil
}

func (s *plannerService) DeleteScenario(ctx context.Context, id string) error {
	return observe(ctx, s.observer, "delete_scenario", map[string]any{"id": id}, func() error {
		wasActive := s.scenarios.ActiveID() == id
		s.scenarios.Delete(id)
		if err := s.scenRepo.Delete(ctx, id); err != nil {
			return err
		}
		if wasActive {
			s.calc.Invalidate()
			return s.meta.Set(ctx, repository.MetaActiveScenario, s.scenarios.ActiveID())
		}
		return nil
	})
}

func (s *plannerService) SwitchScenario(ctx context.Context, id string) error {
	if id == s.scenarios.ActiveID() {
		return nil
	}
	s.scenarios.Activate(id)
	s.calc.Invalidate()
	return s.meta.Set(ctx, repository.MetaActiveScenario, id)
}

func (s *plannerService) SaveScenarios(ctx context.Context) (int, error) {
	saved := 0
	err := observe(ctx, s.observer, "save_scenarios", nil, func() error {
		for i, sc := range s.scenarios.List() {
			if !s.scenarios.IsDirty(sc.ID) {
				continue
			}
			if err := s.scenRepo.Save(ctx, sc, i); err != nil {
				return err
			}
			s.scenarios.MarkSaved(sc.ID)
			saved++
		}
		return nil
	})
	return saved, err
}

func (s *plannerService) MoveFeatures(ctx context.Context, updates []resolve.DateUpdate) ([]string, error) {
	var changed []string
	err := observe(ctx, s.observer, "move_features", map[string]any{"updates": len(updates)}, func() error {
		changed = s.resolver.UpdateFeatureDates(updates, s.recompute)
		return nil
	})
	return changed, err
}

func (s *plannerService) RevertFeature(ctx context.Context, id string) (bool, error) {
	reverted := false
	err := observe(ctx, s.observer, "revert_feature", map[string]any{"id": id}, func() error {
		reverted = s.resolver.RevertFeature(id, s.recompute)
		return nil
	})
	return reverted, err
}

// recompute is the resolver's capacity callback: it refreshes the cached
// tables incrementally for the changed ids under the current selection.
func (s *plannerService) recompute(changedIDs []string) {
	s.calc.Compute(capacity.Request{
		Features:   s.resolver.EffectiveFeatures(),
		Teams:      s.store.Teams(),
		Projects:   s.store.Projects(),
		Filter:     s.currentFilter(),
		Mode:       s.mode,
		ChangedIDs: changedIDs,
	})
}

func (s *plannerService) Capacity(ctx context.Context, req contract.CapacityRequest) (*capacity.Table, error) {
	var table *capacity.Table
	err := observe(ctx, s.observer, "capacity", nil, func() error {
		mode := s.mode
		if req.Mode != "" {
			if !domain.ValidEpicModes[req.Mode] {
				return fmt.Errorf("invalid epic mode %q", req.Mode)
			}
			mode = domain.EpicMode(req.Mode)
		}

		filter := s.currentFilter()
		// Explicit selections replace the scenario defaults; a provided but
		// empty selection deliberately shows nothing.
		if req.SelectedProjects != nil {
			filter.SelectedProjects = req.SelectedProjects
		}
		if req.SelectedTeams != nil {
			filter.SelectedTeams = req.SelectedTeams
		}
		if req.SelectedStates != nil {
			filter.SelectedStates = req.SelectedStates
		}

		table = s.calc.Compute(capacity.Request{
			Features: s.resolver.EffectiveFeatures(),
			Teams:    s.store.Teams(),
			Projects: s.store.Projects(),
			Filter:   filter,
			Mode:     mode,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

func (s *plannerService) EpicMode(ctx context.Context) (domain.EpicMode, error) {
	return s.mode, nil
}

func (s *plannerService) SetEpicMode(ctx context.Context, mode domain.EpicMode) error {
	if !domain.ValidEpicModes[string(mode)] {
		return fmt.Errorf("invalid epic mode %q", mode)
	}
	s.mode = mode
	s.calc.Invalidate()
	return s.meta.Set(ctx, repository.MetaEpicMode, string(mode))
}

// currentFilter resolves the selection in effect: the active scenario's
// filter snapshot, or everything selected when the baseline is active.
func (s *plannerService) currentFilter() capacity.Filter {
	if sc := s.scenarios.Get(s.scenarios.ActiveID()); sc != nil {
		return capacity.Filter{
			SelectedProjects: sc.Filters.SelectedProjects,
			SelectedTeams:    sc.Filters.SelectedTeams,
			SelectedStates:   sc.Filters.SelectedStates,
		}
	}
	return s.defaultFilter()
}

// defaultFilter selects every project, team and status present in the
// baseline.
func (s *plannerService) defaultFilter() capacity.Filter {
	var f capacity.Filter
	for _, p := range s.store.Projects() {
		f.SelectedProjects = append(f.SelectedProjects, p.ID)
	}
	for _, t := range s.store.Teams() {
		f.SelectedTeams = append(f.SelectedTeams, t.ID)
	}
	seen := make(map[string]bool)
	for _, feat := range s.store.Features() {
		if !seen[feat.Status] {
			seen[feat.Status] = true
			f.SelectedStates = append(f.SelectedStates, feat.Status)
		}
	}
	return f
}

// currentSnapshot captures the filters and view a new scenario inherits
// when cloned from the baseline.
func (s *plannerService) currentSnapshot() scenario.Snapshot {
	if sc := s.scenarios.Get(s.scenarios.ActiveID()); sc != nil {
		return scenario.Snapshot{Filters: sc.Filters.Clone(), View: sc.View.Clone()}
	}
	f := s.defaultFilter()
	return scenario.Snapshot{Filters: domain.FilterSnapshot{
		SelectedProjects: f.SelectedProjects,
		SelectedTeams:    f.SelectedTeams,
		SelectedStates:   f.SelectedStates,
	}}
}
