package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/planscope/planscope/internal/cli"
	"github.com/planscope/planscope/internal/cli/formatter"
	"github.com/planscope/planscope/internal/config"
	"github.com/planscope/planscope/internal/db"
	"github.com/planscope/planscope/internal/domain"
	"github.com/planscope/planscope/internal/repository"
	"github.com/planscope/planscope/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating app directory: %w", err)
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories and the unit of work.
	datasets := repository.NewSQLiteDatasetRepo(database)
	scenarios := repository.NewSQLiteScenarioRepo(database)
	meta := repository.NewSQLiteMetaRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	planner := service.NewPlannerService(datasets, scenarios, meta, uow, observers...)
	if err := planner.Init(context.Background()); err != nil {
		return fmt.Errorf("initializing planner: %w", err)
	}

	// Config only seeds the epic mode; once set via "mode set" the stored
	// value wins.
	if stored, err := meta.Get(context.Background(), repository.MetaEpicMode); err != nil {
		return err
	} else if stored == "" && domain.ValidEpicModes[cfg.EpicMode] {
		if err := planner.SetEpicMode(context.Background(), domain.EpicMode(cfg.EpicMode)); err != nil {
			return err
		}
	}

	// Color: config wins, otherwise detect an interactive terminal.
	colorOn := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if cfg.Color != nil {
		colorOn = *cfg.Color
	}
	formatter.SetColorEnabled(colorOn)

	app := &cli.App{Planner: planner}
	return cli.NewRootCmd(app).Execute()
}
