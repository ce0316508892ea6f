package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jdelgad/nudge/internal/calendar"
	"github.com/jdelgad/nudge/internal/classify"
	"github.com/jdelgad/nudge/internal/cli"
	"github.com/jdelgad/nudge/internal/config"
	"github.com/jdelgad/nudge/internal/db"
	"github.com/jdelgad/nudge/internal/gcal"
	"github.com/jdelgad/nudge/internal/repository"
	"github.com/jdelgad/nudge/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	taskRepo := repository.NewSQLiteTaskRepo(database)
	reviewRepo := repository.NewSQLiteReviewRepo(database)
	identityRepo := repository.NewSQLiteIdentityRepo(database)

	// Calendar trouble must not keep the CLI from running; everything
	// downstream treats a nil port as "no calendar".
	var cal calendar.Port
	if cfg.CalendarEnabled {
		adapter, err := gcal.New(context.Background(), cfg)
		if err != nil {
			slog.Warn("calendar integration unavailable", "error", err)
		} else {
			cal = adapter
		}
	}

	app := &cli.App{
		Engine: service.NewEngine(taskRepo, reviewRepo, identityRepo, cal, cfg),
	}

	llmCfg := classify.LoadConfig()
	if llmCfg.Enabled {
		app.Classifier = classify.NewClassifier(classify.NewOllamaClient(llmCfg))
	}

	return cli.NewRootCmd(app).Execute()
}
