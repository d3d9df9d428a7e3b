package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/agribot/internal/cli"
	"github.com/alexanderramin/agribot/internal/db"
	"github.com/alexanderramin/agribot/internal/intelligence"
	"github.com/alexanderramin/agribot/internal/knowledge"
	"github.com/alexanderramin/agribot/internal/llm"
	"github.com/alexanderramin/agribot/internal/logger"
	"github.com/alexanderramin/agribot/internal/repository"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	level := os.Getenv("AGRIBOT_LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	log, atomicLevel := logger.NewLeveled(level, os.Getenv("AGRIBOT_LOG_FORMAT"))
	defer log.Sync()

	cfg, err := llm.LoadConfig()
	if err != nil {
		log.Warn("invalid configuration, using defaults", zap.Error(err))
	}

	app := &cli.App{
		Log:      log,
		LogLevel: &atomicLevel,
		IsInteractive: func() bool {
			in, out := os.Stdin.Fd(), os.Stdout.Fd()
			return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
				(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
		},
	}

	observers := llm.MultiObserver{llm.NewZapObserver(log)}

	// Call telemetry is opt-in; open the store only when asked for.
	if cfg.LogCalls || cfg.CallsDB != "" {
		path := cfg.CallsDB
		if path == "" {
			path = db.DefaultPath()
		}
		database, err := db.OpenDB(path)
		if err != nil {
			return fmt.Errorf("opening call log: %w", err)
		}
		defer database.Close()

		repo := repository.NewSQLiteCallEventRepo(database)
		observers = append(observers, llm.NewStoreObserver(repo, log))
		app.Calls = repo
	}

	app.Assistant = intelligence.NewAssistant(knowledge.Default(),
		intelligence.WithGeneration(llm.NewLoader(cfg), cfg),
		intelligence.WithObserver(observers),
		intelligence.WithLogger(log),
	)

	return cli.NewRootCmd(app).Execute()
}
