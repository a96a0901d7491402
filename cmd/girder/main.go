package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/tfournier/girder/internal/cli"
	"github.com/tfournier/girder/internal/db"
	"github.com/tfournier/girder/internal/repository"
	"github.com/tfournier/girder/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.girder/girder.db
	dbPath := os.Getenv("GIRDER_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".girder", "girder.db")
	}

	logger := newLogger()

	// Snapshot use cases get a structured event trail when GIRDER_LOG is on;
	// otherwise they stay silent.
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("GIRDER_LOG") != "" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories and services
	snapshotRepo := repository.NewSQLiteSnapshotRepo(database)
	analysisSvc := service.NewAnalysisService(logger, observer)

	app := &cli.App{
		Analysis:  analysisSvc,
		Snapshots: service.NewSnapshotService(analysisSvc, snapshotRepo, observer),
		Input:     os.Getenv("GIRDER_INPUT"),
	}

	// Detect interactive terminal for pickers and the browse TUI.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// newLogger builds the process logger. GIRDER_LOG selects the level; empty
// disables everything below ERROR so command output stays clean.
func newLogger() *slog.Logger {
	level := slog.LevelError
	switch os.Getenv("GIRDER_LOG") {
	case "debug":
		level = slog.LevelDebug
	case "info", "1", "true":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
