package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alexanderramin/tasktracker/internal/cli"
	"github.com/alexanderramin/tasktracker/internal/config"
	"github.com/alexanderramin/tasktracker/internal/db"
	"github.com/alexanderramin/tasktracker/internal/persistence"
	"github.com/alexanderramin/tasktracker/internal/tracker"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	// Config file: env var or default ~/.tasktracker/config.yaml
	configPath := os.Getenv(config.EnvPrefix + "_CONFIG")
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		configPath = filepath.Join(home, ".tasktracker", "config.yaml")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := new(slog.LevelVar)
	level.Set(cfg.SlogLevel())
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	blob, closeBlob, err := openBlob(cfg)
	if err != nil {
		return err
	}
	defer closeBlob()

	mgr, err := persistence.Open(context.Background(), blob,
		[]tracker.Option{tracker.WithLogger(logger)},
		persistence.WithSaveObserver(persistence.NewLogSaveObserver(logger)),
	)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	logger.Debug("store_opened", "storage", cfg.Storage, "target", blob.String())

	app := &cli.App{
		Manager:  mgr,
		LogLevel: level,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		},
	}
	if lister, ok := blob.(cli.RevisionLister); ok {
		app.Revisions = lister
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// openBlob picks the storage backend. The returned func releases it.
func openBlob(cfg *config.Config) (persistence.Blob, func(), error) {
	switch cfg.Storage {
	case config.BackendMemory:
		return persistence.NewMemoryBlob(nil), func() {}, nil
	case config.BackendSQLite:
		database, err := db.OpenDB(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		uow := db.NewSQLiteUnitOfWork(database)
		return persistence.NewSQLiteBlob(uow, cfg.Path, cfg.KeepSnapshots), func() { database.Close() }, nil
	default:
		return persistence.NewFileBlob(cfg.Path), func() {}, nil
	}
}
