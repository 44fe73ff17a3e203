package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"tasktracker/internal/config"
	"tasktracker/internal/reducer"
	"tasktracker/internal/storage"
	"tasktracker/internal/todo"
	"tasktracker/internal/ui"
)

func main() {
	configPath := config.ResolveConfigPath()
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Printf("failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	loc, err := cfg.Location()
	if err != nil {
		fmt.Printf("invalid config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.Backend, cfg.StoragePath(), logger)
	if err != nil {
		fmt.Printf("failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	env := reducer.Env{
		Clock:    todo.SystemClock,
		Calendar: todo.NewCalendar(loc),
		IDs:      todo.RandomIDs,
	}
	logger.Info("starting", "config", configPath, "backend", cfg.Storage.Backend, "tab", cfg.Tab())
	if err := ui.Run(store, cfg, env, logger); err != nil {
		logger.Error("program exited", "err", err)
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to the configured file since the terminal belongs to
// the UI.
func newLogger(c config.Log) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		level = log.InfoLevel
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(c.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		Level:           level,
		Prefix:          "tasktracker",
		ReportTimestamp: true,
	})
	return logger, func() { f.Close() }, nil
}
