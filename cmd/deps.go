package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/NoamFav/bitvoyager/internal/app"
	"github.com/NoamFav/bitvoyager/internal/config"
	"github.com/NoamFav/bitvoyager/internal/hints"
	"github.com/NoamFav/bitvoyager/internal/llm"
	"github.com/NoamFav/bitvoyager/internal/session"
	"github.com/NoamFav/bitvoyager/internal/store"
)

// deps is everything a command needs to drive practice for one learner.
type deps struct {
	cfg    *config.Config
	store  *store.Store
	engine *session.Engine
	logger *slog.Logger
	log    io.Closer
}

// loadConfig reads the config file and applies the persistent flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.Store.DSN = db
	}
	if learner, _ := cmd.Flags().GetString("learner"); learner != "" {
		cfg.Learner.ID = learner
	}
	return cfg, nil
}

// resolveDBPath returns the database DSN using --db flag (highest priority),
// then the config file and BITVOYAGER_DB, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if dsn := cfg.Store.DSN; dsn != "" {
		return dsn, store.EnsureDir(dsn)
	}
	return store.DefaultDBPath()
}

// openStore opens the configured database without building an engine.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dsn, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// buildDeps wires config, logging, storage, catalogs, the hint provider and
// the practice engine. tui selects the TUI logging defaults.
func buildDeps(cmd *cobra.Command, tui bool) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, logCloser, err := app.NewLogger(cfg.Log, tui)
	if err != nil {
		return nil, err
	}
	d := &deps{cfg: cfg, logger: logger, log: logCloser}

	dsn, err := resolveDBPath(cfg)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dsn)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	d.store = st

	exercises, err := cfg.Practice.LoadExercises()
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("load exercises: %w", err)
	}
	if ids := exercises.Untracked(); cfg.Practice.Exercises != "" && len(ids) > 0 {
		logger.Warn("exercises with no tracked skill tag", "ids", ids)
	}
	tasks, err := cfg.Practice.LoadTasks()
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	provider, err := llm.NewProvider(cmd.Context(), cfg.LLM.Resolve(), st.EventRepo(), logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Hints will be generated offline.")
		provider = nil
	}

	d.engine = session.NewEngine(session.Deps{
		LearnerID:   cfg.Learner.ID,
		Store:       st,
		Exercises:   exercises,
		Tasks:       tasks,
		Hints:       hints.NewService(provider, hints.DefaultConfig(), logger),
		Retention:   cfg.Practice.Retention,
		IdleTimeout: cfg.Practice.IdleTimeout,
		Logger:      logger,
	})
	return d, nil
}

// Close releases the store and the log file.
func (d *deps) Close() error {
	var errs []error
	if d.store != nil {
		errs = append(errs, d.store.Close())
	}
	if d.log != nil {
		errs = append(errs, d.log.Close())
	}
	return errors.Join(errs...)
}
