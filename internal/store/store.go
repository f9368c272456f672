package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"

	// Postgres driver registered as "pgx".
	_ "github.com/jackc/pgx/v5/stdlib"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store holds the database handle and provides access to repositories.
type Store struct {
	db      *sql.DB
	drv     *entsql.Driver
	dialect string
	seq     *sequenceCounter
	now     func() time.Time
}

// Open connects to the database named by dsn and runs auto-migration.
// A postgres:// or postgresql:// URL selects PostgreSQL; anything else is
// treated as a SQLite path or DSN.
func Open(dsn string) (*Store, error) {
	driverName, dialectName := "sqlite", dialect.SQLite
	if isPostgresDSN(dsn) {
		driverName, dialectName = "pgx", dialect.Postgres
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dialectName == dialect.SQLite {
		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	}

	drv := entsql.OpenDB(dialectName, db)
	if err := migrate(context.Background(), drv); err != nil {
		drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		drv.Close()
		return nil, err
	}

	return &Store{db: db, drv: drv, dialect: dialectName, seq: seq, now: time.Now}, nil
}

func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, Tables...)
}

// WithClock returns a view of s whose repositories stamp rows and judge
// retention with now. The view shares s's connection; close only one.
func (s *Store) WithClock(now func() time.Time) *Store {
	c := *s
	c.now = now
	return &c
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect returns the ent dialect name in use ("sqlite3" or "postgres").
func (s *Store) Dialect() string {
	return s.dialect
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// ProfileRepo returns the profile document repository.
func (s *Store) ProfileRepo() *ProfileRepo {
	return &ProfileRepo{q: s.querier()}
}

// TaskRepo returns the task completion repository for one learner.
// Completions older than retention are forgotten; zero keeps them forever.
func (s *Store) TaskRepo(learnerID string, retention time.Duration) *TaskRepo {
	return &TaskRepo{q: s.querier(), learnerID: learnerID, retention: retention, now: s.now}
}

// HistoryRepo returns the command history feed for one learner.
func (s *Store) HistoryRepo(learnerID string) *HistoryRepo {
	return &HistoryRepo{q: s.querier(), learnerID: learnerID, now: s.now}
}

// SettingsRepo returns the key/value settings for one learner.
func (s *Store) SettingsRepo(learnerID string) *SettingsRepo {
	return &SettingsRepo{q: s.querier(), learnerID: learnerID, now: s.now}
}

// EventRepo returns the append-only event repository.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{q: s.querier(), seq: s.seq, now: s.now}
}

func (s *Store) querier() querier {
	return querier{db: s.db, dialect: s.dialect}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// DefaultDBPath resolves the database file path in priority order:
// 1. BITVOYAGER_DB environment variable
// 2. $XDG_DATA_HOME/bitvoyager/bitvoyager.db
// 3. ~/.local/share/bitvoyager/bitvoyager.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("BITVOYAGER_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "bitvoyager", "bitvoyager.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
// Postgres URLs and in-memory DSNs are left alone.
func EnsureDir(path string) error {
	if isPostgresDSN(path) || strings.HasPrefix(path, "file:") || strings.Contains(path, ":memory:") {
		return nil
	}
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
