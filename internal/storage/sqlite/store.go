// Package sqlite implements the portal repositories over a single SQLite
// file. Migrations are embedded and applied on open; timestamps are stored
// as millisecond UTC integers.
package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/luzeprogresso/portal/internal/auth"
	sqlitemigrate "github.com/luzeprogresso/portal/internal/platform/storage/sqlitemigrate"
	"github.com/luzeprogresso/portal/internal/storage"
	"github.com/luzeprogresso/portal/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for the whole portal. One file
// backs identity and content so pages can rely on shared visibility.
type Store struct {
	sqlDB *sql.DB
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func nullMillis(value *time.Time) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toMillis(*value), Valid: true}
}

func millisPtr(value sql.NullInt64) *time.Time {
	if !value.Valid {
		return nil
	}
	parsed := fromMillis(value.Int64)
	return &parsed
}

// Open opens the portal store at the provided path and applies bundled
// migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := store.runMigrations(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) runMigrations() error {
	return sqlitemigrate.ApplyMigrations(s.sqlDB, migrations.FS, "")
}

var _ auth.Store = (*Store)(nil)
var _ storage.EventStore = (*Store)(nil)
var _ storage.ActivityStore = (*Store)(nil)
var _ storage.ArticleStore = (*Store)(nil)
var _ storage.OfficerStore = (*Store)(nil)
var _ storage.LodgeInfoStore = (*Store)(nil)
var _ storage.ContactMessageStore = (*Store)(nil)
var _ storage.EducationStore = (*Store)(nil)
var _ storage.DocumentStore = (*Store)(nil)
var _ storage.AgendaStore = (*Store)(nil)
var _ storage.MemberMessageStore = (*Store)(nil)
var _ storage.MasterStore = (*Store)(nil)
var _ storage.StudyWorkStore = (*Store)(nil)
