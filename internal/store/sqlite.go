package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/inbox-pilot/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// An in-memory database is private to its connection.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the highest applied migration version.
func (s *SQLiteStore) SchemaVersion() (int, error) {
	var v int
	if err := s.db.Get(&v, "SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		currentVersion, err = s.SchemaVersion()
		if err != nil {
			return err
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

type preferenceRow struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

// LoadPreferences returns the stored preferences layered over defaults.
// Unrecognized stored values leave the default in place.
func (s *SQLiteStore) LoadPreferences(ctx context.Context, defaults model.Preferences) (model.Preferences, error) {
	var rows []preferenceRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT key, value FROM preferences"); err != nil {
		return defaults, fmt.Errorf("querying preferences: %w", err)
	}

	prefs := defaults
	for _, r := range rows {
		switch r.Key {
		case KeyTone:
			for _, t := range model.Tones {
				if string(t) == r.Value {
					prefs.Tone = t
				}
			}
		case KeyFollowUpDuration:
			for _, d := range model.FollowUpDurations {
				if string(d) == r.Value {
					prefs.FollowUpDuration = d
				}
			}
		case KeySampleData:
			if b, err := strconv.ParseBool(r.Value); err == nil {
				prefs.SampleData = b
			}
		}
	}
	return prefs, nil
}

// SavePreferences writes every preference field in one transaction.
func (s *SQLiteStore) SavePreferences(ctx context.Context, prefs model.Preferences) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	values := map[string]string{
		KeyTone:             string(prefs.Tone),
		KeyFollowUpDuration: string(prefs.FollowUpDuration),
		KeySampleData:       strconv.FormatBool(prefs.SampleData),
	}
	for k, v := range values {
		if err := upsertPreference(ctx, tx, k, v); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SetPreference writes a single key.
func (s *SQLiteStore) SetPreference(ctx context.Context, key, value string) error {
	return upsertPreference(ctx, s.db, key, value)
}

func upsertPreference(ctx context.Context, ex sqlx.ExecerContext, key, value string) error {
	const query = `
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := ex.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("saving preference %q: %w", key, err)
	}
	return nil
}
