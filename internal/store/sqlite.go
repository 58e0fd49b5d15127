// Package store persists user profiles and the sent-listing ledger in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/calab/jobscout/internal/profile"
)

// ErrStorage marks persistence I/O failures. Callers surface a generic
// message and never leak the underlying driver error to the user.
var ErrStorage = errors.New("storage failure")

// Store is a SQLite-backed profile store and dedup ledger.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens (or creates) the database at dsn and runs migrations. Safe to
// call on every process start.
func Open(dsn string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection so schema and data survive across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &Store{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return s, nil
}

// migrate ensures the schema exists. The profiles table started life with
// only the role and skills columns; the interview columns are added with
// ALTER TABLE so an old database upgrades in place without losing rows.
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id INTEGER PRIMARY KEY,
			target_role TEXT NOT NULL DEFAULT '',
			skills TEXT NOT NULL DEFAULT '[]'
		)`,
		`CREATE TABLE IF NOT EXISTS sent_listings (
			user_id INTEGER NOT NULL,
			link TEXT NOT NULL,
			sent_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, link)
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	optional := []string{"first_name", "last_name", "phone", "experience_level"}
	for _, column := range optional {
		if err := s.addColumn("profiles", column); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) addColumn(table, column string) error {
	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s TEXT NOT NULL DEFAULT ''", table, column)
	if _, err := s.db.Exec(stmt); err != nil {
		// SQLite has no ADD COLUMN IF NOT EXISTS; an already-present column
		// is the expected outcome on every start after the first.
		if strings.Contains(err.Error(), "duplicate column name") {
			return nil
		}
		return fmt.Errorf("add column %s.%s: %w", table, column, err)
	}

	s.logger.Debug("schema upgraded", zap.String("table", table), zap.String("column", column))
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveProfile merges the patch into the stored record for userID. Fields
// absent from the patch keep their stored value; a non-nil skills slice
// replaces the stored skills entirely. The read-modify-write runs in one
// transaction so concurrent sessions cannot corrupt the row.
func (s *Store) SaveProfile(ctx context.Context, userID int64, patch profile.Patch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin save: %v", ErrStorage, err)
	}
	defer tx.Rollback()

	stored, _, err := loadProfileTx(ctx, tx, userID)
	if err != nil {
		return err
	}
	stored.UserID = userID

	merged := profile.Merge(stored, patch)

	skillsJSON, err := json.Marshal(merged.Skills)
	if err != nil {
		return fmt.Errorf("%w: encode skills: %v", ErrStorage, err)
	}
	if merged.Skills == nil {
		skillsJSON = []byte("[]")
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO profiles (user_id, target_role, skills, first_name, last_name, phone, experience_level)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			target_role = excluded.target_role,
			skills = excluded.skills,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			phone = excluded.phone,
			experience_level = excluded.experience_level`,
		userID, merged.TargetRole, string(skillsJSON),
		merged.FirstName, merged.LastName, merged.Phone, merged.ExperienceLevel,
	)
	if err != nil {
		return fmt.Errorf("%w: save profile: %v", ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit save: %v", ErrStorage, err)
	}

	return nil
}

// LoadProfile returns the stored profile and whether a record exists.
// A missing record is not an error.
func (s *Store) LoadProfile(ctx context.Context, userID int64) (profile.Profile, bool, error) {
	return loadProfileTx(ctx, s.db, userID)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func loadProfileTx(ctx context.Context, q querier, userID int64) (profile.Profile, bool, error) {
	var (
		p          profile.Profile
		skillsJSON string
	)

	row := q.QueryRowContext(ctx,
		`SELECT user_id, target_role, skills, first_name, last_name, phone, experience_level
		 FROM profiles WHERE user_id = ?`, userID)

	err := row.Scan(&p.UserID, &p.TargetRole, &skillsJSON,
		&p.FirstName, &p.LastName, &p.Phone, &p.ExperienceLevel)
	if errors.Is(err, sql.ErrNoRows) {
		return profile.Profile{}, false, nil
	}
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("%w: load profile: %v", ErrStorage, err)
	}

	if skillsJSON != "" {
		if err := json.Unmarshal([]byte(skillsJSON), &p.Skills); err != nil {
			return profile.Profile{}, false, fmt.Errorf("%w: decode skills: %v", ErrStorage, err)
		}
	}

	return p, true, nil
}

// WasListingSent reports whether the listing link was already delivered to
// the user.
func (s *Store) WasListingSent(ctx context.Context, userID int64, link string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM sent_listings WHERE user_id = ? AND link = ?`, userID, link).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: check sent listing: %v", ErrStorage, err)
	}
	return true, nil
}

// RecordListingSent records the (user, link) pair in the ledger. A duplicate
// insert is a silent no-op.
func (s *Store) RecordListingSent(ctx context.Context, userID int64, link string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO sent_listings (user_id, link) VALUES (?, ?)`, userID, link)
	if err != nil {
		return fmt.Errorf("%w: record sent listing: %v", ErrStorage, err)
	}
	return nil
}
