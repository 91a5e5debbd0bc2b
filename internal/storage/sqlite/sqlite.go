// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/evenbetter/backend/internal/models"
	"github.com/evenbetter/backend/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Foreign keys are per connection, so set them in the DSN
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer at a time; SQLite serializes writes anyway
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession persists a new session with an empty ledger.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *models.Session) error {
	// Generate IDs if not set
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt == 0 {
		session.CreatedAt = time.Now().Unix()
	}
	session.UpdatedAt = session.CreatedAt

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (id, event_name, created_at, updated_at) VALUES (?, ?, ?, ?)",
		session.ID, session.EventName, session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	if len(session.Snapshot.Participants) > 0 || len(session.Snapshot.Expenses) > 0 {
		return s.SaveSnapshot(ctx, session.ID, session.Snapshot)
	}
	return nil
}

// GetSession retrieves a session by ID, including its participants and expenses.
// All three reads share one transaction so a concurrent SaveSnapshot is seen
// either entirely or not at all.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	session := &models.Session{}
	err = tx.QueryRowContext(ctx,
		"SELECT id, event_name, created_at, updated_at FROM sessions WHERE id = ?",
		sessionID,
	).Scan(&session.ID, &session.EventName, &session.CreatedAt, &session.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrSessionNotFound, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	snap, err := loadSnapshot(ctx, tx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Snapshot = snap

	return session, nil
}

// SessionExists reports whether a session with the given ID is stored.
func (s *SQLiteStore) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM sessions WHERE id = ?)", sessionID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}
	return exists, nil
}

// RenameSession updates the event name of a session.
func (s *SQLiteStore) RenameSession(ctx context.Context, sessionID, eventName string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE sessions SET event_name = ?, updated_at = ? WHERE id = ?",
		eventName, time.Now().Unix(), sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to rename session: %w", err)
	}
	return requireRow(res, sessionID)
}

// DeleteSession removes a session; participants and expenses cascade.
func (s *SQLiteStore) DeleteSession(ctx context.Context, sessionID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return requireRow(res, sessionID)
}

// requireRow maps "no rows affected" to ErrSessionNotFound.
func requireRow(res sql.Result, sessionID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrSessionNotFound, sessionID)
	}
	return nil
}
