// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/evenbetter/backend/internal/models"
)

// ErrSessionNotFound is returned when a session ID does not exist.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists ledgers between requests.
// The store keeps snapshots verbatim; validating them on the way back in is
// the ledger's job (see ledger.Restore).
type SessionStore interface {
	// CreateSession persists a new, empty session.
	// The session.ID and timestamps are populated by the store when unset.
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves a session with its participants and expenses in
	// insertion order. Returns ErrSessionNotFound if it does not exist.
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)

	// SaveSnapshot replaces the participants and expenses of a session.
	SaveSnapshot(ctx context.Context, sessionID string, snap models.Snapshot) error

	// RenameSession updates the event name of a session.
	RenameSession(ctx context.Context, sessionID, eventName string) error

	// DeleteSession removes a session and everything it owns.
	DeleteSession(ctx context.Context, sessionID string) error

	// SessionExists reports whether the session is stored.
	SessionExists(ctx context.Context, sessionID string) (bool, error)
}

// PreferenceStore is a flat string key-value store for user settings.
type PreferenceStore interface {
	// GetPreference returns the value and whether the key was set.
	GetPreference(ctx context.Context, key string) (string, bool, error)

	// SetPreference stores a value, replacing any previous one.
	SetPreference(ctx context.Context, key, value string) error

	// DeletePreferences removes every key starting with prefix.
	DeletePreferences(ctx context.Context, prefix string) error
}

// Store combines session and preference storage.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	SessionStore
	PreferenceStore

	// Close releases any resources held by the store.
	Close() error
}
