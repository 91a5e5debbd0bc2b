package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/evenbetter/backend/internal/preferences"
	"github.com/evenbetter/backend/internal/rpc"
	"github.com/evenbetter/backend/internal/storage"
)

// Ensure PreferenceService implements rpc.PreferenceServiceHandler
var _ rpc.PreferenceServiceHandler = (*PreferenceService)(nil)

// PreferenceService implements the Connect PreferenceService.
// Preferences belong to a session: once the session is deleted every call
// fails with NotFound, and writes share the session's lock so they cannot
// land after DeleteSession has cleared them.
type PreferenceService struct {
	sessions storage.SessionStore
	prefs    *preferences.Service
	locks    *sessionLocks
}

// NewPreferenceService creates a PreferenceService bound to the sessions
// served by sessions.
func NewPreferenceService(sessions *SessionService) *PreferenceService {
	return &PreferenceService{
		sessions: sessions.store,
		prefs:    sessions.prefs,
		locks:    sessions.locks,
	}
}

// requireSession fails with NotFound when the session no longer exists.
func (s *PreferenceService) requireSession(ctx context.Context, id string) error {
	exists, err := s.sessions.SessionExists(ctx, id)
	if err != nil {
		slog.Error("SessionExists failed", "session_id", id, "error", err)
		return toConnectError(err)
	}
	if !exists {
		return toConnectError(fmt.Errorf("%w: %s", storage.ErrSessionNotFound, id))
	}
	return nil
}

// GetPreferences returns the caller's effective preferences.
func (s *PreferenceService) GetPreferences(ctx context.Context, req *connect.Request[rpc.GetPreferencesRequest]) (*connect.Response[rpc.GetPreferencesResponse], error) {
	id, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.requireSession(ctx, id); err != nil {
		return nil, err
	}
	prefs, err := s.prefs.Get(ctx, id)
	if err != nil {
		slog.Error("GetPreferences failed", "session_id", id, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&rpc.GetPreferencesResponse{Preferences: prefs}), nil
}

// UpdatePreferences changes the fields that are set in the request.
func (s *PreferenceService) UpdatePreferences(ctx context.Context, req *connect.Request[rpc.UpdatePreferencesRequest]) (*connect.Response[rpc.UpdatePreferencesResponse], error) {
	id, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(id)
	defer unlock()

	if err := s.requireSession(ctx, id); err != nil {
		return nil, err
	}
	prefs, err := s.prefs.Update(ctx, id, preferences.Update{
		Language:     req.Msg.Language,
		Currency:     req.Msg.Currency,
		IncludeImage: req.Msg.IncludeImage,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Debug("Preferences updated",
		"session_id", id,
		"language", prefs.Language,
		"currency", prefs.Currency,
		"include_image", prefs.IncludeImage,
	)
	return connect.NewResponse(&rpc.UpdatePreferencesResponse{Preferences: prefs}), nil
}

// ToggleLanguage flips the report language between Hebrew and English.
func (s *PreferenceService) ToggleLanguage(ctx context.Context, req *connect.Request[rpc.ToggleLanguageRequest]) (*connect.Response[rpc.ToggleLanguageResponse], error) {
	id, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(id)
	defer unlock()

	if err := s.requireSession(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.prefs.ToggleLanguage(ctx, id); err != nil {
		return nil, toConnectError(err)
	}
	prefs, err := s.prefs.Get(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&rpc.ToggleLanguageResponse{Preferences: prefs}), nil
}

// DetectPreferences suggests preferences for a device locale. Nothing is saved.
func (s *PreferenceService) DetectPreferences(ctx context.Context, req *connect.Request[rpc.DetectPreferencesRequest]) (*connect.Response[rpc.DetectPreferencesResponse], error) {
	return connect.NewResponse(&rpc.DetectPreferencesResponse{
		Preferences: preferences.Detect(req.Msg.Locale),
	}), nil
}
