package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/evenbetter/backend/internal/auth"
	"github.com/evenbetter/backend/internal/calculator"
	"github.com/evenbetter/backend/internal/ledger"
	"github.com/evenbetter/backend/internal/middleware"
	"github.com/evenbetter/backend/internal/models"
	"github.com/evenbetter/backend/internal/preferences"
	"github.com/evenbetter/backend/internal/report"
	"github.com/evenbetter/backend/internal/rpc"
	"github.com/evenbetter/backend/internal/storage"
)

// Ensure SessionService implements rpc.SessionServiceHandler
var _ rpc.SessionServiceHandler = (*SessionService)(nil)

// SessionService implements the Connect SessionService.
// Every mutation runs load -> restore ledger -> mutate -> save under a
// per-session lock, so concurrent requests on one session never lose writes.
type SessionService struct {
	store      storage.SessionStore
	prefs      *preferences.Service
	jwtManager *auth.JWTManager
	metrics    *middleware.Metrics
	locks      *sessionLocks
}

// NewSessionService creates a new SessionService. metrics may be nil.
func NewSessionService(store storage.SessionStore, prefs *preferences.Service, jwtManager *auth.JWTManager, metrics *middleware.Metrics) *SessionService {
	return &SessionService{
		store:      store,
		prefs:      prefs,
		jwtManager: jwtManager,
		metrics:    metrics,
		locks:      newSessionLocks(),
	}
}

// sessionID returns the session bound to the caller's token.
func sessionID(ctx context.Context) (string, error) {
	id := middleware.GetSessionID(ctx)
	if id == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errSessionRequired)
	}
	return id, nil
}

// load fetches the caller's session.
func (s *SessionService) load(ctx context.Context) (*models.Session, error) {
	id, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}
	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	return session, nil
}

// mutate applies fn to the caller's ledger and persists the result.
// Nothing is saved when fn fails.
func (s *SessionService) mutate(ctx context.Context, fn func(*ledger.Ledger) error) (*models.Session, error) {
	id, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(id)
	defer unlock()

	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}

	l, err := ledger.Restore(session.Snapshot)
	if err != nil {
		slog.Error("Stored session is corrupt", "session_id", id, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	if err := fn(l); err != nil {
		return nil, toConnectError(err)
	}

	snap := l.Snapshot()
	if err := s.store.SaveSnapshot(ctx, id, snap); err != nil {
		slog.Error("SaveSnapshot failed", "session_id", id, "error", err)
		return nil, toConnectError(err)
	}
	session.Snapshot = snap

	return session, nil
}

// CreateSession starts a new, empty session and returns its token.
func (s *SessionService) CreateSession(ctx context.Context, req *connect.Request[rpc.CreateSessionRequest]) (*connect.Response[rpc.CreateSessionResponse], error) {
	session := &models.Session{
		EventName: strings.TrimSpace(req.Msg.EventName),
		Snapshot: models.Snapshot{
			Participants: []models.Participant{},
			Expenses:     []models.Expense{},
		},
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		slog.Error("CreateSession failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.jwtManager.Generate(session.ID)
	if err != nil {
		slog.Error("Failed to issue session token", "session_id", session.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Session created", "session_id", session.ID, "event_name", session.EventName)

	return connect.NewResponse(&rpc.CreateSessionResponse{
		Session: session,
		Token:   token,
	}), nil
}

// GetSession returns the caller's session.
func (s *SessionService) GetSession(ctx context.Context, req *connect.Request[rpc.GetSessionRequest]) (*connect.Response[rpc.GetSessionResponse], error) {
	session, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&rpc.GetSessionResponse{Session: session}), nil
}

// RenameSession changes the event name shown on the report.
func (s *SessionService) RenameSession(ctx context.Context, req *connect.Request[rpc.RenameSessionRequest]) (*connect.Response[rpc.RenameSessionResponse], error) {
	id, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(id)
	err = s.store.RenameSession(ctx, id, strings.TrimSpace(req.Msg.EventName))
	unlock()
	if err != nil {
		return nil, toConnectError(err)
	}

	session, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&rpc.RenameSessionResponse{Session: session}), nil
}

// AddParticipant adds a participant and, optionally, what they paid.
func (s *SessionService) AddParticipant(ctx context.Context, req *connect.Request[rpc.AddParticipantRequest]) (*connect.Response[rpc.AddParticipantResponse], error) {
	var amounts *ledger.Amounts
	if in := req.Msg.Expense; in != nil {
		a, err := ledger.ResolveAmounts(in.Total, in.Meat, in.General)
		if err != nil {
			return nil, toConnectError(err)
		}
		amounts = &a
	}

	var (
		participant models.Participant
		expense     *models.Expense
	)
	session, err := s.mutate(ctx, func(l *ledger.Ledger) error {
		var err error
		participant, expense, err = l.AddParticipantWithExpense(req.Msg.Name, req.Msg.IsVegetarian, amounts)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Participant added",
		"session_id", session.ID,
		"participant_id", participant.ID,
		"vegetarian", participant.IsVegetarian,
		"with_expense", expense != nil,
	)

	return connect.NewResponse(&rpc.AddParticipantResponse{
		Participant: participant,
		Expense:     expense,
		Session:     session,
	}), nil
}

// AddExpense records the payment of an existing participant.
func (s *SessionService) AddExpense(ctx context.Context, req *connect.Request[rpc.AddExpenseRequest]) (*connect.Response[rpc.AddExpenseResponse], error) {
	amounts, err := ledger.ResolveAmounts(req.Msg.Total, req.Msg.Meat, req.Msg.General)
	if err != nil {
		return nil, toConnectError(err)
	}

	var expense models.Expense
	session, err := s.mutate(ctx, func(l *ledger.Ledger) error {
		var err error
		expense, err = l.AddExpense(req.Msg.PayerID, amounts.Total, amounts.Meat, amounts.General)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Expense added",
		"session_id", session.ID,
		"payer_id", expense.PayerID,
		"total", expense.TotalAmount,
		"meat", expense.MeatAmount,
		"general", expense.GeneralAmount,
	)

	return connect.NewResponse(&rpc.AddExpenseResponse{
		Expense: expense,
		Session: session,
	}), nil
}

// RemoveParticipant removes a participant and their expense.
func (s *SessionService) RemoveParticipant(ctx context.Context, req *connect.Request[rpc.RemoveParticipantRequest]) (*connect.Response[rpc.RemoveParticipantResponse], error) {
	session, err := s.mutate(ctx, func(l *ledger.Ledger) error {
		l.RemoveParticipant(req.Msg.ParticipantID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&rpc.RemoveParticipantResponse{Session: session}), nil
}

// ResetSession clears all participants and expenses but keeps the session.
func (s *SessionService) ResetSession(ctx context.Context, req *connect.Request[rpc.ResetSessionRequest]) (*connect.Response[rpc.ResetSessionResponse], error) {
	session, err := s.mutate(ctx, func(l *ledger.Ledger) error {
		l.ResetAll()
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("Session reset", "session_id", session.ID)
	return connect.NewResponse(&rpc.ResetSessionResponse{Session: session}), nil
}

// DeleteSession removes the session and its preferences.
func (s *SessionService) DeleteSession(ctx context.Context, req *connect.Request[rpc.DeleteSessionRequest]) (*connect.Response[rpc.DeleteSessionResponse], error) {
	id, err := sessionID(ctx)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(id)
	defer unlock()

	if err := s.store.DeleteSession(ctx, id); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.prefs.Clear(ctx, id); err != nil {
		// The session is gone; stale preferences are harmless
		slog.Warn("Failed to clear preferences", "session_id", id, "error", err)
	}

	slog.Info("Session deleted", "session_id", id)
	return connect.NewResponse(&rpc.DeleteSessionResponse{}), nil
}

// GetSettlement computes who pays whom. A meat pool nobody can bear is
// reported in the response, not as an RPC error.
func (s *SessionService) GetSettlement(ctx context.Context, req *connect.Request[rpc.GetSettlementRequest]) (*connect.Response[rpc.GetSettlementResponse], error) {
	session, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	settlement, err := calculator.Settle(session.Snapshot)
	switch {
	case errors.Is(err, calculator.ErrNothingToSettle):
		s.metrics.ObserveSettlement(middleware.OutcomeNothingToSettle)
		return connect.NewResponse(&rpc.GetSettlementResponse{}), nil
	case errors.Is(err, calculator.ErrNoEligibleMeatPayers):
		s.metrics.ObserveSettlement(middleware.OutcomeNoMeatPayers)
		prefs, prefErr := s.prefs.Get(ctx, session.ID)
		if prefErr != nil {
			slog.Warn("Failed to load preferences", "session_id", session.ID, "error", prefErr)
			prefs = preferences.Defaults()
		}
		return connect.NewResponse(&rpc.GetSettlementResponse{
			Error: &rpc.SettlementError{
				Code:    rpc.SettlementErrorNoEligibleMeatPayers,
				Message: report.NoMeatPayersMessage(prefs.Language),
			},
		}), nil
	case err != nil:
		s.metrics.ObserveSettlement(middleware.OutcomeSettlementFailed)
		slog.Error("Settle failed", "session_id", session.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.metrics.ObserveSettlement(middleware.OutcomeSettled)
	slog.Debug("Settlement computed",
		"session_id", session.ID,
		"total_general", settlement.TotalGeneral,
		"total_meat", settlement.TotalMeat,
		"transactions", len(settlement.Transactions),
	)

	return connect.NewResponse(&rpc.GetSettlementResponse{Settlement: settlement}), nil
}

// ShareSettlement renders the settlement as a message in the session's
// language and currency.
func (s *SessionService) ShareSettlement(ctx context.Context, req *connect.Request[rpc.ShareSettlementRequest]) (*connect.Response[rpc.ShareSettlementResponse], error) {
	session, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	prefs, err := s.prefs.Get(ctx, session.ID)
	if err != nil {
		slog.Error("Failed to load preferences", "session_id", session.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	settlement, err := calculator.Settle(session.Snapshot)
	switch {
	case errors.Is(err, calculator.ErrNothingToSettle):
		return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New(report.NoDataToShareMessage(prefs.Language)))
	case errors.Is(err, calculator.ErrNoEligibleMeatPayers):
		return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New(report.NoMeatPayersMessage(prefs.Language)))
	case err != nil:
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	message := report.ShareText(settlement, report.ShareOptions{
		Preferences:  prefs,
		RoundAmounts: req.Msg.RoundAmounts,
		EventName:    session.EventName,
	})

	parts := []string{message}
	if prefs.IncludeImage {
		parts = report.SplitMessage(message, report.MaxSafeMessage)
	}

	return connect.NewResponse(&rpc.ShareSettlementResponse{
		Message:      message,
		Parts:        parts,
		IncludeImage: prefs.IncludeImage,
	}), nil
}
