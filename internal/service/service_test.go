package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/evenbetter/backend/internal/auth"
	"github.com/evenbetter/backend/internal/middleware"
	"github.com/evenbetter/backend/internal/preferences"
	"github.com/evenbetter/backend/internal/rpc"
	"github.com/evenbetter/backend/internal/storage/sqlite"
)

type testClients struct {
	sessions    *rpc.SessionServiceClient
	preferences *rpc.PreferenceServiceClient
	service     *SessionService
	store       *sqlite.SQLiteStore
}

// setupTestServer runs both services over a temp SQLite database with the
// real session interceptor in front of them.
func setupTestServer(t *testing.T) testClients {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "evenbetter-service-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	prefs := preferences.NewService(store)
	metrics := middleware.NewMetrics(prometheus.NewRegistry())

	interceptors := connect.WithInterceptors(
		metrics.Interceptor(),
		middleware.RequireSession(jwtManager, rpc.PublicProcedures...),
		middleware.LoggingInterceptor(),
	)

	sessionSvc := NewSessionService(store, prefs, jwtManager, metrics)
	sessionPath, sessionHandler := rpc.NewSessionServiceHandler(sessionSvc, interceptors)
	prefPath, prefHandler := rpc.NewPreferenceServiceHandler(NewPreferenceService(sessionSvc), interceptors)

	mux := http.NewServeMux()
	mux.Handle(sessionPath, sessionHandler)
	mux.Handle(prefPath, prefHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return testClients{
		sessions:    rpc.NewSessionServiceClient(http.DefaultClient, server.URL),
		preferences: rpc.NewPreferenceServiceClient(http.DefaultClient, server.URL),
		service:     sessionSvc,
		store:       store,
	}
}

// authed wraps msg in a request carrying the session token.
func authed[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func strPtr(s string) *string { return &s }

// createSession starts a session and returns its token.
func createSession(t *testing.T, c testClients, eventName string) string {
	t.Helper()
	resp, err := c.sessions.CreateSession(context.Background(), connect.NewRequest(&rpc.CreateSessionRequest{EventName: eventName}))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Msg.Token)
	require.NotEmpty(t, resp.Msg.Session.ID)
	return resp.Msg.Token
}

// addThreeFriends adds A (paid 30 general + 60 meat), vegetarian B and C.
func addThreeFriends(t *testing.T, c testClients, token string) {
	t.Helper()
	ctx := context.Background()

	_, err := c.sessions.AddParticipant(ctx, authed(token, &rpc.AddParticipantRequest{
		Name:    "A",
		Expense: &rpc.ExpenseInput{Total: "90", Meat: strPtr("60")},
	}))
	require.NoError(t, err)

	_, err = c.sessions.AddParticipant(ctx, authed(token, &rpc.AddParticipantRequest{Name: "B", IsVegetarian: true}))
	require.NoError(t, err)

	_, err = c.sessions.AddParticipant(ctx, authed(token, &rpc.AddParticipantRequest{Name: "C"}))
	require.NoError(t, err)
}

func requireCode(t *testing.T, want connect.Code, err error) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, want, connect.CodeOf(err), "error: %v", err)
}
