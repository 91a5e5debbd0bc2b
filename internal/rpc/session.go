package rpc

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// SessionServiceName is the fully-qualified name of the SessionService.
const SessionServiceName = "evenbetter.v1.SessionService"

// Procedure paths of the SessionService.
const (
	SessionServiceCreateSessionProcedure     = "/evenbetter.v1.SessionService/CreateSession"
	SessionServiceGetSessionProcedure        = "/evenbetter.v1.SessionService/GetSession"
	SessionServiceRenameSessionProcedure     = "/evenbetter.v1.SessionService/RenameSession"
	SessionServiceAddParticipantProcedure    = "/evenbetter.v1.SessionService/AddParticipant"
	SessionServiceAddExpenseProcedure        = "/evenbetter.v1.SessionService/AddExpense"
	SessionServiceRemoveParticipantProcedure = "/evenbetter.v1.SessionService/RemoveParticipant"
	SessionServiceResetSessionProcedure      = "/evenbetter.v1.SessionService/ResetSession"
	SessionServiceDeleteSessionProcedure     = "/evenbetter.v1.SessionService/DeleteSession"
	SessionServiceGetSettlementProcedure     = "/evenbetter.v1.SessionService/GetSettlement"
	SessionServiceShareSettlementProcedure   = "/evenbetter.v1.SessionService/ShareSettlement"
)

// SessionServiceHandler is implemented by the session service.
type SessionServiceHandler interface {
	CreateSession(context.Context, *connect.Request[CreateSessionRequest]) (*connect.Response[CreateSessionResponse], error)
	GetSession(context.Context, *connect.Request[GetSessionRequest]) (*connect.Response[GetSessionResponse], error)
	RenameSession(context.Context, *connect.Request[RenameSessionRequest]) (*connect.Response[RenameSessionResponse], error)
	AddParticipant(context.Context, *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error)
	AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error)
	RemoveParticipant(context.Context, *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error)
	ResetSession(context.Context, *connect.Request[ResetSessionRequest]) (*connect.Response[ResetSessionResponse], error)
	DeleteSession(context.Context, *connect.Request[DeleteSessionRequest]) (*connect.Response[DeleteSessionResponse], error)
	GetSettlement(context.Context, *connect.Request[GetSettlementRequest]) (*connect.Response[GetSettlementResponse], error)
	ShareSettlement(context.Context, *connect.Request[ShareSettlementRequest]) (*connect.Response[ShareSettlementResponse], error)
}

// NewSessionServiceHandler returns the mount path and handler for svc.
func NewSessionServiceHandler(svc SessionServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	return "/" + SessionServiceName + "/", route(map[string]http.Handler{
		SessionServiceCreateSessionProcedure:     unaryHandler(SessionServiceCreateSessionProcedure, svc.CreateSession, opts),
		SessionServiceGetSessionProcedure:        unaryHandler(SessionServiceGetSessionProcedure, svc.GetSession, opts),
		SessionServiceRenameSessionProcedure:     unaryHandler(SessionServiceRenameSessionProcedure, svc.RenameSession, opts),
		SessionServiceAddParticipantProcedure:    unaryHandler(SessionServiceAddParticipantProcedure, svc.AddParticipant, opts),
		SessionServiceAddExpenseProcedure:        unaryHandler(SessionServiceAddExpenseProcedure, svc.AddExpense, opts),
		SessionServiceRemoveParticipantProcedure: unaryHandler(SessionServiceRemoveParticipantProcedure, svc.RemoveParticipant, opts),
		SessionServiceResetSessionProcedure:      unaryHandler(SessionServiceResetSessionProcedure, svc.ResetSession, opts),
		SessionServiceDeleteSessionProcedure:     unaryHandler(SessionServiceDeleteSessionProcedure, svc.DeleteSession, opts),
		SessionServiceGetSettlementProcedure:     unaryHandler(SessionServiceGetSettlementProcedure, svc.GetSettlement, opts),
		SessionServiceShareSettlementProcedure:   unaryHandler(SessionServiceShareSettlementProcedure, svc.ShareSettlement, opts),
	})
}

// SessionServiceClient calls a remote SessionService.
type SessionServiceClient struct {
	createSession     *connect.Client[CreateSessionRequest, CreateSessionResponse]
	getSession        *connect.Client[GetSessionRequest, GetSessionResponse]
	renameSession     *connect.Client[RenameSessionRequest, RenameSessionResponse]
	addParticipant    *connect.Client[AddParticipantRequest, AddParticipantResponse]
	addExpense        *connect.Client[AddExpenseRequest, AddExpenseResponse]
	removeParticipant *connect.Client[RemoveParticipantRequest, RemoveParticipantResponse]
	resetSession      *connect.Client[ResetSessionRequest, ResetSessionResponse]
	deleteSession     *connect.Client[DeleteSessionRequest, DeleteSessionResponse]
	getSettlement     *connect.Client[GetSettlementRequest, GetSettlementResponse]
	shareSettlement   *connect.Client[ShareSettlementRequest, ShareSettlementResponse]
}

// NewSessionServiceClient creates a client for the SessionService at baseURL.
func NewSessionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SessionServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &SessionServiceClient{
		createSession:     connect.NewClient[CreateSessionRequest, CreateSessionResponse](httpClient, baseURL+SessionServiceCreateSessionProcedure, opts...),
		getSession:        connect.NewClient[GetSessionRequest, GetSessionResponse](httpClient, baseURL+SessionServiceGetSessionProcedure, opts...),
		renameSession:     connect.NewClient[RenameSessionRequest, RenameSessionResponse](httpClient, baseURL+SessionServiceRenameSessionProcedure, opts...),
		addParticipant:    connect.NewClient[AddParticipantRequest, AddParticipantResponse](httpClient, baseURL+SessionServiceAddParticipantProcedure, opts...),
		addExpense:        connect.NewClient[AddExpenseRequest, AddExpenseResponse](httpClient, baseURL+SessionServiceAddExpenseProcedure, opts...),
		removeParticipant: connect.NewClient[RemoveParticipantRequest, RemoveParticipantResponse](httpClient, baseURL+SessionServiceRemoveParticipantProcedure, opts...),
		resetSession:      connect.NewClient[ResetSessionRequest, ResetSessionResponse](httpClient, baseURL+SessionServiceResetSessionProcedure, opts...),
		deleteSession:     connect.NewClient[DeleteSessionRequest, DeleteSessionResponse](httpClient, baseURL+SessionServiceDeleteSessionProcedure, opts...),
		getSettlement:     connect.NewClient[GetSettlementRequest, GetSettlementResponse](httpClient, baseURL+SessionServiceGetSettlementProcedure, opts...),
		shareSettlement:   connect.NewClient[ShareSettlementRequest, ShareSettlementResponse](httpClient, baseURL+SessionServiceShareSettlementProcedure, opts...),
	}
}

func (c *SessionServiceClient) CreateSession(ctx context.Context, req *connect.Request[CreateSessionRequest]) (*connect.Response[CreateSessionResponse], error) {
	return c.createSession.CallUnary(ctx, req)
}

func (c *SessionServiceClient) GetSession(ctx context.Context, req *connect.Request[GetSessionRequest]) (*connect.Response[GetSessionResponse], error) {
	return c.getSession.CallUnary(ctx, req)
}

func (c *SessionServiceClient) RenameSession(ctx context.Context, req *connect.Request[RenameSessionRequest]) (*connect.Response[RenameSessionResponse], error) {
	return c.renameSession.CallUnary(ctx, req)
}

func (c *SessionServiceClient) AddParticipant(ctx context.Context, req *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *SessionServiceClient) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *SessionServiceClient) RemoveParticipant(ctx context.Context, req *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}

func (c *SessionServiceClient) ResetSession(ctx context.Context, req *connect.Request[ResetSessionRequest]) (*connect.Response[ResetSessionResponse], error) {
	return c.resetSession.CallUnary(ctx, req)
}

func (c *SessionServiceClient) DeleteSession(ctx context.Context, req *connect.Request[DeleteSessionRequest]) (*connect.Response[DeleteSessionResponse], error) {
	return c.deleteSession.CallUnary(ctx, req)
}

func (c *SessionServiceClient) GetSettlement(ctx context.Context, req *connect.Request[GetSettlementRequest]) (*connect.Response[GetSettlementResponse], error) {
	return c.getSettlement.CallUnary(ctx, req)
}

func (c *SessionServiceClient) ShareSettlement(ctx context.Context, req *connect.Request[ShareSettlementRequest]) (*connect.Response[ShareSettlementResponse], error) {
	return c.shareSettlement.CallUnary(ctx, req)
}
