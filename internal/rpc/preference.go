package rpc

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// PreferenceServiceName is the fully-qualified name of the PreferenceService.
const PreferenceServiceName = "evenbetter.v1.PreferenceService"

// Procedure paths of the PreferenceService.
const (
	PreferenceServiceGetPreferencesProcedure    = "/evenbetter.v1.PreferenceService/GetPreferences"
	PreferenceServiceUpdatePreferencesProcedure = "/evenbetter.v1.PreferenceService/UpdatePreferences"
	PreferenceServiceToggleLanguageProcedure    = "/evenbetter.v1.PreferenceService/ToggleLanguage"
	PreferenceServiceDetectPreferencesProcedure = "/evenbetter.v1.PreferenceService/DetectPreferences"
)

// PublicProcedures may be called without a session token.
var PublicProcedures = []string{
	SessionServiceCreateSessionProcedure,
	PreferenceServiceDetectPreferencesProcedure,
}

// PreferenceServiceHandler is implemented by the preference service.
type PreferenceServiceHandler interface {
	GetPreferences(context.Context, *connect.Request[GetPreferencesRequest]) (*connect.Response[GetPreferencesResponse], error)
	UpdatePreferences(context.Context, *connect.Request[UpdatePreferencesRequest]) (*connect.Response[UpdatePreferencesResponse], error)
	ToggleLanguage(context.Context, *connect.Request[ToggleLanguageRequest]) (*connect.Response[ToggleLanguageResponse], error)
	DetectPreferences(context.Context, *connect.Request[DetectPreferencesRequest]) (*connect.Response[DetectPreferencesResponse], error)
}

// NewPreferenceServiceHandler returns the mount path and handler for svc.
func NewPreferenceServiceHandler(svc PreferenceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	return "/" + PreferenceServiceName + "/", route(map[string]http.Handler{
		PreferenceServiceGetPreferencesProcedure:    unaryHandler(PreferenceServiceGetPreferencesProcedure, svc.GetPreferences, opts),
		PreferenceServiceUpdatePreferencesProcedure: unaryHandler(PreferenceServiceUpdatePreferencesProcedure, svc.UpdatePreferences, opts),
		PreferenceServiceToggleLanguageProcedure:    unaryHandler(PreferenceServiceToggleLanguageProcedure, svc.ToggleLanguage, opts),
		PreferenceServiceDetectPreferencesProcedure: unaryHandler(PreferenceServiceDetectPreferencesProcedure, svc.DetectPreferences, opts),
	})
}

// PreferenceServiceClient calls a remote PreferenceService.
type PreferenceServiceClient struct {
	getPreferences    *connect.Client[GetPreferencesRequest, GetPreferencesResponse]
	updatePreferences *connect.Client[UpdatePreferencesRequest, UpdatePreferencesResponse]
	toggleLanguage    *connect.Client[ToggleLanguageRequest, ToggleLanguageResponse]
	detectPreferences *connect.Client[DetectPreferencesRequest, DetectPreferencesResponse]
}

// NewPreferenceServiceClient creates a client for the PreferenceService at baseURL.
func NewPreferenceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PreferenceServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &PreferenceServiceClient{
		getPreferences:    connect.NewClient[GetPreferencesRequest, GetPreferencesResponse](httpClient, baseURL+PreferenceServiceGetPreferencesProcedure, opts...),
		updatePreferences: connect.NewClient[UpdatePreferencesRequest, UpdatePreferencesResponse](httpClient, baseURL+PreferenceServiceUpdatePreferencesProcedure, opts...),
		toggleLanguage:    connect.NewClient[ToggleLanguageRequest, ToggleLanguageResponse](httpClient, baseURL+PreferenceServiceToggleLanguageProcedure, opts...),
		detectPreferences: connect.NewClient[DetectPreferencesRequest, DetectPreferencesResponse](httpClient, baseURL+PreferenceServiceDetectPreferencesProcedure, opts...),
	}
}

func (c *PreferenceServiceClient) GetPreferences(ctx context.Context, req *connect.Request[GetPreferencesRequest]) (*connect.Response[GetPreferencesResponse], error) {
	return c.getPreferences.CallUnary(ctx, req)
}

func (c *PreferenceServiceClient) UpdatePreferences(ctx context.Context, req *connect.Request[UpdatePreferencesRequest]) (*connect.Response[UpdatePreferencesResponse], error) {
	return c.updatePreferences.CallUnary(ctx, req)
}

func (c *PreferenceServiceClient) ToggleLanguage(ctx context.Context, req *connect.Request[ToggleLanguageRequest]) (*connect.Response[ToggleLanguageResponse], error) {
	return c.toggleLanguage.CallUnary(ctx, req)
}

func (c *PreferenceServiceClient) DetectPreferences(ctx context.Context, req *connect.Request[DetectPreferencesRequest]) (*connect.Response[DetectPreferencesResponse], error) {
	return c.detectPreferences.CallUnary(ctx, req)
}
