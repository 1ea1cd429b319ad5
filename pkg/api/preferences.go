package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const PreferenceServiceName = "platelog.v1.PreferenceService"

const (
	PreferenceServiceGetPreferencesProcedure = "/platelog.v1.PreferenceService/GetPreferences"
	PreferenceServiceSetThemeProcedure       = "/platelog.v1.PreferenceService/SetTheme"
)

// PreferenceServiceHandler is implemented by the server.
type PreferenceServiceHandler interface {
	GetPreferences(context.Context, *connect.Request[GetPreferencesRequest]) (*connect.Response[GetPreferencesResponse], error)
	SetTheme(context.Context, *connect.Request[SetThemeRequest]) (*connect.Response[SetThemeResponse], error)
}

// NewPreferenceServiceHandler returns the mount path and handler for svc.
func NewPreferenceServiceHandler(svc PreferenceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	return route("/"+PreferenceServiceName+"/", map[string]*connect.Handler{
		PreferenceServiceGetPreferencesProcedure: unary(PreferenceServiceGetPreferencesProcedure, svc.GetPreferences, opts),
		PreferenceServiceSetThemeProcedure:       unary(PreferenceServiceSetThemeProcedure, svc.SetTheme, opts),
	})
}

// PreferenceServiceClient calls a remote PreferenceService.
type PreferenceServiceClient struct {
	getPreferences *connect.Client[GetPreferencesRequest, GetPreferencesResponse]
	setTheme       *connect.Client[SetThemeRequest, SetThemeResponse]
}

// NewPreferenceServiceClient builds a client for the service at baseURL.
func NewPreferenceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PreferenceServiceClient {
	return &PreferenceServiceClient{
		getPreferences: client[GetPreferencesRequest, GetPreferencesResponse](httpClient, baseURL, PreferenceServiceGetPreferencesProcedure, opts),
		setTheme:       client[SetThemeRequest, SetThemeResponse](httpClient, baseURL, PreferenceServiceSetThemeProcedure, opts),
	}
}

func (c *PreferenceServiceClient) GetPreferences(ctx context.Context, req *connect.Request[GetPreferencesRequest]) (*connect.Response[GetPreferencesResponse], error) {
	return c.getPreferences.CallUnary(ctx, req)
}

func (c *PreferenceServiceClient) SetTheme(ctx context.Context, req *connect.Request[SetThemeRequest]) (*connect.Response[SetThemeResponse], error) {
	return c.setTheme.CallUnary(ctx, req)
}
