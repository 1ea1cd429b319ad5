package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const RecognitionServiceName = "platelog.v1.RecognitionService"

const (
	RecognitionServiceRecognizeProcedure           = "/platelog.v1.RecognitionService/Recognize"
	RecognitionServiceSuggestAlternativesProcedure = "/platelog.v1.RecognitionService/SuggestAlternatives"
)

// RecognitionServiceHandler is implemented by the server.
type RecognitionServiceHandler interface {
	Recognize(context.Context, *connect.Request[RecognizeRequest]) (*connect.Response[RecognizeResponse], error)
	SuggestAlternatives(context.Context, *connect.Request[SuggestAlternativesRequest]) (*connect.Response[SuggestAlternativesResponse], error)
}

// NewRecognitionServiceHandler returns the mount path and handler for svc.
func NewRecognitionServiceHandler(svc RecognitionServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	return route("/"+RecognitionServiceName+"/", map[string]*connect.Handler{
		RecognitionServiceRecognizeProcedure:           unary(RecognitionServiceRecognizeProcedure, svc.Recognize, opts),
		RecognitionServiceSuggestAlternativesProcedure: unary(RecognitionServiceSuggestAlternativesProcedure, svc.SuggestAlternatives, opts),
	})
}

// RecognitionServiceClient calls a remote RecognitionService.
type RecognitionServiceClient struct {
	recognize           *connect.Client[RecognizeRequest, RecognizeResponse]
	suggestAlternatives *connect.Client[SuggestAlternativesRequest, SuggestAlternativesResponse]
}

// NewRecognitionServiceClient builds a client for the service at baseURL.
func NewRecognitionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *RecognitionServiceClient {
	return &RecognitionServiceClient{
		recognize:           client[RecognizeRequest, RecognizeResponse](httpClient, baseURL, RecognitionServiceRecognizeProcedure, opts),
		suggestAlternatives: client[SuggestAlternativesRequest, SuggestAlternativesResponse](httpClient, baseURL, RecognitionServiceSuggestAlternativesProcedure, opts),
	}
}

func (c *RecognitionServiceClient) Recognize(ctx context.Context, req *connect.Request[RecognizeRequest]) (*connect.Response[RecognizeResponse], error) {
	return c.recognize.CallUnary(ctx, req)
}

func (c *RecognitionServiceClient) SuggestAlternatives(ctx context.Context, req *connect.Request[SuggestAlternativesRequest]) (*connect.Response[SuggestAlternativesResponse], error) {
	return c.suggestAlternatives.CallUnary(ctx, req)
}
