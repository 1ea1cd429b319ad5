package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const JournalServiceName = "platelog.v1.JournalService"

const (
	JournalServiceAddEntryProcedure        = "/platelog.v1.JournalService/AddEntry"
	JournalServiceDeleteEntryProcedure     = "/platelog.v1.JournalService/DeleteEntry"
	JournalServiceListEntriesProcedure     = "/platelog.v1.JournalService/ListEntries"
	JournalServiceGetDailySummaryProcedure = "/platelog.v1.JournalService/GetDailySummary"
)

// JournalServiceHandler is implemented by the server.
type JournalServiceHandler interface {
	AddEntry(context.Context, *connect.Request[AddEntryRequest]) (*connect.Response[AddEntryResponse], error)
	DeleteEntry(context.Context, *connect.Request[DeleteEntryRequest]) (*connect.Response[DeleteEntryResponse], error)
	ListEntries(context.Context, *connect.Request[ListEntriesRequest]) (*connect.Response[ListEntriesResponse], error)
	GetDailySummary(context.Context, *connect.Request[GetDailySummaryRequest]) (*connect.Response[GetDailySummaryResponse], error)
}

// NewJournalServiceHandler returns the mount path and handler for svc.
func NewJournalServiceHandler(svc JournalServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	return route("/"+JournalServiceName+"/", map[string]*connect.Handler{
		JournalServiceAddEntryProcedure:        unary(JournalServiceAddEntryProcedure, svc.AddEntry, opts),
		JournalServiceDeleteEntryProcedure:     unary(JournalServiceDeleteEntryProcedure, svc.DeleteEntry, opts),
		JournalServiceListEntriesProcedure:     unary(JournalServiceListEntriesProcedure, svc.ListEntries, opts),
		JournalServiceGetDailySummaryProcedure: unary(JournalServiceGetDailySummaryProcedure, svc.GetDailySummary, opts),
	})
}

// JournalServiceClient calls a remote JournalService.
type JournalServiceClient struct {
	addEntry        *connect.Client[AddEntryRequest, AddEntryResponse]
	deleteEntry     *connect.Client[DeleteEntryRequest, DeleteEntryResponse]
	listEntries     *connect.Client[ListEntriesRequest, ListEntriesResponse]
	getDailySummary *connect.Client[GetDailySummaryRequest, GetDailySummaryResponse]
}

// NewJournalServiceClient builds a client for the service at baseURL.
func NewJournalServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *JournalServiceClient {
	return &JournalServiceClient{
		addEntry:        client[AddEntryRequest, AddEntryResponse](httpClient, baseURL, JournalServiceAddEntryProcedure, opts),
		deleteEntry:     client[DeleteEntryRequest, DeleteEntryResponse](httpClient, baseURL, JournalServiceDeleteEntryProcedure, opts),
		listEntries:     client[ListEntriesRequest, ListEntriesResponse](httpClient, baseURL, JournalServiceListEntriesProcedure, opts),
		getDailySummary: client[GetDailySummaryRequest, GetDailySummaryResponse](httpClient, baseURL, JournalServiceGetDailySummaryProcedure, opts),
	}
}

func (c *JournalServiceClient) AddEntry(ctx context.Context, req *connect.Request[AddEntryRequest]) (*connect.Response[AddEntryResponse], error) {
	return c.addEntry.CallUnary(ctx, req)
}

func (c *JournalServiceClient) DeleteEntry(ctx context.Context, req *connect.Request[DeleteEntryRequest]) (*connect.Response[DeleteEntryResponse], error) {
	return c.deleteEntry.CallUnary(ctx, req)
}

func (c *JournalServiceClient) ListEntries(ctx context.Context, req *connect.Request[ListEntriesRequest]) (*connect.Response[ListEntriesResponse], error) {
	return c.listEntries.CallUnary(ctx, req)
}

func (c *JournalServiceClient) GetDailySummary(ctx context.Context, req *connect.Request[GetDailySummaryRequest]) (*connect.Response[GetDailySummaryResponse], error) {
	return c.getDailySummary.CallUnary(ctx, req)
}
